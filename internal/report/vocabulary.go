// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"github.com/staranto/gedcomdiff/internal/gedcom"
)

var eventNames = map[string]string{
	"BIRT": "Birth",
	"DEAT": "Death",
}

func eventName(tag string) string {
	if n, ok := eventNames[tag]; ok {
		return n
	}
	return tag
}

// NameDiffers reports a small name difference between two matched people.
func (r *Reporter) NameDiffers(p *gedcom.Individual, name1, name2 string) {
	r.emit(p, KindName, "Name differs: %q vs %q", name1, name2)
}

// DateDiffers reports a life event dated differently in the two trees.
func (r *Reporter) DateDiffers(p *gedcom.Individual, event, date1, date2 string) {
	r.emit(p, KindDate, "%s date differs: %s vs %s", eventName(event), date1, date2)
}

// DateNotIn reports a life event dated in only one tree; tree is "tree1" or
// "tree2".
func (r *Reporter) DateNotIn(p *gedcom.Individual, event, tree string) {
	r.emit(p, KindDate, "%s date not in %s", eventName(event), tree)
}

// PlaceDiffers reports a life event placed differently in the two trees.
func (r *Reporter) PlaceDiffers(p *gedcom.Individual, event, place1, place2 string) {
	r.emit(p, KindPlace, "%s place differs: %q vs %q", eventName(event), place1, place2)
}

func (r *Reporter) ParentsAdded(p *gedcom.Individual) {
	r.emit(p, KindParent, "Parent(s) added in second")
}

func (r *Reporter) ParentsRemoved(p *gedcom.Individual) {
	r.emit(p, KindParent, "Parent(s) removed in second")
}

func (r *Reporter) ParentAdded(p *gedcom.Individual, slot string) {
	r.emit(p, KindParent, "Parent (%s) added in second", slot)
}

func (r *Reporter) ParentRemoved(p *gedcom.Individual, slot string) {
	r.emit(p, KindParent, "Parent (%s) removed in second", slot)
}

func (r *Reporter) ParentDifferent(p *gedcom.Individual, slot string) {
	r.emit(p, KindParent, "Parent (%s) different from first to second", slot)
}

func (r *Reporter) PartnersAdded(p *gedcom.Individual) {
	r.emit(p, KindPartner, "Partner(s) added in second")
}

func (r *Reporter) PartnersRemoved(p *gedcom.Individual) {
	r.emit(p, KindPartner, "Partner(s) removed in second")
}

func (r *Reporter) PartnerUnmatched(p *gedcom.Individual, partner string) {
	r.emit(p, KindPartner, "Didn't match partner %s first to second", partner)
}

func (r *Reporter) ChildrenAdded(p *gedcom.Individual, partner string) {
	r.emit(p, KindChildren, "All children with %s added in second", partner)
}

func (r *Reporter) ChildrenRemoved(p *gedcom.Individual, partner string) {
	r.emit(p, KindChildren, "All children with %s removed in second", partner)
}

func (r *Reporter) ChildUnmatched(p *gedcom.Individual, partner, child string) {
	r.emit(p, KindChild, "With %s didn't match child %s first to second", partner, child)
}
