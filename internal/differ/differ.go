// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"github.com/staranto/gedcomdiff/internal/assign"
	"github.com/staranto/gedcomdiff/internal/gedcom"
	"github.com/staranto/gedcomdiff/internal/log"
	"github.com/staranto/gedcomdiff/internal/match"
	"github.com/staranto/gedcomdiff/internal/report"
)

// parentSlots are the spouse slots of a parent family, in comparison order.
var parentSlots = []string{"wife", "husband"}

// Walker compares one pair of trees. It is single use: the visited sets are
// only ever added to, so a second Walk on the same Walker skips everyone the
// first one reached.
type Walker struct {
	first   *gedcom.Tree
	second  *gedcom.Tree
	matcher *match.Matcher
	report  *report.Reporter

	visited     map[string]bool
	visitedFams map[string]bool
	order       []string
}

// New returns a Walker over first and second.
func New(first, second *gedcom.Tree, m *match.Matcher, r *report.Reporter) *Walker {
	return &Walker{
		first:       first,
		second:      second,
		matcher:     m,
		report:      r,
		visited:     map[string]bool{},
		visitedFams: map[string]bool{},
	}
}

// Visited returns the first tree ids walked so far, in walk order.
func (w *Walker) Visited() []string {
	return w.order
}

// Walk compares id1 of the first tree with id2 of the second and follows
// their relatives depth first: attributes, then parents, then partners with
// each matched partner's children. Every first tree person is processed at
// most once.
func (w *Walker) Walk(id1, id2 string) {
	if w.visited[id1] {
		return
	}
	w.visited[id1] = true
	w.order = append(w.order, id1)

	p1 := w.first.Individual(id1)
	p2 := w.second.Individual(id2)
	if p1 == nil || p2 == nil {
		log.Warnf("skipping unresolved pair: %s %s", id1, id2)
		return
	}
	log.Debugf("following person: %s %s", id1, report.Summary(p1))

	w.attributes(p1, p2)
	w.parents(p1, p2)
	w.partners(p1, p2)
}

// attributes reports small differences between two people already taken to
// be the same. Nothing here affects matching.
func (w *Walker) attributes(p1, p2 *gedcom.Individual) {
	th := w.matcher.Thresholds()

	name1, name2 := match.DisplayName(p1.Name()), match.DisplayName(p2.Name())
	if match.NameSimilarity(name1, name2) < th.ReportName {
		w.report.NameDiffers(p1, name1, name2)
	}

	for _, tag := range match.LifeEvents {
		var d1, d2 *gedcom.Date
		var pl1, pl2 *string
		if e := p1.LifeEvent(tag); e != nil {
			d1, pl1 = e.Date, e.Place
		}
		if e := p2.LifeEvent(tag); e != nil {
			d2, pl2 = e.Date, e.Place
		}

		switch {
		case d1 != nil && d2 != nil:
			if match.DateDistance(*d1, *d2) > th.ReportDate {
				w.report.DateDiffers(p1, tag, d1.Raw, d2.Raw)
			}
		case d1 != nil:
			w.report.DateNotIn(p1, tag, "tree2")
		case d2 != nil:
			w.report.DateNotIn(p1, tag, "tree1")
		}

		if pl1 != nil && pl2 != nil && match.NameSimilarity(*pl1, *pl2) < th.ReportName {
			w.report.PlaceDiffers(p1, tag, *pl1, *pl2)
		}
	}
}

// parents compares the family each person is a child of, slot by slot.
func (w *Walker) parents(p1, p2 *gedcom.Individual) {
	fam1 := w.first.Family(p1.FamilyAsChild)
	fam2 := w.second.Family(p2.FamilyAsChild)

	switch {
	case fam1 == nil && fam2 == nil:
		return
	case fam2 == nil:
		w.report.ParentsRemoved(p1)
		return
	case fam1 == nil:
		w.report.ParentsAdded(p1)
		return
	}

	for _, slot := range parentSlots {
		parent1 := w.first.Individual(fam1.Spouse(slot))
		parent2 := w.second.Individual(fam2.Spouse(slot))

		switch {
		case parent1 != nil && parent2 != nil:
			if w.matcher.IsSamePerson(parent1, parent2) {
				log.Tracef("matched parent %s: %s", slot, parent1.ID)
				w.Walk(parent1.ID, parent2.ID)
			} else {
				w.report.ParentDifferent(p1, slot)
			}
		case parent1 != nil:
			w.report.ParentRemoved(p1, slot)
		case parent2 != nil:
			w.report.ParentAdded(p1, slot)
		}
	}
}

// spouseFamilies maps each family p is a spouse in to the other spouse, who
// may be unknown (nil). The family order of the record is kept.
func spouseFamilies(t *gedcom.Tree, p *gedcom.Individual) ([]string, map[string]*gedcom.Individual) {
	var fams []string
	partners := map[string]*gedcom.Individual{}
	for _, id := range p.FamiliesAsSpouse {
		fam := t.Family(id)
		if fam == nil {
			continue
		}
		if _, dup := partners[id]; dup {
			continue
		}
		fams = append(fams, id)
		partners[id] = t.Individual(fam.OtherSpouse(p.ID))
	}
	return fams, partners
}

// partners pairs up the families each person is a spouse in by the other
// spouse's name, follows each matched partner and then that family's
// children.
func (w *Walker) partners(p1, p2 *gedcom.Individual) {
	fams1, partners1 := spouseFamilies(w.first, p1)
	fams2, partners2 := spouseFamilies(w.second, p2)

	switch {
	case len(fams1) == 0 && len(fams2) == 0:
		return
	case len(fams2) == 0:
		w.report.PartnersRemoved(p1)
		return
	case len(fams1) == 0:
		w.report.PartnersAdded(p1)
		return
	}

	score := func(f1, f2 string) float64 {
		return w.matcher.MatchValue(partners1[f1], partners2[f2])
	}
	result := assign.Assign(fams1, fams2, score, w.matcher.Thresholds().PersonName)

	for _, f1 := range fams1 {
		partner1 := partners1[f1]
		f2, ok := result.Pairs[f1]
		if !ok {
			w.report.PartnerUnmatched(p1, displayName(partner1))
			continue
		}
		if partner2 := partners2[f2]; partner1 != nil && partner2 != nil {
			w.Walk(partner1.ID, partner2.ID)
		}
		w.children(p1, partner1, f1, f2)
	}
}

// children pairs up the children of two matched families. A first tree
// family is only processed once, however many partner paths reach it.
func (w *Walker) children(p1, partner1 *gedcom.Individual, famID1, famID2 string) {
	if w.visitedFams[famID1] {
		return
	}
	w.visitedFams[famID1] = true

	fam1 := w.first.Family(famID1)
	fam2 := w.second.Family(famID2)
	name := displayName(partner1)

	children1, children2 := fam1.Children, fam2.Children
	switch {
	case len(children1) == 0 && len(children2) == 0:
		return
	case len(children2) == 0:
		w.report.ChildrenRemoved(p1, name)
		return
	case len(children1) == 0:
		w.report.ChildrenAdded(p1, name)
		return
	}

	// An unknown spouse may match another unknown spouse, but a child
	// reference that resolves to nobody never matches.
	score := func(c1, c2 string) float64 {
		child1, child2 := w.first.Individual(c1), w.second.Individual(c2)
		if child1 == nil || child2 == nil {
			return 0
		}
		return w.matcher.MatchValue(child1, child2)
	}
	result := assign.Assign(children1, children2, score, w.matcher.Thresholds().PersonName)

	unmatched := map[string]bool{}
	for _, c1 := range result.Unmatched {
		unmatched[c1] = true
	}
	for _, c1 := range children1 {
		if c2, ok := result.Pairs[c1]; ok {
			w.Walk(c1, c2)
		} else if unmatched[c1] {
			delete(unmatched, c1)
			w.report.ChildUnmatched(p1, name, displayName(w.first.Individual(c1)))
		}
	}
}

func displayName(p *gedcom.Individual) string {
	if p == nil {
		return "unknown"
	}
	return match.DisplayName(p.Name())
}
