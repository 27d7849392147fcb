// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package gedcom

import (
	"errors"
	"fmt"
	"strings"
)

// UnknownName is the name value given to individuals whose NAME record is
// missing or blank.
const UnknownName = "[-unknown-]"

// XrefField is the lookup field that matches the record's own xref.
const XrefField = "xref"

var (
	ErrMalformed = errors.New("malformed gedcom")
	ErrNotFound  = errors.New("person not in tree")
	ErrAmbiguous = errors.New("person id matched more than 1 person")
)

// Date is the earliest calendar value a GEDCOM date phrase can denote. Raw
// keeps the phrase as written for display.
type Date struct {
	Year  int
	Month int
	Day   int
	Raw   string
}

// Event is a resolved life event. Date and Place are nil when the file does
// not record them.
type Event struct {
	Date  *Date
	Place *string
}

// Individual is an INDI record.
type Individual struct {
	ID               string
	Names            []string
	Birth            *Event
	Death            *Event
	FamilyAsChild    string
	FamiliesAsSpouse []string
	// Refs holds the values of other level 1 identifier tags (refn, exid,
	// _uid, ...) keyed by lower-cased tag.
	Refs map[string][]string
}

// Name returns the canonical raw name.
func (p *Individual) Name() string {
	if p == nil || len(p.Names) == 0 {
		return UnknownName
	}
	return p.Names[0]
}

// LifeEvent returns the birth or death event by GEDCOM tag.
func (p *Individual) LifeEvent(tag string) *Event {
	if p == nil {
		return nil
	}
	switch tag {
	case "BIRT":
		return p.Birth
	case "DEAT":
		return p.Death
	}
	return nil
}

// Family is a FAM record.
type Family struct {
	ID       string
	Wife     string
	Husband  string
	Children []string
}

// Spouse returns the occupant of the named spouse slot ("wife" or
// "husband"), or an empty string.
func (f *Family) Spouse(slot string) string {
	if f == nil {
		return ""
	}
	switch slot {
	case "wife":
		return f.Wife
	case "husband":
		return f.Husband
	}
	return ""
}

// OtherSpouse returns the spouse in f who is not id.
func (f *Family) OtherSpouse(id string) string {
	if f == nil {
		return ""
	}
	other := ""
	for _, s := range []string{f.Wife, f.Husband} {
		if s != "" && s != id {
			other = s
		}
	}
	return other
}

// Tree is a parsed GEDCOM file. It is never modified after Read returns.
type Tree struct {
	Path        string
	Individuals map[string]*Individual
	Families    map[string]*Family

	order []string
}

// Individual returns the person with the given xref or nil.
func (t *Tree) Individual(id string) *Individual {
	if t == nil || id == "" {
		return nil
	}
	return t.Individuals[id]
}

// Family returns the family with the given xref or nil.
func (t *Tree) Family(id string) *Family {
	if t == nil || id == "" {
		return nil
	}
	return t.Families[id]
}

// Find returns the ids, in file order, of every individual whose field
// matches value. The xref field matches the record id with or without the
// surrounding @ signs.
func (t *Tree) Find(field, value string) []string {
	field = strings.ToLower(strings.TrimSpace(field))
	value = strings.TrimSpace(value)

	var ids []string
	for _, id := range t.order {
		p := t.Individuals[id]
		if field == XrefField {
			if id == value || strings.Trim(id, "@") == value {
				ids = append(ids, id)
			}
			continue
		}
		for _, v := range p.Refs[field] {
			if v == value {
				ids = append(ids, id)
				break
			}
		}
	}
	return ids
}

// FindOne resolves a start person and fails unless exactly one individual
// matches.
func (t *Tree) FindOne(field, value string) (*Individual, error) {
	ids := t.Find(field, value)
	switch len(ids) {
	case 1:
		return t.Individuals[ids[0]], nil
	case 0:
		return nil, fmt.Errorf("given person id %s: %w: %s", value, ErrNotFound, t.Path)
	default:
		return nil, fmt.Errorf("given person id %s: %w: %s", value, ErrAmbiguous, t.Path)
	}
}

// Len returns the number of individuals.
func (t *Tree) Len() int {
	return len(t.order)
}
