// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package match

import (
	"regexp"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/staranto/gedcomdiff/internal/config"
	"github.com/staranto/gedcomdiff/internal/gedcom"
	"github.com/staranto/gedcomdiff/internal/log"
)

// LifeEvents are the events that take part in identity matching.
var LifeEvents = []string{"BIRT", "DEAT"}

// suffixRegex matches everything from the last slash, e.g. the "/ Jr" in
// "John /Smith/ Jr".
var suffixRegex = regexp.MustCompile(`/[^/]*$`)

// NameSimilarity returns the difflib ratio of a and b. The pair is scored in
// a fixed order so the result does not depend on argument order.
func NameSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if b < a {
		a, b = b, a
	}
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}

// DisplayName normalizes a raw GEDCOM name for comparison and display.
func DisplayName(raw string) string {
	if strings.Contains(raw, gedcom.UnknownName) {
		return "unknown"
	}
	name := suffixRegex.ReplaceAllString(raw, "")
	return strings.TrimSpace(strings.ReplaceAll(name, "/", ""))
}

// DateDistance returns the approximate number of days between two dates,
// counting every month as 30 days and every year as 365. Distinct dates are
// always at least one day apart.
func DateDistance(d1, d2 gedcom.Date) int {
	if d1.Equal(d2) {
		return 0
	}
	days := func(d gedcom.Date) int {
		return d.Year*365 + d.Month*30 + d.Day
	}
	diff := days(d1) - days(d2)
	if diff < 0 {
		diff = -diff
	}
	return max(diff, 1)
}

// Matcher scores people from the first tree against people from the second.
type Matcher struct {
	thresholds config.Thresholds
}

// New returns a Matcher for the given limits.
func New(t config.Thresholds) *Matcher {
	return &Matcher{thresholds: t}
}

// Thresholds returns the limits the Matcher was built with.
func (m *Matcher) Thresholds() config.Thresholds {
	return m.thresholds
}

// NameMatch compares the canonical names of p1 and p2.
func (m *Matcher) NameMatch(p1, p2 *gedcom.Individual) float64 {
	return NameSimilarity(DisplayName(p1.Name()), DisplayName(p2.Name()))
}

// LifeEventDateGap returns the largest date distance over the life events
// dated in both people. Events missing on either side are skipped.
func (m *Matcher) LifeEventDateGap(p1, p2 *gedcom.Individual) int {
	gap := 0
	for _, tag := range LifeEvents {
		e1, e2 := p1.LifeEvent(tag), p2.LifeEvent(tag)
		if e1 == nil || e2 == nil || e1.Date == nil || e2.Date == nil {
			continue
		}
		gap = max(gap, DateDistance(*e1.Date, *e2.Date))
	}
	return gap
}

// LifeEventPlaceGap returns the smallest place similarity over the life
// events with a place in both people, or 1 when there is nothing to compare.
func (m *Matcher) LifeEventPlaceGap(p1, p2 *gedcom.Individual) float64 {
	gap := 1.0
	for _, tag := range LifeEvents {
		e1, e2 := p1.LifeEvent(tag), p2.LifeEvent(tag)
		if e1 == nil || e2 == nil || e1.Place == nil || e2.Place == nil {
			continue
		}
		gap = min(gap, NameSimilarity(*e1.Place, *e2.Place))
	}
	return gap
}

// IsSamePerson applies the identity limits to name, life event dates and
// life event places. Missing evidence never fails the test.
func (m *Matcher) IsSamePerson(p1, p2 *gedcom.Individual) bool {
	if p1 == nil || p2 == nil {
		return false
	}
	if score := m.NameMatch(p1, p2); score < m.thresholds.PersonName {
		log.Tracef("not same person: %s %s name=%.3f", p1.ID, p2.ID, score)
		return false
	}
	if gap := m.LifeEventDateGap(p1, p2); gap > m.thresholds.PersonDate {
		log.Tracef("not same person: %s %s days=%d", p1.ID, p2.ID, gap)
		return false
	}
	if score := m.LifeEventPlaceGap(p1, p2); score < m.thresholds.PersonPlace {
		log.Tracef("not same person: %s %s place=%.3f", p1.ID, p2.ID, score)
		return false
	}
	return true
}

// MatchValue ranks candidate pairs. Only the name counts. A nil person
// stands for an unknown spouse: two unknowns score 1, an unknown against a
// known person scores 0.
func (m *Matcher) MatchValue(p1, p2 *gedcom.Individual) float64 {
	switch {
	case p1 == nil && p2 == nil:
		return 1.0
	case p1 == nil || p2 == nil:
		return 0.0
	}
	return m.NameMatch(p1, p2)
}
