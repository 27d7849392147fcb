// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/gedcomdiff/internal/config"
	"github.com/staranto/gedcomdiff/internal/gedcom"
	"github.com/staranto/gedcomdiff/internal/match"
	"github.com/staranto/gedcomdiff/internal/report"
)

type indi struct {
	id, name, birth string
	famc            string
	fams            []string
}

func build(path string, people []indi, families ...*gedcom.Family) *gedcom.Tree {
	var records []*gedcom.Individual
	for _, p := range people {
		rec := &gedcom.Individual{
			ID:               p.id,
			Names:            []string{p.name},
			FamilyAsChild:    p.famc,
			FamiliesAsSpouse: p.fams,
		}
		if p.birth != "" {
			rec.Birth = &gedcom.Event{Date: gedcom.ParseDate(p.birth)}
		}
		records = append(records, rec)
	}
	return gedcom.NewTree(path, records, families)
}

// diff walks first and second from id1 and id2 and returns the text report
// lines, without the blank separator lines.
func diff(t *testing.T, first, second *gedcom.Tree, id1, id2 string) ([]string, *Walker) {
	t.Helper()
	var buf bytes.Buffer
	r, err := report.New(&buf, "text", false)
	require.NoError(t, err)

	w := New(first, second, match.New(config.DefaultThresholds()), r)
	w.Walk(id1, id2)

	var lines []string
	for _, l := range strings.Split(buf.String(), "\n") {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines, w
}

func count(lines []string, substr string) int {
	n := 0
	for _, l := range lines {
		if strings.Contains(l, substr) {
			n++
		}
	}
	return n
}

func TestWalk_Identical(t *testing.T) {
	people := []indi{
		{id: "@I1@", name: "John /Smith/", birth: "1 JAN 1900", famc: "@F0@", fams: []string{"@F1@"}},
		{id: "@I2@", name: "Mary /Jones/", birth: "5 MAY 1902", fams: []string{"@F1@"}},
		{id: "@I3@", name: "Anne /Smith/", birth: "1925", famc: "@F1@"},
		{id: "@I4@", name: "William /Smith/", birth: "1870", fams: []string{"@F0@"}},
	}
	families := []*gedcom.Family{
		{ID: "@F0@", Husband: "@I4@", Children: []string{"@I1@"}},
		{ID: "@F1@", Husband: "@I1@", Wife: "@I2@", Children: []string{"@I3@"}},
	}
	first := build("first.ged", people, families...)
	second := build("second.ged", people, families...)

	lines, w := diff(t, first, second, "@I1@", "@I1@")
	assert.Empty(t, lines)
	assert.ElementsMatch(t, []string{"@I1@", "@I2@", "@I3@", "@I4@"}, w.Visited())
	assert.Equal(t, "@I1@", w.Visited()[0])
}

func TestWalk_CyclicFamiliesTerminate(t *testing.T) {
	// Each person is the father in the family the other is a child of.
	people := []indi{
		{id: "@A@", name: "Adam /Loop/", famc: "@F2@", fams: []string{"@F1@"}},
		{id: "@B@", name: "Bert /Loop/", famc: "@F1@", fams: []string{"@F2@"}},
	}
	families := []*gedcom.Family{
		{ID: "@F1@", Husband: "@A@", Children: []string{"@B@"}},
		{ID: "@F2@", Husband: "@B@", Children: []string{"@A@"}},
	}
	first := build("first.ged", people, families...)

	secondPeople := []indi{
		{id: "@A@", name: "Adam /Lop/", famc: "@F2@", fams: []string{"@F1@"}},
		{id: "@B@", name: "Bert /Lop/", famc: "@F1@", fams: []string{"@F2@"}},
	}
	second := build("second.ged", secondPeople, families...)

	lines, w := diff(t, first, second, "@A@", "@A@")
	assert.Equal(t, []string{"@A@", "@B@"}, w.Visited())
	assert.Equal(t, 2, count(lines, "Name differs"), "one attribute diff per person")
	assert.Equal(t, 1, count(lines, "Adam Loop ("))
	assert.Equal(t, 1, count(lines, "Bert Loop ("))
}

func TestWalk_NoParentsEitherSide(t *testing.T) {
	people := []indi{{id: "@I1@", name: "John /Smith/", birth: "1900"}}
	lines, _ := diff(t, build("a", people), build("b", people), "@I1@", "@I1@")
	assert.Zero(t, count(lines, "Parent"))
}

func TestWalk_PartnerWithSmallDifferences(t *testing.T) {
	first := build("first.ged", []indi{
		{id: "@I1@", name: "John /Smith/", fams: []string{"@F1@"}},
		{id: "@I2@", name: "Anne /Smith/", birth: "1 JAN 1900", fams: []string{"@F1@"}},
	}, &gedcom.Family{ID: "@F1@", Husband: "@I1@", Wife: "@I2@"})
	second := build("second.ged", []indi{
		{id: "@P1@", name: "John /Smith/", fams: []string{"@G1@"}},
		{id: "@P2@", name: "Ann /Smith/", birth: "21 JAN 1900", fams: []string{"@G1@"}},
	}, &gedcom.Family{ID: "@G1@", Husband: "@P1@", Wife: "@P2@"})

	lines, w := diff(t, first, second, "@I1@", "@P1@")
	assert.Equal(t, []string{"@I1@", "@I2@"}, w.Visited())
	assert.Contains(t, lines, "Birth date differs: 1 JAN 1900 vs 21 JAN 1900")
	assert.Contains(t, lines, `Name differs: "Anne Smith" vs "Ann Smith"`)
	assert.Zero(t, count(lines, "Didn't match partner"))
}

func TestWalk_ChildMissingInSecond(t *testing.T) {
	first := build("first.ged", []indi{
		{id: "@I1@", name: "John /Smith/", fams: []string{"@F1@"}},
		{id: "@I2@", name: "Mary /Jones/", fams: []string{"@F1@"}},
		{id: "@I3@", name: "Anne /Smith/", famc: "@F1@"},
		{id: "@I4@", name: "Robert /Smith/", famc: "@F1@"},
	}, &gedcom.Family{ID: "@F1@", Husband: "@I1@", Wife: "@I2@", Children: []string{"@I3@", "@I4@"}})
	second := build("second.ged", []indi{
		{id: "@I1@", name: "John /Smith/", fams: []string{"@F1@"}},
		{id: "@I2@", name: "Mary /Jones/", fams: []string{"@F1@"}},
		{id: "@I3@", name: "Anne /Smith/", famc: "@F1@"},
	}, &gedcom.Family{ID: "@F1@", Husband: "@I1@", Wife: "@I2@", Children: []string{"@I3@"}})

	lines, w := diff(t, first, second, "@I1@", "@I1@")
	// Mary is walked as John's partner first and reaches the family from
	// her side.
	assert.Equal(t, []string{"With John Smith didn't match child Robert Smith first to second"},
		filter(lines, "didn't match child"))
	assert.Zero(t, count(lines, "added"))
	assert.Contains(t, w.Visited(), "@I3@")
	assert.NotContains(t, w.Visited(), "@I4@")
}

func filter(lines []string, substr string) []string {
	var out []string
	for _, l := range lines {
		if strings.Contains(l, substr) {
			out = append(out, l)
		}
	}
	return out
}

func TestWalk_Parents(t *testing.T) {
	child := func(famc string) indi {
		return indi{id: "@C@", name: "Carl /Brown/", birth: "1950", famc: famc}
	}
	father := indi{id: "@H@", name: "Henry /Brown/", birth: "1920", fams: []string{"@F@"}}
	mother := indi{id: "@W@", name: "Wilma /Green/", birth: "1922", fams: []string{"@F@"}}
	stranger := indi{id: "@W@", name: "Zelda /Quartermain/", birth: "1850", fams: []string{"@F@"}}

	tests := []struct {
		name   string
		first  *gedcom.Tree
		second *gedcom.Tree
		want   []string
	}{
		{
			name:   "parents removed",
			first:  build("a", []indi{child("@F@"), father}, &gedcom.Family{ID: "@F@", Husband: "@H@", Children: []string{"@C@"}}),
			second: build("b", []indi{child("")}),
			want:   []string{"Parent(s) removed in second"},
		},
		{
			name:   "parents added",
			first:  build("a", []indi{child("")}),
			second: build("b", []indi{child("@F@"), father}, &gedcom.Family{ID: "@F@", Husband: "@H@", Children: []string{"@C@"}}),
			want:   []string{"Parent(s) added in second"},
		},
		{
			name:   "mother added",
			first:  build("a", []indi{child("@F@"), father}, &gedcom.Family{ID: "@F@", Husband: "@H@", Children: []string{"@C@"}}),
			second: build("b", []indi{child("@F@"), father, mother}, &gedcom.Family{ID: "@F@", Husband: "@H@", Wife: "@W@", Children: []string{"@C@"}}),
			want:   []string{"Parent (wife) added in second"},
		},
		{
			name:   "mother removed",
			first:  build("a", []indi{child("@F@"), father, mother}, &gedcom.Family{ID: "@F@", Husband: "@H@", Wife: "@W@", Children: []string{"@C@"}}),
			second: build("b", []indi{child("@F@"), father}, &gedcom.Family{ID: "@F@", Husband: "@H@", Children: []string{"@C@"}}),
			want:   []string{"Parent (wife) removed in second"},
		},
		{
			name:   "mother different",
			first:  build("a", []indi{child("@F@"), father, mother}, &gedcom.Family{ID: "@F@", Husband: "@H@", Wife: "@W@", Children: []string{"@C@"}}),
			second: build("b", []indi{child("@F@"), father, stranger}, &gedcom.Family{ID: "@F@", Husband: "@H@", Wife: "@W@", Children: []string{"@C@"}}),
			want:   []string{"Parent (wife) different from first to second"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, _ := diff(t, tt.first, tt.second, "@C@", "@C@")
			assert.Equal(t, tt.want, filter(lines, "Parent"))
		})
	}
}

func TestWalk_Partners(t *testing.T) {
	john := indi{id: "@I1@", name: "John /Smith/", fams: []string{"@F1@"}}
	single := indi{id: "@I1@", name: "John /Smith/"}
	mary := indi{id: "@I2@", name: "Mary /Jones/", fams: []string{"@F1@"}}
	zelda := indi{id: "@I2@", name: "Zelda /Quartermain/", fams: []string{"@F1@"}}
	fam := &gedcom.Family{ID: "@F1@", Husband: "@I1@", Wife: "@I2@"}

	tests := []struct {
		name   string
		first  *gedcom.Tree
		second *gedcom.Tree
		want   []string
	}{
		{
			name:   "partners removed",
			first:  build("a", []indi{john, mary}, fam),
			second: build("b", []indi{single}),
			want:   []string{"Partner(s) removed in second"},
		},
		{
			name:   "partners added",
			first:  build("a", []indi{single}),
			second: build("b", []indi{john, mary}, fam),
			want:   []string{"Partner(s) added in second"},
		},
		{
			name:   "partner unmatched",
			first:  build("a", []indi{john, mary}, fam),
			second: build("b", []indi{john, zelda}, fam),
			want:   []string{"Didn't match partner Mary Jones first to second"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, w := diff(t, tt.first, tt.second, "@I1@", "@I1@")
			assert.Equal(t, tt.want, filter(lines, "artner"))
			assert.Equal(t, []string{"@I1@"}, w.Visited())
		})
	}
}

func TestWalk_UnknownSpouse(t *testing.T) {
	people := []indi{
		{id: "@I1@", name: "John /Smith/", fams: []string{"@F1@"}},
		{id: "@I3@", name: "Anne /Smith/", famc: "@F1@"},
	}
	first := build("a", people, &gedcom.Family{ID: "@F1@", Husband: "@I1@", Children: []string{"@I3@"}})
	second := build("b", people, &gedcom.Family{ID: "@F1@", Husband: "@I1@"})

	lines, w := diff(t, first, second, "@I1@", "@I1@")
	assert.Equal(t, []string{"All children with unknown removed in second"}, filter(lines, "children"))
	assert.Equal(t, []string{"@I1@"}, w.Visited())
}

func TestWalk_DanglingChildNeverMatches(t *testing.T) {
	people := []indi{
		{id: "@I1@", name: "John /Smith/", fams: []string{"@F1@"}},
		{id: "@I3@", name: "Anne /Smith/", famc: "@F1@"},
	}
	fam := func() *gedcom.Family {
		return &gedcom.Family{ID: "@F1@", Husband: "@I1@", Children: []string{"@GHOST@", "@I3@"}}
	}
	first := build("a", people, fam())
	second := build("b", people, fam())

	lines, w := diff(t, first, second, "@I1@", "@I1@")
	assert.Equal(t, []string{"With unknown didn't match child unknown first to second"},
		filter(lines, "didn't match child"))
	assert.ElementsMatch(t, []string{"@I1@", "@I3@"}, w.Visited())
}

func TestWalk_ChildrenAdded(t *testing.T) {
	first := build("a", []indi{
		{id: "@I1@", name: "John /Smith/", fams: []string{"@F1@"}},
		{id: "@I2@", name: "Mary /Jones/", fams: []string{"@F1@"}},
	}, &gedcom.Family{ID: "@F1@", Husband: "@I1@", Wife: "@I2@"})
	second := build("b", []indi{
		{id: "@I1@", name: "John /Smith/", fams: []string{"@F1@"}},
		{id: "@I2@", name: "Mary /Jones/", fams: []string{"@F1@"}},
		{id: "@I3@", name: "Anne /Smith/", famc: "@F1@"},
	}, &gedcom.Family{ID: "@F1@", Husband: "@I1@", Wife: "@I2@", Children: []string{"@I3@"}})

	lines, _ := diff(t, first, second, "@I1@", "@I1@")
	// Reported once, from Mary's side, since she is walked before John gets
	// to the family.
	assert.Equal(t, []string{"All children with John Smith added in second"}, filter(lines, "children"))
}

func TestWalk_HeaderOncePerPerson(t *testing.T) {
	first := build("a", []indi{
		{id: "@I1@", name: "John /Smith/", birth: "1900", famc: "@F0@"},
		{id: "@I9@", name: "Old /Smith/", fams: []string{"@F0@"}},
	}, &gedcom.Family{ID: "@F0@", Wife: "@I9@", Children: []string{"@I1@"}})
	second := build("b", []indi{
		{id: "@I1@", name: "Jon /Smith/", birth: "1910", famc: "@F0@"},
		{id: "@I9@", name: "Someone /Else/", fams: []string{"@F0@"}},
		{id: "@I8@", name: "Old /Smith/", fams: []string{"@F0@"}},
	}, &gedcom.Family{ID: "@F0@", Wife: "@I9@", Husband: "@I8@", Children: []string{"@I1@"}})

	lines, _ := diff(t, first, second, "@I1@", "@I1@")
	assert.Equal(t, []string{
		"John Smith (1900-)",
		`Name differs: "John Smith" vs "Jon Smith"`,
		"Birth date differs: 1900 vs 1910",
		"Parent (wife) different from first to second",
		"Parent (husband) added in second",
	}, lines)
}

func TestWalk_UnresolvedStart(t *testing.T) {
	tree := build("a", []indi{{id: "@I1@", name: "John /Smith/"}})
	lines, w := diff(t, tree, tree, "@I1@", "@NOPE@")
	assert.Empty(t, lines)
	assert.Equal(t, []string{"@I1@"}, w.Visited())
}
