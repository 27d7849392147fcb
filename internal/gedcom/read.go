// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package gedcom

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/staranto/gedcomdiff/internal/log"
)

// lineRegex matches "LEVEL [@XREF@] TAG [VALUE]".
var lineRegex = regexp.MustCompile(`^\s*(\d+)\s+(?:(@[^@\s]+@)\s+)?(\S+)(?:\s(.*))?$`)

// Identifier tags kept for lookup. Anything else at level 1 is ignored.
var refTags = map[string]bool{
	"REFN": true,
	"EXID": true,
	"_UID": true,
	"UID":  true,
	"RIN":  true,
	"AFN":  true,
	"RFN":  true,
}

type line struct {
	level int
	xref  string
	tag   string
	value string
}

// rawEvent is one BIRT or DEAT record before the best one is chosen.
type rawEvent struct {
	date  *Date
	place *string
}

// NewTree assembles a Tree from already built records. Individual order is
// kept for lookups.
func NewTree(path string, people []*Individual, families []*Family) *Tree {
	t := &Tree{
		Path:        path,
		Individuals: make(map[string]*Individual, len(people)),
		Families:    make(map[string]*Family, len(families)),
	}
	for _, p := range people {
		if _, dup := t.Individuals[p.ID]; !dup {
			t.order = append(t.order, p.ID)
		}
		t.Individuals[p.ID] = p
	}
	for _, f := range families {
		t.Families[f.ID] = f
	}
	return t
}

// ReadFile opens and parses the GEDCOM file at path.
func ReadFile(path string) (*Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open tree: %w", err)
	}
	defer f.Close()

	t, err := Read(f, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Read parses GEDCOM from r. Unknown tags are skipped; lines that are not
// GEDCOM at all, or a file without individuals, fail with ErrMalformed.
func Read(r io.Reader, path string) (*Tree, error) {
	var (
		people   []*Individual
		families []*Family
		indi     *Individual
		fam      *Family
		events   map[string][]rawEvent
		event    string
		prev     = -1
		lineNo   int
	)

	finish := func() {
		if indi != nil {
			indi.Birth = bestEvent(events["BIRT"])
			indi.Death = bestEvent(events["DEAT"])
			if len(indi.Names) == 0 {
				indi.Names = []string{UnknownName}
			}
			people = append(people, indi)
		}
		if fam != nil {
			families = append(families, fam)
		}
		indi, fam, events, event = nil, nil, nil, ""
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		text := strings.TrimRight(scanner.Text(), "\r")
		if lineNo == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		l, err := parseLine(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if l.level > prev+1 {
			return nil, fmt.Errorf("line %d: level %d follows level %d: %w", lineNo, l.level, prev, ErrMalformed)
		}
		prev = l.level

		if l.level == 0 {
			finish()
			switch l.tag {
			case "INDI":
				indi = &Individual{ID: l.xref, Refs: map[string][]string{}}
				events = map[string][]rawEvent{}
			case "FAM":
				fam = &Family{ID: l.xref}
			}
			continue
		}

		switch {
		case indi != nil:
			event = readIndividualLine(indi, events, event, l)
		case fam != nil:
			readFamilyLine(fam, l)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading tree: %w", err)
	}
	finish()

	if len(people) == 0 {
		return nil, fmt.Errorf("no individuals: %w", ErrMalformed)
	}

	log.Debugf("read tree: path=%s individuals=%d families=%d", path, len(people), len(families))
	return NewTree(path, people, families), nil
}

func parseLine(text string) (line, error) {
	m := lineRegex.FindStringSubmatch(text)
	if m == nil {
		return line{}, fmt.Errorf("not a gedcom line %q: %w", text, ErrMalformed)
	}
	level, err := strconv.Atoi(m[1])
	if err != nil {
		return line{}, fmt.Errorf("bad level %q: %w", m[1], ErrMalformed)
	}
	return line{
		level: level,
		xref:  m[2],
		tag:   strings.ToUpper(m[3]),
		value: strings.TrimSpace(m[4]),
	}, nil
}

// readIndividualLine folds one line into indi and returns the life event the
// following level 2 lines belong to.
func readIndividualLine(indi *Individual, events map[string][]rawEvent, event string, l line) string {
	if l.level == 1 {
		switch l.tag {
		case "NAME":
			name := l.value
			if strings.Trim(name, "/ ") == "" {
				name = UnknownName
			}
			indi.Names = append(indi.Names, name)
		case "BIRT", "DEAT":
			events[l.tag] = append(events[l.tag], rawEvent{})
			return l.tag
		case "FAMC":
			// Only the first parent family is followed.
			if indi.FamilyAsChild == "" {
				indi.FamilyAsChild = l.value
			}
		case "FAMS":
			indi.FamiliesAsSpouse = append(indi.FamiliesAsSpouse, l.value)
		default:
			if refTags[l.tag] && l.value != "" {
				key := strings.ToLower(l.tag)
				indi.Refs[key] = append(indi.Refs[key], l.value)
			}
		}
		return ""
	}

	if l.level == 2 && event != "" {
		cur := &events[event][len(events[event])-1]
		switch l.tag {
		case "DATE":
			cur.date = ParseDate(l.value)
		case "PLAC":
			if l.value != "" {
				place := l.value
				cur.place = &place
			}
		}
	}
	return event
}

func readFamilyLine(fam *Family, l line) {
	if l.level != 1 {
		return
	}
	switch l.tag {
	case "WIFE":
		fam.Wife = l.value
	case "HUSB":
		fam.Husband = l.value
	case "CHIL":
		fam.Children = append(fam.Children, l.value)
	}
}

// bestEvent picks the first dated record, falling back to the first record.
func bestEvent(records []rawEvent) *Event {
	if len(records) == 0 {
		return nil
	}
	best := records[0]
	for _, r := range records {
		if r.date != nil {
			best = r
			break
		}
	}
	return &Event{Date: best.date, Place: best.place}
}
