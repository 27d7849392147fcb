// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/staranto/gedcomdiff/internal/gedcom"
	"github.com/staranto/gedcomdiff/internal/match"
)

// Formats lists the accepted output formats.
var Formats = []string{"text", "json", "yaml"}

// Kind classifies a reported difference.
type Kind string

const (
	KindName     Kind = "name"
	KindDate     Kind = "date"
	KindPlace    Kind = "place"
	KindParent   Kind = "parent"
	KindPartner  Kind = "partner"
	KindChildren Kind = "children"
	KindChild    Kind = "child"
)

// Entry is one reported difference, attributed to a person of the first tree.
type Entry struct {
	Person  string `json:"person" yaml:"person"`
	Header  string `json:"header" yaml:"header"`
	Kind    Kind   `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`
}

// document is the json and yaml rendering of a whole run.
type document struct {
	Start    []string `json:"start" yaml:"start"`
	Compared int      `json:"compared" yaml:"compared"`
	Entries  []Entry  `json:"entries" yaml:"entries"`
}

// Reporter writes differences in traversal order. Text output is written as
// it happens; json and yaml are collected and written by Close.
type Reporter struct {
	w      io.Writer
	format string
	header lipgloss.Style
	color  bool

	shown map[string]bool
	doc   document
}

// New returns a Reporter writing format to w (stdout when nil).
func New(w io.Writer, format string, color bool) (*Reporter, error) {
	if w == nil {
		w = os.Stdout
	}
	valid := false
	for _, f := range Formats {
		if f == format {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("output must be one of %v", Formats)
	}
	return &Reporter{
		w:      w,
		format: format,
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		color:  color,
		shown:  map[string]bool{},
		doc:    document{Entries: []Entry{}},
	}, nil
}

// Summary returns "<name> (<birth year>-<death year>)".
func Summary(p *gedcom.Individual) string {
	year := func(e *gedcom.Event) string {
		if e == nil || e.Date == nil {
			return ""
		}
		return strconv.Itoa(e.Date.Year)
	}
	if p == nil {
		return "unknown ()"
	}
	return fmt.Sprintf("%s (%s-%s)", match.DisplayName(p.Name()), year(p.Birth), year(p.Death))
}

// StartingPoints records the two resolved start people.
func (r *Reporter) StartingPoints(p1, p2 *gedcom.Individual) {
	r.doc.Start = []string{Summary(p1), Summary(p2)}
	if r.format == "text" {
		fmt.Fprintln(r.w, "Starting points")
		fmt.Fprintf(r.w, "1 = %s\n", r.doc.Start[0])
		fmt.Fprintf(r.w, "2 = %s\n", r.doc.Start[1])
	}
}

// Header introduces the differences of p. It is written at most once per
// person per run.
func (r *Reporter) Header(p *gedcom.Individual) {
	if p == nil || r.shown[p.ID] {
		return
	}
	r.shown[p.ID] = true
	if r.format != "text" {
		return
	}
	line := Summary(p)
	if r.color {
		line = r.header.Render(line)
	}
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, line)
}

// Shown reports whether the header of p has been written.
func (r *Reporter) Shown(p *gedcom.Individual) bool {
	return p != nil && r.shown[p.ID]
}

func (r *Reporter) emit(p *gedcom.Individual, kind Kind, format string, args ...any) {
	r.Header(p)
	msg := fmt.Sprintf(format, args...)
	if r.format == "text" {
		fmt.Fprintln(r.w, msg)
		return
	}
	id := ""
	if p != nil {
		id = p.ID
	}
	r.doc.Entries = append(r.doc.Entries, Entry{
		Person:  id,
		Header:  Summary(p),
		Kind:    kind,
		Message: msg,
	})
}

// Entries returns the collected entries of a json or yaml run.
func (r *Reporter) Entries() []Entry {
	return r.doc.Entries
}

// Close finishes the report. For text a summary line is appended; json and
// yaml documents are written in full.
func (r *Reporter) Close(compared int) error {
	r.doc.Compared = compared
	switch r.format {
	case "json":
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r.doc); err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
	case "yaml":
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(r.doc); err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		return enc.Close()
	default:
		fmt.Fprintf(r.w, "\n%s people compared, %s with differences\n",
			humanize.Comma(int64(compared)), humanize.Comma(int64(len(r.shown))))
	}
	return nil
}
