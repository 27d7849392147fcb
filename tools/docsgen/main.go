// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"embed"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/staranto/gedcomdiff/internal/command"
	"github.com/staranto/gedcomdiff/internal/version"
)

//go:embed templates
var templates embed.FS

// Extras is the hand written part of the docs: examples and notes.
type Extras struct {
	Examples []Example `yaml:"examples"`
	Notes    []string  `yaml:"notes,omitempty"`
}

type Example struct {
	Command     string `yaml:"command"`
	Description string `yaml:"description"`
}

type Flag struct {
	ID          string
	Syntax      string
	Description string
	Default     string
	Env         string
}

type TemplateData struct {
	Extras
	Name        string
	Usage       string
	ArgsUsage   string
	Description string
	Flags       []Flag
	Date        string
	Version     string
	IDUpper     string
}

type Outputs struct {
	Template string
	Folder   string
	Prefix   string
	Suffix   string
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen <docs-dir>")
		os.Exit(1)
	}
	docs := os.Args[1]

	data, err := collect()
	if err != nil {
		panic(err)
	}

	types := []Outputs{
		{Template: "gedcomdiff.md.tmpl", Folder: filepath.Join(docs, "commands"), Suffix: ".md"},
		{Template: "gedcomdiff.man.tmpl", Folder: filepath.Join(docs, "man", "share", "man1"), Suffix: ".1"},
	}

	for _, t := range types {
		if err := os.MkdirAll(t.Folder, 0755); err != nil {
			panic(err)
		}

		path := filepath.Join(t.Folder, t.Prefix+data.Name+t.Suffix)
		fmt.Println("Generating", path)
		file, err := os.Create(path)
		if err != nil {
			panic(err)
		}
		if err := render(file, t.Template, data); err != nil {
			panic(err)
		}
		file.Close()
	}
}

// collect reads the flags off the live command so the docs cannot drift from
// the binary.
func collect() (TemplateData, error) {
	app, err := command.InitApp(context.Background(), []string{"gedcomdiff"})
	if err != nil {
		return TemplateData{}, err
	}

	raw, err := templates.ReadFile("templates/gedcomdiff.yaml")
	if err != nil {
		return TemplateData{}, err
	}
	var extras Extras
	if err := yaml.Unmarshal(raw, &extras); err != nil {
		return TemplateData{}, err
	}

	return TemplateData{
		Extras:      extras,
		Name:        app.Name,
		Usage:       app.Usage,
		ArgsUsage:   app.ArgsUsage,
		Description: app.Description,
		Flags:       flags(app.Flags),
		Date:        time.Now().Format("January 2, 2006"),
		Version:     getVersion(),
		IDUpper:     strings.ToUpper(app.Name),
	}, nil
}

func flags(in []cli.Flag) []Flag {
	out := make([]Flag, 0, len(in))
	for _, f := range in {
		names := f.Names()
		syntax := "--" + names[0]
		for _, alias := range names[1:] {
			syntax += ", -" + alias
		}
		flag := Flag{ID: names[0], Syntax: syntax}
		if d, ok := f.(cli.DocGenerationFlag); ok {
			flag.Description = d.GetUsage()
			flag.Default = d.GetDefaultText()
			flag.Env = strings.Join(d.GetEnvVars(), ", ")
		}
		out = append(out, flag)
	}
	return out
}

func render(w io.Writer, name string, data TemplateData) error {
	tmpl, err := template.ParseFS(templates, "templates/"+name)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, data)
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to the build version if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return version.Version
	}

	v := strings.TrimSpace(string(out))
	return strings.TrimPrefix(v, "v")
}
