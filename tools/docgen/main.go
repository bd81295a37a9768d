// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	md2man "github.com/cpuguy83/go-md2man/v2/md2man"
	"github.com/urfave/cli/v3"

	"github.com/staranto/mimemap/internal/command"
)

// docgen renders command reference pages from the CLI command tree. Names,
// synopsis and options come from the commands themselves; docs/commands/<cmd>.md
// only adds prose and an Examples block. For every command it writes
//   - docs/reference/mimemap-<cmd>.md
//   - docs/man/share/man1/mimemap-<cmd>.1
//   - docs/tldr/mimemap-<cmd>.md

const (
	prog     = "mimemap"
	homepage = "https://github.com/staranto/mimemap"
)

func main() {
	root := flag.String("root", ".", "repo root")
	onlyIfChanged := flag.Bool("only-if-changed", true, "only write files whose content changed")
	flag.Parse()

	app, err := command.InitApp(context.Background(), []string{prog})
	if err != nil {
		fatalf("building command tree: %v", err)
	}

	pages, err := commandPages(app, filepath.Join(*root, "docs", "commands"))
	if err != nil {
		fatalf("%v", err)
	}

	outputs := []struct {
		dir    string
		name   string
		render func(page) []byte
	}{
		{filepath.Join(*root, "docs", "reference"), "%s-%s.md", page.Markdown},
		{filepath.Join(*root, "docs", "man", "share", "man1"), "%s-%s.1", page.Man},
		{filepath.Join(*root, "docs", "tldr"), "%s-%s.md", page.TLDR},
	}
	for _, o := range outputs {
		if err := os.MkdirAll(o.dir, 0o755); err != nil {
			fatalf("creating %s: %v", o.dir, err)
		}
		for _, p := range pages {
			path := filepath.Join(o.dir, fmt.Sprintf(o.name, prog, p.Name))
			if err := writeFileIfChanged(path, o.render(p), *onlyIfChanged); err != nil {
				fatalf("writing %s: %v", path, err)
			}
		}
	}
}

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}

type flagDoc struct {
	Names []string
	Value bool
	Usage string
	Env   []string
}

// Spelling returns the flag as typed on the command line, e.g. "-o, --output VALUE".
func (f flagDoc) Spelling() string {
	var names []string
	for _, n := range f.Names {
		if len(n) == 1 {
			names = append(names, "-"+n)
		} else {
			names = append(names, "--"+n)
		}
	}
	s := strings.Join(names, ", ")
	if f.Value {
		s += " VALUE"
	}
	return s
}

type example struct {
	Desc string
	Cmd  string
}

type page struct {
	Name        string
	Short       string
	Synopsis    string
	Description string
	Options     []flagDoc
	Global      []flagDoc
	Examples    []example
}

// commandPages builds a page for every visible subcommand of app, merging in
// the notes file of the same name when there is one.
func commandPages(app *cli.Command, notesDir string) ([]page, error) {
	global := map[string]bool{}
	for _, f := range command.NewGlobalFlags() {
		global[f.Names()[0]] = true
	}

	var pages []page
	for _, cmd := range app.Commands {
		if cmd.Hidden {
			continue
		}

		p := page{
			Name:     cmd.Name,
			Short:    cmd.Usage,
			Synopsis: cmd.UsageText,
		}
		if p.Synopsis == "" {
			p.Synopsis = prog + " " + cmd.Name + " [options]"
		}

		for _, f := range cmd.Flags {
			d := describeFlag(f)
			if global[d.Names[0]] {
				p.Global = append(p.Global, d)
			} else {
				p.Options = append(p.Options, d)
			}
		}

		notes, err := os.ReadFile(filepath.Join(notesDir, cmd.Name+".md"))
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading notes for %s: %w", cmd.Name, err)
		default:
			p.Description, p.Examples = parseNotes(string(notes))
		}

		pages = append(pages, p)
	}

	if len(pages) == 0 {
		return nil, errors.New("no commands to document")
	}
	return pages, nil
}

func describeFlag(f cli.Flag) flagDoc {
	d := flagDoc{Names: f.Names()}
	if u, ok := f.(interface{ GetUsage() string }); ok {
		d.Usage = u.GetUsage()
	}
	if v, ok := f.(interface{ TakesValue() bool }); ok {
		d.Value = v.TakesValue()
	}
	if e, ok := f.(interface{ GetEnvVars() []string }); ok {
		d.Env = e.GetEnvVars()
	}
	return d
}

// parseNotes splits a notes file into its prose and the commands of its
// Examples section. The title line is dropped. Inside the Examples code block
// a "# ..." line describes the command that follows it.
func parseNotes(md string) (string, []example) {
	var (
		desc                strings.Builder
		examples            []example
		inExamples, inFence bool
		pending             string
	)

	sc := bufio.NewScanner(strings.NewReader(md))
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "# ") && !inFence:
			continue
		case strings.HasPrefix(line, "## ") && !inFence:
			inExamples = strings.EqualFold(strings.TrimSpace(line[3:]), "examples")
			if !inExamples {
				desc.WriteString(line + "\n")
			}
			continue
		}

		if !inExamples {
			desc.WriteString(line + "\n")
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "```"):
			inFence = !inFence
		case !inFence || trimmed == "":
		case strings.HasPrefix(trimmed, "#"):
			pending = strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		default:
			if pending == "" {
				pending = "Example"
			}
			examples = append(examples, example{Desc: pending, Cmd: strings.Join(strings.Fields(trimmed), " ")})
			pending = ""
		}
	}

	return strings.TrimSpace(desc.String()), examples
}

// Markdown is the full reference page.
func (p page) Markdown() []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "# %s %s\n\n%s\n\n", prog, p.Name, capitalize(p.Short))
	fmt.Fprintf(&b, "## Synopsis\n\n`%s`\n\n", p.Synopsis)
	if p.Description != "" {
		b.WriteString(p.Description + "\n\n")
	}

	writeFlags(&b, "Options", p.Options)
	writeFlags(&b, "Global options", p.Global)

	var env []string
	for _, f := range slices.Concat(p.Options, p.Global) {
		for _, e := range f.Env {
			env = append(env, fmt.Sprintf("`%s`\n: sets `--%s`\n", e, f.Names[0]))
		}
	}
	if len(env) > 0 {
		b.WriteString("## Environment\n\n" + strings.Join(env, "\n") + "\n")
	}

	if len(p.Examples) > 0 {
		b.WriteString("## Examples\n\n")
		for _, ex := range p.Examples {
			fmt.Fprintf(&b, "%s:\n\n    %s\n\n", ex.Desc, ex.Cmd)
		}
	}

	fmt.Fprintf(&b, "## See also\n\n%s\n", homepage)
	return b.Bytes()
}

func writeFlags(b *bytes.Buffer, title string, flags []flagDoc) {
	if len(flags) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	for _, f := range flags {
		fmt.Fprintf(b, "`%s`\n: %s\n\n", f.Spelling(), f.Usage)
	}
}

// Man renders the reference page as a man page.
func (p page) Man() []byte {
	return md2man.Render(p.Markdown())
}

// TLDR renders a tldr-pages style summary.
func (p page) TLDR() []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "# %s-%s\n\n", prog, p.Name)
	fmt.Fprintf(&b, "> %s.\n> More information: %s.\n\n", capitalize(p.Short), homepage)

	examples := p.Examples
	if len(examples) == 0 {
		examples = []example{{Desc: "Show help for the command", Cmd: prog + " " + p.Name + " --help"}}
	}
	for i, ex := range examples {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s:\n\n`%s`\n", ex.Desc, ex.Cmd)
	}
	return b.Bytes()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func writeFileIfChanged(path string, data []byte, onlyIfChanged bool) error {
	if onlyIfChanged {
		old, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if err == nil && bytes.Equal(bytes.TrimSpace(old), bytes.TrimSpace(data)) {
			return nil
		}
	}
	return os.WriteFile(path, data, 0o644)
}
