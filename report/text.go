// Package report renders a differ.DiffResult for people and programs:
// a sectioned text report, JSON and YAML exports, and a short fingerprint
// identifying a result.
package report

import (
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/erraggy/apidiff/differ"
	"github.com/erraggy/apidiff/internal/cliutil"
)

const lineWidth = 80

// TextOptions controls the text report.
type TextOptions struct {
	// Emoji prefixes section headings with emoji markers
	Emoji bool
	// OldLabel and NewLabel name the compared documents in the header,
	// typically their file paths
	OldLabel string
	NewLabel string
}

var upper = cases.Upper(language.Und)

type textWriter struct {
	p    *cliutil.Printer
	opts TextOptions
}

// Text writes a human-readable report of result to w. The sections follow
// the result: new, removed and modified endpoints, a summary, then schema,
// tag and server changes when those comparisons were enabled.
func Text(w io.Writer, result *differ.DiffResult, opts TextOptions) error {
	tw := &textWriter{p: cliutil.NewPrinter(w), opts: opts}

	tw.rule("=")
	tw.p.Printf("%s\n", tw.heading("📊", "API comparison report"))
	tw.rule("=")
	if opts.OldLabel != "" || opts.NewLabel != "" {
		tw.p.Printf("  Old: %s\n", opts.OldLabel)
		tw.p.Printf("  New: %s\n", opts.NewLabel)
	}
	tw.p.Println()

	tw.pathSection("✅", "New endpoints", result.PathsAdded, true)
	tw.pathSection("❌", "Removed endpoints", result.PathsRemoved, false)
	tw.modifiedSection(result.Modified)
	tw.summarySection(result.Stats)

	if !result.Schemas.IsEmpty() {
		tw.deltaSection("📦", "Schema changes", "schemas", result.Schemas)
	}
	if !result.Tags.IsEmpty() {
		tw.deltaSection("🏷️", "Tag changes", "tags", result.Tags)
	}
	if result.Servers != nil && result.Servers.Changed {
		tw.serverSection(result.Servers)
	}

	return tw.p.Err()
}

func (tw *textWriter) heading(marker, title string) string {
	title = upper.String(title)
	if tw.opts.Emoji {
		return marker + " " + title
	}
	return title
}

func (tw *textWriter) rule(ch string) {
	tw.p.Printf("%s\n", strings.Repeat(ch, lineWidth))
}

func (tw *textWriter) pathSection(marker, title string, paths []differ.PathSummary, withTags bool) {
	if len(paths) == 0 {
		tw.p.Printf("%s: None\n\n", tw.heading(marker, title))
		return
	}
	tw.p.Printf("%s:\n", tw.heading(marker, title))
	tw.rule("-")
	for _, ps := range paths {
		if len(ps.Operations) == 0 {
			tw.p.Printf("  %-6s %s\n\n", "", ps.Path)
			continue
		}
		for _, op := range ps.Operations {
			tw.p.Printf("  %-6s %s\n", upper.String(op.Method), ps.Path)
			if withTags && len(op.Tags) > 0 {
				tw.p.Printf("         Tag: %s\n", op.Tags[0])
			}
			if op.Summary != "" {
				tw.p.Printf("         Summary: %s\n", op.Summary)
			}
			tw.p.Println()
		}
	}
}

func (tw *textWriter) modifiedSection(modified []differ.EndpointChange) {
	tw.p.Printf("%s:\n", tw.heading("🔄", "Modified endpoints"))
	tw.rule("-")
	if len(modified) == 0 {
		tw.p.Printf("  No modifications detected\n\n")
		return
	}
	for _, ep := range modified {
		for _, m := range ep.MethodsAdded {
			tw.p.Printf("  %-6s %s\n", upper.String(m), ep.Path)
			tw.p.Printf("         - Added method\n\n")
		}
		for _, m := range ep.MethodsRemoved {
			tw.p.Printf("  %-6s %s\n", upper.String(m), ep.Path)
			tw.p.Printf("         - Removed method\n\n")
		}
		for _, op := range ep.Operations {
			tw.p.Printf("  %-6s %s\n", upper.String(op.Method), ep.Path)
			for _, rec := range op.Records {
				tw.p.Printf("         - %s\n", describe(rec))
			}
			tw.p.Println()
		}
	}
}

func (tw *textWriter) summarySection(s differ.Stats) {
	tw.rule("=")
	tw.p.Printf("%s:\n", tw.heading("📈", "Summary"))
	tw.rule("=")
	tw.p.Printf("  Total endpoints in OLD document: %d\n", s.OldPaths)
	tw.p.Printf("  Total endpoints in NEW document: %d\n", s.NewPaths)
	tw.p.Printf("  Added: %d\n", s.Added)
	tw.p.Printf("  Removed: %d\n", s.Removed)
	tw.p.Printf("  Modified: %d\n", s.Modified)
	tw.p.Printf("  Unchanged: %d\n", s.Unchanged)
	tw.p.Println()
}

func (tw *textWriter) deltaSection(marker, title, noun string, delta *differ.KeyDelta) {
	tw.rule("=")
	tw.p.Printf("%s:\n", tw.heading(marker, title))
	tw.rule("=")
	if len(delta.Added) > 0 {
		tw.p.Printf("  Added %s: %s\n", noun, strings.Join(delta.Added, ", "))
	}
	if len(delta.Removed) > 0 {
		tw.p.Printf("  Removed %s: %s\n", noun, strings.Join(delta.Removed, ", "))
	}
	tw.p.Println()
}

func (tw *textWriter) serverSection(servers *differ.ServerDelta) {
	tw.rule("=")
	tw.p.Printf("%s:\n", tw.heading("🌐", "Servers"))
	tw.rule("=")
	tw.p.Printf("  Old:\n")
	for _, s := range servers.Old {
		tw.p.Printf("    %s\n", serverLine(s.URL, s.Description))
	}
	tw.p.Printf("  New:\n")
	for _, s := range servers.New {
		tw.p.Printf("    %s\n", serverLine(s.URL, s.Description))
	}
	tw.p.Println()
}

func serverLine(url, description string) string {
	if description == "" {
		return url
	}
	return url + " (" + description + ")"
}

// describe renders one change record as a short phrase.
func describe(rec differ.ChangeRecord) string {
	switch rec.Kind {
	case differ.KindSummaryChanged:
		return "Summary: '" + rec.Old + "' → '" + rec.New + "'"
	case differ.KindParameterAdded:
		return "Added param: " + rec.Detail
	case differ.KindParameterRemoved:
		return "Removed param: " + rec.Detail
	case differ.KindParameterChanged:
		return "Changed param: " + rec.Detail + " (" + strings.Join(rec.Fields, ", ") + ")"
	case differ.KindRequestBodyAdded:
		return "Added request body"
	case differ.KindRequestBodyRemoved:
		return "Removed request body"
	case differ.KindTagAdded:
		return "Added tag: " + rec.Detail
	case differ.KindTagRemoved:
		return "Removed tag: " + rec.Detail
	case differ.KindResponseAdded:
		return "Added response: " + rec.Detail
	case differ.KindResponseRemoved:
		return "Removed response: " + rec.Detail
	default:
		return string(rec.Kind) + " " + rec.Detail
	}
}
