package spritesplit

import (
	"fmt"
	"image"
	"io"

	"github.com/lucasb-eyer/go-colorful"
)

type Status int

const (
	StatusPending Status = iota
	StatusSaved
	StatusEmpty
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusSaved:
		return "saved"
	case StatusFailed:
		return "failed"
	default:
		return "pending"
	}
}

// Candidate is one row band x column band cell, padded and clamped.
type Candidate struct {
	Row, Col int
	Rect     image.Rectangle
	Name     string
}

type SpriteResult struct {
	Candidate
	Status Status
	// Path is set for saved sprites.
	Path    string
	Palette []colorful.Color
	Err     error
}

func (r SpriteResult) Width() int  { return r.Rect.Dx() }
func (r SpriteResult) Height() int { return r.Rect.Dy() }

// Report is the outcome of one Export, results in grid order.
type Report struct {
	Rows, Cols int
	Results    []SpriteResult
	// Manifest is the written manifest path, if any.
	Manifest string
}

func (r *Report) filter(s Status) []SpriteResult {
	var out []SpriteResult
	for _, res := range r.Results {
		if res.Status == s {
			out = append(out, res)
		}
	}
	return out
}

func (r *Report) Saved() []SpriteResult  { return r.filter(StatusSaved) }
func (r *Report) Empty() []SpriteResult  { return r.filter(StatusEmpty) }
func (r *Report) Failed() []SpriteResult { return r.filter(StatusFailed) }

func (r *Report) EmptyNames() []string {
	var names []string
	for _, res := range r.Empty() {
		names = append(names, res.Name)
	}
	return names
}

// Print writes the human-readable console report.
func (r *Report) Print(w io.Writer) error {
	var err error
	p := func(format string, a ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, a...)
		}
	}
	p("Detected %d rows and %d columns of sprites\n", r.Rows, r.Cols)
	for _, res := range r.Results {
		switch res.Status {
		case StatusSaved:
			p("Saved %s (%dx%d pixels)\n", res.Name, res.Width(), res.Height())
		case StatusEmpty:
			p("WARNING: Empty sprite detected for %s\n", res.Name)
		case StatusFailed:
			p("ERROR: %v\n", res.Err)
		}
	}

	p("\nSummary:\n")
	p("Successfully saved %d sprites\n", len(r.Saved()))
	if empty := r.EmptyNames(); len(empty) > 0 {
		p("Found %d empty sprites:\n", len(empty))
		for _, name := range empty {
			p("  - %s\n", name)
		}
	}
	if failed := r.Failed(); len(failed) > 0 {
		p("Failed to write %d sprites:\n", len(failed))
		for _, res := range failed {
			p("  - %s\n", res.Name)
		}
	}
	if r.Manifest != "" {
		p("Manifest written to %s\n", r.Manifest)
	}
	return err
}
