package seedrand

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/sjson"

	"github.com/louisbranch/seedrand/internal/core/check"
	"github.com/louisbranch/seedrand/internal/core/dice"
	"github.com/louisbranch/seedrand/internal/storage"
)

// printer renders results as text lines or JSON lines.
type printer struct {
	out    io.Writer
	format string
}

func newPrinter(out io.Writer, format string) *printer {
	return &printer{out: out, format: format}
}

type jsonRoll struct {
	Sides   int   `json:"sides"`
	Results []int `json:"results"`
	Total   int   `json:"total"`
}

func (p *printer) value(index int, position uint64, v float64) error {
	if p.format != FormatJSON {
		return p.line(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return p.object(
		field{"index", index},
		field{"position", position},
		field{"value", v},
	)
}

func (p *printer) word(index int, w uint32) error {
	if p.format != FormatJSON {
		return p.line(strconv.FormatUint(uint64(w), 10))
	}
	return p.object(
		field{"index", index},
		field{"word", w},
	)
}

func (p *printer) roll(index int, notation dice.Notation, result dice.Result, res *check.Result) error {
	if p.format != FormatJSON {
		return p.line(formatRoll(notation, result, res))
	}

	rolls := make([]jsonRoll, 0, len(result.Rolls))
	for _, r := range result.Rolls {
		rolls = append(rolls, jsonRoll{Sides: r.Sides, Results: r.Results, Total: r.Total})
	}
	fields := []field{
		{"index", index},
		{"notation", notation.String()},
		{"rolls", rolls},
		{"modifier", result.Modifier},
		{"total", result.Total},
	}
	if res != nil {
		fields = append(fields,
			field{"check.difficulty", res.Difficulty},
			field{"check.outcome", res.Outcome.String()},
			field{"check.success", res.Success},
			field{"check.margin", res.Margin},
		)
	}
	return p.object(fields...)
}

func (p *printer) checkpoint(c storage.Checkpoint) error {
	if p.format != FormatJSON {
		return p.line(fmt.Sprintf("%s\t%d\t%q", c.ID, c.Position, c.Seed))
	}
	return p.object(
		field{"id", c.ID},
		field{"seed", c.Seed},
		field{"position", c.Position},
		field{"updated_at", c.UpdatedAt.UTC().Format(time.RFC3339Nano)},
	)
}

func formatRoll(notation dice.Notation, result dice.Result, res *check.Result) string {
	var b strings.Builder
	b.WriteString(notation.String())
	b.WriteString(":")
	for _, r := range result.Rolls {
		faces := make([]string, len(r.Results))
		for i, f := range r.Results {
			faces[i] = strconv.Itoa(f)
		}
		fmt.Fprintf(&b, " [%s]", strings.Join(faces, " "))
	}
	switch {
	case result.Modifier > 0:
		fmt.Fprintf(&b, " +%d", result.Modifier)
	case result.Modifier < 0:
		fmt.Fprintf(&b, " %d", result.Modifier)
	}
	fmt.Fprintf(&b, " = %d", result.Total)
	if res != nil {
		fmt.Fprintf(&b, " vs %d: %s (margin %+d)", res.Difficulty, res.Outcome, res.Margin)
	}
	return b.String()
}

type field struct {
	path  string
	value any
}

func (p *printer) object(fields ...field) error {
	doc := "{}"
	for _, f := range fields {
		var err error
		doc, err = sjson.Set(doc, f.path, f.value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", f.path, err)
		}
	}
	return p.line(doc)
}

func (p *printer) line(s string) error {
	if _, err := fmt.Fprintln(p.out, s); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
