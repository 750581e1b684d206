// Package render presents analysed reports as text, JSON or a styled box.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/okian/holdemdna/internal/domain/types"
	"github.com/pterm/pterm"
)

// Format names accepted by New.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatPretty = "pretty"
)

const (
	ruleWidth       = 40
	defaultIndent   = 2
	goodScoreCutoff = 60
)

// Presenter writes a report for the named player to w.
type Presenter interface {
	Present(w io.Writer, name string, payload types.ReportPayload) error
}

// Option configures presenters built by New.
type Option func(*options)

type options struct {
	indent int
}

// WithIndent sets the JSON indent width. Zero produces compact JSON.
func WithIndent(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.indent = n
		}
	}
}

// New returns the presenter for format.
func New(format string, opts ...Option) (Presenter, error) {
	return resolve(format, opts)
}

type presenter interface {
	Presenter
	RankingPresenter
}

func resolve(format string, opts []Option) (presenter, error) {
	o := options{indent: defaultIndent}
	for _, opt := range opts {
		opt(&o)
	}
	switch format {
	case FormatText:
		return TextPresenter{}, nil
	case FormatJSON:
		return JSONPresenter{Indent: o.indent}, nil
	case FormatPretty:
		return PrettyPresenter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// TextPresenter prints the fixed-format report block.
type TextPresenter struct{}

// Present implements Presenter.
func (TextPresenter) Present(w io.Writer, name string, p types.ReportPayload) error {
	var b strings.Builder
	fmt.Fprintf(&b, "HoldemDNA Report :: %s\n", name)
	b.WriteString(strings.Repeat("-", ruleWidth) + "\n")
	fmt.Fprintf(&b, "Strategy Score : %.1f\n", p.StrategyScore)
	fmt.Fprintf(&b, "Psychology Score: %.1f\n", p.PsychologyScore)
	fmt.Fprintf(&b, "Mental Score   : %.1f\n", p.MentalScore)
	fmt.Fprintf(&b, "Composite Index: %.1f\n", p.Composite)
	b.WriteString("\nRecommendations:\n")
	for i, rec := range p.Recommendations {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, rec)
	}
	return write(w, b.String())
}

// JSONPresenter serializes the payload. The player name is not part of it.
type JSONPresenter struct {
	Indent int
}

// Present implements Presenter.
func (j JSONPresenter) Present(w io.Writer, _ string, p types.ReportPayload) error {
	var (
		raw []byte
		err error
	)
	if j.Indent > 0 {
		raw, err = json.MarshalIndent(p, "", strings.Repeat(" ", j.Indent))
	} else {
		raw, err = json.Marshal(p)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return write(w, string(raw)+"\n")
}

// PrettyPresenter draws the report inside a terminal box.
type PrettyPresenter struct{}

// Present implements Presenter.
func (PrettyPresenter) Present(w io.Writer, name string, p types.ReportPayload) error {
	var b strings.Builder
	rows := []struct {
		label string
		value float64
	}{
		{"Strategy", p.StrategyScore},
		{"Psychology", p.PsychologyScore},
		{"Mental", p.MentalScore},
		{"Composite", p.Composite},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "%-11s %s\n", r.label, scoreText(r.value))
	}
	b.WriteString("\n")
	for i, rec := range p.Recommendations {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
	}

	box := pterm.DefaultBox.
		WithTitle(pterm.LightCyan(name)).
		WithTitleTopCenter().
		WithLeftPadding(2).
		WithRightPadding(2).
		Sprint(strings.TrimRight(b.String(), "\n"))
	return write(w, box+"\n")
}

func scoreText(v float64) string {
	s := fmt.Sprintf("%5.1f", v)
	if v < goodScoreCutoff {
		return pterm.LightRed(s)
	}
	return pterm.LightGreen(s)
}

func write(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}
