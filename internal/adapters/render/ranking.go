package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/okian/holdemdna/internal/domain/types"
	"github.com/pterm/pterm"
)

// RankingPresenter writes a leaderboard to w.
type RankingPresenter interface {
	PresentRanking(w io.Writer, entries []types.RankEntry) error
}

// NewRanking returns the leaderboard presenter for format.
func NewRanking(format string, opts ...Option) (RankingPresenter, error) {
	return resolve(format, opts)
}

// PresentRanking prints an aligned Rank/Composite/Player table.
func (TextPresenter) PresentRanking(w io.Writer, entries []types.RankEntry) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%4s  %9s  %s\n", "Rank", "Composite", "Player")
	for _, e := range entries {
		fmt.Fprintf(&b, "%4d  %9.2f  %s\n", e.Rank, e.Composite, e.Player)
	}
	return write(w, b.String())
}

// PresentRanking emits the entries as a JSON array.
func (j JSONPresenter) PresentRanking(w io.Writer, entries []types.RankEntry) error {
	if entries == nil {
		entries = []types.RankEntry{}
	}
	var (
		raw []byte
		err error
	)
	if j.Indent > 0 {
		raw, err = json.MarshalIndent(entries, "", strings.Repeat(" ", j.Indent))
	} else {
		raw, err = json.Marshal(entries)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return write(w, string(raw)+"\n")
}

// PresentRanking renders the leaderboard as a terminal table.
func (PrettyPresenter) PresentRanking(w io.Writer, entries []types.RankEntry) error {
	data := pterm.TableData{{"Rank", "Composite", "Player", "File"}}
	for _, e := range entries {
		data = append(data, []string{
			strconv.Itoa(e.Rank),
			scoreText(e.Composite),
			e.Player,
			e.Path,
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return write(w, table+"\n")
}
