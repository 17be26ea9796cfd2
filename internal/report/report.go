package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/sillypears/rivals2-log-parser/internal/correlate"
	"github.com/sillypears/rivals2-log-parser/internal/model"
)

const dateLayout = "2006-01-02 15:04:05"

// PrintRunSummary prints the one-line outcome of a parse run: how many new
// matches were found and their compact elo summaries.
func PrintRunSummary(w io.Writer, records []model.MatchRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No new matches found.")
		return
	}
	parts := make([]string, 0, len(records))
	for _, r := range records {
		parts = append(parts, r.Summary())
	}
	fmt.Fprintf(w, "Added %d match(es): %s\n", len(records), strings.Join(parts, ", "))
}

// PrintMatchTable writes a table of match records to the provided writer.
func PrintMatchTable(w io.Writer, records []model.MatchRecord) {
	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))

	table.Header("GAME#", "DATE", "W/L", "ELO", "CHANGE", "OPP_ELO", "STREAK", "WINS", "DURATIONS")

	for _, r := range records {
		outcome := "L"
		if r.Win() {
			outcome = "W"
		}

		opp := "—"
		if r.OpponentElo > 0 {
			opp = strconv.Itoa(r.OpponentElo)
		} else if r.OpponentEstimatedElo > 0 {
			opp = fmt.Sprintf("~%d", r.OpponentEstimatedElo)
		}

		date := "—"
		if !r.MatchDate.IsZero() {
			date = r.MatchDate.Format(dateLayout)
		}

		table.Append(
			strconv.Itoa(r.RankedGameNumber),
			date,
			outcome,
			strconv.Itoa(r.EloRankNew),
			fmt.Sprintf("%+d", r.EloChange),
			opp,
			strconv.Itoa(r.WinStreakValue),
			strconv.Itoa(r.TotalWins),
			formatDurations(r.Durations),
		)
	}
	table.Render()
}

// PrintDurationTable writes the per-match duration correlation, ordered by
// game number ascending.
func PrintDurationTable(w io.Writer, matches map[int]correlate.Ratings) {
	numbers := make([]int, 0, len(matches))
	for n := range matches {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))

	table.Header("GAME#", "ELO", "CHANGE", "GAMES", "DURATIONS")

	for _, n := range numbers {
		m := matches[n]
		table.Append(
			strconv.Itoa(n),
			strconv.Itoa(m.NewElo),
			fmt.Sprintf("%+d", m.Delta),
			strconv.Itoa(len(m.Durations)),
			formatDurations(m.Durations),
		)
	}
	table.Render()
}

func formatDurations(ds []int) string {
	if len(ds) == 0 {
		return "—"
	}
	parts := make([]string, 0, len(ds))
	for _, d := range ds {
		parts = append(parts, fmt.Sprintf("%ds", d))
	}
	return strings.Join(parts, " ")
}
