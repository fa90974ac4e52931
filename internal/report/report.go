// Package report renders records, statistics and insights as text, JSON or
// YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nibzard/todoboard/internal/store"
	"github.com/nibzard/todoboard/internal/todo"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ShortIDLen is the number of id characters shown in text output.
const ShortIDLen = 8

// ParseFormat parses a format name. An empty name is text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid format %q, must be one of: text, json, yaml", s)
	}
}

// ShortID abbreviates an id for display. Any unique prefix is accepted back
// as a reference.
func ShortID(id string) string {
	if len(id) <= ShortIDLen {
		return id
	}
	return id[:ShortIDLen]
}

func encode(w io.Writer, f Format, v any) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("format %q is not structured", f)
	}
}

// WriteStats writes the store summary.
func WriteStats(w io.Writer, st store.Stats, f Format) error {
	if f != FormatText {
		return encode(w, f, st)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Total:\t%d\n", st.Total)
	fmt.Fprintf(tw, "Completed:\t%d\n", st.Completed)
	fmt.Fprintf(tw, "Pending:\t%d\n", st.Pending)
	fmt.Fprintf(tw, "Overdue:\t%d\n", st.Overdue)
	fmt.Fprintf(tw, "Due today:\t%d\n", st.DueToday)
	fmt.Fprintf(tw, "Completion rate:\t%.1f%%\n", st.CompletionRate)
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "By category:")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, cs := range st.Categories {
		fmt.Fprintf(tw, "  %s\t%d total\t%d done\t%.1f%%\n", cs.Category, cs.Total, cs.Completed, cs.CompletionRate)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "By priority:")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, ps := range st.Priorities {
		fmt.Fprintf(tw, "  %s\t%d total\t%d done\t%d pending\n", ps.Priority, ps.Total, ps.Completed, ps.Pending)
	}
	return tw.Flush()
}

// WriteInsights writes productivity insights.
func WriteInsights(w io.Writer, in store.Insights, f Format) error {
	if f != FormatText {
		if in.WeeklyCompletions == nil {
			in.WeeklyCompletions = map[string]int{}
		}
		return encode(w, f, in)
	}

	if in.Empty() {
		_, err := fmt.Fprintln(w, "No insights yet.")
		return err
	}
	fmt.Fprintf(w, "Average completion time: %.1fh\n", in.AvgCompletionTimeHours)
	fmt.Fprintf(w, "Most productive category: %s\n", in.MostProductiveCategory)
	weeks := in.Weeks()
	if len(weeks) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Completions per week:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, week := range weeks {
		fmt.Fprintf(tw, "  %s\t%d\n", week, in.WeeklyCompletions[week])
	}
	return tw.Flush()
}

// WriteTemplates lists quick-add templates.
func WriteTemplates(w io.Writer, tpls []store.Template, f Format) error {
	if f != FormatText {
		if tpls == nil {
			tpls = []store.Template{}
		}
		return encode(w, f, tpls)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, tpl := range tpls {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", tpl.Name, tpl.Title, tpl.Category, tpl.Priority)
	}
	return tw.Flush()
}

// dueLabel describes a deadline relative to now.
func dueLabel(it *todo.Item, now time.Time) string {
	if it.DueDate == nil {
		return ""
	}
	due := it.DueDate.In(now.Location())
	layout := "2006-01-02 15:04"
	if due.Hour() == 0 && due.Minute() == 0 {
		layout = "2006-01-02"
	}
	label := "due " + due.Format(layout)
	switch {
	case it.Completed:
	case it.IsOverdue(now):
		label += " (overdue)"
	case it.DueOn(now):
		label += " (today)"
	default:
		days := calendarDays(now, due)
		label += fmt.Sprintf(" (in %d %s)", days, plural(days, "day", "days"))
	}
	return label
}

// calendarDays counts the midnights between from and to, both taken in
// from's location.
func calendarDays(from, to time.Time) int {
	y, m, d := from.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, from.Location())
	y, m, d = to.In(from.Location()).Date()
	end := time.Date(y, m, d, 0, 0, 0, 0, from.Location())
	return int(math.Round(end.Sub(start).Hours() / 24))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
