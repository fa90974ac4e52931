package cmd

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/nibzard/todoboard/internal/report"
	"github.com/nibzard/todoboard/internal/store"
	"github.com/nibzard/todoboard/internal/todo"
	"github.com/nibzard/todoboard/internal/utils"
)

// addCommand creates a task from flags or a template.
func (a *app) addCommand(args []string) error {
	fs := a.newFlagSet("add")
	desc := fs.String("desc", "", "Description")
	priority := fs.String("priority", "", "Priority (High, Medium, Low)")
	category := fs.String("category", "", "Category")
	tags := fs.String("tags", "", "Comma-separated tags")
	due := fs.String("due", "", "Deadline")
	estimate := fs.Float64("estimate", 0, "Estimated hours")
	template := fs.String("template", "", "Quick-add template name")

	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	title := strings.TrimSpace(strings.Join(positional, " "))
	if title == "" && *template == "" {
		return fmt.Errorf("add requires a title or -template")
	}

	var opts []todo.Option
	if *desc != "" {
		opts = append(opts, todo.WithDescription(*desc))
	}
	if *priority != "" {
		p, err := todo.ParsePriority(*priority)
		if err != nil {
			return err
		}
		opts = append(opts, todo.WithPriority(p))
	}
	if *category != "" {
		opts = append(opts, todo.WithCategory(*category))
	}
	if *tags != "" {
		opts = append(opts, todo.WithTags(utils.SplitAndTrim(*tags, ",")...))
	}
	if *due != "" {
		t, err := parseDate(*due)
		if err != nil {
			return err
		}
		opts = append(opts, todo.WithDueDate(t))
	}
	if flagVisited(fs, "estimate") {
		if err := checkHours(*estimate); err != nil {
			return fmt.Errorf("estimate %w", err)
		}
		opts = append(opts, todo.WithEstimate(*estimate))
	}

	s, err := a.openStore()
	if err != nil {
		return err
	}
	now := clock()

	var item *todo.Item
	if *template != "" {
		item, err = s.AddFromTemplate(*template, now, opts...)
		if err != nil {
			return err
		}
		if title != "" {
			item.Title = title
		}
	} else {
		item = todo.New(title, now, opts...)
		s.Add(item)
	}
	if !slices.Contains(s.Categories(), item.Category) {
		a.logger.Warn("category is not in the configured list", "category", item.Category)
	}

	if err := a.saveStore(s); err != nil {
		return err
	}
	a.logger.Info("task added", "id", item.ID, "title", item.Title)
	fmt.Fprintf(a.stdout, "📝 Added [%s] %s\n", report.ShortID(item.ID), item.Title)
	return nil
}

// lsCommand lists tasks in a view, optionally narrowed by priority and category.
func (a *app) lsCommand(args []string) error {
	fs := a.newFlagSet("ls")
	viewName := fs.String("view", "", "View (all, pending, completed, overdue, today, week)")
	priority := fs.String("priority", "", "Only this priority")
	category := fs.String("category", "", "Only this category")
	verbose := fs.Bool("v", false, "Show more details")
	formatName := fs.String("format", "", "Output format (text, json, yaml)")

	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("ls takes at most one view, got %d arguments", len(positional))
	}
	if len(positional) == 1 {
		if *viewName != "" {
			return fmt.Errorf("view given both as -view and as an argument")
		}
		*viewName = positional[0]
	}
	view, err := store.ParseView(*viewName)
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(*formatName)
	if err != nil {
		return err
	}
	var wantPriority todo.Priority
	if *priority != "" {
		if wantPriority, err = todo.ParsePriority(*priority); err != nil {
			return err
		}
	}

	s, err := a.openStore()
	if err != nil {
		return err
	}
	now := clock()
	items := s.Select(view, now)
	items = slices.DeleteFunc(items, func(it *todo.Item) bool {
		if wantPriority != "" && it.Priority != wantPriority {
			return true
		}
		return *category != "" && !strings.EqualFold(it.Category, *category)
	})
	return report.WriteItems(a.stdout, items, now, format, *verbose)
}

// searchCommand lists tasks whose title, description or tags contain the query.
func (a *app) searchCommand(args []string) error {
	fs := a.newFlagSet("search")
	verbose := fs.Bool("v", false, "Show more details")
	formatName := fs.String("format", "", "Output format (text, json, yaml)")

	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	query := strings.Join(positional, " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("search requires a query")
	}
	format, err := report.ParseFormat(*formatName)
	if err != nil {
		return err
	}

	s, err := a.openStore()
	if err != nil {
		return err
	}
	return report.WriteItems(a.stdout, s.Search(query), clock(), format, *verbose)
}

// doneCommand marks a task completed or, with complete false, reopens it.
func (a *app) doneCommand(args []string, complete bool) error {
	name := "done"
	if !complete {
		name = "undo"
	}
	positional, err := parseArgs(a.newFlagSet(name), args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%s requires exactly one task id", name)
	}

	s, err := a.openStore()
	if err != nil {
		return err
	}
	item, err := s.Resolve(positional[0])
	if err != nil {
		return err
	}
	if complete {
		item.MarkCompleted(clock())
	} else {
		item.MarkUncompleted()
	}
	if err := a.saveStore(s); err != nil {
		return err
	}

	a.logger.Info("task updated", "id", item.ID, "completed", item.Completed)
	if complete {
		fmt.Fprintf(a.stdout, "✅ Completed [%s] %s\n", report.ShortID(item.ID), item.Title)
	} else {
		fmt.Fprintf(a.stdout, "📝 Reopened [%s] %s\n", report.ShortID(item.ID), item.Title)
	}
	return nil
}

// rmCommand removes a task. An unknown id is reported but is not an error.
func (a *app) rmCommand(args []string) error {
	positional, err := parseArgs(a.newFlagSet("rm"), args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("rm requires exactly one task id")
	}

	s, err := a.openStore()
	if err != nil {
		return err
	}
	item, err := s.Resolve(positional[0])
	if errors.Is(err, store.ErrNotFound) {
		fmt.Fprintf(a.stdout, "No task matches %q\n", positional[0])
		return nil
	}
	if err != nil {
		return err
	}
	s.Remove(item.ID)
	if err := a.saveStore(s); err != nil {
		return err
	}

	a.logger.Info("task removed", "id", item.ID)
	fmt.Fprintf(a.stdout, "🗑️  Removed [%s] %s\n", report.ShortID(item.ID), item.Title)
	return nil
}

// clearCommand removes every completed task.
func (a *app) clearCommand(args []string) error {
	positional, err := parseArgs(a.newFlagSet("clear"), args)
	if err != nil {
		return err
	}
	if len(positional) != 0 {
		return fmt.Errorf("clear takes no arguments")
	}

	s, err := a.openStore()
	if err != nil {
		return err
	}
	removed := s.ClearCompleted()
	if removed > 0 {
		if err := a.saveStore(s); err != nil {
			return err
		}
	}

	a.logger.Info("completed tasks cleared", "removed", removed)
	fmt.Fprintf(a.stdout, "Removed %d completed %s\n", removed, plural(removed, "task", "tasks"))
	return nil
}

// subtaskCommand dispatches the subtask actions.
func (a *app) subtaskCommand(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("subtask requires an action: add or toggle")
	}
	action, args := args[0], args[1:]
	positional, err := parseArgs(a.newFlagSet("subtask "+action), args)
	if err != nil {
		return err
	}

	switch action {
	case "add":
		if len(positional) < 2 {
			return fmt.Errorf("subtask add requires a task id and a title")
		}
	case "toggle":
		if len(positional) != 2 {
			return fmt.Errorf("subtask toggle requires a task id and a subtask id")
		}
	default:
		return fmt.Errorf("unknown subtask action: %s", action)
	}

	s, err := a.openStore()
	if err != nil {
		return err
	}
	item, err := s.Resolve(positional[0])
	if err != nil {
		return err
	}

	var msg string
	switch action {
	case "add":
		title := strings.TrimSpace(strings.Join(positional[1:], " "))
		if title == "" {
			return fmt.Errorf("subtask title must not be empty")
		}
		st := item.AddSubtask(title, clock())
		a.logger.Info("subtask added", "id", item.ID, "subtask", st.ID)
		msg = fmt.Sprintf("📝 Added subtask [%s] %s to [%s]", report.ShortID(st.ID), st.Title, report.ShortID(item.ID))
	case "toggle":
		st, ok := item.FindSubtask(positional[1])
		if !ok {
			return fmt.Errorf("%w: subtask %q of [%s]", store.ErrNotFound, positional[1], report.ShortID(item.ID))
		}
		item.ToggleSubtask(st.ID)
		a.logger.Info("subtask toggled", "id", item.ID, "subtask", st.ID, "completed", st.Completed)
		state := "pending"
		if st.Completed {
			state = "done"
		}
		msg = fmt.Sprintf("Subtask [%s] %s is now %s (%.0f%% of [%s] done)",
			report.ShortID(st.ID), st.Title, state, item.SubtaskProgress(), report.ShortID(item.ID))
	}

	if err := a.saveStore(s); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, msg)
	return nil
}

// noteCommand appends a note to a task.
func (a *app) noteCommand(args []string) error {
	positional, err := parseArgs(a.newFlagSet("note"), args)
	if err != nil {
		return err
	}
	if len(positional) < 2 {
		return fmt.Errorf("note requires a task id and text")
	}
	text := strings.TrimSpace(strings.Join(positional[1:], " "))
	if text == "" {
		return fmt.Errorf("note text must not be empty")
	}

	s, err := a.openStore()
	if err != nil {
		return err
	}
	item, err := s.Resolve(positional[0])
	if err != nil {
		return err
	}
	n := item.AddNote(text, clock())
	if err := a.saveStore(s); err != nil {
		return err
	}

	a.logger.Info("note added", "id", item.ID, "note", n.ID)
	fmt.Fprintf(a.stdout, "📝 Noted [%s] %s\n", report.ShortID(item.ID), item.Title)
	return nil
}

// trackCommand records the hours actually spent on a task.
func (a *app) trackCommand(args []string) error {
	positional, err := parseArgs(a.newFlagSet("track"), args)
	if err != nil {
		return err
	}
	if len(positional) != 2 {
		return fmt.Errorf("track requires a task id and hours")
	}
	hours, err := strconv.ParseFloat(positional[1], 64)
	if err != nil {
		return fmt.Errorf("invalid hours %q: %w", positional[1], err)
	}
	if err := checkHours(hours); err != nil {
		return fmt.Errorf("hours %w", err)
	}

	s, err := a.openStore()
	if err != nil {
		return err
	}
	item, err := s.Resolve(positional[0])
	if err != nil {
		return err
	}
	item.SetActualTime(hours)
	if err := a.saveStore(s); err != nil {
		return err
	}

	a.logger.Info("time tracked", "id", item.ID, "hours", hours)
	fmt.Fprintf(a.stdout, "Tracked %sh on [%s] %s\n",
		strconv.FormatFloat(hours, 'f', -1, 64), report.ShortID(item.ID), item.Title)
	return nil
}

// parseDate parses a deadline given on the command line. Dates without an
// offset are local time.
func parseDate(s string) (time.Time, error) {
	t, err := todo.ParseTimestamp(s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use 2006-01-02, 2006-01-02T15:04 or RFC 3339)", s)
	}
	return t, nil
}

// checkHours rejects effort values that cannot be stored.
func checkHours(h float64) error {
	switch {
	case math.IsNaN(h) || math.IsInf(h, 0):
		return fmt.Errorf("must be a finite number")
	case h < 0:
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func flagVisited(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
