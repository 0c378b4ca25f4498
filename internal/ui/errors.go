package ui

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"elmtl/internal/config"
	"elmtl/internal/domain"
	"elmtl/internal/storage"
)

// ErrorViewer displays test failures in an interactive TUI
type ErrorViewer struct {
	config  *config.Config
	storage storage.Storage
}

// NewErrorViewer creates a new ErrorViewer
func NewErrorViewer(cfg *config.Config, st storage.Storage) *ErrorViewer {
	return &ErrorViewer{
		config:  cfg,
		storage: st,
	}
}

// View displays test failures in an interactive TUI. Toggling a failure
// resolved is written back through storage right away.
func (ev *ErrorViewer) View(results *domain.TestResultsOutput) error {
	if len(results.Details) == 0 {
		color.Green("✓ No test failures found!")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	updateListItem := func(index int) {
		if index < 0 || index >= list.GetItemCount() {
			return
		}
		list.SetItemText(index, listItemText(results.Details[index], index), "")
	}

	for i, failure := range results.Details {
		list.AddItem(listItemText(failure, i), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetWordWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		headerView.SetText(fmt.Sprintf(
			" Test Failures (%d total, %d unresolved) | ↑↓ navigate, [yellow]R[white] mark resolved, → details, ← back, Ctrl+C exit ",
			len(results.Details), countUnresolved(results.Details)))
	}
	updateHeader()

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(results.Details) {
			failure := results.Details[index]
			statsView.SetText(ev.formatFailureStats(failure, index+1))
			detailsView.SetText(ev.formatFailureDetails(failure)).ScrollToBeginning()
		}
	}

	var saveErr error
	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				index := list.GetCurrentItem()
				if index >= 0 && index < len(results.Details) {
					results.Details[index].Resolved = !results.Details[index].Resolved
					updateListItem(index)
					updateHeader()
					updateDetails()
					if err := ev.storage.SaveOutput(results); err != nil {
						saveErr = err
						app.Stop()
					}
				}
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if saveErr != nil {
		return fmt.Errorf("failed to save resolved status: %w", saveErr)
	}
	return nil
}

func listItemText(failure domain.TestFailure, index int) string {
	name := tview.Escape(failure.TestName)
	if name == "" {
		name = fmt.Sprintf("Test %d", index+1)
	}
	if failure.Resolved {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, name)
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", index+1, name)
}

func countUnresolved(failures []domain.TestFailure) int {
	count := 0
	for _, failure := range failures {
		if !failure.Resolved {
			count++
		}
	}
	return count
}

// formatFailureDetails formats a test failure for display using tview color tags
func (ev *ErrorViewer) formatFailureDetails(failure domain.TestFailure) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	if failure.Status == domain.StatusTodo {
		fmt.Fprintf(w, "[yellow]○ Todo: %s[white]\n\n", tview.Escape(failure.TestName))
	} else {
		fmt.Fprintf(w, "[red]✗ Test: %s[white]\n\n", tview.Escape(failure.TestName))
	}

	fmt.Fprintf(w, "[cyan]Labels:[white]\t%s\n", tview.Escape(strings.Join(failure.Labels, " › ")))
	fmt.Fprintf(w, "[cyan]Location:[white]\t%s\n", tview.Escape(failure.LocationURL))
	if failure.Line > 0 {
		fmt.Fprintf(w, "[cyan]Source:[white]\t%s:%d\n", failure.ModuleFile, failure.Line)
	} else {
		fmt.Fprintf(w, "[cyan]Source:[white]\t%s\n", failure.ModuleFile)
	}
	fmt.Fprintf(w, "\n")

	if failure.Given != "" {
		fmt.Fprintf(w, "[yellow]Given:[white]\n%s\n\n", tview.Escape(failure.Given))
	}
	if failure.Expected != "" || failure.Actual != "" {
		fmt.Fprintf(w, "[yellow]Expected:[white]\n%s\n\n", tview.Escape(failure.Expected))
		fmt.Fprintf(w, "[yellow]Actual:[white]\n%s\n\n", tview.Escape(failure.Actual))
	}
	if failure.Message != "" {
		fmt.Fprintf(w, "[yellow]Message:[white]\n%s\n", tview.Escape(failure.Message))
	}

	w.Flush()
	return builder.String()
}

// formatFailureStats formats the stats header for a test failure
func (ev *ErrorViewer) formatFailureStats(failure domain.TestFailure, number int) string {
	file := failure.FilePath
	if file == "" {
		file = "Unknown file"
	} else {
		file = ev.config.RelPath(file)
	}

	path := failure.Path
	if path == "" {
		path = fmt.Sprintf("Test %d", number)
	}

	return fmt.Sprintf("[cyan]file:[white] [yellow]%s[white]\n[cyan]path:[white] [yellow]%s[white]\n",
		tview.Escape(file), tview.Escape(path))
}
