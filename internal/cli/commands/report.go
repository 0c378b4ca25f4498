package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"elmtl/internal/parser"
	"elmtl/internal/ui"
)

// ReportCommand renders a saved elm-test JSON report as a suite tree
type ReportCommand struct {
	parser    *parser.ElmTestParser
	formatter *ui.Formatter
}

// NewReportCommand creates a new ReportCommand
func NewReportCommand(p *parser.ElmTestParser, formatter *ui.Formatter) *ReportCommand {
	return &ReportCommand{parser: p, formatter: formatter}
}

// Execute reads the report from the file argument, or stdin when it is
// missing or "-".
func (rc *ReportCommand) Execute(cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open report: %w", err)
		}
		defer f.Close()
		in = f
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read report: %w", err)
	}

	events, summary := rc.parser.ParseReport(string(data))
	rc.formatter.SetOutput(cmd.OutOrStdout())
	return rc.formatter.PrintReport(events, summary)
}
