package commands

import (
	"github.com/spf13/cobra"

	"elmtl/internal/config"
	"elmtl/internal/storage"
	"elmtl/internal/ui"
)

// FailuresCommand handles the failures command
type FailuresCommand struct {
	config    *config.Config
	storage   storage.Storage
	viewer    ui.Viewer
	formatter *ui.Formatter
}

// NewFailuresCommand creates a new FailuresCommand
func NewFailuresCommand(cfg *config.Config, st storage.Storage, viewer ui.Viewer, formatter *ui.Formatter) *FailuresCommand {
	return &FailuresCommand{
		config:    cfg,
		storage:   st,
		viewer:    viewer,
		formatter: formatter,
	}
}

// Execute runs the command
func (fc *FailuresCommand) Execute(cmd *cobra.Command, args []string) error {
	results, err := fc.storage.Load()
	if err != nil {
		return err
	}

	if fc.config.Flags.ListFailures {
		fc.formatter.SetOutput(cmd.OutOrStdout())
		return fc.formatter.PrintFailureList(results.Details)
	}
	return fc.viewer.View(results)
}
