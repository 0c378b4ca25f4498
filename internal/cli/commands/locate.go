package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"elmtl/internal/config"
	"elmtl/internal/discovery"
	"elmtl/internal/label"
)

// LocateCommand finds the source line of a test or suite
type LocateCommand struct {
	config *config.Config
	parser *discovery.Parser
	suite  bool
}

// NewLocateCommand creates a new LocateCommand
func NewLocateCommand(cfg *config.Config, parser *discovery.Parser) *LocateCommand {
	return &LocateCommand{config: cfg, parser: parser}
}

// Execute accepts either an elmTest:// location URL, which names a label
// inside a module, or a full hierarchical path starting at the module.
// It prints file:line, line 0 meaning the file itself.
func (lc *LocateCommand) Execute(cmd *cobra.Command, args []string) error {
	var file string
	var line int

	if rest, ok := label.SplitLocationURL(args[0]); ok {
		moduleFile, name, err := label.FromLocationURLPath(rest)
		if err != nil {
			return err
		}
		file = filepath.Join(lc.config.ProjectPath, filepath.FromSlash(moduleFile))
		if hasLabel(rest) {
			if line, err = lc.parser.LocateLabel(file, name); err != nil {
				return fmt.Errorf("failed to locate %s: %w", args[0], err)
			}
		}
	} else {
		path := label.ParsePath(args[0])
		file = lc.config.ModuleFile(label.ModuleName(path))
		var err error
		if line, err = lc.parser.Locate(file, path, lc.suite); err != nil {
			return fmt.Errorf("failed to locate %s: %w", args[0], err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s:%d\n", lc.config.RelPath(file), line)
	return nil
}

// hasLabel reports whether a location path carries a label after the module
func hasLabel(path string) bool {
	return label.LocationPath(path).Len() > 1
}

// Register adds the locate command to parent
func (lc *LocateCommand) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "locate <url|path>",
		Short: "Print file:line of a test or suite",
		Long:  "Resolve an elmTest:// location URL or a hierarchical label path to the line declaring it",
		Args:  cobra.ExactArgs(1),
		RunE:  lc.Execute,
	}
	cmd.Flags().BoolVarP(&lc.suite, "suite", "s", false, "Look for a describe block, falling back to its closest existing parent")
	parent.AddCommand(cmd)
}
