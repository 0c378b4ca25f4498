package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"elmtl/internal/label"
)

// LabelCommand exposes the label path algebra on the command line. Every
// subcommand prints one result per line to the command's output.
type LabelCommand struct{}

// NewLabelCommand creates a new LabelCommand
func NewLabelCommand() *LabelCommand {
	return &LabelCommand{}
}

// Path prints the hierarchical path of the given labels
func (lc *LabelCommand) Path(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), label.ToPath(args))
	return nil
}

// Labels decodes a hierarchical path back into its labels
func (lc *LabelCommand) Labels(cmd *cobra.Command, args []string) error {
	labels, err := label.Labels(label.ParsePath(args[0]))
	if err != nil {
		return err
	}
	for _, l := range labels {
		fmt.Fprintln(cmd.OutOrStdout(), l)
	}
	return nil
}

// Location prints the location URL of a label inside a module
func (lc *LabelCommand) Location(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), label.ToLocationURL(args[0], args[1]))
	return nil
}

// Resolve prints the module file and the label addressed by a location URL
// or by the bare path portion of one.
func (lc *LabelCommand) Resolve(cmd *cobra.Command, args []string) error {
	path := args[0]
	if rest, ok := label.SplitLocationURL(path); ok {
		path = rest
	}
	file, name, err := label.FromLocationURLPath(path)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), file)
	fmt.Fprintln(cmd.OutOrStdout(), name)
	return nil
}

// Common prints the longest common ancestor of two paths. An empty line
// means they share nothing.
func (lc *LabelCommand) Common(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), label.CommonParent(label.ParsePath(args[0]), label.ParsePath(args[1])))
	return nil
}

// Diff prints the second path relative to the parent of the first
func (lc *LabelCommand) Diff(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), label.DiffPaths(label.ParsePath(args[0]), label.ParsePath(args[1])))
	return nil
}

// ModuleFile prints the conventional source file of a test module
func (lc *LabelCommand) ModuleFile(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), label.ModuleFilePath(args[0]))
	return nil
}

// Register adds the label subcommands to parent
func (lc *LabelCommand) Register(parent *cobra.Command) {
	parent.AddCommand(
		&cobra.Command{
			Use:   "path <label>...",
			Short: "Encode labels into a hierarchical path",
			Args:  cobra.MinimumNArgs(1),
			RunE:  lc.Path,
		},
		&cobra.Command{
			Use:   "labels <path>",
			Short: "Decode a hierarchical path into labels",
			Args:  cobra.ExactArgs(1),
			RunE:  lc.Labels,
		},
		&cobra.Command{
			Use:   "location <module> <label>",
			Short: "Build the elmTest:// location URL of a label",
			Args:  cobra.ExactArgs(2),
			RunE:  lc.Location,
		},
		&cobra.Command{
			Use:   "resolve <url|path>",
			Short: "Resolve a location URL into module file and label",
			Args:  cobra.ExactArgs(1),
			RunE:  lc.Resolve,
		},
		&cobra.Command{
			Use:   "common <path> <path>",
			Short: "Print the longest common ancestor of two paths",
			Args:  cobra.ExactArgs(2),
			RunE:  lc.Common,
		},
		&cobra.Command{
			Use:   "diff <from> <to>",
			Short: "Print a path relative to the parent of another",
			Args:  cobra.ExactArgs(2),
			RunE:  lc.Diff,
		},
		&cobra.Command{
			Use:   "module-file <Module.Name>",
			Short: "Print the source file of a test module",
			Args:  cobra.ExactArgs(1),
			RunE:  lc.ModuleFile,
		},
	)
}
