package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regedit/pkg/registry"
)

func init() {
	rootCmd.AddCommand(newExpandCmd())
}

func newExpandCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expand <string>",
		Short: "Expand %NAME% environment placeholders",
		Long: `The expand command replaces %NAME% placeholders the way a consumer of a
REG_EXPAND_SZ value would, using the local environment. Undefined names
are left in place.

Example:
  regctl expand "%SystemRoot%\\System32"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpand(args)
		},
	}
	return cmd
}

func runExpand(args []string) error {
	expand := registry.Expand
	if backend != nil {
		expand = backend.ExpandEnvironmentStrings
	}

	out, err := expand(args[0])
	if err != nil {
		return fmt.Errorf("failed to expand: %w", err)
	}
	if structured() {
		return printData(map[string]string{"input": args[0], "expanded": out})
	}
	printInfo("%s\n", out)
	return nil
}
