package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regedit/pkg/registry"
)

func init() {
	rootCmd.AddCommand(newMkkeyCmd())
}

func newMkkeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mkkey <path>",
		Short: "Create a key",
		Long: `The mkkey command creates a key below its parent. The parent must exist;
creating a key that already exists is not an error.

Example:
  regctl mkkey HKCU\\Software\\Vendor
  regctl mkkey Software\\Vendor\\App --hive HKCU`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMkkey(args)
		},
	}
	return cmd
}

func runMkkey(args []string) error {
	if _, rest, err := splitPath(args[0]); err != nil {
		return err
	} else if rest == "" {
		return fmt.Errorf("no key name in %q", args[0])
	}
	parent, leaf := parentAndLeaf(args[0])

	k, release, err := openKey(parent, false)
	if err != nil {
		return fmt.Errorf("failed to open parent key: %w", err)
	}
	defer release()

	if err := k.Set(leaf, registry.CreateSubkey()); err != nil {
		return fmt.Errorf("failed to create key: %w", err)
	}
	printVerbose("Created %s\n", registry.JoinPath(k.String(), leaf))
	return nil
}
