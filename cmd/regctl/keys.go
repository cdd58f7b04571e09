package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newKeysCmd())
}

func newKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys <path>",
		Short: "List the subkeys of a key",
		Long: `The keys command lists the direct subkeys of a key in the order the
registry enumerates them.

Example:
  regctl keys HKLM\\Software
  regctl keys Software --hive HKCU --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeys(args)
		},
	}
	return cmd
}

func runKeys(args []string) error {
	k, release, err := openKey(args[0], false)
	if err != nil {
		return fmt.Errorf("failed to open key: %w", err)
	}
	defer release()

	names, err := k.SubkeyNames()
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}

	if structured() {
		if names == nil {
			names = []string{}
		}
		return printData(map[string]any{
			"path":  k.String(),
			"keys":  names,
			"count": len(names),
		})
	}

	for _, name := range names {
		printInfo("%s\n", styled(keyStyle, name))
	}
	printVerbose("Total: %d keys\n", len(names))
	return nil
}
