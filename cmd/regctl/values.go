package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var valuesPrefix string

func init() {
	cmd := newValuesCmd()
	cmd.Flags().StringVarP(&valuesPrefix, "prefix", "p", "", "Only values whose name starts with this prefix")
	rootCmd.AddCommand(cmd)
}

func newValuesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "values <path>",
		Short: "List the values of a key",
		Long: `The values command lists the values of a key with their registry types,
in the order the registry enumerates them. The prefix match is
case-sensitive.

Example:
  regctl values HKCU\\Environment
  regctl values "HKLM\\Software\\Microsoft\\Windows NT\\CurrentVersion" --prefix Product
  regctl values HKCU\\Environment --yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValues(args)
		},
	}
	return cmd
}

func runValues(args []string) error {
	k, release, err := openKey(args[0], false)
	if err != nil {
		return fmt.Errorf("failed to open key: %w", err)
	}
	defer release()

	entries, err := k.ValueEntries(valuesPrefix)
	if err != nil {
		return fmt.Errorf("failed to list values: %w", err)
	}

	if structured() {
		records := make([]valueRecord, 0, len(entries))
		for _, e := range entries {
			records = append(records, newValueRecord(e.Name, e.Type, true, e.Value))
		}
		return printData(records)
	}

	printValueLines(entries)
	printVerbose("Total: %d values\n", len(entries))
	return nil
}
