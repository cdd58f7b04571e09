package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regedit/internal/regtext"
	"github.com/joshuapare/regedit/pkg/registry"
	"github.com/joshuapare/regedit/pkg/types"
)

var importEncoding string

func init() {
	cmd := newImportCmd()
	cmd.Flags().StringVar(&importEncoding, "encoding", "", "Input encoding without a byte order mark: UTF-8 (default), UTF-16LE or WINDOWS-1252")
	rootCmd.AddCommand(cmd)
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a .reg file",
		Long: `The import command creates the keys and writes the values of a .reg file.
Section paths must start with a hive name. Deletion entries ([-key] and
"name"=-) are rejected; entries before the first failure stay applied.

Example:
  regctl import vendor.reg
  regctl import legacy.reg --encoding windows-1252
  regctl import settings.reg --computer \\\\build01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(args)
		},
	}
	return cmd
}

func runImport(args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	ops, err := regtext.Parse(data, regtext.ParseOptions{InputEncoding: importEncoding})
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}
	printVerbose("Parsed %d entries from %s\n", len(ops), args[0])

	roots := make(map[types.Hive]*registry.Key)
	defer func() {
		for _, root := range roots {
			_ = root.Close()
		}
	}()

	// Runs of entries in the same hive are applied together.
	for start := 0; start < len(ops); {
		hive, _, ok := types.SplitHivePath(ops[start].KeyPath())
		if !ok {
			return fmt.Errorf("key %q does not start with a hive name", ops[start].KeyPath())
		}
		end := start + 1
		for end < len(ops) {
			h, _, ok := types.SplitHivePath(ops[end].KeyPath())
			if !ok || h != hive {
				break
			}
			end++
		}

		root, ok := roots[hive]
		if !ok {
			root, err = connect(hive)
			if err != nil {
				return err
			}
			roots[hive] = root
		}
		if err := regtext.Apply(root, ops[start:end]); err != nil {
			return fmt.Errorf("failed to import %s: %w", args[0], err)
		}
		start = end
	}

	printInfo("Imported %d entries from %s\n", len(ops), args[0])
	return nil
}
