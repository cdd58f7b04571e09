package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regedit/internal/regtext"
)

var (
	exportUTF16 bool
)

func init() {
	cmd := newExportCmd()
	cmd.Flags().BoolVar(&exportUTF16, "utf16", false, "Write UTF-16LE with a byte order mark, as regedit does")
	rootCmd.AddCommand(cmd)
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <path> <file>",
		Short: "Export a key subtree to a .reg file",
		Long: `The export command writes a key, its values and all of its subkeys as
.reg text ("Windows Registry Editor Version 5.00"). Use - as file to write
to standard output.

Example:
  regctl export HKCU\\Software\\Vendor vendor.reg
  regctl export HKCU\\Software\\Vendor vendor.reg --utf16
  regctl export HKCU\\Environment -`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args)
		},
	}
	return cmd
}

func runExport(args []string) error {
	keyPath, file := args[0], args[1]

	k, release, err := openKey(keyPath, false)
	if err != nil {
		return fmt.Errorf("failed to open key: %w", err)
	}
	defer release()

	opts := regtext.ExportOptions{}
	if exportUTF16 {
		opts.Encoding = regtext.EncodingUTF16LE
		opts.WithBOM = true
	}

	printVerbose("Exporting %s\n", k)
	data, err := regtext.Export(k, opts)
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}

	if file == "-" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.WriteFile(file, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", file, err)
	}
	printInfo("Exported %s to %s (%d bytes)\n", k, file, len(data))
	return nil
}
