package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regedit/pkg/registry"
)

func init() {
	rootCmd.AddCommand(newGetCmd())
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <path> [name]",
		Short: "Get a subkey or value",
		Long: `The get command resolves a name below a key the way the library does:
a subkey of that name wins, otherwise the value of that name is read.
Without a name, the last path segment is resolved below its parent.

Example:
  regctl get HKCU\\Software\\Vendor\\App Version
  regctl get HKCU\\Software\\Vendor\\App\\Version
  regctl get "HKLM\\Software\\Microsoft\\Windows NT\\CurrentVersion" ProductName --json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args)
		},
	}
	return cmd
}

func runGet(args []string) error {
	keyPath, name := args[0], ""
	if len(args) == 2 {
		name = args[1]
	} else {
		_, rest, err := splitPath(keyPath)
		if err != nil {
			return err
		}
		if rest == "" {
			root, release, err := openKey(keyPath, false)
			if err != nil {
				return fmt.Errorf("failed to open key: %w", err)
			}
			defer release()
			return printKeySummary(root)
		}
		keyPath, name = parentAndLeaf(keyPath)
	}

	k, release, err := openKey(keyPath, false)
	if err != nil {
		return fmt.Errorf("failed to open key: %w", err)
	}
	defer release()

	printVerbose("Resolving %q below %s\n", name, k)
	item, err := k.Get(name)
	if err != nil {
		return fmt.Errorf("failed to get %q: %w", name, err)
	}
	defer item.Close()

	if item.IsKey() {
		return printKeySummary(item.Key())
	}

	if structured() {
		return printData(newValueRecord(name, 0, false, item.Value()))
	}
	printInfo("%s\n", formatValue(item.Value()))
	return nil
}

// keySummary is the structured form of a resolved subkey.
type keySummary struct {
	Path    string        `json:"path" yaml:"path"`
	Subkeys []string      `json:"subkeys" yaml:"subkeys"`
	Values  []valueRecord `json:"values" yaml:"values"`
}

func printKeySummary(k *registry.Key) error {
	names, err := k.SubkeyNames()
	if err != nil {
		return fmt.Errorf("failed to list subkeys: %w", err)
	}
	entries, err := k.ValueEntries("")
	if err != nil {
		return fmt.Errorf("failed to list values: %w", err)
	}

	if structured() {
		sum := keySummary{Path: k.String(), Subkeys: names, Values: make([]valueRecord, 0, len(entries))}
		if sum.Subkeys == nil {
			sum.Subkeys = []string{}
		}
		for _, e := range entries {
			sum.Values = append(sum.Values, newValueRecord(e.Name, e.Type, true, e.Value))
		}
		return printData(sum)
	}

	printInfo("%s\n", styled(keyStyle, k.String()))
	for _, n := range names {
		printInfo("  %s\\\n", styled(keyStyle, n))
	}
	printValueLines(entries)
	return nil
}

// printValueLines prints one "name  TYPE  data" line per entry.
func printValueLines(entries []registry.Entry) {
	width := 0
	for _, e := range entries {
		width = max(width, len(displayName(e.Name)))
	}
	for _, e := range entries {
		name := fmt.Sprintf("%-*s", width, displayName(e.Name))
		printInfo("  %s  %s  %s\n",
			styled(nameStyle, name),
			styled(typeStyle, fmt.Sprintf("%-13s", e.Type)),
			formatValue(e.Value))
	}
}
