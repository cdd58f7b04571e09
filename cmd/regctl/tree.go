package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regedit/pkg/registry"
)

var (
	treeDepth  int
	treeValues bool
)

func init() {
	cmd := newTreeCmd()
	cmd.Flags().IntVar(&treeDepth, "depth", 3, "Maximum depth (0 = unlimited)")
	cmd.Flags().BoolVar(&treeValues, "values", false, "Show values too")
	rootCmd.AddCommand(cmd)
}

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree <path>",
		Short: "Display tree structure",
		Long: `The tree command displays a hierarchical tree view of registry keys.
Subkeys are opened one at a time while walking.

Example:
  regctl tree HKCU\\Software\\Vendor
  regctl tree HKLM\\System\\CurrentControlSet\\Services --depth 1
  regctl tree HKCU\\Environment --values --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(args)
		},
	}
	return cmd
}

// treeNode is the structured form of a key subtree.
type treeNode struct {
	Name    string        `json:"name" yaml:"name"`
	Values  []valueRecord `json:"values,omitempty" yaml:"values,omitempty"`
	Subkeys []*treeNode   `json:"subkeys,omitempty" yaml:"subkeys,omitempty"`
}

func runTree(args []string) error {
	k, release, err := openKey(args[0], false)
	if err != nil {
		return fmt.Errorf("failed to open key: %w", err)
	}
	defer release()

	root, err := buildTree(k, k.String(), 1)
	if err != nil {
		return fmt.Errorf("failed to walk tree: %w", err)
	}

	if structured() {
		return printData(root)
	}
	printInfo("%s\n", styled(keyStyle, root.Name))
	printTree(root, "")
	return nil
}

func buildTree(k *registry.Key, name string, depth int) (*treeNode, error) {
	node := &treeNode{Name: name}
	if treeValues {
		entries, err := k.ValueEntries("")
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			node.Values = append(node.Values, newValueRecord(e.Name, e.Type, true, e.Value))
		}
	}
	if treeDepth > 0 && depth > treeDepth {
		return node, nil
	}

	it := k.Subkeys()
	for it.Next() {
		sub := it.Key()
		child, err := buildTree(sub, sub.Name(), depth+1)
		_ = sub.Close()
		if err != nil {
			return nil, err
		}
		node.Subkeys = append(node.Subkeys, child)
	}
	return node, it.Err()
}

func printTree(node *treeNode, indent string) {
	total := len(node.Values) + len(node.Subkeys)
	i := 0
	branch := func() (string, string) {
		i++
		if i == total {
			return indent + "└── ", indent + "    "
		}
		return indent + "├── ", indent + "│   "
	}

	for _, v := range node.Values {
		prefix, _ := branch()
		printInfo("%s%s %s %s\n",
			styled(mutedStyle, prefix),
			styled(nameStyle, v.Name),
			styled(typeStyle, v.Type),
			formatRecord(v))
	}
	for _, sub := range node.Subkeys {
		prefix, next := branch()
		printInfo("%s%s\n", styled(mutedStyle, prefix), styled(keyStyle, sub.Name))
		printTree(sub, next)
	}
}

func formatRecord(v valueRecord) string {
	if ss, ok := v.Value.([]string); ok {
		return fmt.Sprintf("%q", ss)
	}
	s := fmt.Sprint(v.Value)
	return strings.ReplaceAll(s, "\n", `\n`)
}
