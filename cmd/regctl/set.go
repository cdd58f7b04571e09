package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regedit/pkg/registry"
	"github.com/joshuapare/regedit/pkg/types"
)

var (
	setType string
	setSep  string
)

func init() {
	cmd := newSetCmd()
	cmd.Flags().StringVarP(&setType, "type", "t", "", "Registry type (sz, expand_sz, dword, qword, binary, multi_sz); inferred when empty")
	cmd.Flags().StringVar(&setSep, "sep", ",", "Element separator for multi_sz data")
	rootCmd.AddCommand(cmd)
}

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <path> <name> <value>",
		Short: "Write a value, creating the key if needed",
		Long: `The set command writes a value below a key. Without --type, decimal or
0x-prefixed integers are written as REG_DWORD (or REG_QWORD beyond the
32-bit range), text containing %NAME% as REG_EXPAND_SZ and any other text as
REG_SZ. Binary data is given as hex bytes. Use "" as name for the default
value.

Example:
  regctl set HKCU\\Software\\Vendor\\App Version 1.2.3
  regctl set HKCU\\Software\\Vendor\\App Retries 5
  regctl set HKCU\\Software\\Vendor\\App Cache "%LOCALAPPDATA%\\App"
  regctl set HKCU\\Software\\Vendor\\App Hosts a,b,c --type multi_sz
  regctl set HKCU\\Software\\Vendor\\App Blob 01,02,ff --type binary`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(args)
		},
	}
	return cmd
}

func runSet(args []string) error {
	keyPath, name, raw := args[0], args[1], args[2]

	w, err := parseWrite(raw, setType, setSep)
	if err != nil {
		return err
	}

	k, release, err := openKey(keyPath, true)
	if err != nil {
		return fmt.Errorf("failed to open key: %w", err)
	}
	defer release()

	if err := k.Set(name, w); err != nil {
		return fmt.Errorf("failed to set %q: %w", name, err)
	}

	t, _ := w.Type()
	printVerbose("Wrote %s %q below %s\n", t, name, k)
	return nil
}

// parseWrite converts command-line data to a Write. An empty typeName
// infers the type from the data.
func parseWrite(raw, typeName, sep string) (registry.Write, error) {
	if typeName == "" {
		if n, err := strconv.ParseInt(raw, 0, 64); err == nil {
			return registry.WriteValue(types.Integer(n)), nil
		}
		return registry.WriteValue(types.String(raw)), nil
	}

	t, err := types.ParseRegType(typeName)
	if err != nil {
		return registry.Write{}, err
	}
	var v types.Value
	switch t {
	case types.REG_SZ, types.REG_EXPAND_SZ, types.REG_LINK:
		v = types.String(raw)
	case types.REG_MULTI_SZ:
		v = types.Strings(strings.Split(raw, sep))
	case types.REG_DWORD, types.REG_DWORD_BE, types.REG_QWORD:
		n, err := strconv.ParseInt(raw, 0, 64)
		if err != nil {
			u, uerr := strconv.ParseUint(raw, 0, 64)
			if uerr != nil {
				return registry.Write{}, fmt.Errorf("invalid integer %q: %w", raw, err)
			}
			n = int64(u)
		}
		v = types.Integer(n)
	default:
		data, err := hex.DecodeString(strings.NewReplacer(",", "", " ", "", ":", "").Replace(raw))
		if err != nil {
			return registry.Write{}, fmt.Errorf("invalid hex data %q: %w", raw, err)
		}
		v = types.Binary(data)
	}
	return registry.WriteValueAs(t, v), nil
}
