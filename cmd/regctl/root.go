package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regedit/cmd/regctl/logger"
	"github.com/joshuapare/regedit/pkg/registry"
	"github.com/joshuapare/regedit/pkg/types"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	yamlOut    bool
	noColor    bool
	hiveFlag   string
	computer   string
	accessFlag string
	configPath string

	// cfg is the effective configuration: file, then environment, then flags.
	cfg Config

	// backend replaces the native registry when set.
	backend types.Backend

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

var rootCmd = &cobra.Command{
	Use:   "regctl",
	Short: "Read and write the Windows registry",
	Long: `regctl reads and writes keys and values of the local or a remote
Windows registry. Paths may start with a hive name (HKLM\Software\...);
otherwise they are relative to --hive.`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&yamlOut, "yaml", false, "Output in YAML format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&hiveFlag, "hive", "", "Hive for paths without a hive prefix (default HKCU)")
	rootCmd.PersistentFlags().StringVar(&computer, "computer", "", `Remote computer (\\name); empty for local`)
	rootCmd.PersistentFlags().StringVar(&accessFlag, "access", "", "Access mask: read, write, all or names joined by |")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.regctl/config.toml)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// setup loads the config file and applies environment and flag overrides.
func setup(cmd *cobra.Command, _ []string) error {
	c, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("hive") {
		c.Hive = hiveFlag
	}
	if flags.Changed("computer") {
		c.Computer = computer
	}
	if flags.Changed("access") {
		c.Access = accessFlag
	}
	if flags.Changed("no-color") {
		c.NoColor = noColor
	}
	if flags.Changed("json") && jsonOut {
		c.Output = outputJSON
	}
	if flags.Changed("yaml") && yamlOut {
		c.Output = outputYAML
	}
	if err := c.validate(); err != nil {
		return err
	}
	cfg = c

	if err := logger.Init(logger.Options{
		Enabled: cfg.Logging.Enabled,
		LogDir:  cfg.Logging.Dir,
		Level:   cfg.Logging.level(),
	}); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	logger.Debug("regctl started", "command", cmd.Name(), "hive", cfg.Hive, "computer", cfg.Computer)
	return nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(stdout, format, args...)
	}
}

// Registry access

// splitPath resolves a command-line key path to a hive and the path below
// it. A leading hive name wins over the configured hive.
func splitPath(path string) (types.Hive, string, error) {
	if h, rest, ok := types.SplitHivePath(path); ok {
		return h, registry.JoinPath(rest), nil
	}
	h, err := types.ParseHive(cfg.Hive)
	if err != nil {
		return 0, "", err
	}
	return h, registry.JoinPath(path), nil
}

// connect opens the root key of hive with the configured computer and
// access mask.
func connect(hive types.Hive) (*registry.Key, error) {
	access, err := types.ParseAccess(cfg.Access)
	if err != nil {
		return nil, err
	}
	opts := []registry.Option{
		registry.WithComputer(cfg.Computer),
		registry.WithAccess(access),
		registry.WithLogger(logger.L),
	}
	if backend != nil {
		opts = append(opts, registry.WithBackend(backend))
	}
	printVerbose("Connecting to %s (access %s)\n", hive, access)
	return registry.Connect(hive, opts...)
}

// openKey connects to the hive of path and opens the key it names. With
// create set, missing keys along the path are created. The returned
// release closes every handle opened here.
func openKey(path string, create bool) (*registry.Key, func(), error) {
	hive, rest, err := splitPath(path)
	if err != nil {
		return nil, nil, err
	}
	root, err := connect(hive)
	if err != nil {
		return nil, nil, err
	}
	if rest == "" {
		return root, func() { _ = root.Close() }, nil
	}

	var k *registry.Key
	if create {
		k, err = root.CreateKey(rest)
	} else {
		k, err = root.OpenKey(rest)
	}
	if err != nil {
		_ = root.Close()
		return nil, nil, err
	}
	return k, func() {
		_ = k.Close()
		_ = root.Close()
	}, nil
}

// parentAndLeaf splits a key path into its parent path and last segment.
func parentAndLeaf(path string) (string, string) {
	path = strings.TrimRight(registry.NormalizePath(path), registry.Separator)
	i := strings.LastIndex(path, registry.Separator)
	if i < 0 {
		return "", path
	}
	return path[:i], path[i+1:]
}
