package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/example/snipmark/internal/config"
)

var stdout io.Writer = os.Stdout

type configCmd struct {
	*root
	fs    *flag.FlagSet
	force bool
}

func (c *configCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	c := &configCmd{root: r, fs: fs}
	fs.BoolVar(&c.force, "force", false, "overwrite an existing file with init")
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &UsageError{of: c}
		}
		return nil, err
	}
	return c, nil
}

func (c *configCmd) Run() error {
	args := c.fs.Args()
	if len(args) < 1 {
		return &UsageError{of: c}
	}

	switch args[0] {
	case "print":
		return c.runPrint()
	case "path":
		return c.runPath()
	case "init", "save":
		return c.runInit()
	default:
		return &UsageError{of: c, msg: fmt.Sprintf("unknown config command: %s", args[0])}
	}
}

func (c *configCmd) current() *config.Config {
	if c.root == nil || c.config == nil {
		return config.New()
	}
	return c.config
}

func (c *configCmd) runPrint() error {
	_, err := io.WriteString(stdout, c.current().String())
	return err
}

// runPath prints the file in use, or where init would write one.
func (c *configCmd) runPath() error {
	path := config.NewLoader(version, configPathOverride).GetConfigPath()
	if path == "" {
		path = config.DefaultPath()
	}
	_, err := fmt.Fprintln(stdout, path)
	return err
}

func (c *configCmd) runInit() error {
	path := configPathOverride
	if path == "" {
		path = config.DefaultPath()
	}
	if _, err := os.Stat(path); err == nil && !c.force {
		return fmt.Errorf("%s already exists; use -force to overwrite", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(c.current().String()), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	fmt.Fprintf(os.Stderr, "Configuration saved to %s\n", path)
	return nil
}
