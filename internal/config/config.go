package config

import (
	"fmt"
	"strconv"

	"github.com/caarlos0/env/v11"
)

// Config holds the fully resolved run configuration.
type Config struct {
	// Input is the event file to read; empty or "-" means stdin.
	Input string
	// Output is the PNG path to write.
	Output string
	// Width and Height are the framebuffer dimensions in pixels.
	Width  int
	Height int
	// ScaleWidth and ScaleHeight are the persisted resolution after the
	// nearest-neighbor upscale.
	ScaleWidth  int
	ScaleHeight int
	// Filter is an optional event predicate expression.
	Filter string
	// PalettePath optionally replaces the built-in palette with a .gpl file.
	PalettePath string
	// ShowVersion makes the program print version info and exit.
	ShowVersion bool
}

// renderEnv holds render defaults taken from environment variables.
// Command-line flags override these.
type renderEnv struct {
	Output      string `env:"NOTEPLOT_OUTPUT" envDefault:"output.png"`
	Width       int    `env:"NOTEPLOT_WIDTH" envDefault:"512"`
	Height      int    `env:"NOTEPLOT_HEIGHT" envDefault:"128"`
	ScaleWidth  int    `env:"NOTEPLOT_SCALE_WIDTH" envDefault:"512"`
	ScaleHeight int    `env:"NOTEPLOT_SCALE_HEIGHT" envDefault:"2048"`
}

// ParseArgs parses command-line arguments over environment defaults.
// Expected format: program_name [flags] [input-file]
func ParseArgs(args []string) (*Config, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no arguments provided")
	}

	var defaults renderEnv
	if err := env.Parse(&defaults); err != nil {
		return nil, fmt.Errorf("failed to parse environment config: %w", err)
	}

	cfg := &Config{
		Output:      defaults.Output,
		Width:       defaults.Width,
		Height:      defaults.Height,
		ScaleWidth:  defaults.ScaleWidth,
		ScaleHeight: defaults.ScaleHeight,
	}

	programName := args[0]
	sawInput := false

	for i := 1; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-o", "--output":
			v, err := flagValue(args, &i, arg)
			if err != nil {
				return nil, err
			}
			cfg.Output = v
		case "--width":
			v, err := intFlagValue(args, &i, arg)
			if err != nil {
				return nil, err
			}
			cfg.Width = v
		case "--height":
			v, err := intFlagValue(args, &i, arg)
			if err != nil {
				return nil, err
			}
			cfg.Height = v
		case "--scale-width":
			v, err := intFlagValue(args, &i, arg)
			if err != nil {
				return nil, err
			}
			cfg.ScaleWidth = v
		case "--scale-height":
			v, err := intFlagValue(args, &i, arg)
			if err != nil {
				return nil, err
			}
			cfg.ScaleHeight = v
		case "-f", "--filter":
			v, err := flagValue(args, &i, arg)
			if err != nil {
				return nil, err
			}
			cfg.Filter = v
		case "--palette":
			v, err := flagValue(args, &i, arg)
			if err != nil {
				return nil, err
			}
			cfg.PalettePath = v
		case "--version":
			cfg.ShowVersion = true
		case "-h", "--help":
			return nil, usageError(programName)
		default:
			if len(arg) > 1 && arg[0] == '-' {
				return nil, fmt.Errorf("unknown flag %q\n%v", arg, usageError(programName))
			}
			if sawInput {
				return nil, fmt.Errorf("multiple input files given (%q and %q)", cfg.Input, arg)
			}
			cfg.Input = arg
			sawInput = true
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate rejects dimensions the rasterizer cannot work with.
func (c *Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image dimensions must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.ScaleWidth < 0 || c.ScaleHeight < 0 {
		return fmt.Errorf("scale dimensions must not be negative, got %dx%d", c.ScaleWidth, c.ScaleHeight)
	}
	if c.Output == "" {
		return fmt.Errorf("output path must not be empty")
	}
	return nil
}

// Stdin reports whether input should be read from standard input.
func (c *Config) Stdin() bool {
	return c.Input == "" || c.Input == "-"
}

// flagValue returns the value following args[*i], advancing the index.
func flagValue(args []string, i *int, flag string) (string, error) {
	if *i+1 >= len(args) {
		return "", fmt.Errorf("%s requires a value", flag)
	}
	*i++
	return args[*i], nil
}

// intFlagValue is flagValue for integer-valued flags.
func intFlagValue(args []string, i *int, flag string) (int, error) {
	v, err := flagValue(args, i, flag)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s requires an integer, got %q", flag, v)
	}
	return n, nil
}

func usageError(programName string) error {
	return fmt.Errorf("Usage: %s [-o output.png] [--width N] [--height N] [--scale-width N] [--scale-height N] [-f expr] [--palette file.gpl] [input-file]\nExample: %s -f 'channel == 9' drums.events",
		programName, programName)
}
