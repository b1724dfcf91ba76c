package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"simpleparser/internal/config"
)

// settings — конфиг, поверх которого применены явно заданные флаги.
type settings struct {
	cfg        *config.Config
	useColor   bool
	quiet      bool
	timings    bool
	diagFormat string
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Flags()

	cfgPath, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg *config.Config
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		return nil, err
	}

	if flags.Changed("max-diagnostics") {
		if cfg.Parse.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return nil, err
		}
	}
	for flag, dst := range map[string]*string{
		"trace":        &cfg.Trace.Output,
		"trace-level":  &cfg.Trace.Level,
		"trace-format": &cfg.Trace.Format,
		"trace-mode":   &cfg.Trace.Mode,
	} {
		if !flags.Changed(flag) {
			continue
		}
		if *dst, err = flags.GetString(flag); err != nil {
			return nil, err
		}
	}
	// --trace без уровня включает фазы
	if flags.Changed("trace") && !flags.Changed("trace-level") && cfg.Trace.Level == "off" {
		cfg.Trace.Level = "phase"
	}

	s := &settings{cfg: cfg}
	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return nil, err
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return nil, err
	}
	if s.diagFormat, err = flags.GetString("diagnostics-format"); err != nil {
		return nil, err
	}
	switch s.diagFormat {
	case "pretty", "json", "short":
	default:
		return nil, fmt.Errorf("unknown diagnostics format %q (expected pretty|json|short)", s.diagFormat)
	}

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(colorFlag) {
	case "on":
		s.useColor = true
	case "off":
		s.useColor = false
	case "auto":
		s.useColor = isTerminal(os.Stderr)
	default:
		return nil, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
	color.NoColor = !s.useColor
	return s, nil
}
