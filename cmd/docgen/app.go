package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"

	"github.com/ieglobal/go-docgen/internal/config"
	"github.com/ieglobal/go-docgen/internal/logger"
	"github.com/ieglobal/go-docgen/pkg/agreement"
	"github.com/ieglobal/go-docgen/pkg/document"
	"github.com/ieglobal/go-docgen/pkg/letterhead"
	"github.com/ieglobal/go-docgen/pkg/orchestrator"
	"github.com/ieglobal/go-docgen/pkg/prompt"
)

// app carries the state shared by every subcommand.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	log    *logger.Logger
	driver prompt.Driver
}

func newApp() *app {
	return &app{configPath: config.DefaultPath}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "docgen",
		Short:         "Generate IE-Global legal agreements",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath, "configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(
		a.generateCmd(),
		a.batchCmd(),
		a.typesCmd(),
		a.schemaCmd(),
		a.validateCmd(),
		a.verifyCmd(),
		a.serveCmd(),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	log, err := logger.New(cfg.Logging.Mode, cfg.Logging.Level)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	return nil
}

// generator wires the configured letterhead, branding and default renderer.
func (a *app) generator() *orchestrator.Generator {
	cfg := a.cfg
	var sourceOptions []letterhead.SourceOption
	if cfg.Assets.Logo != "" {
		sourceOptions = append(sourceOptions, letterhead.WithLogoName(cfg.Assets.Logo))
	}
	if cfg.Assets.MaxLogoWidth > 0 {
		sourceOptions = append(sourceOptions, letterhead.WithMaxWidth(cfg.Assets.MaxLogoWidth))
	}
	source := letterhead.DirSource(cfg.Assets.Dir, sourceOptions...)
	if err := source.Err(); err != nil {
		a.log.Warn("letterhead logo unavailable, using text letterhead", "dir", cfg.Assets.Dir, "error", err)
	}

	options := []orchestrator.Option{
		orchestrator.WithLogoSource(source),
		orchestrator.WithDefaultRenderer(cfg.Output.Renderer),
	}
	if cfg.Branding.Theme != "" || len(cfg.Branding.Tokens) > 0 {
		options = append(options, orchestrator.WithTheme(&theme.RendererConfig{
			Theme:   cfg.Branding.Theme,
			Variant: cfg.Branding.Variant,
			Tokens:  cfg.Branding.Tokens,
		}))
	}
	return orchestrator.New(options...)
}

func parseTypeFlag(tag string) (document.Type, error) {
	if strings.TrimSpace(tag) == "" {
		return "", fmt.Errorf("--type is required (one of %s)", typeList())
	}
	return document.ParseType(tag)
}

func typeList() string {
	tags := make([]string, 0, len(document.Types()))
	for _, t := range document.Types() {
		tags = append(tags, string(t))
	}
	return strings.Join(tags, ", ")
}

// readRecord decodes a JSON or YAML record file; "-" reads stdin.
func readRecord(cmd *cobra.Command, t document.Type, path string) (agreement.Record, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = readAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return agreement.DecodeJSON(t, data)
	}
	return agreement.DecodeYAML(t, data)
}
