package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ieglobal/go-docgen/pkg/agreement"
	"github.com/ieglobal/go-docgen/pkg/document"
	"github.com/ieglobal/go-docgen/pkg/orchestrator"
	"github.com/ieglobal/go-docgen/pkg/prompt"
	"github.com/ieglobal/go-docgen/pkg/validation"
)

type generateFlags struct {
	docType     string
	input       string
	interactive bool
	allFields   bool
	renderer    string
	out         string
	saveInput   string
}

func (a *app) generateCmd() *cobra.Command {
	var flags generateFlags
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one agreement",
		Long: `Generate one agreement from a JSON/YAML record, interactive prompts, or
defaults only.

Examples:
  docgen generate --type nda --input acme.yaml
  docgen generate --type partnership -i --save-input studio.yaml
  docgen generate --type sla --input acme.json --renderer text --out -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runGenerate(cmd, flags)
		},
	}
	cmd.Flags().StringVarP(&flags.docType, "type", "t", "", "document type ("+typeList()+")")
	cmd.Flags().StringVarP(&flags.input, "input", "f", "", "record file (.json or .yaml, - for stdin)")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "prompt for the record values")
	cmd.Flags().BoolVar(&flags.allFields, "all-fields", false, "prompt for every field, not only those the template uses")
	cmd.Flags().StringVarP(&flags.renderer, "renderer", "r", "", "renderer (pdf, text)")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "output file or directory, - for stdout")
	cmd.Flags().StringVar(&flags.saveInput, "save-input", "", "write the collected record as YAML")
	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, flags generateFlags) error {
	ctx := cmd.Context()
	t, err := parseTypeFlag(flags.docType)
	if err != nil {
		return err
	}
	if flags.interactive && flags.input != "" {
		return fmt.Errorf("--interactive and --input are mutually exclusive")
	}

	gen := a.generator()
	record, err := a.record(cmd, gen, t, flags)
	if err != nil {
		return err
	}
	if flags.saveInput != "" {
		if err := saveRecord(flags.saveInput, record); err != nil {
			return err
		}
	}
	for _, issue := range validation.ValidateRecord(t, record).Issues {
		a.log.Warn("input issue, default text will be used", "field", issue.Field, "message", issue.Message)
	}

	result, err := gen.Generate(ctx, orchestrator.Request{Type: t, Record: record, Renderer: flags.renderer})
	if err != nil {
		return err
	}

	if flags.out == "-" {
		_, err := cmd.OutOrStdout().Write(result.Data)
		return err
	}
	path := outputPath(flags.out, a.cfg.Output.Dir, result.Filename)
	if err := writeFile(path, result.Data); err != nil {
		return err
	}
	a.log.Info("document generated", "type", t, "path", path, "document_id", result.DocumentID, "pages", result.Pages)
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%d pages, %s)\n", path, result.Pages, result.Reference())
	return nil
}

func (a *app) record(cmd *cobra.Command, gen *orchestrator.Generator, t document.Type, flags generateFlags) (agreement.Record, error) {
	switch {
	case flags.input != "":
		return readRecord(cmd, t, flags.input)
	case flags.interactive:
		def, err := gen.Templates().Lookup(t)
		if err != nil {
			return nil, err
		}
		collector := prompt.NewCollector(prompt.WithDriver(a.driver), prompt.WithAllFields(flags.allFields))
		return collector.Collect(cmd.Context(), def)
	default:
		return agreement.DecodeJSON(t, nil)
	}
}

// outputPath resolves --out: an existing directory (or a trailing separator)
// receives the suggested filename, anything else is a file path.
func outputPath(out, defaultDir, filename string) string {
	if out == "" {
		return filepath.Join(defaultDir, filename)
	}
	if strings.HasSuffix(out, string(os.PathSeparator)) || strings.HasSuffix(out, "/") {
		return filepath.Join(out, filename)
	}
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return filepath.Join(out, filename)
	}
	return out
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func saveRecord(path string, record agreement.Record) error {
	data, err := yaml.Marshal(agreement.Encode(record))
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	return writeFile(path, data)
}

func readAll(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, nil
	}
	return io.ReadAll(r)
}
