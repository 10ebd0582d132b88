package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ieglobal/go-docgen/pkg/templates"
	"github.com/ieglobal/go-docgen/pkg/validation"
)

type typeInfo struct {
	Type       string   `json:"type"`
	Label      string   `json:"label"`
	Title      string   `json:"title"`
	Signatures bool     `json:"signatures"`
	Tokens     []string `json:"tokens"`
}

func (a *app) typesCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "types",
		Short: "List supported document types and the placeholders they use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry := templates.Default()
			var infos []typeInfo
			for _, t := range registry.Types() {
				def, err := registry.Lookup(t)
				if err != nil {
					return err
				}
				infos = append(infos, typeInfo{
					Type:       string(t),
					Label:      t.Label(),
					Title:      def.Title,
					Signatures: def.Signatures.Required,
					Tokens:     def.Tokens(),
				})
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(infos)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TYPE\tLABEL\tSIGNATURES\tTITLE")
			for _, info := range infos {
				fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", info.Type, info.Label, info.Signatures, info.Title)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON including placeholder tokens")
	return cmd
}

func (a *app) schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema <type>",
		Short: "Print the JSON schema of a document type's input record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseTypeFlag(args[0])
			if err != nil {
				return err
			}
			data, err := validation.SchemaJSON(t)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(string(data)))
			return err
		},
	}
}

func (a *app) validateCmd() *cobra.Command {
	var (
		docType string
		input   string
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a record file against the input schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := parseTypeFlag(docType)
			if err != nil {
				return err
			}
			if input == "" {
				return fmt.Errorf("--input is required")
			}
			record, err := readRecord(cmd, t, input)
			if err != nil {
				return err
			}
			result := validation.ValidateRecord(t, record)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
			} else if result.Valid {
				fmt.Fprintln(cmd.OutOrStdout(), "valid")
			} else {
				for _, issue := range result.Issues {
					field := issue.Field
					if field == "" {
						field = "(record)"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", field, issue.Message)
				}
			}
			if !result.Valid {
				return fmt.Errorf("%s: %d issue(s)", input, len(result.Issues))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&docType, "type", "t", "", "document type ("+typeList()+")")
	cmd.Flags().StringVarP(&input, "input", "f", "", "record file (.json or .yaml, - for stdin)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}
