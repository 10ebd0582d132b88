package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ieglobal/go-docgen/pkg/pdftext"
)

func (a *app) verifyCmd() *cobra.Command {
	var showText bool
	cmd := &cobra.Command{
		Use:   "verify <file.pdf>...",
		Short: "Extract text from generated PDFs and check for unresolved placeholders",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				report, err := pdftext.Verify(data)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				if report.OK() {
					fmt.Fprintf(cmd.OutOrStdout(), "ok   %s (%d pages)\n", path, report.Pages)
				} else {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s (%d pages): unresolved %s\n", path, report.Pages, strings.Join(report.Residual, ", "))
				}
				if showText {
					fmt.Fprintln(cmd.OutOrStdout(), report.Text)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d document(s) contain unresolved placeholders", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showText, "text", false, "print the extracted text")
	return cmd
}
