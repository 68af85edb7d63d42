package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/stellar-voice/leads-console/internal/ingest"
)

var templateOut string

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Write the recommended CSV template",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := templateOut
		if out == "" {
			out = cfg.Upload.TemplateFilename
		}
		if out == "" {
			out = ingest.TemplateFilename
		}
		if err := ingest.WriteTemplate(out); err != nil {
			return eris.Wrap(err, "template")
		}
		fmt.Printf("Wrote %s\n", out)
		return nil
	},
}

func init() {
	templateCmd.Flags().StringVarP(&templateOut, "out", "o", "", "output path (default from config)")
	rootCmd.AddCommand(templateCmd)
}
