package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stellar-voice/leads-console/internal/ingest"
	"github.com/stellar-voice/leads-console/internal/lead"
)

var (
	uploadFile         string
	uploadCampaignDate string
	uploadImmediate    bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a contact list to the calling backend",
	Long:  "Parses a CSV, TSV, or XLSX contact file, normalizes its columns, and submits the contacts for the chosen campaign date.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		now := time.Now()

		effectiveDate, err := ingest.EffectiveCampaignDate(uploadCampaignDate, uploadImmediate, now)
		if err != nil {
			return err
		}

		contacts, stats, err := ingest.ReadFile(uploadFile)
		if err != nil {
			return eris.Wrap(err, "upload")
		}
		if len(contacts) == 0 {
			return ingest.ErrNoRows
		}
		if err := ingest.ValidateColumns(contacts[0].Keys()); err != nil {
			return err
		}
		if stats.ShortRows > 0 || stats.LongRows > 0 {
			zap.L().Warn("rows did not match the header width",
				zap.Int("short_rows", stats.ShortRows),
				zap.Int("long_rows", stats.LongRows),
			)
		}

		transformed := ingest.Transform(contacts, effectiveDate, uploadImmediate, now)
		callStatus := lead.StatusScheduled
		if uploadImmediate {
			callStatus = lead.StatusImmediate
		}

		result, err := newWebhookClient().UploadContacts(ctx, transformed, callStatus)
		if err != nil {
			return eris.Wrap(err, "upload")
		}

		fmt.Printf("Added: %d  Duplicates: %d  Errors: %d\n",
			result.Added, result.Duplicates, result.Errors)

		if len(result.DuplicateContacts) > 0 {
			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"First Name", "Last Name", "Phone"})
			for _, d := range result.DuplicateContacts {
				t.AppendRow(table.Row{d.FirstName, d.LastName, d.Phone})
			}
			t.Render()
		}
		return nil
	},
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadFile, "file", "f", "", "contact file to upload (.csv, .tsv, or .xlsx)")
	uploadCmd.Flags().StringVar(&uploadCampaignDate, "campaign-date", "", "campaign date (YYYY-MM-DD, must be after today)")
	uploadCmd.Flags().BoolVar(&uploadImmediate, "immediate", false, "start calling immediately instead of scheduling")
	_ = uploadCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(uploadCmd)
}
