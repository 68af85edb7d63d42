package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/stellar-voice/leads-console/internal/lead"
	"github.com/stellar-voice/leads-console/internal/roster"
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "View and edit the lead roster",
	Long:  "Commands for listing leads, toggling call scheduling, and editing lead fields.",
}

// -- leads list --

var leadsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List leads from the calling backend",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		ro := roster.New(newWebhookClient())
		if err := ro.Refresh(ctx); err != nil {
			return eris.Wrap(err, "leads list")
		}

		tab, _ := cmd.Flags().GetString("filter")
		search, _ := cmd.Flags().GetString("search")
		date, _ := cmd.Flags().GetString("date")
		asc, _ := cmd.Flags().GetBool("asc")

		leads, counts := ro.Snapshot(lead.FilterOptions{
			Tab:       lead.ParseTab(tab),
			Search:    search,
			Date:      date,
			Ascending: asc,
		})

		if len(leads) == 0 {
			fmt.Fprintln(os.Stderr, "No leads found.")
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"#", "Name", "Phone", "Email", "Campaign Date", "Calls", "Status"})
		for i, l := range leads {
			t.AppendRow(table.Row{
				i + 1,
				lead.FullName(l),
				l.Get(lead.FieldPhoneNumber),
				l.Get(lead.FieldEmail),
				l.Get(lead.FieldCampaignDate),
				fmt.Sprintf("%d/%d", lead.CallsUsed(l), len(lead.CallSlots)),
				leadStatusLabel(l),
			})
		}
		t.Render()

		fmt.Printf("Total: %d  Active: %d  Inactive: %d  Hot: %d\n",
			counts.Total, counts.Active, counts.Inactive, counts.Hot)
		return nil
	},
}

func leadStatusLabel(l *lead.Record) string {
	switch {
	case lead.IsHot(l):
		return "hot"
	case lead.IsActive(l):
		return "active"
	default:
		return "inactive"
	}
}

// -- leads toggle --

var leadsToggleCmd = &cobra.Command{
	Use:   "toggle <phone>",
	Short: "Toggle a lead between scheduled and complete",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		ro := roster.New(newWebhookClient())
		if err := ro.Refresh(ctx); err != nil {
			return eris.Wrap(err, "leads toggle")
		}

		status, err := ro.ToggleStatus(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "leads toggle")
		}

		fmt.Printf("Lead %s is now %q\n", args[0], status)
		return nil
	},
}

// -- leads edit --

var leadsEditCmd = &cobra.Command{
	Use:   "edit <phone> <field>=<value> [<field>=<value> ...]",
	Short: "Edit fields on a lead",
	Long:  "Editable fields: " + strings.Join(lead.EditableFields, ", ") + ".",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		updates := make(map[string]string, len(args)-1)
		for _, pair := range args[1:] {
			field, value, ok := strings.Cut(pair, "=")
			if !ok {
				return eris.New("leads edit: arguments must be <field>=<value>")
			}
			updates[field] = value
		}

		ro := roster.New(newWebhookClient())
		if err := ro.Refresh(ctx); err != nil {
			return eris.Wrap(err, "leads edit")
		}

		if err := ro.Edit(ctx, args[0], updates); err != nil {
			return eris.Wrap(err, "leads edit")
		}

		fmt.Printf("Updated lead %s (%d field(s))\n", args[0], len(updates))
		return nil
	},
}

func init() {
	leadsListCmd.Flags().String("filter", "all", "tab filter: all, active, inactive, hot")
	leadsListCmd.Flags().String("search", "", "substring match on name, phone, or email")
	leadsListCmd.Flags().String("date", "", "only leads with this campaign date (YYYY-MM-DD)")
	leadsListCmd.Flags().Bool("asc", false, "sort oldest campaign date first")

	leadsCmd.AddCommand(leadsListCmd)
	leadsCmd.AddCommand(leadsToggleCmd)
	leadsCmd.AddCommand(leadsEditCmd)
	rootCmd.AddCommand(leadsCmd)
}
