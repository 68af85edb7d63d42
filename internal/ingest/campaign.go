package ingest

import (
	"time"

	"github.com/rotisserie/eris"

	"github.com/stellar-voice/leads-console/internal/lead"
)

// ErrCampaignDateRequired is returned when an upload is scheduled without a
// campaign date and "call immediately" is off.
var ErrCampaignDateRequired = eris.New("ingest: select a campaign date or enable call immediately")

// ErrCampaignDatePast is returned when the campaign date is not after today.
// Scheduled campaigns start tomorrow at the earliest; same-day calling is
// what the immediate flag is for.
var ErrCampaignDatePast = eris.New("ingest: campaign date must be tomorrow or later")

// EffectiveCampaignDate resolves the campaign date an upload will carry.
// Immediate uploads use today's date and ignore the supplied value.
func EffectiveCampaignDate(campaignDate string, immediate bool, now time.Time) (string, error) {
	if immediate {
		return now.Format("2006-01-02"), nil
	}
	if campaignDate == "" {
		return "", ErrCampaignDateRequired
	}
	d, ok := lead.ParseDate(campaignDate)
	if !ok {
		return "", eris.Errorf("ingest: invalid campaign date %q", campaignDate)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if !d.After(today) {
		return "", ErrCampaignDatePast
	}
	return d.Format("2006-01-02"), nil
}
