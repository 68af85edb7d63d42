package ingest

import (
	"strings"
	"time"

	"github.com/stellar-voice/leads-console/internal/lead"
)

// canonicalFields is the fixed column set every transformed contact carries,
// in sheet order.
var canonicalFields = []string{
	lead.FieldFirstName,
	lead.FieldLastName,
	lead.FieldPhoneNumber,
	lead.FieldEmail,
	lead.FieldDateCreated,
	lead.FieldTimeCreated,
	lead.FieldCampaignDate,
	lead.FieldCallStatus,
}

// Transform maps parsed contacts to canonical leads. Column roles are
// resolved once from the first record's headers; a first-name column wins
// over a full-name column, and a full-name value is split on spaces into
// first token + remainder. Unmapped source columns pass through under their
// original header unless that header collides (case-insensitively) with a
// resolved column or exactly with a canonical field.
func Transform(contacts []*lead.Record, campaignDate string, immediate bool, now time.Time) []*lead.Record {
	if len(contacts) == 0 {
		return nil
	}

	dateCreated := now.Format("2006-01-02")
	timeCreated := now.Format("03:04 PM")

	callStatus := lead.StatusScheduled
	if immediate {
		callStatus = lead.StatusImmediate
	}

	headers := contacts[0].Keys()
	firstNameCol, hasFirstName := FindColumnName(headers, FirstNameAliases)
	lastNameCol, hasLastName := FindColumnName(headers, LastNameAliases)
	nameCol, hasName := FindColumnName(headers, NameAliases)
	phoneCol, _ := FindColumnName(headers, PhoneAliases)
	emailCol, _ := FindColumnName(headers, EmailAliases)

	mapped := make(map[string]struct{})
	for _, col := range []string{firstNameCol, lastNameCol, nameCol, phoneCol, emailCol} {
		if col != "" {
			mapped[strings.ToLower(col)] = struct{}{}
		}
	}

	canonical := make(map[string]struct{}, len(canonicalFields))
	for _, f := range canonicalFields {
		canonical[f] = struct{}{}
	}

	// Values are fetched with GetFold: roles are resolved from the first
	// record's headers, and a caller-assembled record whose key casing
	// differs from that first row still resolves.
	out := make([]*lead.Record, 0, len(contacts))
	for _, contact := range contacts {
		firstName, lastName := "", ""
		switch {
		case hasFirstName:
			firstName = contact.GetFold(firstNameCol)
			if hasLastName {
				lastName = contact.GetFold(lastNameCol)
			}
		case hasName:
			parts := strings.Split(strings.TrimSpace(contact.GetFold(nameCol)), " ")
			firstName = parts[0]
			lastName = strings.Join(parts[1:], " ")
		}

		r := lead.NewRecord()
		r.Set(lead.FieldFirstName, firstName)
		r.Set(lead.FieldLastName, lastName)
		r.Set(lead.FieldPhoneNumber, contact.GetFold(phoneCol))
		r.Set(lead.FieldEmail, contact.GetFold(emailCol))
		r.Set(lead.FieldDateCreated, dateCreated)
		r.Set(lead.FieldTimeCreated, timeCreated)
		r.Set(lead.FieldCampaignDate, campaignDate)
		r.Set(lead.FieldCallStatus, callStatus)

		for _, key := range contact.Keys() {
			if _, ok := mapped[strings.ToLower(key)]; ok {
				continue
			}
			if _, ok := canonical[key]; ok {
				continue
			}
			r.Set(key, contact.Get(key))
		}

		out = append(out, r)
	}
	return out
}
