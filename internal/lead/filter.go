package lead

import (
	"sort"
	"strings"
)

// Tab selects which classification bucket the roster view shows.
type Tab string

const (
	TabAll      Tab = "all"
	TabActive   Tab = "active"
	TabInactive Tab = "inactive"
	TabHot      Tab = "hot"
)

// ParseTab maps a user-supplied tab name to a Tab, defaulting to all.
func ParseTab(s string) Tab {
	switch Tab(strings.ToLower(strings.TrimSpace(s))) {
	case TabActive:
		return TabActive
	case TabInactive:
		return TabInactive
	case TabHot:
		return TabHot
	default:
		return TabAll
	}
}

// FilterOptions describe one roster view: a tab, a free-text search over
// name/phone/email, a single-day campaign date filter, and sort direction.
type FilterOptions struct {
	Tab       Tab
	Search    string
	Date      string // single calendar day, any supported date layout
	Ascending bool
}

// Filter applies the view selection and returns leads sorted by Campaign
// Date. The hot tab short-circuits search and date: that matches the
// console's historical behavior and is asserted by tests so a future change
// is a deliberate decision, not an accident.
func Filter(leads []*Record, opts FilterOptions) []*Record {
	filterDate, filterDateOK := ParseDate(opts.Date)
	query := strings.ToLower(strings.TrimSpace(opts.Search))

	out := make([]*Record, 0, len(leads))
	for _, r := range leads {
		if opts.Tab == TabHot {
			if IsHot(r) {
				out = append(out, r)
			}
			continue
		}

		active := IsActive(r)
		if opts.Tab == TabActive && !active {
			continue
		}
		if opts.Tab == TabInactive && active {
			continue
		}

		if strings.TrimSpace(opts.Date) != "" {
			leadDate, ok := ParseDate(r.Get(FieldCampaignDate))
			if !ok || !filterDateOK || !SameDay(leadDate, filterDate) {
				continue
			}
		}

		if query != "" {
			name := strings.ToLower(r.Get(FieldFirstName) + " " + r.Get(FieldLastName))
			phone := strings.ToLower(r.Get(FieldPhoneNumber))
			email := strings.ToLower(r.Get(FieldEmail))
			if !strings.Contains(name, query) &&
				!strings.Contains(phone, query) &&
				!strings.Contains(email, query) {
				continue
			}
		}

		out = append(out, r)
	}

	Sort(out, opts.Ascending)
	return out
}

// Sort orders leads by parsed Campaign Date, newest first unless ascending.
// Ties keep their original relative order.
func Sort(leads []*Record, ascending bool) {
	sort.SliceStable(leads, func(i, j int) bool {
		a := ParseDateValue(leads[i].Get(FieldCampaignDate))
		b := ParseDateValue(leads[j].Get(FieldCampaignDate))
		if ascending {
			return a < b
		}
		return a > b
	})
}

// TabCounts are the per-tab totals shown on the roster tab labels. They are
// computed over the full unfiltered list, independent of the current view.
type TabCounts struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	Hot      int `json:"hot"`
}

// CountTabs classifies every lead once and returns the tab totals.
func CountTabs(leads []*Record) TabCounts {
	c := TabCounts{Total: len(leads)}
	for _, r := range leads {
		if IsActive(r) {
			c.Active++
		}
		if IsHot(r) {
			c.Hot++
		}
	}
	c.Inactive = c.Total - c.Active
	return c
}
