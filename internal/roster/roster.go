// Package roster owns the in-memory lead list for one console session. The
// backend is the source of truth; the roster is replaced wholesale on each
// refresh and patched locally only after a confirmed write.
package roster

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/stellar-voice/leads-console/internal/lead"
	"github.com/stellar-voice/leads-console/pkg/webhook"
)

// ErrUpdateInFlight is returned when a write targets a lead that already has
// an unconfirmed write from this session. Advisory only: nothing stops
// another process from racing the same lead at the backend.
var ErrUpdateInFlight = eris.New("roster: an update for this lead is already in flight")

// ErrLeadNotFound is returned when no lead matches the given phone number.
var ErrLeadNotFound = eris.New("roster: lead not found")

// ErrFieldNotEditable is returned when an edit names a field outside
// lead.EditableFields. The phone number in particular is the identity key
// and can never change.
var ErrFieldNotEditable = eris.New("roster: field is not editable")

// Roster holds a session's lead list and applies optimistic updates.
type Roster struct {
	client webhook.Client

	mu       sync.Mutex
	leads    []*lead.Record
	inFlight map[string]struct{} // phone numbers with unconfirmed writes
}

// New creates an empty roster backed by the given webhook client.
func New(client webhook.Client) *Roster {
	return &Roster{
		client:   client,
		inFlight: make(map[string]struct{}),
	}
}

// Refresh replaces the lead list with a fresh fetch from the backend.
func (ro *Roster) Refresh(ctx context.Context) error {
	leads, err := ro.client.FetchLeads(ctx)
	if err != nil {
		return eris.Wrap(err, "roster: refresh")
	}

	ro.mu.Lock()
	ro.leads = leads
	ro.mu.Unlock()

	zap.L().Info("roster refreshed", zap.Int("leads", len(leads)))
	return nil
}

// Len returns the number of leads currently held.
func (ro *Roster) Len() int {
	ro.mu.Lock()
	defer ro.mu.Unlock()
	return len(ro.leads)
}

// Snapshot returns the current view: leads filtered and sorted per opts,
// plus tab counts computed over the full unfiltered list. Returned records
// are copies; mutating them does not touch roster state.
func (ro *Roster) Snapshot(opts lead.FilterOptions) ([]*lead.Record, lead.TabCounts) {
	ro.mu.Lock()
	all := make([]*lead.Record, len(ro.leads))
	for i, r := range ro.leads {
		all[i] = r.Clone()
	}
	ro.mu.Unlock()

	return lead.Filter(all, opts), lead.CountTabs(all)
}

// Find returns a copy of the lead with the given phone number.
func (ro *Roster) Find(phone string) (*lead.Record, bool) {
	ro.mu.Lock()
	defer ro.mu.Unlock()
	for _, r := range ro.leads {
		if r.Get(lead.FieldPhoneNumber) == phone {
			return r.Clone(), true
		}
	}
	return nil, false
}

// InFlight reports whether a write for the given phone is unconfirmed.
func (ro *Roster) InFlight(phone string) bool {
	ro.mu.Lock()
	defer ro.mu.Unlock()
	_, ok := ro.inFlight[phone]
	return ok
}

// ToggleStatus flips a lead between active and inactive by writing a new
// Call Status: active leads are marked Complete, inactive leads are put back
// to Scheduled. The local copy is patched only after the backend confirms.
// Returns the status that was written.
func (ro *Roster) ToggleStatus(ctx context.Context, phone string) (string, error) {
	ro.mu.Lock()
	var target *lead.Record
	for _, r := range ro.leads {
		if r.Get(lead.FieldPhoneNumber) == phone {
			target = r
			break
		}
	}
	if target == nil {
		ro.mu.Unlock()
		return "", ErrLeadNotFound
	}
	if _, busy := ro.inFlight[phone]; busy {
		ro.mu.Unlock()
		return "", ErrUpdateInFlight
	}
	ro.inFlight[phone] = struct{}{}

	newStatus := lead.StatusScheduled
	if lead.IsActive(target) {
		newStatus = lead.StatusComplete
	}
	ro.mu.Unlock()

	defer ro.clearInFlight(phone)

	updates := map[string]string{lead.FieldCallStatus: newStatus}
	if err := ro.client.UpdateLead(ctx, phone, updates); err != nil {
		zap.L().Error("status toggle failed",
			zap.String("phone", phone),
			zap.Error(err),
		)
		return "", eris.Wrap(err, "roster: toggle status")
	}

	ro.patch(phone, updates)
	zap.L().Info("status toggled",
		zap.String("phone", phone),
		zap.String("status", newStatus),
	)
	return newStatus, nil
}

// Edit writes the given field updates to a lead. Only fields in
// lead.EditableFields are accepted; the phone number itself cannot change.
// The local copy is patched only after the backend confirms.
func (ro *Roster) Edit(ctx context.Context, phone string, updates map[string]string) error {
	if len(updates) == 0 {
		return eris.New("roster: no updates given")
	}
	for field := range updates {
		if !editable(field) {
			return eris.Wrapf(ErrFieldNotEditable, "roster: edit %q", field)
		}
	}

	ro.mu.Lock()
	found := false
	for _, r := range ro.leads {
		if r.Get(lead.FieldPhoneNumber) == phone {
			found = true
			break
		}
	}
	if !found {
		ro.mu.Unlock()
		return ErrLeadNotFound
	}
	if _, busy := ro.inFlight[phone]; busy {
		ro.mu.Unlock()
		return ErrUpdateInFlight
	}
	ro.inFlight[phone] = struct{}{}
	ro.mu.Unlock()

	defer ro.clearInFlight(phone)

	if err := ro.client.UpdateLead(ctx, phone, updates); err != nil {
		zap.L().Error("lead edit failed",
			zap.String("phone", phone),
			zap.Error(err),
		)
		return eris.Wrap(err, "roster: edit")
	}

	ro.patch(phone, updates)
	zap.L().Info("lead edited",
		zap.String("phone", phone),
		zap.Int("fields", len(updates)),
	)
	return nil
}

func editable(field string) bool {
	for _, f := range lead.EditableFields {
		if f == field {
			return true
		}
	}
	return false
}

func (ro *Roster) patch(phone string, updates map[string]string) {
	ro.mu.Lock()
	defer ro.mu.Unlock()
	for _, r := range ro.leads {
		if r.Get(lead.FieldPhoneNumber) == phone {
			r.Merge(updates)
			return
		}
	}
}

func (ro *Roster) clearInFlight(phone string) {
	ro.mu.Lock()
	defer ro.mu.Unlock()
	delete(ro.inFlight, phone)
}
