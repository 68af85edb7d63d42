package lead

// Canonical column names as stored by the backend sheet. Lookup is
// exact-match: case and spacing matter.
const (
	FieldFirstName      = "First Name"
	FieldLastName       = "Last Name"
	FieldPhoneNumber    = "Phone Number"
	FieldEmail          = "Email"
	FieldDateCreated    = "Date Created"
	FieldTimeCreated    = "Time Created"
	FieldCampaignDate   = "Campaign Date"
	FieldCallStatus     = "Call Status"
	FieldRecordingsLink = "Recordings link"
	FieldCallEvaluation = "Call Evaluation"
)

// Call status values understood by the automation backend.
const (
	StatusScheduled  = "Scheduled"
	StatusImmediate  = "Immediate call"
	StatusInProgress = "In Progress"
	StatusComplete   = "Complete"
)

// CallSlots are the nine per-lead call attempt columns.
var CallSlots = []string{
	"Call #1", "Call #2", "Call #3",
	"Call #4", "Call #5", "Call #6",
	"Call #7", "Call #8", "Call #9",
}

// CallStatusOptions lists the statuses offered by the edit form, in display order.
var CallStatusOptions = []string{
	StatusScheduled,
	StatusImmediate,
	StatusInProgress,
	StatusComplete,
}

// EditableFields are the columns the edit operation may change. Phone Number
// is excluded: it is the identity key used to address the lead.
var EditableFields = []string{
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldCallStatus,
	FieldCampaignDate,
}
