package records

import (
	"errors"
	"fmt"
	"strings"
)

// Kind discriminates contact messages from appointment requests.
type Kind string

const (
	KindContact     Kind = "contact"
	KindAppointment Kind = "appointment"
	// KindAll disables the kind criterion in a filter.
	KindAll Kind = "all"
)

// Collection names in the document store.
const (
	CollectionContacts     = "contacts"
	CollectionAppointments = "appointments"
)

var (
	ErrInvalidKind   = errors.New("invalid record kind")
	ErrInvalidStatus = errors.New("invalid record status")
)

// Collection returns the store collection holding records of this kind.
func (k Kind) Collection() string {
	switch k {
	case KindContact:
		return CollectionContacts
	case KindAppointment:
		return CollectionAppointments
	default:
		return ""
	}
}

// KindForCollection maps a collection name back to its record kind.
func KindForCollection(collection string) (Kind, error) {
	switch collection {
	case CollectionContacts:
		return KindContact, nil
	case CollectionAppointments:
		return KindAppointment, nil
	default:
		return "", fmt.Errorf("%w: unknown collection %q", ErrInvalidKind, collection)
	}
}

// ParseKind accepts a kind, its collection name, or "all".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return KindAll, nil
	case "contact", "contacts":
		return KindContact, nil
	case "appointment", "appointments":
		return KindAppointment, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

// Status is the workflow state of a record.
type Status string

const (
	StatusNew      Status = "new"
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	// StatusAll disables the status criterion in a filter.
	StatusAll Status = "all"
)

// Statuses lists the assignable statuses in workflow order.
var Statuses = []Status{StatusNew, StatusPending, StatusApproved, StatusRejected}

// ParseStatus validates an operator-supplied status value.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Statuses {
		if st == known {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// MeetingType values for appointment requests.
const (
	MeetingInPerson = "in-person"
	MeetingRemote   = "remote"
)

// RawDocument is a document as listed from the store: its store-assigned id
// and the decoded key-value body.
type RawDocument struct {
	ID     string
	Fields map[string]any
}

// Document is the partial record read from a raw document. Optional fields
// are nil when the submitter did not supply them.
type Document struct {
	ID            string
	Name          *string
	Email         *string
	Phone         *string
	Company       *string
	Service       *string
	Message       *string
	PreferredDate *string
	PreferredTime *string
	MeetingType   *string
	Status        *Status

	// Timestamp and CreatedAt hold the creation time exactly as stored.
	Timestamp any
	CreatedAt any
}

// DocumentFromRaw extracts the known fields of a raw document. String fields
// holding a non-string value are treated as absent.
func DocumentFromRaw(raw RawDocument) Document {
	f := raw.Fields
	doc := Document{
		ID:            raw.ID,
		Name:          stringField(f, "name"),
		Email:         stringField(f, "email"),
		Phone:         stringField(f, "phone"),
		Company:       stringField(f, "company"),
		Service:       stringField(f, "service"),
		Message:       stringField(f, "message"),
		PreferredDate: stringField(f, "preferredDate"),
		PreferredTime: stringField(f, "preferredTime"),
		MeetingType:   stringField(f, "meetingType"),
		Timestamp:     f["timestamp"],
		CreatedAt:     f["createdAt"],
	}
	if s := stringField(f, "status"); s != nil {
		st := Status(*s)
		doc.Status = &st
	}
	return doc
}

func stringField(fields map[string]any, key string) *string {
	s, ok := fields[key].(string)
	if !ok {
		return nil
	}
	return &s
}

// Record is the canonical normalized item the dashboard operates on.
type Record struct {
	ID      string  `json:"id"`
	Kind    Kind    `json:"type"`
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Company *string `json:"company,omitempty"`
	Service *string `json:"service,omitempty"`
	Message *string `json:"message,omitempty"`

	// Appointment only.
	PreferredDate *string `json:"preferredDate,omitempty"`
	PreferredTime *string `json:"preferredTime,omitempty"`
	MeetingType   *string `json:"meetingType,omitempty"`

	Status *Status `json:"status,omitempty"`

	CreatedAtRaw     any    `json:"rawTimestamp,omitempty"`
	CreatedAtDisplay string `json:"timestamp,omitempty"`
}

// EffectiveStatus is the stored status, or new when none was stored.
func (r Record) EffectiveStatus() Status {
	if r.Status == nil {
		return StatusNew
	}
	return *r.Status
}

// Value dereferences an optional field, returning "" when absent.
func Value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
