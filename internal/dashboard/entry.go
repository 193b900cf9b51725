package dashboard

import (
	"fmt"
	"strings"

	"github.com/hrdash/hrdash/internal/records"
)

// NewEntry is an operator-entered record. Kind selects which of the
// kind-specific fields are written.
type NewEntry struct {
	Kind    records.Kind
	Name    string
	Email   string
	Phone   string
	Message string

	// Contact only.
	Company string
	Service string

	// Appointment only.
	PreferredDate string
	PreferredTime string
	MeetingType   string
}

// Payload builds the document body written to the store, with status new.
func (e NewEntry) Payload() (map[string]any, error) {
	p := map[string]any{
		"name":    e.Name,
		"email":   e.Email,
		"phone":   e.Phone,
		"message": e.Message,
		"status":  string(records.StatusNew),
	}
	switch e.Kind {
	case records.KindContact:
		p["company"] = e.Company
		p["service"] = e.Service
	case records.KindAppointment:
		mt := strings.TrimSpace(e.MeetingType)
		if mt == "" {
			mt = records.MeetingInPerson
		}
		if mt != records.MeetingInPerson && mt != records.MeetingRemote {
			return nil, fmt.Errorf("invalid meeting type %q: want %s or %s", e.MeetingType, records.MeetingInPerson, records.MeetingRemote)
		}
		p["preferredDate"] = e.PreferredDate
		p["preferredTime"] = e.PreferredTime
		p["meetingType"] = mt
	default:
		return nil, fmt.Errorf("%w: %q", records.ErrInvalidKind, e.Kind)
	}
	return p, nil
}
