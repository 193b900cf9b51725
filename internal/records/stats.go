package records

// Stats are the summary counters shown above the record list.
type Stats struct {
	Contacts            int            `json:"contacts"`
	Appointments        int            `json:"appointments"`
	PendingAppointments int            `json:"pendingAppointments"`
	NewContacts         int            `json:"newContacts"`
	ByStatus            map[Status]int `json:"byStatus"`
}

// Summarize counts records by kind and effective status.
func Summarize(recs []Record) Stats {
	s := Stats{ByStatus: make(map[Status]int, len(Statuses))}
	for _, r := range recs {
		st := r.EffectiveStatus()
		s.ByStatus[st]++
		switch r.Kind {
		case KindContact:
			s.Contacts++
			if st == StatusNew {
				s.NewContacts++
			}
		case KindAppointment:
			s.Appointments++
			if st == StatusPending {
				s.PendingAppointments++
			}
		}
	}
	return s
}
