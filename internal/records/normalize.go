package records

// Normalize maps a document read from the collection of the given kind into
// a Record. Fields are copied through without validation and absent fields
// stay absent. Appointments read their creation time from createdAt when
// timestamp is missing. The stored status is kept as is.
func Normalize(doc Document, kind Kind, f Formatter) Record {
	raw := doc.Timestamp
	if kind == KindAppointment && isFalsy(raw) {
		raw = doc.CreatedAt
	}

	r := Record{
		ID:               doc.ID,
		Kind:             kind,
		Name:             doc.Name,
		Email:            doc.Email,
		Phone:            doc.Phone,
		Company:          doc.Company,
		Service:          doc.Service,
		Message:          doc.Message,
		Status:           doc.Status,
		CreatedAtRaw:     raw,
		CreatedAtDisplay: f.Format(NormalizeTimestamp(raw)),
	}
	if kind == KindAppointment {
		r.PreferredDate = doc.PreferredDate
		r.PreferredTime = doc.PreferredTime
		r.MeetingType = doc.MeetingType
	}
	return r
}

// NormalizeAll normalizes every raw document of one collection.
func NormalizeAll(raws []RawDocument, kind Kind, f Formatter) []Record {
	out := make([]Record, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Normalize(DocumentFromRaw(raw), kind, f))
	}
	return out
}
