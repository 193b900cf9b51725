package records

import "strings"

// Criteria selects a subset of records. The zero value selects everything.
type Criteria struct {
	Query  string
	Kind   Kind
	Status Status
}

// Filter returns the records matching every criterion, in input order.
func Filter(recs []Record, c Criteria) []Record {
	q := strings.ToLower(strings.TrimSpace(c.Query))
	out := make([]Record, 0, len(recs))
	for _, r := range recs {
		if !matchesKind(r, c.Kind) || !matchesStatus(r, c.Status) {
			continue
		}
		if q != "" && !matchesQuery(r, q) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesKind(r Record, k Kind) bool {
	return k == "" || k == KindAll || r.Kind == k
}

func matchesStatus(r Record, s Status) bool {
	return s == "" || s == StatusAll || r.EffectiveStatus() == s
}

// matchesQuery expects q already trimmed and lowercased. Phone is compared
// without case folding.
func matchesQuery(r Record, q string) bool {
	for _, p := range []*string{r.Name, r.Email, r.Company} {
		if p != nil && strings.Contains(strings.ToLower(*p), q) {
			return true
		}
	}
	return r.Phone != nil && strings.Contains(*r.Phone, q)
}
