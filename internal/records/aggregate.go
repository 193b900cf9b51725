package records

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Analytics holds record counts bucketed by day, ISO week and month.
type Analytics struct {
	Daily   map[string]int `json:"daily"`
	Weekly  map[string]int `json:"weekly"`
	Monthly map[string]int `json:"monthly"`
}

// Aggregate buckets records by the UTC instant of their raw creation time.
// Records without a usable timestamp are skipped.
func Aggregate(recs []Record) Analytics {
	a := Analytics{
		Daily:   make(map[string]int),
		Weekly:  make(map[string]int),
		Monthly: make(map[string]int),
	}
	for _, r := range recs {
		t, ok := Instant(r.CreatedAtRaw)
		if !ok {
			continue
		}
		a.Daily[DayKey(t)]++
		a.Weekly[WeekKey(t)]++
		a.Monthly[MonthKey(t)]++
	}
	return a
}

// DayKey formats t as YYYY-MM-DD in UTC.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// MonthKey formats t as YYYY-MM in UTC.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// WeekKey labels t with its ISO 8601 week number. Weeks start on Monday and
// belong to the year holding their Thursday.
func WeekKey(t time.Time) string {
	_, w := t.UTC().ISOWeek()
	return fmt.Sprintf("Week %d", w)
}

// Bucket is one labelled count.
type Bucket struct {
	Label string
	Count int
}

// Buckets returns the entries of m in ascending label order. Week labels
// sort by number, date labels lexically.
func Buckets(m map[string]int) []Bucket {
	out := make([]Bucket, 0, len(m))
	for k, v := range m {
		out = append(out, Bucket{Label: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		wi, iok := weekNumber(out[i].Label)
		wj, jok := weekNumber(out[j].Label)
		if iok && jok {
			return wi < wj
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// LastN returns at most the n latest buckets of a sorted slice.
func LastN(b []Bucket, n int) []Bucket {
	if n <= 0 || len(b) <= n {
		return b
	}
	return b[len(b)-n:]
}

func weekNumber(label string) (int, bool) {
	rest, ok := strings.CutPrefix(label, "Week ")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}
