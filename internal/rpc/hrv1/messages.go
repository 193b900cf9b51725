package hrv1

import (
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/hrdash/hrdash/internal/records"
)

// NewValue converts a plain Go value into a protobuf Value. Values structpb
// cannot represent directly are sent as their string form. Integers travel
// as doubles, so magnitudes above 2^53 lose precision.
func NewValue(v any) *structpb.Value {
	switch t := v.(type) {
	case map[string]any:
		return structpb.NewStructValue(NewStruct(t))
	case []any:
		vals := make([]*structpb.Value, len(t))
		for i, e := range t {
			vals[i] = NewValue(e)
		}
		return structpb.NewListValue(&structpb.ListValue{Values: vals})
	case time.Time:
		return structpb.NewStringValue(t.UTC().Format(time.RFC3339Nano))
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return structpb.NewNumberValue(f)
		}
		return structpb.NewStringValue(t.String())
	}
	val, err := structpb.NewValue(v)
	if err != nil {
		return structpb.NewStringValue(fmt.Sprint(v))
	}
	return val
}

// NewStruct converts a map into a protobuf Struct without failing.
func NewStruct(m map[string]any) *structpb.Struct {
	s := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(m))}
	for k, v := range m {
		s.Fields[k] = NewValue(v)
	}
	return s
}

func str(s *structpb.Struct, key string) string {
	return s.GetFields()[key].GetStringValue()
}

func num(s *structpb.Struct, key string) float64 {
	return s.GetFields()[key].GetNumberValue()
}

// EncodeDocuments packs listed documents as {"documents": [{"id", "fields"}]}.
func EncodeDocuments(docs []records.RawDocument) *structpb.Struct {
	list := make([]*structpb.Value, 0, len(docs))
	for _, d := range docs {
		list = append(list, structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			"id":     structpb.NewStringValue(d.ID),
			"fields": structpb.NewStructValue(NewStruct(d.Fields)),
		}}))
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"documents": structpb.NewListValue(&structpb.ListValue{Values: list}),
	}}
}

// DecodeDocuments is the inverse of EncodeDocuments. Numbers decode as float64.
func DecodeDocuments(s *structpb.Struct) []records.RawDocument {
	vals := s.GetFields()["documents"].GetListValue().GetValues()
	docs := make([]records.RawDocument, 0, len(vals))
	for _, v := range vals {
		d := v.GetStructValue()
		fields := d.GetFields()["fields"].GetStructValue().AsMap()
		if fields == nil {
			fields = map[string]any{}
		}
		docs = append(docs, records.RawDocument{ID: str(d, "id"), Fields: fields})
	}
	return docs
}

// StatusUpdate asks the daemon to set the status of one document.
type StatusUpdate struct {
	Collection string
	ID         string
	Status     records.Status
}

func (u StatusUpdate) Proto() *structpb.Struct {
	return NewStruct(map[string]any{
		"collection": u.Collection,
		"id":         u.ID,
		"status":     string(u.Status),
	})
}

func StatusUpdateFromProto(s *structpb.Struct) StatusUpdate {
	return StatusUpdate{
		Collection: str(s, "collection"),
		ID:         str(s, "id"),
		Status:     records.Status(str(s, "status")),
	}
}

// CreateRequest asks the daemon to insert a document.
type CreateRequest struct {
	Collection string
	Fields     map[string]any
}

func (r CreateRequest) Proto() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"collection": structpb.NewStringValue(r.Collection),
		"fields":     structpb.NewStructValue(NewStruct(r.Fields)),
	}}
}

func CreateRequestFromProto(s *structpb.Struct) CreateRequest {
	fields := s.GetFields()["fields"].GetStructValue().AsMap()
	if fields == nil {
		fields = map[string]any{}
	}
	return CreateRequest{Collection: str(s, "collection"), Fields: fields}
}

// Event is a record change notification on the watch stream.
type Event struct {
	ID         string
	Kind       string
	Collection string
	DocumentID string
	Status     string
	Timestamp  time.Time
}

func (e Event) Proto() *structpb.Struct {
	return NewStruct(map[string]any{
		"id":          e.ID,
		"kind":        e.Kind,
		"collection":  e.Collection,
		"documentId":  e.DocumentID,
		"status":      e.Status,
		"timestampMs": e.Timestamp.UnixMilli(),
	})
}

func EventFromProto(s *structpb.Struct) Event {
	return Event{
		ID:         str(s, "id"),
		Kind:       str(s, "kind"),
		Collection: str(s, "collection"),
		DocumentID: str(s, "documentId"),
		Status:     str(s, "status"),
		Timestamp:  time.UnixMilli(int64(num(s, "timestampMs"))),
	}
}

// DaemonStatus describes a running daemon.
type DaemonStatus struct {
	Profile      string
	State        string
	Backend      string
	Uptime       time.Duration
	Contacts     int64
	Appointments int64
}

func (d DaemonStatus) Proto() *structpb.Struct {
	return NewStruct(map[string]any{
		"profile":      d.Profile,
		"state":        d.State,
		"backend":      d.Backend,
		"uptimeMs":     d.Uptime.Milliseconds(),
		"contacts":     d.Contacts,
		"appointments": d.Appointments,
	})
}

func DaemonStatusFromProto(s *structpb.Struct) DaemonStatus {
	return DaemonStatus{
		Profile:      str(s, "profile"),
		State:        str(s, "state"),
		Backend:      str(s, "backend"),
		Uptime:       time.Duration(num(s, "uptimeMs")) * time.Millisecond,
		Contacts:     int64(num(s, "contacts")),
		Appointments: int64(num(s, "appointments")),
	}
}
