package api

import (
	"context"
	"time"

	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/hrdash/hrdash/internal/records"
	"github.com/hrdash/hrdash/internal/rpc/hrv1"
	"github.com/hrdash/hrdash/internal/status"
	"github.com/hrdash/hrdash/internal/store"
)

// DaemonService implements the DaemonService gRPC service.
type DaemonService struct {
	hrv1.UnimplementedDaemonServiceServer

	profile   string
	startedAt time.Time
	machine   *status.Machine
	backend   store.Backend
}

// NewDaemonService creates a status service for the named profile.
func NewDaemonService(profile string, machine *status.Machine, backend store.Backend) *DaemonService {
	return &DaemonService{
		profile:   profile,
		startedAt: time.Now(),
		machine:   machine,
		backend:   backend,
	}
}

func (s *DaemonService) GetDaemonStatus(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	ds := hrv1.DaemonStatus{
		Profile: s.profile,
		State:   string(s.machine.Current()),
		Uptime:  time.Since(s.startedAt),
	}
	if s.backend != nil {
		ds.Backend = s.backend.Name()
		// Counts are best effort; a degraded store still reports state.
		if n, err := s.backend.CountDocuments(ctx, records.CollectionContacts); err == nil {
			ds.Contacts = n
		}
		if n, err := s.backend.CountDocuments(ctx, records.CollectionAppointments); err == nil {
			ds.Appointments = n
		}
	}
	return ds.Proto(), nil
}
