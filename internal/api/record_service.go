package api

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/hrdash/hrdash/internal/bus"
	"github.com/hrdash/hrdash/internal/records"
	"github.com/hrdash/hrdash/internal/rpc/hrv1"
	"github.com/hrdash/hrdash/internal/status"
	"github.com/hrdash/hrdash/internal/store"
)

// RecordService implements the RecordService gRPC service over a document store.
type RecordService struct {
	hrv1.UnimplementedRecordServiceServer

	store   store.DocumentStore
	machine *status.Machine
	bus     *bus.Bus
	logger  *zap.Logger

	shutdownOnce sync.Once
	shutdown     chan struct{}
}

// NewRecordService creates a record service backed by s.
func NewRecordService(s store.DocumentStore, m *status.Machine, b *bus.Bus, logger *zap.Logger) *RecordService {
	return &RecordService{store: s, machine: m, bus: b, logger: logger, shutdown: make(chan struct{})}
}

// Shutdown ends every open event stream so the server can stop gracefully.
func (s *RecordService) Shutdown() {
	s.shutdownOnce.Do(func() { close(s.shutdown) })
}

func (s *RecordService) ListDocuments(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	if err := s.available(); err != nil {
		return nil, err
	}
	coll := req.GetValue()
	if _, err := records.KindForCollection(coll); err != nil {
		return nil, grpcstatus.Errorf(codes.InvalidArgument, "%v", err)
	}
	docs, err := s.store.ListDocuments(ctx, coll)
	if err != nil {
		s.logger.Error("list documents failed", zap.String("collection", coll), zap.Error(err))
		return nil, toStatus("list documents", err)
	}
	return hrv1.EncodeDocuments(docs), nil
}

func (s *RecordService) UpdateStatus(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	if err := s.available(); err != nil {
		return nil, err
	}
	u := hrv1.StatusUpdateFromProto(req)
	if _, err := records.KindForCollection(u.Collection); err != nil {
		return nil, grpcstatus.Errorf(codes.InvalidArgument, "%v", err)
	}
	st, err := records.ParseStatus(string(u.Status))
	if err != nil {
		return nil, grpcstatus.Errorf(codes.InvalidArgument, "%v", err)
	}
	if strings.TrimSpace(u.ID) == "" {
		return nil, grpcstatus.Error(codes.InvalidArgument, "document id is required")
	}

	if err := s.store.UpdateStatus(ctx, u.Collection, u.ID, st); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Error("update status failed", zap.String("collection", u.Collection), zap.String("id", u.ID), zap.Error(err))
		}
		return nil, toStatus("update status", err)
	}
	s.logger.Info("status updated", zap.String("collection", u.Collection), zap.String("id", u.ID), zap.String("status", string(st)))
	s.publish(bus.KindRecordStatusUpdated, bus.RecordChange{Collection: u.Collection, DocumentID: u.ID, Status: string(st)})
	return &emptypb.Empty{}, nil
}

func (s *RecordService) CreateDocument(ctx context.Context, req *structpb.Struct) (*wrapperspb.StringValue, error) {
	if err := s.available(); err != nil {
		return nil, err
	}
	cr := hrv1.CreateRequestFromProto(req)
	if _, err := records.KindForCollection(cr.Collection); err != nil {
		return nil, grpcstatus.Errorf(codes.InvalidArgument, "%v", err)
	}
	id, err := s.store.CreateDocument(ctx, cr.Collection, cr.Fields)
	if err != nil {
		s.logger.Error("create document failed", zap.String("collection", cr.Collection), zap.Error(err))
		return nil, toStatus("create document", err)
	}
	st, _ := cr.Fields["status"].(string)
	s.logger.Info("document created", zap.String("collection", cr.Collection), zap.String("id", id))
	s.publish(bus.KindRecordCreated, bus.RecordChange{Collection: cr.Collection, DocumentID: id, Status: st})
	return wrapperspb.String(id), nil
}

// WatchRecordEvents streams record.* bus events until the client goes away.
func (s *RecordService) WatchRecordEvents(_ *emptypb.Empty, stream grpc.ServerStreamingServer[structpb.Struct]) error {
	ch, unsub := s.bus.Subscribe("record.", 64)
	defer unsub()

	ctx := stream.Context()
	for {
		select {
		case evt := <-ch:
			if err := stream.Send(eventToProto(evt)); err != nil {
				return err
			}
		case <-ctx.Done():
			return nil
		case <-s.shutdown:
			return nil
		}
	}
}

func (s *RecordService) available() error {
	if s.machine != nil && s.machine.Current() == status.Error {
		return grpcstatus.Error(codes.Unavailable, "daemon is in ERROR state")
	}
	return nil
}

func (s *RecordService) publish(kind string, change bus.RecordChange) {
	if s.bus != nil {
		s.bus.Publish(bus.NewEvent(kind, change))
	}
}

func eventToProto(evt bus.Event) *structpb.Struct {
	e := hrv1.Event{ID: evt.ID, Kind: evt.Kind, Timestamp: evt.Timestamp}
	if change, ok := evt.Payload.(bus.RecordChange); ok {
		e.Collection = change.Collection
		e.DocumentID = change.DocumentID
		e.Status = change.Status
	}
	return e.Proto()
}

// toStatus maps store and domain errors onto gRPC codes.
func toStatus(op string, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return grpcstatus.Errorf(codes.NotFound, "%s: %v", op, err)
	case errors.Is(err, records.ErrInvalidKind), errors.Is(err, records.ErrInvalidStatus):
		return grpcstatus.Errorf(codes.InvalidArgument, "%s: %v", op, err)
	case errors.Is(err, context.Canceled):
		return grpcstatus.Errorf(codes.Canceled, "%s: %v", op, err)
	case errors.Is(err, context.DeadlineExceeded):
		return grpcstatus.Errorf(codes.DeadlineExceeded, "%s: %v", op, err)
	default:
		return grpcstatus.Errorf(codes.Internal, "%s: %v", op, err)
	}
}
