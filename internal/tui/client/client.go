package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	grpcstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/hrdash/hrdash/internal/records"
	"github.com/hrdash/hrdash/internal/rpc/hrv1"
	"github.com/hrdash/hrdash/internal/store"
)

// Client wraps the gRPC connection to a profile daemon. It satisfies
// store.DocumentStore, so a dashboard can run against the daemon directly.
type Client struct {
	conn    *grpc.ClientConn
	Records hrv1.RecordServiceClient
	Daemon  hrv1.DaemonServiceClient
}

var _ store.DocumentStore = (*Client)(nil)

// New dials the daemon's Unix domain socket and returns typed service clients.
func New(socketPath string) (*Client, error) {
	conn, err := grpc.NewClient(
		"unix://"+socketPath,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("dial daemon: %w", err)
	}

	return &Client{
		conn:    conn,
		Records: hrv1.NewRecordServiceClient(conn),
		Daemon:  hrv1.NewDaemonServiceClient(conn),
	}, nil
}

// Close closes the gRPC connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) ListDocuments(ctx context.Context, collection string) ([]records.RawDocument, error) {
	resp, err := c.Records.ListDocuments(ctx, wrapperspb.String(collection))
	if err != nil {
		return nil, fromStatus(err)
	}
	return hrv1.DecodeDocuments(resp), nil
}

func (c *Client) UpdateStatus(ctx context.Context, collection, id string, status records.Status) error {
	req := hrv1.StatusUpdate{Collection: collection, ID: id, Status: status}
	if _, err := c.Records.UpdateStatus(ctx, req.Proto()); err != nil {
		return fromStatus(err)
	}
	return nil
}

func (c *Client) CreateDocument(ctx context.Context, collection string, fields map[string]any) (string, error) {
	req := hrv1.CreateRequest{Collection: collection, Fields: fields}
	resp, err := c.Records.CreateDocument(ctx, req.Proto())
	if err != nil {
		return "", fromStatus(err)
	}
	return resp.GetValue(), nil
}

// Status reports the daemon's state and document counts.
func (c *Client) Status(ctx context.Context) (hrv1.DaemonStatus, error) {
	resp, err := c.Daemon.GetDaemonStatus(ctx, &emptypb.Empty{})
	if err != nil {
		return hrv1.DaemonStatus{}, fromStatus(err)
	}
	return hrv1.DaemonStatusFromProto(resp), nil
}

// Watch streams record events until ctx is cancelled or the daemon goes
// away. The returned channel is closed when the stream ends.
func (c *Client) Watch(ctx context.Context) (<-chan hrv1.Event, error) {
	stream, err := c.Records.WatchRecordEvents(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, fromStatus(err)
	}
	ch := make(chan hrv1.Event, 16)
	go func() {
		defer close(ch)
		for {
			msg, err := stream.Recv()
			if err != nil {
				return
			}
			select {
			case ch <- hrv1.EventFromProto(msg):
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

// fromStatus turns gRPC status codes back into the errors the store returns
// locally, so callers can use errors.Is either way.
func fromStatus(err error) error {
	if err == nil || errors.Is(err, io.EOF) {
		return err
	}
	st, ok := grpcstatus.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.NotFound:
		return fmt.Errorf("%s: %w", st.Message(), store.ErrNotFound)
	case codes.InvalidArgument:
		return fmt.Errorf("%s: %w", st.Message(), ErrInvalidArgument)
	case codes.Unavailable:
		return fmt.Errorf("%s: %w", st.Message(), ErrUnavailable)
	case codes.Canceled:
		return fmt.Errorf("%s: %w", st.Message(), context.Canceled)
	case codes.DeadlineExceeded:
		return fmt.Errorf("%s: %w", st.Message(), context.DeadlineExceeded)
	}
	return err
}

var (
	// ErrInvalidArgument is returned when the daemon rejects a request.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnavailable is returned when the daemon cannot reach its store.
	ErrUnavailable = errors.New("daemon unavailable")
)
