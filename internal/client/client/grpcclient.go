package client

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/dmitrijs2005/gophfolio/internal/client/models"
	"github.com/dmitrijs2005/gophfolio/internal/common"
	"github.com/dmitrijs2005/gophfolio/internal/projectpb"
)

// DefaultRequestTimeout bounds a single RPC when the caller's context has no
// earlier deadline.
const DefaultRequestTimeout = 12 * time.Second

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      projectpb.ProjectServiceClient
	newID       func() string
}

func NewGRPCClient(endpointURL string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	if endpointURL == "" {
		return nil, ErrNoEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout, newID: uuid.NewString}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.requestIDInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", endpointURL, err)
	}
	c.conn = conn
	c.client = projectpb.NewProjectServiceClient(conn)
	return c, nil
}

func withRequestID(ctx context.Context, id string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.RequestIDHeaderName, id)
	return metadata.NewOutgoingContext(ctx, md)
}

func (c *GRPCClient) requestIDInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	return invoker(withRequestID(ctx, c.newID()), method, req, reply, cc, opts...)
}

// FetchProjects implements projects.Repository.
func (c *GRPCClient) FetchProjects(ctx context.Context, ownerID string) ([]models.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.FetchProjects(ctx, wrapperspb.String(ownerID))
	if err != nil {
		return nil, c.mapError(err)
	}

	wire, err := projectpb.DecodeProjects(resp)
	if err != nil {
		return nil, err
	}

	result := make([]models.Project, 0, len(wire))
	for _, w := range wire {
		p, err := fromWire(w)
		if err != nil {
			return nil, err
		}
		if p.OwnerID == "" {
			p.OwnerID = ownerID
		}
		result = append(result, p)
	}
	return result, nil
}

func (c *GRPCClient) Ping(ctx context.Context) error {
	resp, err := c.client.Ping(ctx, &emptypb.Empty{})
	if err != nil {
		return c.mapError(err)
	}
	if resp.GetValue() != projectpb.PingOK {
		return ErrUnavailable
	}
	return nil
}

func (c *GRPCClient) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	case codes.NotFound:
		return fmt.Errorf("%w: %s", common.ErrorNotFound, st.Message())
	case codes.Canceled:
		return context.Canceled
	case codes.Internal:
		return fmt.Errorf("%w: %s", common.ErrorInternal, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

func fromWire(w *projectpb.Project) (models.Project, error) {
	p := models.Project{
		ID:            w.ID,
		OwnerID:       w.OwnerID,
		Title:         w.Title,
		Description:   w.Description,
		Technologies:  nonNil(w.Technologies),
		RepositoryURL: w.RepositoryURL,
		DemoURL:       w.DemoURL,
		ThumbnailURL:  w.ThumbnailURL,
		Images:        nonNil(w.Images),
		Featured:      w.Featured,
	}
	if w.CompletedAt != "" {
		t, err := time.Parse(time.RFC3339Nano, w.CompletedAt)
		if err != nil {
			return models.Project{}, fmt.Errorf("project %s completedAt: %w", w.ID, err)
		}
		p.CompletedAt = t
	}
	return p, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
