// Package projectpb describes the portfolio.v1.ProjectService gRPC service
// shared by the client and the backend.
//
// Messages are protobuf well-known types: the request carries the owner id
// as a StringValue and the response is a ListValue of project structs, so no
// generated code is needed. Project is the wire shape of one list element.
// The contract is written down in portfolio/v1/projects.proto; ServiceDesc
// mirrors it.
package projectpb

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName         = "portfolio.v1.ProjectService"
	FetchProjectsMethod = "/" + ServiceName + "/FetchProjects"
	PingMethod          = "/" + ServiceName + "/Ping"

	// PingOK is the status a healthy backend answers Ping with.
	PingOK = "OK"
)

// Project is one element of a FetchProjects response.
// CompletedAt is RFC 3339 with nanoseconds.
type Project struct {
	ID            string   `json:"id"`
	OwnerID       string   `json:"ownerId"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Technologies  []string `json:"technologies"`
	RepositoryURL string   `json:"repositoryUrl,omitempty"`
	DemoURL       string   `json:"demoUrl,omitempty"`
	ThumbnailURL  string   `json:"thumbnailUrl,omitempty"`
	Images        []string `json:"images"`
	CompletedAt   string   `json:"completedAt"`
	Featured      bool     `json:"featured"`
}

// EncodeProjects converts projects into a ListValue of structs.
func EncodeProjects(projects []*Project) (*structpb.ListValue, error) {
	if projects == nil {
		projects = []*Project{}
	}
	b, err := json.Marshal(projects)
	if err != nil {
		return nil, fmt.Errorf("marshal projects: %w", err)
	}
	var items []any
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("unmarshal projects: %w", err)
	}
	return structpb.NewList(items)
}

// DecodeProjects is the inverse of EncodeProjects.
func DecodeProjects(l *structpb.ListValue) ([]*Project, error) {
	if l == nil || len(l.GetValues()) == 0 {
		return []*Project{}, nil
	}
	b, err := protojson.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal list: %w", err)
	}
	var out []*Project
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}
	return out, nil
}

// ProjectServiceClient is the client API for ProjectService.
type ProjectServiceClient interface {
	FetchProjects(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.ListValue, error)
	Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
}

type projectServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewProjectServiceClient(cc grpc.ClientConnInterface) ProjectServiceClient {
	return &projectServiceClient{cc: cc}
}

func (c *projectServiceClient) FetchProjects(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, FetchProjectsMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *projectServiceClient) Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, PingMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// ProjectServiceServer is the server API for ProjectService.
type ProjectServiceServer interface {
	FetchProjects(ctx context.Context, in *wrapperspb.StringValue) (*structpb.ListValue, error)
	Ping(ctx context.Context, in *emptypb.Empty) (*wrapperspb.StringValue, error)
}

func RegisterProjectServiceServer(s grpc.ServiceRegistrar, srv ProjectServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func fetchProjectsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProjectServiceServer).FetchProjects(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FetchProjectsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ProjectServiceServer).FetchProjects(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func pingHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProjectServiceServer).Ping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: PingMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ProjectServiceServer).Ping(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// ProtoFile is the service definition ServiceDesc is built from.
//
//go:embed portfolio/v1/projects.proto
var ProtoFile string

// ServiceDesc is the grpc.ServiceDesc for ProjectService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ProjectServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "FetchProjects", Handler: fetchProjectsHandler},
		{MethodName: "Ping", Handler: pingHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "portfolio/v1/projects.proto",
}
