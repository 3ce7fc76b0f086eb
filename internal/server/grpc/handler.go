package grpc

import (
	"context"
	"strings"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/dmitrijs2005/gophfolio/internal/projectpb"
	"github.com/dmitrijs2005/gophfolio/internal/server/models"
)

func (s *GRPCServer) FetchProjects(ctx context.Context, req *wrapperspb.StringValue) (*structpb.ListValue, error) {

	ownerID := strings.TrimSpace(req.GetValue())
	if ownerID == "" {
		return nil, status.Error(codes.InvalidArgument, "owner id is required")
	}

	items, err := s.projects.ListByOwner(ctx, ownerID)
	if err != nil {
		if ctx.Err() != nil {
			return nil, status.FromContextError(ctx.Err()).Err()
		}
		s.logger.Error(ctx, "list projects failed", "owner", ownerID, "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	out := make([]*projectpb.Project, 0, len(items))
	for _, p := range items {
		out = append(out, toWire(p))
	}

	list, err := projectpb.EncodeProjects(out)
	if err != nil {
		s.logger.Error(ctx, "encode projects failed", "owner", ownerID, "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	s.logger.Info(ctx, "Projects served", "owner", ownerID, "count", len(out))
	return list, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	if s.health != nil {
		if err := s.health.PingContext(ctx); err != nil {
			s.logger.Warn(ctx, "storage is unreachable", "error", err)
			return nil, status.Error(codes.Unavailable, "storage unavailable")
		}
	}
	return wrapperspb.String(projectpb.PingOK), nil
}

func toWire(p *models.Project) *projectpb.Project {
	techs := p.Technologies
	if techs == nil {
		techs = []string{}
	}
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return &projectpb.Project{
		ID:            p.ID,
		OwnerID:       p.OwnerID,
		Title:         p.Title,
		Description:   p.Description,
		Technologies:  techs,
		RepositoryURL: p.RepositoryURL,
		DemoURL:       p.DemoURL,
		ThumbnailURL:  p.ThumbnailURL,
		Images:        images,
		CompletedAt:   p.CompletedAt.UTC().Format(time.RFC3339Nano),
		Featured:      p.Featured,
	}
}
