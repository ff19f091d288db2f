package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophgate/internal/api"
	"github.com/dmitrijs2005/gophgate/internal/common"
	"github.com/dmitrijs2005/gophgate/internal/server/models"
	"github.com/dmitrijs2005/gophgate/internal/server/services"
	"github.com/dmitrijs2005/gophgate/internal/validation"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.AuthResponse, error) {
	defer common.WipeByteArray(req.Password)

	sess, err := s.users.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Registered", "user_id", sess.User.ID)
	return toAuthResponse(sess), nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.AuthResponse, error) {
	defer common.WipeByteArray(req.Password)

	sess, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return toAuthResponse(sess), nil
}

func (s *GRPCServer) Profile(ctx context.Context, _ *api.ProfileRequest) (*api.ProfileResponse, error) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	u, err := s.users.Profile(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.ProfileResponse{User: toUserInfo(u)}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

// toStatus maps service errors to gRPC codes. Validation messages are passed
// through verbatim so clients can show them as-is.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	var ve *validation.ValidationError
	switch {
	case errors.As(err, &ve):
		return status.Error(codes.InvalidArgument, ve.Message)
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	default:
		s.logger.Error(ctx, err.Error())
		return status.Error(codes.Internal, "internal error")
	}
}

func toUserInfo(u *models.User) *api.UserInfo {
	return &api.UserInfo{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt}
}

func toAuthResponse(sess *services.Session) *api.AuthResponse {
	return &api.AuthResponse{User: toUserInfo(sess.User), AccessToken: sess.AccessToken}
}
