package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophgate/internal/api"
	"github.com/dmitrijs2005/gophgate/internal/common"
	"github.com/dmitrijs2005/gophgate/internal/logging"
	"github.com/dmitrijs2005/gophgate/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophgate/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

const testSecret = "secret"

// startBufServer runs s over an in-memory listener until the test ends.
func startBufServer(t *testing.T, s *GRPCServer) *api.AuthServiceClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.serve(ctx, lis) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return api.NewAuthServiceClient(conn)
}

func newMemoryServer() *GRPCServer {
	us := services.NewUserService(repomanager.NewMemoryRepositoryManager(), testSecret, time.Minute)
	return NewGRPCServer("bufnet", nopLogger{}, us, testSecret)
}

func TestServer_RegisterLoginProfile(t *testing.T) {
	c := startBufServer(t, newMemoryServer())
	ctx := context.Background()

	reg, err := c.Register(ctx, &api.RegisterRequest{Name: "Ana", Email: "ana@test.com", Password: []byte("123456")})
	require.NoError(t, err)
	require.NotNil(t, reg.User)
	assert.Equal(t, "Ana", reg.User.Name)
	assert.NotEmpty(t, reg.AccessToken)

	_, err = c.Register(ctx, &api.RegisterRequest{Name: "Ana", Email: "ana@test.com", Password: []byte("123456")})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	login, err := c.Login(ctx, &api.LoginRequest{Email: "ana@test.com", Password: []byte("123456")})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)

	_, err = c.Login(ctx, &api.LoginRequest{Email: "ana@test.com", Password: []byte("nope!!")})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	authCtx := metadata.AppendToOutgoingContext(ctx, common.AccessTokenHeaderName, login.AccessToken)
	prof, err := c.Profile(authCtx, &api.ProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, "ana@test.com", prof.User.Email)

	_, err = c.Profile(ctx, &api.ProfileRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	ping, err := c.Ping(ctx, &api.PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", ping.Status)
}

func TestServer_RegisterValidationMessage(t *testing.T) {
	c := startBufServer(t, newMemoryServer())

	_, err := c.Register(context.Background(), &api.RegisterRequest{Name: "Ana", Email: "bob@@x", Password: []byte("123456")})
	st := status.Convert(err)
	assert.Equal(t, codes.InvalidArgument, st.Code())
	assert.Equal(t, "Please enter a valid email.", st.Message())
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:0", nopLogger{}, nil, testSecret)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:99999", nopLogger{}, nil, testSecret)

	if err := srv.Run(context.Background()); err == nil {
		t.Fatal("expected listen error")
	}
}
