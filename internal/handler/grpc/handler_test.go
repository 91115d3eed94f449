package grpc

import (
	"context"
	"fmt"
	"net"
	"testing"

	"github.com/MKhiriev/go-state-sync/internal/logger"
	"github.com/MKhiriev/go-state-sync/internal/mock"
	"github.com/MKhiriev/go-state-sync/internal/service"
	"github.com/MKhiriev/go-state-sync/internal/store"
	"github.com/MKhiriev/go-state-sync/internal/utils"
	"github.com/MKhiriev/go-state-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

const (
	testToken = "valid-token"
	testOwner = "device-1"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

type testEnv struct {
	conn   *grpc.ClientConn
	states *mock.MockRemoteStateService
	auth   *mock.MockAuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctrl := gomock.NewController(t)
	env := &testEnv{
		states: mock.NewMockRemoteStateService(ctrl),
		auth:   mock.NewMockAuthService(ctrl),
	}

	h := NewHandler(&service.Services{RemoteStateService: env.states, AuthService: env.auth}, logger.Nop())

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(h.ServerOptions()...)
	h.Register(srv)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(utils.JSONCodecName)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	env.conn = conn
	return env
}

func (e *testEnv) allowToken() {
	e.auth.EXPECT().ParseToken(gomock.Any(), testToken).Return(models.Token{Owner: testOwner}, nil).AnyTimes()
}

func (e *testEnv) call(ctx context.Context, method string, req, resp any) error {
	return e.conn.Invoke(ctx, utils.FullMethodName(method), req, resp)
}

func authedCtx() context.Context {
	return metadata.AppendToOutgoingContext(context.Background(), utils.GRPCAuthorizationKey, "Bearer "+testToken)
}

type ownerMatcher string

func (m ownerMatcher) Matches(x any) bool {
	ctx, ok := x.(context.Context)
	if !ok {
		return false
	}
	owner, ok := utils.GetOwnerFromContext(ctx)
	return ok && owner == string(m)
}

func (m ownerMatcher) String() string { return "context with owner " + string(m) }

// ── Tests ────────────────────────────────────────────────────────────────────

func TestPing_WithoutToken(t *testing.T) {
	env := newTestEnv(t)
	env.states.EXPECT().Ping(gomock.Any()).Return(nil)

	var resp models.HealthResponse
	require.NoError(t, env.call(context.Background(), utils.RemoteStatesPing, &models.HealthResponse{}, &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestPing_StorageDown(t *testing.T) {
	env := newTestEnv(t)
	env.states.EXPECT().Ping(gomock.Any()).Return(fmt.Errorf("%w: dial", store.ErrExecutingQuery))

	err := env.call(context.Background(), utils.RemoteStatesPing, &models.HealthResponse{}, &models.HealthResponse{})
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.NotContains(t, status.Convert(err).Message(), "dial")
}

func TestAuthInterceptor(t *testing.T) {
	tests := []struct {
		name  string
		ctx   context.Context
		setup func(e *testEnv)
	}{
		{
			name: "no metadata",
			ctx:  context.Background(),
		},
		{
			name: "not a bearer token",
			ctx:  metadata.AppendToOutgoingContext(context.Background(), utils.GRPCAuthorizationKey, "Basic abc"),
		},
		{
			name: "rejected token",
			ctx:  metadata.AppendToOutgoingContext(context.Background(), utils.GRPCAuthorizationKey, "Bearer bad"),
			setup: func(e *testEnv) {
				e.auth.EXPECT().ParseToken(gomock.Any(), "bad").Return(models.Token{}, service.ErrTokenIsExpiredOrInvalid)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			if tt.setup != nil {
				tt.setup(env)
			}

			err := env.call(tt.ctx, utils.RemoteStatesList, &models.ListStatesRequest{}, &models.ListStatesResponse{})
			assert.Equal(t, codes.Unauthenticated, status.Code(err))
		})
	}
}

func TestFetch(t *testing.T) {
	env := newTestEnv(t)
	env.allowToken()

	env.states.EXPECT().Fetch(ownerMatcher(testOwner), models.StateID("doc1")).
		Return(models.RemoteState{Data: "v1", Version: 2, ContentHash: 9}, nil)
	env.states.EXPECT().Fetch(gomock.Any(), models.StateID("missing")).
		Return(models.RemoteState{}, fmt.Errorf("fetch: %w", store.ErrStateNotFound))

	var got models.RemoteState
	require.NoError(t, env.call(authedCtx(), utils.RemoteStatesFetch, &models.StateRequest{ID: "doc1"}, &got))
	assert.Equal(t, "v1", got.Data)
	assert.Equal(t, uint64(2), got.Version)

	err := env.call(authedCtx(), utils.RemoteStatesFetch, &models.StateRequest{ID: "missing"}, &got)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestPush(t *testing.T) {
	env := newTestEnv(t)
	env.allowToken()

	env.states.EXPECT().Push(ownerMatcher(testOwner), gomock.Any()).
		DoAndReturn(func(_ context.Context, req models.PushStateRequest) (uint64, error) {
			assert.Equal(t, models.StateID("doc1"), req.ID)
			assert.Equal(t, "hello", req.State.Data)
			return 4, nil
		})
	env.states.EXPECT().Push(gomock.Any(), gomock.Any()).
		Return(uint64(0), fmt.Errorf("%w: empty id", service.ErrInvalidDataProvided))

	var got models.VersionResponse
	req := &models.PushStateRequest{ID: "doc1", State: models.StoredState{Data: "hello"}}
	require.NoError(t, env.call(authedCtx(), utils.RemoteStatesPush, req, &got))
	assert.Equal(t, uint64(4), got.Version)

	err := env.call(authedCtx(), utils.RemoteStatesPush, &models.PushStateRequest{}, &got)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestDeleteListGetVersion(t *testing.T) {
	env := newTestEnv(t)
	env.allowToken()

	env.states.EXPECT().Delete(ownerMatcher(testOwner), models.StateID("doc1")).Return(true, nil)
	env.states.EXPECT().List(ownerMatcher(testOwner), models.ListStatesRequest{Prefix: "doc", Limit: 5}).
		Return([]models.StateID{"doc2"}, nil)
	env.states.EXPECT().GetVersion(ownerMatcher(testOwner), models.StateID("doc2")).Return(uint64(3), nil)

	var deleted models.DeleteResponse
	require.NoError(t, env.call(authedCtx(), utils.RemoteStatesDelete, &models.StateRequest{ID: "doc1"}, &deleted))
	assert.True(t, deleted.Deleted)

	var list models.ListStatesResponse
	require.NoError(t, env.call(authedCtx(), utils.RemoteStatesList, &models.ListStatesRequest{Prefix: "doc", Limit: 5}, &list))
	assert.Equal(t, []models.StateID{"doc2"}, list.IDs)
	assert.Equal(t, 1, list.Length)

	var version models.VersionResponse
	require.NoError(t, env.call(authedCtx(), utils.RemoteStatesGetVersion, &models.StateRequest{ID: "doc2"}, &version))
	assert.Equal(t, uint64(3), version.Version)
}

func TestCodeFromError(t *testing.T) {
	tests := []struct {
		err  error
		want codes.Code
	}{
		{fmt.Errorf("x: %w", service.ErrInvalidDataProvided), codes.InvalidArgument},
		{service.ErrNoOwner, codes.Unauthenticated},
		{store.ErrStateNotFound, codes.NotFound},
		{context.Canceled, codes.Canceled},
		{context.DeadlineExceeded, codes.DeadlineExceeded},
		{assert.AnError, codes.Internal},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, codeFromError(tt.err), tt.err.Error())
	}
}
