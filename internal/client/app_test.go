package client

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-state-sync/internal/config"
	"github.com/MKhiriev/go-state-sync/internal/logger"
	"github.com/MKhiriev/go-state-sync/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()

	cfg := &config.ClientConfig{
		Storage: config.ClientStorage{Kind: config.StorageMemory},
		Adapter: config.ClientAdapter{Kind: config.AdapterMemory},
		Sync: config.ClientSync{
			ConflictPolicy: models.ResolveFail,
			EventCapacity:  16,
		},
	}

	app, err := NewApp(context.Background(), cfg, models.NewAppBuildInfo("test", "", ""), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	var out bytes.Buffer
	app.SetOutput(&out)
	return app, &out
}

func runCmd(app *App, args ...string) error {
	app.cfg.Args = args
	return app.Run(context.Background())
}

func TestNewApp_UnknownStorage(t *testing.T) {
	cfg := &config.ClientConfig{
		Storage: config.ClientStorage{Kind: "tape"},
		Adapter: config.ClientAdapter{Kind: config.AdapterMemory},
	}

	_, err := NewApp(context.Background(), cfg, models.AppBuildInfo{}, logger.Nop())
	assert.Error(t, err)
}

func TestNewApp_UnknownAdapter(t *testing.T) {
	cfg := &config.ClientConfig{
		Storage: config.ClientStorage{Kind: config.StorageMemory},
		Adapter: config.ClientAdapter{Kind: "carrier-pigeon"},
	}

	_, err := NewApp(context.Background(), cfg, models.AppBuildInfo{}, logger.Nop())
	assert.Error(t, err)
}

func TestRun_NoArgsPrintsUsage(t *testing.T) {
	app, out := newTestApp(t)

	require.NoError(t, runCmd(app))
	assert.Contains(t, out.String(), "usage:")
}

func TestRun_UnknownCommand(t *testing.T) {
	app, out := newTestApp(t)

	err := runCmd(app, "teleport")
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.Contains(t, out.String(), "usage:")
}

func TestPutGet(t *testing.T) {
	app, out := newTestApp(t)

	require.NoError(t, runCmd(app, "put", "doc1", "hello"))
	assert.Contains(t, out.String(), "doc1 saved, status: synced")

	out.Reset()
	require.NoError(t, runCmd(app, "get", "doc1"))
	assert.Equal(t, "hello\n", out.String())
}

func TestPut_BumpsVersion(t *testing.T) {
	app, _ := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, runCmd(app, "put", "doc1", "v1"))
	require.NoError(t, runCmd(app, "put", "doc1", "v2"))

	state, err := app.storages.States.Load(ctx, "doc1")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, "v2", state.Data)
	assert.Equal(t, uint32(2), state.Metadata.Version)
}

func TestPut_Errors(t *testing.T) {
	app, _ := newTestApp(t)

	assert.ErrorIs(t, runCmd(app, "put", "doc1"), ErrMissingArgument)
	assert.ErrorIs(t, runCmd(app, "put", "doc1", "data", "cloud"), ErrInvalidTier)
}

func TestGet_NotFound(t *testing.T) {
	app, _ := newTestApp(t)

	assert.ErrorIs(t, runCmd(app, "get", "missing"), ErrStateNotFound)
	assert.ErrorIs(t, runCmd(app, "get"), ErrMissingArgument)
}

func TestDelete(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, runCmd(app, "put", "doc1", "hello"))
	require.NoError(t, runCmd(app, "delete", "doc1"))
	assert.Contains(t, out.String(), "doc1 deleted")

	_, ok := app.services.SyncService.GetMetadata(ctx, "doc1")
	assert.False(t, ok)

	_, ok, err := app.remote.GetVersion(ctx, "doc1")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, runCmd(app, "delete", "doc1"), ErrStateNotFound)
}

func TestListAndStatus(t *testing.T) {
	app, out := newTestApp(t)

	require.NoError(t, runCmd(app, "put", "b-doc", "2"))
	require.NoError(t, runCmd(app, "put", "a-doc", "1"))

	out.Reset()
	require.NoError(t, runCmd(app, "list"))
	assert.Equal(t, "a-doc\tsynced\nb-doc\tsynced\n", out.String())

	out.Reset()
	require.NoError(t, runCmd(app, "status"))
	assert.Contains(t, out.String(), "a-doc")
	assert.Contains(t, out.String(), "b-doc")
	assert.Contains(t, out.String(), "pending: 0, conflicts: 0")

	assert.ErrorIs(t, runCmd(app, "status", "missing"), ErrStateNotFound)
}

func TestSync(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()

	// офлайн: изменения копятся локально
	require.NoError(t, app.services.OfflineService.SetOnline(ctx, false))
	require.NoError(t, runCmd(app, "put", "doc1", "hello"))
	assert.Equal(t, models.LocalPending, app.services.SyncService.GetStatus(ctx, "doc1"))

	out.Reset()
	require.NoError(t, runCmd(app, "sync", "doc1"))
	assert.Equal(t, "doc1\tsynced\n", out.String())

	app.services.SyncService.MarkChanged(ctx, "doc1")
	out.Reset()
	require.NoError(t, runCmd(app, "sync"))
	assert.Contains(t, out.String(), "synced")
	assert.Equal(t, models.Synced, app.services.SyncService.GetStatus(ctx, "doc1"))
}

func TestResolve(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, runCmd(app, "put", "doc1", "local"))

	_, err := app.remote.Push(ctx, "doc1", models.StoredState{Data: "remote"})
	require.NoError(t, err)
	app.services.SyncService.MarkRemoteChanged(ctx, "doc1")
	app.services.SyncService.MarkChanged(ctx, "doc1")
	require.Equal(t, models.Conflict, app.services.SyncService.GetStatus(ctx, "doc1"))

	assert.Error(t, runCmd(app, "resolve", "doc1", "sideways"))
	assert.ErrorIs(t, runCmd(app, "resolve", "doc1"), ErrMissingArgument)

	out.Reset()
	require.NoError(t, runCmd(app, "resolve", "doc1", "keep-remote"))
	assert.Contains(t, out.String(), "doc1 resolved, status: synced")

	state, err := app.storages.States.Load(ctx, "doc1")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, "remote", state.Data)
}

func TestRestore_RegistersLocalStates(t *testing.T) {
	app, _ := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, app.storages.States.Save(ctx, models.NewStoredState("orphan", "text", models.TierLocal, "x")))
	require.NoError(t, app.restore(ctx))

	_, ok := app.services.SyncService.GetMetadata(ctx, "orphan")
	assert.True(t, ok)
}

func TestRun_BackgroundStopsOnCancel(t *testing.T) {
	app, _ := newTestApp(t)
	app.cfg.Workers = config.ClientWorkers{SyncInterval: 10 * time.Millisecond, PollInterval: 10 * time.Millisecond}
	app.cfg.Args = []string{"run"}

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop after cancel")
	}
}

func TestVersion(t *testing.T) {
	app, out := newTestApp(t)

	require.NoError(t, runCmd(app, "version"))
	assert.Equal(t, "state-sync test (N/A, N/A)\n", out.String())
}

func TestMetricsRouter(t *testing.T) {
	app, _ := newTestApp(t)

	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "state_sync_test_total", Help: "test counter"})
	require.NoError(t, app.registry.Register(counter))
	counter.Inc()

	srv := httptest.NewServer(app.metricsRouter())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	var body bytes.Buffer
	_, err = body.ReadFrom(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body.String(), "state_sync_test_total 1")

	resp, err = http.Get(srv.URL + "/states")
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
