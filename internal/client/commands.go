package client

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-state-sync/models"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/sync/errgroup"
)

const usage = `usage: state-sync [flags] <command> [args]

commands:
  put <id> <data> [tier]   save a state locally and sync it
  get <id>                 print the local copy of a state
  delete <id>              delete a state locally and remotely
  list                     list local states
  status [id]              print sync metadata
  sync [id]                sync one state or all of them
  resolve <id> <policy>    resolve a conflict (keep-local, keep-remote)
  run                      run background sync until interrupted
  watch                    open the sync monitor
  version                  print build information`

type command func(ctx context.Context, args []string) error

func (a *App) commands() map[string]command {
	return map[string]command{
		"put":     a.put,
		"get":     a.get,
		"delete":  a.delete,
		"list":    a.list,
		"status":  a.status,
		"sync":    a.sync,
		"resolve": a.resolve,
		"run":     a.run,
		"watch":   a.watch,
		"version": a.version,
	}
}

// Run implements Client. The first positional argument selects the command.
func (a *App) Run(ctx context.Context) error {
	if len(a.cfg.Args) == 0 {
		fmt.Fprintln(a.out, usage)
		return nil
	}

	name, args := a.cfg.Args[0], a.cfg.Args[1:]
	cmd, ok := a.commands()[name]
	if !ok {
		fmt.Fprintln(a.out, usage)
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}

	a.logger.Debug().Str("command", name).Strs("args", args).Msg("running command")
	return cmd(ctx, args)
}

func requireArgs(args []string, names ...string) error {
	if len(args) < len(names) {
		return fmt.Errorf("%w: %s", ErrMissingArgument, names[len(args)])
	}
	return nil
}

func (a *App) put(ctx context.Context, args []string) error {
	if err := requireArgs(args, "id", "data"); err != nil {
		return err
	}
	id, data := models.StateID(args[0]), args[1]

	tier := models.TierSyncable
	if len(args) > 2 {
		tier = models.PersistenceTier(args[2])
		if !tier.IsValid() {
			return fmt.Errorf("%w: %q", ErrInvalidTier, args[2])
		}
	}

	state := models.NewStoredState(id, "text", tier, data)

	existing, err := a.storages.States.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	if existing != nil {
		state.Metadata.CreatedAt = existing.Metadata.CreatedAt
		state.Metadata.Version = existing.Metadata.Version + 1
	}

	if err := a.services.OfflineService.Save(ctx, id, state); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s saved, status: %s\n", id, a.services.SyncService.GetStatus(ctx, id))
	return nil
}

func (a *App) get(ctx context.Context, args []string) error {
	if err := requireArgs(args, "id"); err != nil {
		return err
	}
	id := models.StateID(args[0])

	state, err := a.services.OfflineService.Load(ctx, id)
	if err != nil {
		return err
	}
	if state == nil {
		return fmt.Errorf("%w: %s", ErrStateNotFound, id)
	}

	fmt.Fprintln(a.out, state.Data)
	return nil
}

func (a *App) delete(ctx context.Context, args []string) error {
	if err := requireArgs(args, "id"); err != nil {
		return err
	}
	id := models.StateID(args[0])

	deleted, err := a.storages.States.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete local state: %w", err)
	}
	a.services.SyncService.Unregister(ctx, id)

	if a.services.OfflineService.IsOnline() {
		remoteDeleted, err := a.remote.Delete(ctx, id)
		if err != nil {
			a.logger.Warn().Err(err).Str("state_id", id.String()).Msg("remote delete failed")
		}
		deleted = deleted || remoteDeleted
	}

	if !deleted {
		return fmt.Errorf("%w: %s", ErrStateNotFound, id)
	}
	fmt.Fprintf(a.out, "%s deleted\n", id)
	return nil
}

func (a *App) list(ctx context.Context, _ []string) error {
	ids, err := a.storages.States.List(ctx)
	if err != nil {
		return fmt.Errorf("list local states: %w", err)
	}

	for _, id := range ids {
		fmt.Fprintf(a.out, "%s\t%s\n", id, a.services.SyncService.GetStatus(ctx, id))
	}
	return nil
}

func (a *App) status(ctx context.Context, args []string) error {
	snapshot := a.services.SyncService.Snapshot(ctx)

	if len(args) > 0 {
		id := models.StateID(args[0])
		meta, ok := snapshot[id]
		if !ok {
			return fmt.Errorf("%w: %s", ErrStateNotFound, id)
		}
		snapshot = map[models.StateID]models.SyncMetadata{id: meta}
	}

	fmt.Fprintln(a.out, renderStatusTable(snapshot))

	pending := a.services.SyncService.PendingSync(ctx)
	conflicts := a.services.SyncService.Conflicts(ctx)
	fmt.Fprintf(a.out, "pending: %d, conflicts: %d\n", len(pending), len(conflicts))
	return nil
}

func (a *App) sync(ctx context.Context, args []string) error {
	if len(args) > 0 {
		id := models.StateID(args[0])
		status, err := a.services.SyncService.Sync(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s\t%s\n", id, status)
		return nil
	}

	results, err := a.services.SyncService.SyncAll(ctx)
	if err != nil {
		return err
	}

	snapshot := make(map[models.StateID]models.SyncMetadata, len(results))
	for id := range results {
		if meta, ok := a.services.SyncService.GetMetadata(ctx, id); ok {
			snapshot[id] = meta
		}
	}
	fmt.Fprintln(a.out, renderStatusTable(snapshot))
	return nil
}

func (a *App) resolve(ctx context.Context, args []string) error {
	if err := requireArgs(args, "id", "policy"); err != nil {
		return err
	}
	id := models.StateID(args[0])

	policy, err := models.ParseConflictResolution(args[1])
	if err != nil {
		return err
	}

	if err := a.services.SyncService.ResolveConflict(ctx, id, policy); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s resolved, status: %s\n", id, a.services.SyncService.GetStatus(ctx, id))
	return nil
}

func (a *App) run(ctx context.Context, _ []string) error {
	w, err := a.background()
	if err != nil {
		return err
	}

	a.logger.Info().Int("workers", w.Len()).Msg("background sync started")
	return w.Run(ctx)
}

// watch runs the background workers next to the monitor and stops them when
// the monitor exits.
func (a *App) watch(ctx context.Context, _ []string) error {
	w, err := a.background()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return w.Run(gctx) })
	g.Go(func() error {
		defer cancel()
		return a.ui.Monitor(gctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (a *App) version(_ context.Context, _ []string) error {
	fmt.Fprintf(a.out, "state-sync %s\n", a.buildInfo)
	return nil
}

func renderStatusTable(snapshot map[models.StateID]models.SyncMetadata) string {
	ids := make([]string, 0, len(snapshot))
	for id := range snapshot {
		ids = append(ids, id.String())
	}
	slices.Sort(ids)

	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		meta := snapshot[models.StateID(id)]

		remote := "-"
		if meta.RemoteVersion != nil {
			remote = strconv.FormatUint(*meta.RemoteVersion, 10)
		}
		lastSynced := "-"
		if meta.LastSyncedAt != nil {
			lastSynced = meta.LastSyncedAt.Local().Format("2006-01-02 15:04:05")
		}
		lastErr := ""
		if meta.LastError != nil {
			lastErr = *meta.LastError
		}

		rows = append(rows, []string{
			id,
			meta.Status.String(),
			strconv.FormatUint(meta.LocalVersion, 10),
			remote,
			lastSynced,
			strconv.FormatUint(uint64(meta.FailedAttempts), 10),
			strings.TrimSpace(lastErr),
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "STATUS", "LOCAL", "REMOTE", "LAST SYNCED", "FAILURES", "ERROR").
		Rows(rows...).
		String()
}
