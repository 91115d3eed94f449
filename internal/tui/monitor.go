package tui

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-state-sync/internal/eventbus"
	"github.com/MKhiriev/go-state-sync/internal/service"
	"github.com/MKhiriev/go-state-sync/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

// maxRecentEvents bounds the event log shown under the table.
const maxRecentEvents = 8

type monitorModel struct {
	ctx     context.Context
	sync    service.StateSyncService
	offline service.OfflineFirstService
	sub     *eventbus.Subscription

	table   table.Model
	spinner spinner.Model

	states  map[models.StateID]models.SyncMetadata
	events  []models.SyncEvent
	online  bool
	syncing bool
	status  string
	errMsg  string

	showBuildInfo bool
	buildInfo     models.AppBuildInfo
}

func newMonitorModel(
	ctx context.Context,
	sync service.StateSyncService,
	offline service.OfflineFirstService,
	sub *eventbus.Subscription,
	buildInfo models.AppBuildInfo,
) monitorModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 28},
			{Title: "Статус", Width: 16},
			{Title: "Лок.", Width: 6},
			{Title: "Удал.", Width: 6},
			{Title: "Синхронизировано", Width: 20},
			{Title: "Ошибка", Width: 30},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	return monitorModel{
		ctx:       ctx,
		sync:      sync,
		offline:   offline,
		sub:       sub,
		table:     t,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		states:    map[models.StateID]models.SyncMetadata{},
		online:    offline.IsOnline(),
		buildInfo: buildInfo,
	}
}

func (m monitorModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdRefresh(), m.cmdWaitEvent())
}

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.states = msg.states
		m.table.SetRows(stateRows(m.states))
		return m, nil

	case eventMsg:
		m.events = append(m.events, msg.event)
		if len(m.events) > maxRecentEvents {
			m.events = m.events[len(m.events)-maxRecentEvents:]
		}
		return m, tea.Batch(m.cmdRefresh(), m.cmdWaitEvent())

	case busClosedMsg:
		return m, nil

	case syncDoneMsg:
		m.syncing = false
		if msg.err != nil {
			m.errMsg = syncErrorMessage(msg.err)
			return m, m.cmdRefresh()
		}
		m.errMsg = ""
		m.status = summarize(msg.results)
		return m, m.cmdRefresh()

	case syncOneDoneMsg:
		m.syncing = false
		if msg.err != nil {
			m.errMsg = syncErrorMessage(msg.err)
			return m, m.cmdRefresh()
		}
		m.errMsg = ""
		m.status = fmt.Sprintf("%s: %s", msg.id, msg.status)
		return m, m.cmdRefresh()

	case onlineToggledMsg:
		m.syncing = false
		m.online = msg.online
		if msg.err != nil {
			m.errMsg = syncErrorMessage(msg.err)
		} else if msg.online {
			m.status = "Подключение восстановлено"
			m.errMsg = ""
		} else {
			m.status = "Работа в оффлайн-режиме"
		}
		return m, m.cmdRefresh()

	case resolveDoneMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Ошибка разрешения конфликта: %v", msg.err)
			return m, m.cmdRefresh()
		}
		m.errMsg = ""
		m.status = fmt.Sprintf("Конфликт %s разрешён (%s)", msg.id, msg.policy)
		return m, m.cmdRefresh()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m monitorModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.quit) {
		return m, tea.Quit
	}

	if m.showBuildInfo {
		if key.Matches(msg, keys.esc) {
			m.showBuildInfo = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.info):
		m.showBuildInfo = true
		return m, nil

	case key.Matches(msg, keys.refresh):
		return m, m.cmdRefresh()

	case key.Matches(msg, keys.online):
		if m.syncing {
			return m, nil
		}
		// going online runs a full sync
		m.syncing = !m.online
		return m, m.cmdSetOnline(!m.online)

	case key.Matches(msg, keys.syncAll):
		if m.syncing {
			return m, nil
		}
		if !m.online {
			m.errMsg = "Синхронизация недоступна в оффлайн-режиме"
			return m, nil
		}
		m.syncing = true
		m.status = ""
		return m, m.cmdSyncAll()

	case key.Matches(msg, keys.syncOne):
		id, ok := m.selected()
		if !ok || m.syncing || !m.online {
			return m, nil
		}
		m.syncing = true
		return m, m.cmdSyncOne(id)

	case key.Matches(msg, keys.keepLocal), key.Matches(msg, keys.keepRemote):
		id, ok := m.selected()
		if !ok {
			return m, nil
		}
		if !m.states[id].HasConflict() {
			m.errMsg = fmt.Sprintf("%s: нет конфликта", id)
			return m, nil
		}
		policy := models.KeepLocal
		if key.Matches(msg, keys.keepRemote) {
			policy = models.KeepRemote
		}
		return m, m.cmdResolve(id, policy)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m monitorModel) View() string {
	if m.showBuildInfo {
		return appStyle.Render(overlayBoxStyle.Render(renderBuildInfoWindow(m.buildInfo)))
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("СИНХРОНИЗАЦИЯ СОСТОЯНИЙ"))
	b.WriteString("   ")
	if m.online {
		b.WriteString(onlineStyle.Render("● онлайн"))
	} else {
		b.WriteString(offlineStyle.Render("● оффлайн"))
	}
	if m.syncing {
		b.WriteString("   ")
		b.WriteString(m.spinner.View())
		b.WriteString(" синхронизация...")
	}
	b.WriteString("\n\n")

	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(renderCounters(m.states))
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("События"))
	b.WriteString("\n")
	if len(m.events) == 0 {
		b.WriteString(helpStyle.Render("  -"))
		b.WriteString("\n")
	}
	for _, ev := range m.events {
		b.WriteString("  ")
		b.WriteString(renderEvent(ev))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("s: синхр. всё  enter: синхр.  o: онлайн/оффлайн  L/R: оставить локальное/удалённое  r: обновить  i: о программе  q: выход"))

	return appStyle.Render(b.String())
}

func (m monitorModel) selected() (models.StateID, bool) {
	row := m.table.SelectedRow()
	if len(row) == 0 {
		return "", false
	}
	return models.StateID(row[0]), true
}

func (m monitorModel) cmdRefresh() tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg{states: m.sync.Snapshot(m.ctx)}
	}
}

func (m monitorModel) cmdWaitEvent() tea.Cmd {
	return func() tea.Msg {
		ev, err := m.sub.Recv(m.ctx)
		if err != nil {
			return busClosedMsg{}
		}
		return eventMsg{event: ev}
	}
}

func (m monitorModel) cmdSyncAll() tea.Cmd {
	return func() tea.Msg {
		results, err := m.sync.SyncAll(m.ctx)
		return syncDoneMsg{results: results, err: err}
	}
}

func (m monitorModel) cmdSyncOne(id models.StateID) tea.Cmd {
	return func() tea.Msg {
		status, err := m.sync.Sync(m.ctx, id)
		return syncOneDoneMsg{id: id, status: status, err: err}
	}
}

func (m monitorModel) cmdSetOnline(online bool) tea.Cmd {
	return func() tea.Msg {
		err := m.offline.SetOnline(m.ctx, online)
		return onlineToggledMsg{online: online, err: err}
	}
}

func (m monitorModel) cmdResolve(id models.StateID, policy models.ConflictResolution) tea.Cmd {
	return func() tea.Msg {
		err := m.sync.ResolveConflict(m.ctx, id, policy)
		return resolveDoneMsg{id: id, policy: policy, err: err}
	}
}

func stateRows(states map[models.StateID]models.SyncMetadata) []table.Row {
	ids := make([]models.StateID, 0, len(states))
	for id := range states {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	rows := make([]table.Row, 0, len(ids))
	for _, id := range ids {
		meta := states[id]

		remote := "-"
		if meta.RemoteVersion != nil {
			remote = strconv.FormatUint(*meta.RemoteVersion, 10)
		}
		lastErr := ""
		if meta.LastError != nil {
			lastErr = fitText(*meta.LastError, 30)
		}

		rows = append(rows, table.Row{
			id.String(),
			meta.Status.String(),
			strconv.FormatUint(meta.LocalVersion, 10),
			remote,
			formatTime(meta.LastSyncedAt),
			lastErr,
		})
	}
	return rows
}

func renderCounters(states map[models.StateID]models.SyncMetadata) string {
	counts := make(map[models.SyncStatus]int)
	for _, meta := range states {
		counts[meta.Status]++
	}

	order := []models.SyncStatus{
		models.Synced,
		models.LocalPending,
		models.RemotePending,
		models.Conflict,
		models.SyncFailed,
		models.NeverSynced,
	}

	parts := make([]string, 0, len(order))
	for _, status := range order {
		if counts[status] == 0 {
			continue
		}
		parts = append(parts, statusStyle(status).Render(fmt.Sprintf("%s: %d", status, counts[status])))
	}
	if len(parts) == 0 {
		return helpStyle.Render("нет зарегистрированных состояний")
	}
	return strings.Join(parts, "  ")
}

func renderEvent(ev models.SyncEvent) string {
	line := fmt.Sprintf("%s  %-17s %s", ev.At.Local().Format("15:04:05"), ev.Kind, ev.ID)
	switch {
	case ev.Message != "":
		line += "  " + fitText(ev.Message, 60)
	case ev.Resolution != "":
		line += "  " + ev.Resolution.String()
	}
	return line
}

func summarize(results map[models.StateID]models.SyncStatus) string {
	counts := make(map[models.SyncStatus]int)
	for _, status := range results {
		counts[status]++
	}
	return fmt.Sprintf("Синхронизация завершена: %d состояний, ошибок: %d, конфликтов: %d",
		len(results), counts[models.SyncFailed], counts[models.Conflict])
}
