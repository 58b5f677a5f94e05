package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"sigs.k8s.io/yaml"

	"github.com/renato0307/ponte/internal/components"
	"github.com/renato0307/ponte/internal/engine"
	"github.com/renato0307/ponte/internal/k8s"
	"github.com/renato0307/ponte/internal/ui"
)

// TickInterval is how often the UI drains the engine bus. 100ms keeps
// outcomes visibly fresh without measurable CPU cost.
const TickInterval = 100 * time.Millisecond

// tickMsg drives the engine drain cycle
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// overlayKind selects which modal overlay is open, if any.
type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayContexts
	overlayNamespaces
	overlayContainers
	overlayConfirm
	overlayScale
	overlayEditor
)

// Model is the bubbletea application model. All engine access happens on
// the Update goroutine; background work reaches it through the engine's
// bus, drained on every tick.
type Model struct {
	eng     *engine.Engine
	session *k8s.Session
	theme   *ui.Theme

	width  int
	height int

	header    *components.Header
	statusBar *components.StatusBar
	layout    *components.Layout

	table       table.Model
	activeKind  engine.Kind
	rows        []any
	selectedKey string

	filterInput textinput.Model
	filtering   bool

	overlay overlayKind
	picker  *components.Picker
	confirm *components.Confirm
	dialog  *components.InputDialog
	editor  *components.Editor
	pane    *components.Pane

	// pendingAction runs when the open confirm dialog is accepted.
	pendingAction func()
	// editTarget is the configmap behind the open editor.
	editTarget k8s.ConfigMapInfo
	// logsTarget is the pod behind the open container picker.
	logsTarget k8s.PodInfo
	// scaleTarget is the deployment behind the open scale dialog.
	scaleTarget k8s.DeploymentInfo
}

// NewModel builds the application model. Nothing is dispatched until Init.
func NewModel(session *k8s.Session, eng *engine.Engine, theme *ui.Theme) Model {
	filterInput := textinput.New()
	filterInput.Placeholder = "filter (! negates)"
	filterInput.Prompt = "/ "
	filterInput.CharLimit = 64

	m := Model{
		eng:         eng,
		session:     session,
		theme:       theme,
		width:       80,
		height:      24,
		header:      components.NewHeader("ponte", theme),
		statusBar:   components.NewStatusBar(theme),
		layout:      components.NewLayout(80, 24),
		activeKind:  engine.ViewDeployments.Kinds()[0],
		filterInput: filterInput,
	}
	m.rebuildTable()
	return m
}

func (m Model) Init() tea.Cmd {
	m.eng.Initialize()
	return tea.Batch(tickCmd(), textinput.Blink)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.eng.Tick(time.Time(msg))
		m.syncFromEngine()
		return m, tickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout.SetSize(msg.Width, msg.Height)
		m.header.SetWidth(msg.Width)
		m.statusBar.SetWidth(msg.Width)
		m.filterInput.Width = msg.Width - 4
		m.table.SetColumns(tableColumns(m.activeKind, msg.Width))
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(m.tableHeight())
		if m.pane != nil {
			m.pane.SetSize(msg.Width, msg.Height)
		}
		if m.editor != nil {
			m.editor.SetSize(msg.Width, msg.Height)
		}
		m.sizeOverlays()
		return m, nil

	case components.PickerSelectedMsg:
		return m.handlePickerSelection(msg.ID)

	case components.PickerCancelledMsg:
		m.overlay = overlayNone
		m.picker = nil
		return m, nil

	case components.ConfirmResultMsg:
		if msg.Accepted && m.pendingAction != nil {
			m.pendingAction()
		}
		m.pendingAction = nil
		m.overlay = overlayNone
		m.confirm = nil
		return m, nil

	case components.InputSubmittedMsg:
		return m.handleScaleSubmit(msg.Value)

	case components.InputCancelledMsg:
		m.overlay = overlayNone
		m.dialog = nil
		return m, nil

	case components.EditorSavedMsg:
		return m.handleEditorSave(msg.Text)

	case components.EditorCancelledMsg:
		m.overlay = overlayNone
		m.editor = nil
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Full-screen pane swallows everything except esc
	if m.pane != nil {
		if msg.String() == "esc" {
			m.pane = nil
			return m, nil
		}
		var cmd tea.Cmd
		m.pane, cmd = m.pane.Update(msg)
		return m, cmd
	}

	// Modal overlays route keys to their component; the component emits a
	// result message handled in Update.
	switch m.overlay {
	case overlayContexts, overlayNamespaces, overlayContainers:
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	case overlayConfirm:
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)
		return m, cmd
	case overlayScale:
		var cmd tea.Cmd
		m.dialog, cmd = m.dialog.Update(msg)
		return m, cmd
	case overlayEditor:
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}

	// Filter input captures typing until enter or esc
	if m.filtering {
		switch msg.String() {
		case "esc":
			m.filtering = false
			m.filterInput.Blur()
			m.filterInput.Reset()
			m.refreshRows()
			return m, nil
		case "enter":
			m.filtering = false
			m.filterInput.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.filterInput, cmd = m.filterInput.Update(msg)
			m.refreshRows()
			return m, cmd
		}
	}

	// Before the session is up only quit and retry work
	if !m.eng.Initialized() {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "r":
			if m.eng.InitError() != "" {
				m.eng.Retry()
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "1", "2", "3", "4", "5", "6":
		idx := int(msg.String()[0] - '1')
		m.selectView(engine.AllViews[idx])
		return m, nil

	case "tab":
		m.selectView(m.eng.CurrentView().Next())
		return m, nil

	case "o":
		m.togglePairKind()
		return m, nil

	case "r":
		m.eng.Refresh()
		return m, nil

	case "c":
		m.openContextPicker()
		return m, nil

	case "n":
		m.openNamespacePicker()
		return m, nil

	case "/":
		m.filtering = true
		m.filterInput.Focus()
		return m, textinput.Blink

	case "esc":
		if m.filterInput.Value() != "" {
			m.filterInput.Reset()
			m.refreshRows()
		}
		return m, nil
	}

	if handled, model, cmd := m.handleActionKey(msg.String()); handled {
		return model, cmd
	}

	// Everything else is table navigation
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	m.rememberSelection()
	return m, cmd
}

// handleActionKey dispatches the selection-dependent action keys. Keys not
// meaningful for the active kind fall through to table navigation.
func (m Model) handleActionKey(key string) (bool, tea.Model, tea.Cmd) {
	item, ok := m.selection()
	if !ok {
		return false, m, nil
	}
	namespace := fmt.Sprint(getFieldValue(item, "Namespace"))
	name := fmt.Sprint(getFieldValue(item, "Name"))

	switch key {
	case "y":
		m.eng.Inspect(m.activeKind, namespace, name)
		m.pane = components.NewPane(components.PaneYAML, string(m.activeKind)+"/"+name, "", m.theme)
		m.pane.SetSize(m.width, m.height)
		return true, m, nil

	case "d":
		m.eng.Describe(m.activeKind, namespace, name)
		m.pane = components.NewPane(components.PaneDescribe, string(m.activeKind)+"/"+name, "", m.theme)
		m.pane.SetSize(m.width, m.height)
		return true, m, nil

	case "C":
		if err := clipboard.WriteAll(name); err != nil {
			m.eng.Notify("Failed to copy to clipboard: "+err.Error(), true)
		} else {
			m.eng.Notify(fmt.Sprintf("Copied %q to clipboard", name), false)
		}
		return true, m, nil
	}

	switch m.activeKind {
	case engine.KindDeployments:
		switch key {
		case "s":
			d := item.(k8s.DeploymentInfo)
			m.scaleTarget = d
			m.dialog = components.NewInputDialog(
				fmt.Sprintf("Scale %s", name),
				"replicas",
				strconv.Itoa(int(d.Replicas)),
				m.theme,
			)
			m.dialog.SetSize(m.width, m.height)
			m.overlay = overlayScale
			return true, m, textinput.Blink
		case "R":
			m.eng.RestartDeployment(namespace, name)
			return true, m, nil
		case "x":
			m.openConfirm(fmt.Sprintf("Delete deployment %s/%s?", namespace, name),
				func() { m.eng.DeleteDeployment(namespace, name) })
			return true, m, nil
		}

	case engine.KindPods:
		switch key {
		case "l":
			return true, m.openLogs(item.(k8s.PodInfo)), nil
		case "x":
			m.openConfirm(fmt.Sprintf("Delete pod %s/%s?", namespace, name),
				func() { m.eng.DeletePod(namespace, name) })
			return true, m, nil
		}

	case engine.KindConfigMaps:
		if key == "e" {
			return true, m.openEditor(item.(k8s.ConfigMapInfo)), nil
		}

	case engine.KindJobs:
		if key == "x" {
			m.openConfirm(fmt.Sprintf("Delete job %s/%s?", namespace, name),
				func() { m.eng.DeleteJob(namespace, name) })
			return true, m, nil
		}

	case engine.KindCronJobs:
		switch key {
		case "t":
			m.eng.TriggerCronJob(namespace, name)
			return true, m, nil
		case "S":
			cj := item.(k8s.CronJobInfo)
			m.eng.SuspendCronJob(namespace, name, !cj.Suspend)
			return true, m, nil
		case "h":
			m.eng.CronJobHistory(namespace, name)
			m.pane = components.NewPane(components.PaneHistory, "cronjobs/"+name, "", m.theme)
			m.pane.SetSize(m.width, m.height)
			return true, m, nil
		}
	}

	return false, m, nil
}

// selectView switches the engine view and rebuilds the table for its
// primary kind. The filter does not survive a view switch.
func (m *Model) selectView(view engine.View) {
	m.eng.SelectView(view)
	m.activeKind = view.Kinds()[0]
	m.filterInput.Reset()
	m.filtering = false
	m.selectedKey = ""
	m.rebuildTable()
	m.refreshRows()
}

// togglePairKind flips the table between the two kinds of a combined view.
func (m *Model) togglePairKind() {
	kinds := m.eng.CurrentView().Kinds()
	if len(kinds) < 2 {
		return
	}
	if m.activeKind == kinds[0] {
		m.activeKind = kinds[1]
	} else {
		m.activeKind = kinds[0]
	}
	m.selectedKey = ""
	m.rebuildTable()
	m.refreshRows()
}

func (m *Model) openContextPicker() {
	contexts := m.eng.Contexts()
	items := make([]components.PickerItem, len(contexts))
	for i, ctx := range contexts {
		items[i] = components.PickerItem{
			ID:     ctx.Name,
			Name:   ctx.Name,
			Detail: ctx.Cluster,
		}
	}
	m.picker = components.NewPicker("Switch Context", items, m.theme)
	m.picker.SetSize(m.width, m.height)
	m.overlay = overlayContexts
}

func (m *Model) openNamespacePicker() {
	namespaces := m.eng.Namespaces()
	items := make([]components.PickerItem, 0, len(namespaces)+1)
	items = append(items, components.PickerItem{
		ID:     "",
		Name:   "All namespaces",
		Detail: "no filter",
	})
	for _, ns := range namespaces {
		items = append(items, components.PickerItem{ID: ns, Name: ns, Detail: "namespace"})
	}
	m.picker = components.NewPicker("Select Namespace", items, m.theme)
	m.picker.SetSize(m.width, m.height)
	m.overlay = overlayNamespaces
}

func (m Model) openLogs(pod k8s.PodInfo) Model {
	if len(pod.Containers) > 1 {
		items := make([]components.PickerItem, len(pod.Containers))
		for i, c := range pod.Containers {
			items[i] = components.PickerItem{ID: c.Name, Name: c.Name, Detail: c.Image}
		}
		m.logsTarget = pod
		m.picker = components.NewPicker("Select Container", items, m.theme)
		m.picker.SetSize(m.width, m.height)
		m.overlay = overlayContainers
		return m
	}

	container := ""
	if len(pod.Containers) == 1 {
		container = pod.Containers[0].Name
	}
	return m.startLogs(pod, container)
}

func (m Model) startLogs(pod k8s.PodInfo, container string) Model {
	m.eng.PodLogs(pod.Namespace, pod.Name, container, k8s.LogTailLines)
	title := pod.Namespace + "/" + pod.Name
	if container != "" {
		title += " (" + container + ")"
	}
	m.pane = components.NewPane(components.PaneLogs, title, "", m.theme)
	m.pane.SetSize(m.width, m.height)
	return m
}

func (m Model) openEditor(cm k8s.ConfigMapInfo) Model {
	content, err := yaml.Marshal(cm.Data)
	if err != nil {
		m.eng.Notify("Failed to render configmap data: "+err.Error(), true)
		return m
	}
	m.editTarget = cm
	m.editor = components.NewEditor(cm.Namespace+"/"+cm.Name, string(content), m.theme)
	m.editor.SetSize(m.width, m.height)
	m.overlay = overlayEditor
	return m
}

func (m *Model) openConfirm(prompt string, action func()) {
	m.pendingAction = action
	m.confirm = components.NewConfirm(prompt, m.theme)
	m.confirm.SetSize(m.width, m.height)
	m.overlay = overlayConfirm
}

func (m Model) handlePickerSelection(id string) (tea.Model, tea.Cmd) {
	overlay := m.overlay
	m.overlay = overlayNone
	m.picker = nil

	switch overlay {
	case overlayContexts:
		m.eng.SelectContext(id)
	case overlayNamespaces:
		m.eng.SelectNamespace(id)
	case overlayContainers:
		return m.startLogs(m.logsTarget, id), nil
	}
	return m, nil
}

func (m Model) handleScaleSubmit(value string) (tea.Model, tea.Cmd) {
	m.overlay = overlayNone
	m.dialog = nil

	replicas, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || replicas < 0 {
		m.eng.Notify(fmt.Sprintf("Invalid replica count %q", value), true)
		return m, nil
	}

	m.eng.ScaleDeployment(m.scaleTarget.Namespace, m.scaleTarget.Name, int32(replicas))
	return m, nil
}

func (m Model) handleEditorSave(text string) (tea.Model, tea.Cmd) {
	m.overlay = overlayNone
	m.editor = nil

	data := map[string]string{}
	if err := yaml.Unmarshal([]byte(text), &data); err != nil {
		m.eng.Notify("Invalid YAML: "+err.Error(), true)
		return m, nil
	}

	m.eng.UpdateConfigMap(m.editTarget.Namespace, m.editTarget.Name, data)
	return m, nil
}

// selection returns the item behind the table cursor.
func (m Model) selection() (any, bool) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.rows) {
		return nil, false
	}
	return m.rows[cursor], true
}

func (m *Model) rememberSelection() {
	if item, ok := m.selection(); ok {
		m.selectedKey = resourceKey(item)
	}
}

// rebuildTable recreates the bubbles table for the active kind.
func (m *Model) rebuildTable() {
	t := table.New(
		table.WithColumns(tableColumns(m.activeKind, m.width)),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
	)
	t.SetStyles(m.theme.ToTableStyles())
	t.SetWidth(m.width)
	m.table = t
	m.rows = nil
}

// tableHeight is the body height minus the info line and the banner slot.
func (m Model) tableHeight() int {
	h := m.layout.CalculateBodyHeight() - 2
	if h < 3 {
		h = 3
	}
	return h
}

// refreshRows rebuilds the visible rows from the active kind's snapshot,
// applying the filter and restoring the cursor to the previously selected
// resource when it is still present.
func (m *Model) refreshRows() {
	snapshot := m.eng.Snapshot(m.activeKind)
	m.rows = filterItems(m.activeKind, snapshot.Items, m.filterInput.Value())
	m.table.SetRows(tableRows(m.activeKind, m.rows))

	if m.selectedKey != "" {
		for i, item := range m.rows {
			if resourceKey(item) == m.selectedKey {
				m.table.SetCursor(i)
				return
			}
		}
	}
	if m.table.Cursor() >= len(m.rows) {
		m.table.SetCursor(0)
	}
}

// syncFromEngine refreshes every derived piece of UI state after a tick.
func (m *Model) syncFromEngine() {
	view := m.eng.CurrentView()

	m.refreshRows()

	m.header.SetViewTitle(view.String())
	m.header.SetNamespace(m.eng.Namespace())
	m.header.SetContext(m.eng.CurrentContext())
	m.header.SetItemCount(len(m.rows))
	m.header.SetLoading(m.eng.ViewLoading(view))

	notifications := m.eng.Notifications()
	if len(notifications) > 0 {
		latest := notifications[len(notifications)-1]
		m.statusBar.SetNotification(latest.Text, latest.IsError)
		if m.pane != nil {
			m.pane.SetNotice(latest.Text, latest.IsError)
		}
	} else {
		m.statusBar.Clear()
		if m.pane != nil {
			m.pane.SetNotice("", false)
		}
	}

	m.syncPane()
}

// syncPane feeds the open pane from the engine's side channels. Loading
// states render as a placeholder line until the outcome arrives.
func (m *Model) syncPane() {
	if m.pane == nil {
		return
	}

	switch m.pane.Kind() {
	case components.PaneLogs:
		logs := m.eng.Logs()
		if logs.Loading {
			m.pane.SetContent("Loading logs…")
		} else {
			m.pane.SetContent(logs.Text)
		}
	case components.PaneHistory:
		history := m.eng.History()
		if history.Loading {
			m.pane.SetContent("Loading history…")
		} else {
			m.pane.SetContent(formatHistory(history.Jobs))
		}
	case components.PaneYAML, components.PaneDescribe:
		detail := m.eng.Detail()
		if detail.Loading {
			m.pane.SetContent("Loading…")
		} else {
			m.pane.SetContent(detail.Text)
		}
	}
}

func (m *Model) sizeOverlays() {
	if m.picker != nil {
		m.picker.SetSize(m.width, m.height)
	}
	if m.confirm != nil {
		m.confirm.SetSize(m.width, m.height)
	}
	if m.dialog != nil {
		m.dialog.SetSize(m.width, m.height)
	}
}

// formatHistory renders cronjob runs as aligned text for the history pane.
func formatHistory(jobs []k8s.JobInfo) string {
	if len(jobs) == 0 {
		return "No runs recorded for this cronjob."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-50s %-12s %-10s %-10s %s\n", "NAME", "COMPLETIONS", "DURATION", "AGE", "STATUS")
	for _, job := range jobs {
		fmt.Fprintf(&b, "%-50s %-12s %-10s %-10s %s\n",
			job.Name, job.Completions, job.Duration, job.Age, job.Status)
	}
	return b.String()
}

func (m Model) View() string {
	if !m.eng.Initialized() {
		return m.renderInitScreen()
	}

	if m.pane != nil {
		return m.pane.View()
	}

	switch m.overlay {
	case overlayEditor:
		return m.editor.View()
	case overlayContexts, overlayNamespaces, overlayContainers:
		return m.picker.View()
	case overlayConfirm:
		return m.confirm.View()
	case overlayScale:
		return m.dialog.View()
	}

	return m.layout.Render(
		m.header.View(),
		m.renderBody(),
		m.statusBar.View(),
		m.helpLine(),
	)
}

// renderBody stacks the info line, the error banner slot and the table.
func (m Model) renderBody() string {
	view := m.eng.CurrentView()

	info := m.renderInfoLine(view)

	banner := ""
	if viewErr := m.eng.ViewError(view); viewErr != "" {
		banner = ui.RenderBanner(viewErr, m.theme, m.width)
	}

	body := m.table.View()
	snapshot := m.eng.Snapshot(m.activeKind)
	if snapshot.State() == engine.StateLoading && snapshot.Items == nil {
		loadingStyle := lipgloss.NewStyle().Foreground(m.theme.Muted).Padding(1, 2)
		body = loadingStyle.Render(fmt.Sprintf("Loading %s…", view))
	}

	return lipgloss.JoinVertical(lipgloss.Left, info, banner, body)
}

// renderInfoLine shows the filter state and, on combined views, the pair
// of kinds with the active one marked.
func (m Model) renderInfoLine(view engine.View) string {
	mutedStyle := lipgloss.NewStyle().Foreground(m.theme.Muted).Padding(0, 1)
	activeStyle := lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true)

	parts := []string{}

	kinds := view.Kinds()
	if len(kinds) == 2 {
		labels := make([]string, len(kinds))
		for i, kind := range kinds {
			count := len(m.eng.Snapshot(kind).Items)
			label := fmt.Sprintf("%s (%d)", kind, count)
			if kind == m.activeKind {
				label = activeStyle.Render("▸ " + label)
			}
			labels[i] = label
		}
		parts = append(parts, strings.Join(labels, "  "), "o: switch")
	}

	if m.filtering {
		parts = append(parts, m.filterInput.View())
	} else if m.filterInput.Value() != "" {
		parts = append(parts, fmt.Sprintf("filter: %s (esc clears)", m.filterInput.Value()))
	}

	if len(parts) == 0 {
		return mutedStyle.Render("")
	}
	return mutedStyle.Render(strings.Join(parts, "  •  "))
}

// renderInitScreen covers the connecting splash and the failed-init retry
// prompt.
func (m Model) renderInitScreen() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary)
	mutedStyle := lipgloss.NewStyle().Foreground(m.theme.Muted)
	errorStyle := lipgloss.NewStyle().Foreground(m.theme.Error)

	var body string
	if initErr := m.eng.InitError(); initErr != "" {
		body = lipgloss.JoinVertical(
			lipgloss.Center,
			titleStyle.Render("Failed to Initialize"),
			"",
			errorStyle.Render(initErr),
			"",
			mutedStyle.Render("[r] retry  [q] quit"),
		)
	} else {
		body = lipgloss.JoinVertical(
			lipgloss.Center,
			titleStyle.Render("ponte"),
			"",
			mutedStyle.Render("Connecting to cluster…"),
		)
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

// helpLine is the one-line key hint at the bottom, varying per view.
func (m Model) helpLine() string {
	actions := ""
	switch m.activeKind {
	case engine.KindDeployments:
		actions = "s: scale • R: restart • x: delete • "
	case engine.KindPods:
		actions = "l: logs • x: delete • "
	case engine.KindConfigMaps:
		actions = "e: edit • "
	case engine.KindJobs:
		actions = "x: delete • "
	case engine.KindCronJobs:
		actions = "t: trigger • S: suspend/resume • h: history • "
	}

	return actions + "y: yaml • d: describe • C: copy • 1-6: views • tab: next • /: filter • r: refresh • c: contexts • n: namespaces • q: quit"
}
