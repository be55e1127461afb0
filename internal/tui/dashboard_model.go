package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/carbontrack/internal/engine"
	"github.com/rshade/carbontrack/internal/footprint"
	"github.com/rshade/carbontrack/internal/greenops"
	"github.com/rshade/carbontrack/internal/logging"
	listview "github.com/rshade/carbontrack/internal/tui/list"
)

// Tab is a dashboard page.
type Tab int

// Dashboard tabs in display order.
const (
	TabDashboard Tab = iota
	TabHistory
	TabGoals
	tabCount
)

// String returns the tab title.
func (t Tab) String() string {
	switch t {
	case TabDashboard:
		return "Dashboard"
	case TabHistory:
		return "History"
	case TabGoals:
		return "Goals"
	case tabCount:
	}
	return fmt.Sprintf("Tab(%d)", int(t))
}

// ViewState is the lifecycle state of the dashboard.
type ViewState int

// View states.
const (
	ViewStateLoading ViewState = iota
	ViewStateReady
	ViewStateError
	ViewStateQuitting
)

const (
	chromeHeight     = 6
	minListHeight    = 3
	goalRowHeight    = 2
	searchInputWidth = 30
)

// DashboardData is the ledger content the dashboard shows.
type DashboardData struct {
	Entries []footprint.Entry
	Goals   []footprint.Goal
}

// LoadFunc fetches the ledger. It runs outside the Bubble Tea event loop.
type LoadFunc func(ctx context.Context) (DashboardData, error)

// DashboardOptions configures NewDashboardModel. Zero values fall back to
// the dashboard defaults.
type DashboardOptions struct {
	Load              LoadFunc
	Now               func() time.Time
	MonthlyGoal       float64
	AverageWindowDays int
	TrendMonths       int
	RecentEntries     int
}

// DataLoadedMsg carries a successful load.
type DataLoadedMsg struct {
	Data DashboardData
}

// LoadErrorMsg carries a failed load.
type LoadErrorMsg struct {
	Err error
}

// termSize is shared by the model copies Bubble Tea passes around so that
// render callbacks see the current window size.
type termSize struct {
	width  int
	height int
}

// DashboardModel is the Bubble Tea model of the interactive dashboard.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type DashboardModel struct {
	ctx   context.Context
	opts  DashboardOptions
	state ViewState
	tab   Tab
	err   error

	size *termSize

	data     DashboardData
	summary  engine.DashboardSummary
	series   []engine.MonthlyData
	counts   engine.GoalStatusCounts
	insights []engine.Insight

	history   table.Model
	filtered  []footprint.Entry
	search    textinput.Model
	searching bool
	category  footprint.Category
	period    engine.Period

	goals *listview.Model[footprint.Goal]
}

// NewDashboardModel returns a dashboard in the loading state. Init starts
// the load.
func NewDashboardModel(ctx context.Context, opts DashboardOptions) DashboardModel {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.TrendMonths <= 0 {
		opts.TrendMonths = 12
	}
	if opts.RecentEntries <= 0 {
		opts.RecentEntries = 5
	}

	ti := textinput.New()
	ti.Placeholder = "search activities"
	ti.CharLimit = 64
	ti.Width = searchInputWidth

	m := DashboardModel{
		ctx:    ctx,
		opts:   opts,
		state:  ViewStateLoading,
		size:   &termSize{width: defaultWidth, height: defaultHeight},
		search: ti,
		period: engine.PeriodAll,
	}
	m.goals = listview.New[footprint.Goal](nil, m.listHeight()/goalRowHeight, m.renderGoalRow)
	m.history = m.buildHistoryTable()
	return m
}

// Init starts loading the ledger (Bubble Tea interface).
func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) loadCmd() tea.Cmd {
	load, ctx := m.opts.Load, m.ctx
	return func() tea.Msg {
		if load == nil {
			return DataLoadedMsg{}
		}
		data, err := load(ctx)
		if err != nil {
			return LoadErrorMsg{Err: err}
		}
		return DataLoadedMsg{Data: data}
	}
}

// Update handles messages (Bubble Tea interface).
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.size.width, m.size.height = msg.Width, msg.Height
		m.goals.SetHeight(m.listHeight() / goalRowHeight)
		m.history = m.buildHistoryTable()
		return m, nil
	case DataLoadedMsg:
		m.applyData(msg.Data)
		return m, nil
	case LoadErrorMsg:
		m.state = ViewStateError
		m.err = msg.Err
		logging.FromContext(m.ctx).Error().
			Str("component", "tui").
			Str("operation", "load").
			Err(msg.Err).
			Msg("dashboard load failed")
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m DashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchInput(msg)
	}

	switch msg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyTab:
		m.tab = (m.tab + 1) % tabCount
		return m, nil
	case keyShiftTab:
		m.tab = (m.tab + tabCount - 1) % tabCount
		return m, nil
	case "1", "2", "3":
		m.tab = Tab(msg.String()[0] - '1')
		return m, nil
	case keyReload:
		m.state = ViewStateLoading
		return m, m.loadCmd()
	}

	if m.state != ViewStateReady {
		return m, nil
	}

	switch m.tab {
	case TabHistory:
		return m.handleHistoryKey(msg)
	case TabGoals:
		return m, m.goals.Update(msg)
	case TabDashboard, tabCount:
	}
	return m, nil
}

func (m DashboardModel) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keySlash:
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	case keyEsc:
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.applyFilter()
		}
		return m, nil
	case keyCategory:
		m.category = nextCategory(m.category)
		m.applyFilter()
		return m, nil
	case keyPeriod:
		m.period = nextPeriod(m.period)
		m.applyFilter()
		return m, nil
	}
	var cmd tea.Cmd
	m.history, cmd = m.history.Update(msg)
	return m, cmd
}

func (m DashboardModel) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEnter, keyEsc:
		m.searching = false
		m.search.Blur()
		m.applyFilter()
		return m, nil
	case keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applyFilter()
	return m, cmd
}

// applyData recomputes every derived view of the ledger.
func (m *DashboardModel) applyData(data DashboardData) {
	now := m.opts.Now()
	footprint.SortNewestFirst(data.Entries)

	m.data = data
	m.summary = engine.Summarize(m.ctx, data.Entries, engine.SummaryOptions{
		Now:               now,
		MonthlyGoal:       m.opts.MonthlyGoal,
		AverageWindowDays: m.opts.AverageWindowDays,
	})
	m.series = engine.MonthlySeries(data.Entries, now, m.opts.TrendMonths)
	m.counts = engine.CountGoalStatuses(data.Goals, now)
	m.insights = engine.GenerateInsights(data.Entries, data.Goals, now)
	m.goals.SetItems(data.Goals)
	m.state = ViewStateReady
	m.err = nil
	m.applyFilter()
}

func (m *DashboardModel) applyFilter() {
	m.filtered = engine.FilterEntries(m.data.Entries, engine.HistoryFilter{
		Category: m.category,
		Search:   m.search.Value(),
		Period:   m.period,
		Now:      m.opts.Now(),
	})
	m.history = m.buildHistoryTable()
}

func (m DashboardModel) listHeight() int {
	return max(m.size.height-chromeHeight, minListHeight)
}

func (m DashboardModel) buildHistoryTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 10},        //nolint:mnd // Column width.
		{Title: "Category", Width: 14},    //nolint:mnd // Column width.
		{Title: "Activity", Width: 24},    //nolint:mnd // Column width.
		{Title: "Amount", Width: 14},      //nolint:mnd // Column width.
		{Title: "CO2e", Width: 12},        //nolint:mnd // Column width.
		{Title: "Description", Width: 24}, //nolint:mnd // Column width.
	}

	rows := make([]table.Row, 0, len(m.filtered))
	for _, e := range m.filtered {
		rows = append(rows, table.Row{
			e.Date.String(),
			e.Category.Label(),
			e.Subcategory,
			greenops.FormatFloat(e.Amount, 1) + " " + e.Unit,
			greenops.FormatCarbonAmount(e.CarbonFootprint, true),
			e.Description,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(m.listHeight()-1),
	)
	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)
	return t
}

func (m DashboardModel) renderGoalRow(g footprint.Goal, selected bool) string {
	line := RenderGoal(g, footprint.DateOf(m.opts.Now()), m.size.width-4) //nolint:mnd // Cursor gutter.
	if selected {
		return InfoStyle.Render("▌ ") + line
	}
	return "  " + line
}

func nextCategory(c footprint.Category) footprint.Category {
	cats := footprint.Categories()
	if !c.Valid() {
		return cats[0]
	}
	for i, x := range cats {
		if x == c && i+1 < len(cats) {
			return cats[i+1]
		}
	}
	return 0
}

func nextPeriod(p engine.Period) engine.Period {
	periods := engine.Periods()
	for i, x := range periods {
		if x == p {
			return periods[(i+1)%len(periods)]
		}
	}
	return engine.PeriodAll
}

// State returns the lifecycle state.
func (m DashboardModel) State() ViewState { return m.state }

// ActiveTab returns the tab on screen.
func (m DashboardModel) ActiveTab() Tab { return m.tab }

// Summary returns the computed dashboard summary.
func (m DashboardModel) Summary() engine.DashboardSummary { return m.summary }

// HistoryRows returns the entries currently listed in the History tab.
func (m DashboardModel) HistoryRows() []footprint.Entry { return m.filtered }

// Err returns the load error, if any.
func (m DashboardModel) Err() error { return m.err }
