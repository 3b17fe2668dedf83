// Package statsui provides the Bubble Tea stats browser.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dewtone/stenodactylus/internal/model"
	"github.com/dewtone/stenodactylus/internal/stats"
	"github.com/dewtone/stenodactylus/internal/store"
)

const (
	tabOverview = iota
	tabStrokeTable
)

const plotHeight = 10

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	store *store.Store
	cfg   model.StatsConfig

	report stats.Report
	errMsg string

	activeTab   int
	overview    viewport.Model
	strokeTable table.Model

	width  int
	height int
}

// NewModel constructs a stats UI model.
func NewModel(st *store.Store, cfg model.StatsConfig) *Model {
	m := &Model{
		store: st,
		cfg:   cfg,
	}
	m.overview = viewport.New(0, 0)
	m.initStrokeTable()
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h", "right", "l", "tab":
			m.activeTab = 1 - m.activeTab
			return m, tea.ClearScreen
		case "=":
			m.cfg.CurveWindow++
			m.refreshReport()
			return m, nil
		case "-":
			if m.cfg.CurveWindow > 1 {
				m.cfg.CurveWindow--
				m.refreshReport()
			}
			return m, nil
		}
		if m.activeTab == tabStrokeTable {
			var cmd tea.Cmd
			m.strokeTable, cmd = m.strokeTable.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.overview, cmd = m.overview.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderNav())
	b.WriteByte('\n')
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteByte('\n')
	}
	if m.activeTab == tabStrokeTable {
		b.WriteString(m.strokeTable.View())
	} else {
		b.WriteString(m.overview.View())
	}
	b.WriteByte('\n')
	b.WriteString(headerStyle.Render("←/→ switch · =/- curve window · q quit"))
	return b.String()
}

func (m *Model) renderNav() string {
	labels := []string{"Overview", "Strokes"}
	parts := make([]string, len(labels))
	for i, label := range labels {
		if i == m.activeTab {
			parts[i] = activeNavStyle.Render(label)
		} else {
			parts[i] = inactiveNavStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (m *Model) initStrokeTable() {
	columns := []table.Column{
		{Title: "Stroke", Width: 12},
		{Title: "Accuracy", Width: 10},
		{Title: "Latency ms", Width: 11},
		{Title: "Correct", Width: 8},
		{Title: "Incorrect", Width: 9},
	}
	m.strokeTable = table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#F0F0F0")).
		Background(lipgloss.Color("#4A4A4A"))
	m.strokeTable.SetStyles(styles)
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.store, m.cfg)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load stats: %v", err)
		return
	}
	m.errMsg = ""
	m.report = report
	m.renderOverview()
	m.fillStrokeTable()
}

func (m *Model) renderOverview() {
	var buf bytes.Buffer
	if err := stats.RenderSummary(&buf, m.report.Drills); err != nil {
		m.errMsg = fmt.Sprintf("failed to render summary: %v", err)
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	if err := stats.RenderCurvesWithSize(&buf, m.report.Drills, m.cfg.CurveWindow, width, plotHeight, false); err != nil {
		m.errMsg = fmt.Sprintf("failed to render curves: %v", err)
		return
	}
	m.overview.SetContent(buf.String())
}

func (m *Model) fillStrokeTable() {
	aggs := make([]model.StrokeAggregate, len(m.report.StrokeAggsWindow))
	copy(aggs, m.report.StrokeAggsWindow)
	sort.Slice(aggs, func(i, j int) bool {
		ai := aggAccuracy(aggs[i])
		aj := aggAccuracy(aggs[j])
		if ai == aj {
			return aggs[i].Stroke < aggs[j].Stroke
		}
		return ai < aj
	})
	rows := make([]table.Row, 0, len(aggs))
	for _, agg := range aggs {
		lat := 0.0
		if agg.LatencyCount > 0 {
			lat = float64(agg.LatencySumMs) / float64(agg.LatencyCount)
		}
		rows = append(rows, table.Row{
			agg.Stroke,
			fmt.Sprintf("%.1f%%", aggAccuracy(agg)*100),
			fmt.Sprintf("%.0f", lat),
			fmt.Sprintf("%d", agg.Correct),
			fmt.Sprintf("%d", agg.Incorrect),
		})
	}
	m.strokeTable.SetRows(rows)
}

func (m *Model) updateLayout() {
	contentHeight := m.height - 5
	if contentHeight < 1 {
		contentHeight = 1
	}
	m.overview.Width = m.width
	m.overview.Height = contentHeight
	m.strokeTable.SetHeight(contentHeight)
	m.renderOverview()
}

func aggAccuracy(agg model.StrokeAggregate) float64 {
	total := agg.Correct + agg.Incorrect
	if total == 0 {
		return 1.0
	}
	return float64(agg.Correct) / float64(total)
}
