// Package tui provides the Bubble Tea chord practice interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dewtone/stenodactylus/internal/chord"
	"github.com/dewtone/stenodactylus/internal/dict"
	"github.com/dewtone/stenodactylus/internal/model"
	"github.com/dewtone/stenodactylus/internal/reward"
	"github.com/dewtone/stenodactylus/internal/session"
	statsPkg "github.com/dewtone/stenodactylus/internal/stats"
	"github.com/dewtone/stenodactylus/internal/steno"
	"github.com/dewtone/stenodactylus/internal/store"
)

const resultHold = 1500 * time.Millisecond

type strokeStat struct {
	correct      int
	incorrect    int
	latencySumMs int64
	latencyCount int64
}

// clearResultMsg retires the chord annotation after a short hold. The seq
// guard keeps a stale tick from clearing a newer result.
type clearResultMsg struct {
	seq int
}

// Model implements the Bubble Tea practice UI. Terminals deliver no key
// release events, so chords are arpeggiated: letters press steno keys,
// space releases them all at once, backspace lifts the latest key early.
type Model struct {
	config            model.Config
	store             *store.Store
	sel               *dict.Selector
	entries           []dict.Entry
	weakSet           map[string]struct{}
	weakNoticePrinted bool

	sess *session.Session

	width  int
	height int

	frame      chord.Frame
	driftUpper bool
	driftLower bool
	pending    []steno.Key

	last      *session.Result
	lastWord  string
	resultSeq int

	startedAt   time.Time
	chords      int
	matched     int
	missed      int
	bestStreak  int
	entriesDone int
	strokeStats map[string]*strokeStat

	allTimeBest int
}

var (
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	progressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	matchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5AF78E"))
	missStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5C57"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a practice TUI model with the first entry loaded.
func NewModel(cfg model.Config, st *store.Store, sel *dict.Selector, entries []dict.Entry, weakSet map[string]struct{}, weakNoticePrinted bool) *Model {
	m := &Model{
		config:            cfg,
		store:             st,
		sel:               sel,
		entries:           entries,
		weakSet:           weakSet,
		weakNoticePrinted: weakNoticePrinted,
		sess:              session.New(session.Options{Level: reward.ClampLevel(cfg.MaxLevel)}),
		strokeStats:       map[string]*strokeStat{},
	}
	m.nextEntry()
	m.loadBestStreak()
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
		return m, nil
	case clearResultMsg:
		if msg.seq == m.resultSeq {
			m.last = nil
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.finishDrill()
			return m, tea.Quit
		case tea.KeyBackspace, tea.KeyDelete:
			m.handleBackspace()
			return m, nil
		case tea.KeySpace, tea.KeyEnter:
			return m, m.commitChord()
		case tea.KeyRunes:
			for _, r := range msg.Runes {
				m.handleRune(r)
			}
			return m, nil
		default:
			return m, nil
		}
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if len(m.entries) == 0 {
		return ""
	}
	var b strings.Builder
	entry := m.sess.Entry()

	b.WriteString(promptStyle.Render(entry.Word))
	b.WriteString("  ")
	b.WriteString(hintStyle.Render(entryHint(entry)))
	b.WriteByte('\n')
	b.WriteString(progressStyle.Render(progressDots(m.sess.Position(), m.sess.MaxPositions())))
	b.WriteString("\n\n")

	b.WriteString(renderKeyboard(m.frame, m.driftUpper, m.driftLower))
	b.WriteString("\n\n")
	b.WriteString(m.renderResult())

	content := b.String()
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) handleRune(r rune) {
	k, ok := KeyForRune(unicode.ToLower(r))
	if !ok {
		return
	}
	if k.Drift() {
		m.toggleDrift(k)
		return
	}
	for _, held := range m.pending {
		if held == k {
			return
		}
	}
	m.pending = append(m.pending, k)
	m.apply(m.sess.Handle(chord.Event{Key: k, Pressed: true, At: time.Now()}))
}

// handleBackspace lifts the most recent key early. The union keeps the key,
// so a mistyped key stays dim on the board until the chord is committed.
// With a single key pending the release would commit the chord, so it is
// ignored; space is the only way to finish.
func (m *Model) handleBackspace() {
	if len(m.pending) < 2 {
		return
	}
	k := m.pending[len(m.pending)-1]
	m.pending = m.pending[:len(m.pending)-1]
	m.apply(m.sess.Handle(chord.Event{Key: k, Pressed: false, At: time.Now()}))
}

func (m *Model) commitChord() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	now := time.Now()
	for i := len(m.pending) - 1; i >= 0; i-- {
		m.apply(m.sess.Handle(chord.Event{Key: m.pending[i], Pressed: false, At: now}))
	}
	m.pending = nil

	seq := m.resultSeq
	return tea.Tick(resultHold, func(time.Time) tea.Msg {
		return clearResultMsg{seq: seq}
	})
}

func (m *Model) toggleDrift(k steno.Key) {
	held := m.driftUpper
	if k != steno.DriftUpper {
		held = m.driftLower
	}
	m.apply(m.sess.Handle(chord.Event{Key: k, Pressed: !held, At: time.Now()}))
}

func (m *Model) apply(upd session.Update) {
	if upd.Frame != nil {
		m.frame = *upd.Frame
	}
	m.driftUpper = upd.DriftUpper
	m.driftLower = upd.DriftLower
	if upd.Result != nil {
		m.onResult(upd.Result)
	}
}

func (m *Model) onResult(res *session.Result) {
	if m.startedAt.IsZero() {
		m.startedAt = res.Started
	}
	m.chords++
	m.resultSeq++
	m.last = res
	m.lastWord = m.sess.Entry().Word

	if res.Matched {
		m.matched++
		entry := m.strokeEntry(res.Union.String())
		entry.correct++
		entry.latencySumMs += res.Ended.Sub(res.Started).Milliseconds()
		entry.latencyCount++
	} else {
		m.missed++
		name := res.Union.String()
		if res.HasNearest {
			name = res.Nearest.String()
		}
		m.strokeEntry(name).incorrect++
	}
	if res.Streak > m.bestStreak {
		m.bestStreak = res.Streak
	}
	if res.EntryComplete {
		m.entriesDone++
		if m.config.FocusWeak && m.entriesDone%10 == 0 {
			m.refreshWeakSet()
		}
		m.nextEntry()
	}
}

func (m *Model) strokeEntry(name string) *strokeStat {
	entry, ok := m.strokeStats[name]
	if !ok {
		entry = &strokeStat{}
		m.strokeStats[name] = entry
	}
	return entry
}

func (m *Model) nextEntry() {
	if len(m.entries) == 0 {
		return
	}
	var idx int
	if m.config.FocusWeak && len(m.weakSet) > 0 {
		idx = m.sel.PickWeighted(m.entries, m.weakSet, m.config.WeakFactor)
	} else {
		idx = m.sel.Pick(m.entries)
	}
	if idx < 0 {
		return
	}
	if err := m.sess.SetEntry(m.entries[idx]); err != nil {
		logErrf("failed to load next entry: %v\n", err)
	}
	m.frame = m.sess.Frame()
}

func (m *Model) refreshWeakSet() {
	ctx := context.Background()
	aggs, err := m.store.GetWeakStrokes(ctx, m.config.WeakWindow)
	if err != nil {
		logErrf("failed to load weak strokes: %v\n", err)
		return
	}
	if len(aggs) == 0 {
		if !m.weakNoticePrinted {
			logErrln("no stats available for weak-stroke focus yet; using uniform selection")
			m.weakNoticePrinted = true
		}
		m.weakSet = map[string]struct{}{}
		return
	}
	m.weakSet = statsPkg.SelectWeakStrokes(aggs, m.config.WeakTop)
}

func (m *Model) loadBestStreak() {
	best, err := m.store.BestStreak(context.Background())
	if err != nil {
		logErrf("failed to load best streak: %v\n", err)
		return
	}
	m.allTimeBest = best
}

func (m *Model) renderResult() string {
	if m.last == nil {
		return " "
	}
	res := m.last
	if res.Matched {
		line := fmt.Sprintf("✓ %s", res.Union)
		if res.Reward.Rewarded {
			line += fmt.Sprintf("  ♪%d", res.Reward.Level)
		}
		if res.EntryComplete {
			line += fmt.Sprintf("  %s!", m.lastWord)
		}
		return matchStyle.Render(line)
	}
	line := fmt.Sprintf("✗ %s", res.Union)
	if res.HasNearest {
		line += fmt.Sprintf("  wanted %s", res.Nearest)
	}
	return missStyle.Render(line)
}

func (m *Model) renderFooter() string {
	accuracy := 0.0
	if m.chords > 0 {
		accuracy = float64(m.matched) / float64(m.chords) * 100
	}
	best := m.bestStreak
	if m.allTimeBest > best {
		best = m.allTimeBest
	}
	segments := []string{
		fmt.Sprintf("Streak %d · Best %d", m.sess.Streak(), best),
		fmt.Sprintf("Chords %d · %.0f%%", m.chords, accuracy),
		"space commits · esc quits",
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) finishDrill() {
	if m.chords == 0 || m.startedAt.IsZero() {
		return
	}
	endedAt := time.Now()
	stats := model.DrillStats{
		StartedAt:  m.startedAt,
		EndedAt:    endedAt,
		DictPath:   m.config.DictPath,
		Entries:    m.entriesDone,
		Chords:     m.chords,
		Matched:    m.matched,
		Missed:     m.missed,
		BestStreak: m.bestStreak,
		DurationMs: endedAt.Sub(m.startedAt).Milliseconds(),
	}

	strokeStats := make([]model.StrokeStats, 0, len(m.strokeStats))
	for name, entry := range m.strokeStats {
		strokeStats = append(strokeStats, model.StrokeStats{
			Stroke:       name,
			Correct:      entry.correct,
			Incorrect:    entry.incorrect,
			LatencySumMs: entry.latencySumMs,
			LatencyCount: entry.latencyCount,
		})
	}

	ctx := context.Background()
	if _, err := m.store.InsertDrill(ctx, stats, strokeStats); err != nil {
		logErrf("failed to save drill: %v\n", err)
	}
	if _, err := m.store.RecordMilestone(ctx, endedAt, m.bestStreak); err != nil {
		logErrf("failed to record milestone: %v\n", err)
	}
}

func entryHint(e dict.Entry) string {
	hints := make([]string, 0, len(e.Alternatives))
	for _, alt := range e.Alternatives {
		hints = append(hints, steno.FormatSequence(alt))
	}
	return strings.Join(hints, " | ")
}

func progressDots(position, total int) string {
	if total <= 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < total; i++ {
		if i < position {
			b.WriteRune('●')
		} else {
			b.WriteRune('○')
		}
		if i < total-1 {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
