package tui

import (
	"context"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dewtone/stenodactylus/internal/dict"
	"github.com/dewtone/stenodactylus/internal/model"
	"github.com/dewtone/stenodactylus/internal/steno"
	"github.com/dewtone/stenodactylus/internal/store"
)

func testModel(t *testing.T, words map[string]string) *Model {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	entries := make([]dict.Entry, 0, len(words))
	for word, notation := range words {
		strokes, err := steno.ParseSequence(notation)
		if err != nil {
			t.Fatalf("failed to parse %q: %v", notation, err)
		}
		entries = append(entries, dict.Entry{Word: word, Alternatives: [][]steno.Stroke{strokes}})
	}
	sel := dict.NewSelectorWithSource(rand.NewSource(1))
	return NewModel(model.Config{DictPath: "test.txt"}, st, sel, entries, nil, false)
}

func typeRunes(m *Model, runes string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(runes)})
}

func commit(m *Model) {
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
}

func TestModelMatchedChord(t *testing.T) {
	m := testModel(t, map[string]string{"cat": "KAT"})

	// K- A -T on the Plover layout.
	typeRunes(m, "scp")
	if len(m.pending) != 3 {
		t.Fatalf("pending = %d keys, want 3", len(m.pending))
	}
	commit(m)

	if m.chords != 1 || m.matched != 1 || m.missed != 0 {
		t.Fatalf("counts = %d/%d/%d, want 1 chord, 1 matched", m.chords, m.matched, m.missed)
	}
	if m.entriesDone != 1 {
		t.Fatalf("entriesDone = %d, want 1", m.entriesDone)
	}
	if len(m.pending) != 0 {
		t.Fatalf("pending not cleared after commit")
	}
	stat, ok := m.strokeStats["KAT"]
	if !ok || stat.correct != 1 {
		t.Fatalf("stroke stats not recorded for KAT: %+v", m.strokeStats)
	}
}

func TestModelMissedChord(t *testing.T) {
	m := testModel(t, map[string]string{"cat": "KAT"})

	// T- alone is no prefix of KAT.
	typeRunes(m, "w")
	commit(m)

	if m.matched != 0 || m.missed != 1 {
		t.Fatalf("counts = %d matched, %d missed, want a miss", m.matched, m.missed)
	}
	if m.last == nil || m.last.Matched {
		t.Fatal("miss result not retained for display")
	}
	stat, ok := m.strokeStats["KAT"]
	if !ok || stat.incorrect != 1 {
		t.Fatalf("miss not attributed to the wanted stroke: %+v", m.strokeStats)
	}
}

func TestModelBackspaceKeepsUnion(t *testing.T) {
	m := testModel(t, map[string]string{"cat": "KAT"})

	typeRunes(m, "sw")
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if len(m.pending) != 1 {
		t.Fatalf("pending = %d keys after backspace, want 1", len(m.pending))
	}
	commit(m)

	// T- stayed in the union, so the chord is K-+T- and misses.
	if m.missed != 1 {
		t.Fatalf("missed = %d, want 1: lifted key must stay in the union", m.missed)
	}
}

func TestModelBackspaceSingleKeyIgnored(t *testing.T) {
	m := testModel(t, map[string]string{"cat": "KAT"})

	typeRunes(m, "s")
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if len(m.pending) != 1 {
		t.Fatal("backspace with one pending key should not commit the chord")
	}
	if m.chords != 0 {
		t.Fatalf("chords = %d, want 0", m.chords)
	}
}

func TestModelDriftToggle(t *testing.T) {
	m := testModel(t, map[string]string{"cat": "KAT"})

	typeRunes(m, "z")
	if !m.driftUpper {
		t.Fatal("upper drift key should be held after toggle")
	}
	typeRunes(m, "z")
	if m.driftUpper {
		t.Fatal("upper drift key should release on second toggle")
	}

	// A held drift key never joins the chord.
	typeRunes(m, "z")
	typeRunes(m, "scp")
	commit(m)
	if m.matched != 1 {
		t.Fatalf("matched = %d, drift key must not affect the chord", m.matched)
	}
}

func TestModelViewShowsPromptAndHint(t *testing.T) {
	m := testModel(t, map[string]string{"cat": "KAT"})
	out := m.View()
	if !strings.Contains(out, "cat") {
		t.Fatalf("view missing prompt word:\n%s", out)
	}
	if !strings.Contains(out, "KAT") {
		t.Fatalf("view missing stroke hint:\n%s", out)
	}
}

func TestModelFinishDrillPersists(t *testing.T) {
	m := testModel(t, map[string]string{"cat": "KAT"})

	typeRunes(m, "scp")
	commit(m)
	m.finishDrill()

	drills, err := m.store.ListDrills(context.Background(), model.StatsConfig{})
	if err != nil {
		t.Fatalf("failed to list drills: %v", err)
	}
	if len(drills) != 1 {
		t.Fatalf("got %d drills, want 1", len(drills))
	}
	if drills[0].Matched != 1 {
		t.Fatalf("persisted matched = %d, want 1", drills[0].Matched)
	}
}
