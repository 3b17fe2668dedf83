package steno

import "testing"

func mustParse(t *testing.T, notation string) Stroke {
	t.Helper()
	s, err := Parse(notation)
	if err != nil {
		t.Fatalf("parse %q: %v", notation, err)
	}
	return s
}

func TestParseBanks(t *testing.T) {
	cases := []struct {
		notation string
		keys     []string
	}{
		{"STKPW", []string{"S-", "T-", "K-", "P-", "W-"}},
		{"RAOEUT", []string{"R-", "A", "O", "E", "U", "-T"}},
		{"TPH-PB", []string{"T-", "P-", "H-", "-P", "-B"}},
		{"-T", []string{"-T"}},
		{"SWR", []string{"S-", "W-", "R-"}},
		{"SWR-F", []string{"S-", "W-", "R-", "-F"}},
		{"PEUBG", []string{"P-", "E", "U", "-B", "-G"}},
		{"KHUR", []string{"K-", "H-", "U", "-R"}},
		{"#S", []string{"#", "S-"}},
		{"ST*PB", []string{"S-", "T-", "*", "-P", "-B"}},
	}
	for _, tc := range cases {
		got := mustParse(t, tc.notation)
		var want Stroke
		for _, name := range tc.keys {
			k, ok := KeyByName(name)
			if !ok {
				t.Fatalf("unknown key %q", name)
			}
			want = want.With(k)
		}
		if got != want {
			t.Fatalf("parse %q = %v, want %v", tc.notation, got, want)
		}
	}
}

func TestParseRejectsUnplaceable(t *testing.T) {
	for _, notation := range []string{"TS-T-T", "Q", "AA"} {
		if _, err := Parse(notation); err == nil {
			t.Fatalf("parse %q: expected error", notation)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, notation := range []string{"SWR", "SWR-F", "PEUBG", "KHUR", "RAOEUT", "-T", "-FPLT", "ST", "STKPWHRAO*EUFRPBLGTSDZ"} {
		s := mustParse(t, notation)
		if got := s.String(); got != notation {
			t.Fatalf("String(%q) = %q", notation, got)
		}
	}
}

func TestStringEmpty(t *testing.T) {
	if got := EmptyStroke.String(); got != "" {
		t.Fatalf("empty stroke rendered as %q", got)
	}
}

func TestSubsetAndOverlap(t *testing.T) {
	swr := mustParse(t, "SWR")
	swrf := mustParse(t, "SWR-F")
	st := mustParse(t, "ST")
	if !swr.SubsetOf(swrf) {
		t.Fatal("SWR should be a subset of SWR-F")
	}
	if swrf.SubsetOf(swr) {
		t.Fatal("SWR-F should not be a subset of SWR")
	}
	if got := swr.Overlap(st); got != 1 {
		t.Fatalf("overlap(SWR, ST) = %d, want 1", got)
	}
}

func TestDriftKeysExcludedFromStrokes(t *testing.T) {
	if !DriftUpper.Drift() || !DriftLower.Drift() {
		t.Fatal("drift keys should report Drift()")
	}
	s := EmptyStroke.With(DriftUpper)
	if !s.Empty() {
		t.Fatal("adding a drift key must not change a stroke")
	}
	if s.Has(DriftUpper) {
		t.Fatal("stroke must never contain a drift key")
	}
}

func TestParseSequence(t *testing.T) {
	seq, err := ParseSequence("PEUBG/KHUR")
	if err != nil {
		t.Fatalf("parse sequence: %v", err)
	}
	if len(seq) != 2 {
		t.Fatalf("sequence length = %d, want 2", len(seq))
	}
	if got := FormatSequence(seq); got != "PEUBG/KHUR" {
		t.Fatalf("format sequence = %q", got)
	}
	if _, err := ParseSequence("PEUBG//KHUR"); err == nil {
		t.Fatal("expected error for empty stroke in sequence")
	}
}

func TestPanSpansStereoField(t *testing.T) {
	left, _ := KeyByName("S-")
	right, _ := KeyByName("-Z")
	if Pan(left) >= 0 {
		t.Fatalf("S- pan = %f, want < 0", Pan(left))
	}
	if Pan(right) <= 0 {
		t.Fatalf("-Z pan = %f, want > 0", Pan(right))
	}
	if Pan(DriftUpper) != -1 {
		t.Fatalf("drift pan = %f, want -1", Pan(DriftUpper))
	}
}
