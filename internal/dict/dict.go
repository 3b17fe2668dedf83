// Package dict loads training dictionaries and resolves practice entries.
package dict

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/dewtone/stenodactylus/internal/steno"
)

// Entry is one trainable unit: a word or phrase with one or more stroke
// alternatives, each a sequence of one or more strokes.
type Entry struct {
	Word         string
	Alternatives [][]steno.Stroke
}

// LoadEntries reads a tab-separated dictionary: word<TAB>stroke, "/" for
// multi-stroke sequences, "#" lines as comments. Repeated words collect
// alternatives; first-seen order is preserved.
func LoadEntries(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only dictionary.
			_ = cerr
		}
	}()

	byWord := map[string]int{}
	var entries []Entry

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, notation, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("%s:%d: expected word<TAB>stroke, got %q", path, lineNum, line)
		}
		seq, err := steno.ParseSequence(notation)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNum, err)
		}

		idx, seen := byWord[word]
		if !seen {
			idx = len(entries)
			byWord[word] = idx
			entries = append(entries, Entry{Word: word})
		}
		if !containsSequence(entries[idx].Alternatives, seq) {
			entries[idx].Alternatives = append(entries[idx].Alternatives, seq)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("dictionary %s is empty", path)
	}
	return entries, nil
}

// Lookup builds a word to alternatives index for phrase resolution.
func Lookup(entries []Entry) map[string][][]steno.Stroke {
	out := make(map[string][][]steno.Stroke, len(entries))
	for _, e := range entries {
		out[e.Word] = e.Alternatives
	}
	return out
}

// LoadPhrases reads a phrase file (one phrase of known words per line) and
// resolves strokes from the word dictionary. Every combination of per-word
// alternatives becomes one concatenated alternative for the phrase.
func LoadPhrases(path string, lookup map[string][][]steno.Stroke) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only phrase file.
			_ = cerr
		}
	}()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words := strings.Fields(line)
		perWord := make([][][]steno.Stroke, len(words))
		for i, w := range words {
			alts, ok := lookup[w]
			if !ok {
				return nil, fmt.Errorf("%s:%d: word %q not in word dictionary", path, lineNum, w)
			}
			perWord[i] = alts
		}
		entries = append(entries, Entry{
			Word:         line,
			Alternatives: expandPhrase(perWord),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// expandPhrase takes per-word alternatives and returns the Cartesian
// product, each combination concatenated into one stroke sequence.
func expandPhrase(perWord [][][]steno.Stroke) [][]steno.Stroke {
	out := [][]steno.Stroke{{}}
	for _, alts := range perWord {
		next := make([][]steno.Stroke, 0, len(out)*len(alts))
		for _, prefix := range out {
			for _, alt := range alts {
				seq := make([]steno.Stroke, 0, len(prefix)+len(alt))
				seq = append(seq, prefix...)
				seq = append(seq, alt...)
				if !containsSequence(next, seq) {
					next = append(next, seq)
				}
			}
		}
		out = next
	}
	return out
}

func containsSequence(seqs [][]steno.Stroke, seq []steno.Stroke) bool {
	for _, existing := range seqs {
		if sequencesEqual(existing, seq) {
			return true
		}
	}
	return false
}

func sequencesEqual(a, b []steno.Stroke) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// LoadAll loads the word dictionary plus optional phrase and phrasing
// files. Missing optional files are skipped.
func LoadAll(wordPath, phrasePath, phrasingPath string) ([]Entry, error) {
	entries, err := LoadEntries(wordPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load word dictionary: %w", err)
	}
	all := entries

	if phrasePath != "" {
		if _, err := os.Stat(phrasePath); err == nil {
			phrases, err := LoadPhrases(phrasePath, Lookup(entries))
			if err != nil {
				return nil, fmt.Errorf("failed to load phrases: %w", err)
			}
			all = append(all, phrases...)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat phrase file: %w", err)
		}
	}

	if phrasingPath != "" {
		if _, err := os.Stat(phrasingPath); err == nil {
			phrasing, err := LoadEntries(phrasingPath)
			if err != nil {
				return nil, fmt.Errorf("failed to load phrasing entries: %w", err)
			}
			all = append(all, phrasing...)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat phrasing file: %w", err)
		}
	}

	return all, nil
}
