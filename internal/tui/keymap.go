package tui

import "github.com/dewtone/stenodactylus/internal/steno"

// qwertyToSteno maps typewriter keys onto the steno layout, mirroring the
// Plover default. Both left-bank rows of S- and the four * keys fold onto
// one steno key each. z and x stand in for the drift keys one column left
// of S-.
var qwertyToSteno = map[rune]steno.Key{}

func init() {
	bind := func(name string, runes ...rune) {
		k, ok := steno.KeyByName(name)
		if !ok {
			panic("unknown steno key " + name)
		}
		for _, r := range runes {
			qwertyToSteno[r] = k
		}
	}
	bind("#", '1', '2', '3', '4', '5', '6', '7', '8', '9', '0')
	bind("S-", 'q', 'a')
	bind("T-", 'w')
	bind("K-", 's')
	bind("P-", 'e')
	bind("W-", 'd')
	bind("H-", 'r')
	bind("R-", 'f')
	bind("A", 'c')
	bind("O", 'v')
	bind("*", 't', 'g', 'y', 'h')
	bind("E", 'n')
	bind("U", 'm')
	bind("-F", 'u')
	bind("-R", 'j')
	bind("-P", 'i')
	bind("-B", 'k')
	bind("-L", 'o')
	bind("-G", 'l')
	bind("-T", 'p')
	bind("-S", ';')
	bind("-D", '[')
	bind("-Z", '\'')
	bind("_L1", 'z')
	bind("_L2", 'x')
}

// KeyForRune resolves a typed rune to its steno key.
func KeyForRune(r rune) (steno.Key, bool) {
	k, ok := qwertyToSteno[r]
	return k, ok
}
