package steno

// Physical layout of the machine, used for keyboard rendering and for
// stereo placement of sound descriptors. Columns run 0..9 left to right;
// S- and * span both consonant rows.

// TopRow and BottomRow are the consonant rows as rendered; VowelRow sits
// below, indented under the home columns.
var (
	TopRow    = namedKeys("S-", "T-", "P-", "H-", "*", "-F", "-P", "-L", "-T", "-D")
	BottomRow = namedKeys("S-", "K-", "W-", "R-", "*", "-R", "-B", "-G", "-S", "-Z")
	VowelRow  = namedKeys("A", "O", "E", "U")
)

func namedKeys(names ...string) []Key {
	keys := make([]Key, len(names))
	for i, name := range names {
		k, ok := KeyByName(name)
		if !ok {
			panic("unknown steno key " + name)
		}
		keys[i] = k
	}
	return keys
}

// keyColumn gives each key a column position on the 0..9 grid. Vowels sit
// between the banks; # spans the full width and is treated as center.
var keyColumn = map[Key]float64{}

func init() {
	place := func(name string, col float64) {
		k, ok := KeyByName(name)
		if !ok {
			panic("unknown steno key " + name)
		}
		keyColumn[k] = col
	}
	place("#", 4.5)
	for i, name := range []string{"S-", "T-", "P-", "H-", "*", "-F", "-P", "-L", "-T", "-D"} {
		place(name, float64(i))
	}
	bottom := map[string]float64{"K-": 1, "W-": 2, "R-": 3, "-R": 5, "-B": 6, "-G": 7, "-S": 8, "-Z": 9}
	for name, col := range bottom {
		place(name, col)
	}
	place("A", 2.3)
	place("O", 3.3)
	place("E", 4.7)
	place("U", 5.7)
}

// Pan returns the stereo position of a key, -1 (hard left) to +1 (hard
// right), from its physical column. Drift keys sit past the left edge.
func Pan(k Key) float64 {
	if k.Drift() {
		return -1
	}
	col, ok := keyColumn[k]
	if !ok {
		return 0
	}
	return col/4.5 - 1
}
