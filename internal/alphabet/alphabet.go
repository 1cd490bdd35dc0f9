// Package alphabet provides the digital residue alphabet used by profiles
// and sequences.
//
// An Alphabet maps raw character codes to small integer residue indices.
// The first K symbols are canonical residues and are the only ones that
// can be scored; the remaining Kp-K symbols cover gaps, ambiguity codes,
// the "any" wildcard, and terminator/missing markers.
package alphabet

// Residue is a digital residue code.
type Residue uint8

const (
	// Sentinel marks positions 0 and L+1 of a digital sequence.
	Sentinel Residue = 255
	// Illegal is returned for characters that have no mapping.
	Illegal Residue = 254
)

// aminoSymbols is the amino acid symbol table: 20 canonical residues,
// then gap, the ambiguity codes B J Z O U, the X wildcard, '*' and '~'.
const aminoSymbols = "ACDEFGHIKLMNPQRSTVWY-BJZOUX*~"

// Alphabet is an immutable symbol table. Build one with NewAmino, or use
// the shared Amino value.
type Alphabet struct {
	k      int
	kp     int
	sym    string
	inmap  [128]Residue
	ndegen []int
	degen  [][]bool
}

// Amino is the process-wide amino acid alphabet.
var Amino = NewAmino()

// NewAmino builds the 20/29 amino acid alphabet.
//
// Only the exact characters of the symbol table are mapped; lookups are
// case sensitive. The canonical residues are degenerate only to
// themselves and the X wildcard is degenerate to every canonical residue.
// The other ambiguity codes (B, J, Z, O, U) carry no degeneracy.
func NewAmino() *Alphabet {
	a := &Alphabet{
		k:   20,
		kp:  len(aminoSymbols),
		sym: aminoSymbols,
	}

	for c := range a.inmap {
		a.inmap[c] = Illegal
	}
	for x := 0; x < a.kp; x++ {
		a.inmap[a.sym[x]] = Residue(x)
	}

	a.ndegen = make([]int, a.kp)
	a.degen = make([][]bool, a.kp)
	for x := range a.degen {
		a.degen[x] = make([]bool, a.k)
	}

	for x := 0; x < a.k; x++ {
		a.ndegen[x] = 1
		a.degen[x][x] = true
	}

	anyIdx := a.kp - 3
	a.ndegen[anyIdx] = a.k
	for y := 0; y < a.k; y++ {
		a.degen[anyIdx][y] = true
	}

	return a
}

// K returns the number of canonical residues.
func (a *Alphabet) K() int { return a.k }

// Kp returns the size of the full symbol table.
func (a *Alphabet) Kp() int { return a.kp }

// Symbols returns the symbol string, one character per digital index.
func (a *Alphabet) Symbols() string { return a.sym }

// Index maps a raw character to its digital residue. Characters outside
// the table, including any byte >= 128, return Illegal.
func (a *Alphabet) Index(c byte) Residue {
	if c >= byte(len(a.inmap)) {
		return Illegal
	}
	return a.inmap[c]
}

// IndexFold is Index with ASCII a-z folded to upper case first. Other
// bytes are looked up unchanged.
func (a *Alphabet) IndexFold(c byte) Residue {
	if 'a' <= c && c <= 'z' {
		c -= 'a' - 'A'
	}
	return a.Index(c)
}

// Symbol returns the character for a digital residue, or '?' when r is
// not in the table.
func (a *Alphabet) Symbol(r Residue) byte {
	if int(r) >= a.kp {
		return '?'
	}
	return a.sym[r]
}

// IsCanonical reports whether r is one of the K scoreable residues.
func (a *Alphabet) IsCanonical(r Residue) bool {
	return int(r) < a.k
}

// Degeneracy reports whether symbol row may represent canonical residue
// col. Out-of-range arguments report false.
func (a *Alphabet) Degeneracy(row, col int) bool {
	if row < 0 || row >= a.kp || col < 0 || col >= a.k {
		return false
	}
	return a.degen[row][col]
}

// NDegen returns how many canonical residues symbol row represents.
func (a *Alphabet) NDegen(row int) int {
	if row < 0 || row >= a.kp {
		return 0
	}
	return a.ndegen[row]
}

// Gap returns the digital code of the gap symbol.
func (a *Alphabet) Gap() Residue { return a.inmap['-'] }

// Any returns the digital code of the X wildcard.
func (a *Alphabet) Any() Residue { return Residue(a.kp - 3) }
