// Package report renders sequences, profiles and DP matrices as plain
// text for the CLI and for debugging.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/aria-lang/msvfilter-go/internal/alphabet"
	"github.com/aria-lang/msvfilter-go/internal/dpmatrix"
	"github.com/aria-lang/msvfilter-go/internal/profile"
	"github.com/aria-lang/msvfilter-go/internal/sequence"
)

// FormatScore prints a score with two decimals, spelling out infinities.
func FormatScore(v float64) string {
	switch {
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsNaN(v):
		return "nan"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Sequence writes the residues of dsq, with '?' for codes that are not
// canonical.
func Sequence(w io.Writer, dsq sequence.Digital, abc *alphabet.Alphabet) error {
	var sb strings.Builder
	for _, r := range dsq.Residues() {
		if abc.IsCanonical(r) {
			sb.WriteByte(abc.Symbol(r))
		} else {
			sb.WriteByte('?')
		}
	}
	_, err := fmt.Fprintf(w, "Digital Sequence (length %d): %s\n", dsq.Len(), sb.String())
	return err
}

// Profile writes the first maxX canonical scores of the first maxK
// positions. Non-positive limits mean "all".
func Profile(w io.Writer, prof *profile.Profile, maxK, maxX int) error {
	abc := prof.Alphabet()
	if maxK <= 0 || maxK > prof.M() {
		maxK = prof.M()
	}
	if maxX <= 0 || maxX > abc.K() {
		maxX = abc.K()
	}

	header := make([]string, 0, maxX+1)
	header = append(header, "k")
	for x := 0; x < maxX; x++ {
		header = append(header, string(abc.Symbol(alphabet.Residue(x))))
	}

	table := [][]string{header}
	for k := 1; k <= maxK; k++ {
		line := []string{strconv.Itoa(k)}
		for x := 0; x < maxX; x++ {
			sc, err := prof.Match(k, x)
			if err != nil {
				return err
			}
			line = append(line, FormatScore(sc))
		}
		table = append(table, line)
	}

	if _, err := fmt.Fprintf(w, "%s\n", prof); err != nil {
		return err
	}
	return writeTable(w, table)
}

// Matrix writes the match plane of mx, one row per sequence position.
// Row labels show the residue consumed at that row.
func Matrix(w io.Writer, mx *dpmatrix.Matrix, dsq sequence.Digital, abc *alphabet.Alphabet) error {
	header := []string{"i", "x"}
	for k := 0; k <= mx.M(); k++ {
		header = append(header, strconv.Itoa(k))
	}

	table := [][]string{header}
	for i, row := range mx.Rows() {
		label := "-"
		if i > 0 && i < len(dsq) {
			label = string(abc.Symbol(dsq[i]))
		}
		line := []string{strconv.Itoa(i), label}
		for _, v := range row {
			line = append(line, FormatScore(v))
		}
		table = append(table, line)
	}

	return writeTable(w, table)
}

// writeTable right-aligns each column to its widest cell.
func writeTable(w io.Writer, table [][]string) error {
	widths := make([]int, 0)
	for _, line := range table {
		for c, cell := range line {
			if c >= len(widths) {
				widths = append(widths, 0)
			}
			if cw := runewidth.StringWidth(cell); cw > widths[c] {
				widths[c] = cw
			}
		}
	}

	for _, line := range table {
		cells := make([]string, len(line))
		for c, cell := range line {
			cells[c] = runewidth.FillLeft(cell, widths[c])
		}
		if _, err := fmt.Fprintln(w, strings.Join(cells, " ")); err != nil {
			return err
		}
	}
	return nil
}
