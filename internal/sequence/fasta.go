package sequence

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aria-lang/msvfilter-go/internal/alphabet"
)

// ReadFASTA reads sequences from a FASTA file.
func ReadFASTA(filename string, abc *alphabet.Alphabet) ([]*Sequence, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	return ParseFASTA(file, abc)
}

// ParseFASTA parses FASTA records from r and digitizes each one.
// Records with a header but no residues are skipped.
func ParseFASTA(r io.Reader, abc *alphabet.Alphabet) ([]*Sequence, error) {
	sequences := make([]*Sequence, 0)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var currentName, currentDesc string
	var currentText strings.Builder

	flush := func() error {
		if currentText.Len() == 0 {
			return nil
		}
		seq, err := New(abc, currentText.String())
		if err != nil {
			return err
		}
		seq.Name = currentName
		seq.Description = currentDesc
		sequences = append(sequences, seq)
		currentText.Reset()
		return nil
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if len(line) == 0 {
			continue
		}

		if line[0] == '>' {
			if err := flush(); err != nil {
				return nil, err
			}

			parts := strings.SplitN(line[1:], " ", 2)
			currentName = parts[0]
			if len(parts) > 1 {
				currentDesc = parts[1]
			} else {
				currentDesc = ""
			}
		} else {
			currentText.WriteString(line)
		}
	}

	if err := flush(); err != nil {
		return nil, err
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading fasta: %w", err)
	}

	return sequences, nil
}
