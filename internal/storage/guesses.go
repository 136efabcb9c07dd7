package storage

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/eggdive/internal/dive"
)

// LoadGuesses reads comma separated parameter vectors, one per line, and
// divides each by dive.Scale. '#' starts a comment; blank lines are
// skipped.
func LoadGuesses(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadGuesses(f)
}

func ReadGuesses(r io.Reader) ([][]float64, error) {
	var guesses [][]float64

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		cr := csv.NewReader(strings.NewReader(text))
		cr.TrimLeadingSpace = true
		fields, err := cr.Read()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(fields) != dive.VectorLen {
			return nil, fmt.Errorf("line %d: expected %d values, got %d", line, dive.VectorLen, len(fields))
		}

		vec := make([]float64, len(fields))
		for i, field := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			vec[i] = v
		}
		guesses = append(guesses, dive.Normalized(vec))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return guesses, nil
}
