package storage

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/eggdive/internal/dive"
	"github.com/san-kum/eggdive/internal/dynamo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadGuesses(t *testing.T) {
	input := `# height, width, groove angle, n, density, groove depth
0.3, 0.3, 1.5707963267948966, 10, 500, 0.15

0.06,0.06,0,1,300,0   # smooth
`
	got, err := ReadGuesses(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.InDeltaSlice(t, []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5}, got[0], 1e-12)
	assert.InDeltaSlice(t, []float64{0.1, 0.1, 0, 0.05, 0.3, 0}, got[1], 1e-12)
	assert.InDeltaSlice(t, []float64{0.06, 0.06, 0, 1, 300, 0}, dive.Scaled(got[1]), 1e-12)
}

func TestReadGuesses_Errors(t *testing.T) {
	tests := []string{
		"0.1, 0.1, 0, 1, 300\n",
		"0.1, 0.1, 0, 1, 300, 0, 7\n",
		"0.1, abc, 0, 1, 300, 0\n",
	}
	for _, input := range tests {
		_, err := ReadGuesses(strings.NewReader(input))
		assert.Error(t, err, input)
	}
}

func TestLoadGuesses_Missing(t *testing.T) {
	_, err := LoadGuesses(filepath.Join(t.TempDir(), "initials.csv"))
	assert.Error(t, err)
}

func TestResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outs.csv")

	require.NoError(t, AppendResults(path, []float64{0.07, 0}))
	require.NoError(t, AppendResults(path, []float64{dynamo.Tau}))

	got, err := LoadResults(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.07, 0, dynamo.Tau}, got)
}
