package matrix

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDense_Set(t *testing.T) {
	m, err := New([]string{"A", "B", "C"})
	require.NoError(t, err)
	assert.Equal(t, 3, m.Len())
	assert.False(t, m.Complete())
	assert.Len(t, m.Missing(), 3)

	require.NoError(t, m.Set(0, 1, 0.5))
	require.NoError(t, m.Set(2, 0, 1.5))
	assert.Equal(t, 0.5, m.At(1, 0))
	assert.Equal(t, 1.5, m.At(0, 2))
	assert.True(t, m.IsSet(2, 0))
	assert.Equal(t, [][2]int{{1, 2}}, m.Missing())

	require.NoError(t, m.Set(1, 2, 2))
	assert.True(t, m.Complete())
	assert.True(t, m.IsSymmetric())
	assert.Equal(t, []float64{0, 0.5, 1.5}, m.Row(0))

	t.Run("Diagonal", func(t *testing.T) {
		assert.NoError(t, m.Set(1, 1, 0))
		assert.Error(t, m.Set(1, 1, 3))
		assert.Equal(t, 0.0, m.At(1, 1))
	})

	t.Run("OutOfRange", func(t *testing.T) {
		var oor *ErrIndexOutOfRange
		require.ErrorAs(t, m.Set(0, 3, 1), &oor)
		assert.Equal(t, 3, oor.N)
		require.ErrorAs(t, m.Set(-1, 0, 1), &oor)
	})
}

func TestDense_NamesAreCopied(t *testing.T) {
	names := []string{"x", "y"}
	m, err := New(names)
	require.NoError(t, err)
	names[0] = "z"
	assert.Equal(t, []string{"x", "y"}, m.Names())
}

func TestDense_IsSymmetricWithNaN(t *testing.T) {
	m, err := New([]string{"A", "B"})
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 1, math.NaN()))
	assert.True(t, m.IsSymmetric())
}

func TestDense_WriteTo(t *testing.T) {
	m, err := New([]string{"net1", "dir/net2", "net3"})
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 1, 0.25))
	require.NoError(t, m.Set(0, 2, 1))
	require.NoError(t, m.Set(1, 2, 1e-7))

	var buf bytes.Buffer
	n, err := m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	want := "\tnet1\tdir/net2\tnet3\n" +
		"net1\t0\t0.25\t1\n" +
		"dir/net2\t0.25\t0\t1e-07\n" +
		"net3\t1\t1e-07\t0\n"
	assert.Equal(t, want, buf.String())
	assert.Equal(t, want, m.String())
}

func TestRead(t *testing.T) {
	m, err := New([]string{"A", "B", "C"})
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 1, 3.5))
	require.NoError(t, m.Set(0, 2, 0.125))
	require.NoError(t, m.Set(1, 2, 2))

	got, err := Read(strings.NewReader(m.String()))
	require.NoError(t, err)
	assert.Equal(t, m.Names(), got.Names())
	assert.True(t, got.Complete())
	for i := 0; i < 3; i++ {
		assert.Equal(t, m.Row(i), got.Row(i))
	}

	t.Run("Empty", func(t *testing.T) {
		empty, err := New(nil)
		require.NoError(t, err)
		got, err := Read(strings.NewReader(empty.String()))
		require.NoError(t, err)
		assert.Equal(t, 0, got.Len())
		assert.True(t, got.Complete())
	})
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"NoHeader", ""},
		{"HeaderWithoutTab", "A\tB\n"},
		{"WrongRowName", "\tA\tB\nA\t0\t1\nC\t1\t0\n"},
		{"ShortRow", "\tA\tB\nA\t0\nB\t1\t0\n"},
		{"MissingRow", "\tA\tB\nA\t0\t1\n"},
		{"NotNumeric", "\tA\tB\nA\t0\tx\nB\tx\t0\n"},
		{"Asymmetric", "\tA\tB\nA\t0\t1\nB\t2\t0\n"},
		{"NonZeroDiagonal", "\tA\tB\nA\t1\t1\nB\t1\t0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}
