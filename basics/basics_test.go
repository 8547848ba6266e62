package basics

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/primer/pkg/errors"
)

func TestArithmetic(t *testing.T) {
	assert.Equal(t, 6, Add(5, 1))
	assert.Equal(t, 15, Mul(5, 3))
	assert.Equal(t, 8.0, Pow(2, 3))
	assert.False(t, Equal(6, 100))
	assert.True(t, NotEqual(6, 100))

	q, err := Div(20, 2)
	require.NoError(t, err)
	assert.Equal(t, 10.0, q)

	q, err = Div(7, 2)
	require.NoError(t, err)
	assert.Equal(t, 3.5, q)

	_, err = Div(1, 0)
	assert.Error(t, err)
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"4.5", 4.5, false},
		{" 7 ", 7, false},
		{"-1e3", -1000, false},
		{StringLiteral, 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ToFloat(tt.input)
			if tt.wantErr {
				var convErr *errors.ConversionError
				require.True(t, errors.As(err, &convErr), "want ConversionError, got %v", err)
				assert.Equal(t, tt.input, convErr.Input)
				assert.True(t, errors.Is(err, strconv.ErrSyntax))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuthors(t *testing.T) {
	a := DefaultAuthors()

	first, err := a.At(0)
	require.NoError(t, err)
	assert.Equal(t, "Tolkien", first)

	a.Append("Mephistopheles")
	require.NoError(t, a.Insert(2, "Shrek"))
	assert.Equal(t, []string{"Tolkien", "Orwell", "Shrek", "Austen", "Mephistopheles"}, a.Items())
	assert.Equal(t, 5, a.Len())

	a.Sort()
	assert.Equal(t, []string{"Austen", "Mephistopheles", "Orwell", "Shrek", "Tolkien"}, a.Items())
	assert.Equal(t, `["Austen", "Mephistopheles", "Orwell", "Shrek", "Tolkien"]`, a.String())
}

func TestAuthorsBounds(t *testing.T) {
	a := NewAuthors("x")

	_, err := a.At(1)
	assert.Error(t, err)
	_, err = a.At(-1)
	assert.Error(t, err)

	assert.Error(t, a.Insert(2, "y"))
	assert.Error(t, a.Insert(-1, "y"))

	require.NoError(t, a.Insert(1, "end"))
	require.NoError(t, a.Insert(0, "start"))
	assert.Equal(t, []string{"start", "x", "end"}, a.Items())

	items := a.Items()
	items[0] = "mutated"
	first, _ := a.At(0)
	assert.Equal(t, "start", first, "Items must return a copy")
}

func TestSums(t *testing.T) {
	assert.Equal(t, 55, SumRange(1, 10))
	assert.Equal(t, 0, SumRange(5, 1))
	assert.Equal(t, 55, Sum([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}))
	assert.Equal(t, 0, Sum(nil))
}

func TestGoldBranch(t *testing.T) {
	assert.Equal(t, "Much gold!", GoldBranch(101, 100))
	assert.Equal(t, "Hello, 5!", GoldBranch(100, 100))
	assert.Equal(t, "", GoldBranch(99, 100))
}

func TestIntroduce(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Introduce(&buf, "Saruman", 1000))
	assert.Equal(t, "Je m'appelle Saruman\nMon âge est 1000\n", buf.String())
}
