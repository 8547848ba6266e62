// Package basics holds the language warm-up of the walkthrough: literals,
// arithmetic, a mutable list of authors and simple control flow.
package basics

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/primer/pkg/errors"
)

// Literals used by the variables lesson.
const (
	IntLiteral    = 4
	FloatLiteral  = 4.5
	BoolLiteral   = false
	StringLiteral = "Number of literals:"

	ReassignedInt = 7
)

// Add returns a + b.
func Add(a, b int) int { return a + b }

// Mul returns a * b.
func Mul(a, b int) int { return a * b }

// Div is true division: the result is always a float.
func Div(a, b float64) (float64, error) {
	if b == 0 {
		return 0, errors.NewValueError("basics.Div", "division by zero")
	}
	return a / b, nil
}

// Pow returns base raised to exp.
func Pow(base, exp float64) float64 { return math.Pow(base, exp) }

// Equal reports a == b.
func Equal(a, b int) bool { return a == b }

// NotEqual reports a != b.
func NotEqual(a, b int) bool { return a != b }

// ToFloat parses s as a float. Surrounding whitespace is ignored.
func ToFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.NewConversionError(s, "float", err)
	}
	return v, nil
}

// Authors is an ordered, mutable list of names.
type Authors struct {
	items []string
}

// NewAuthors returns a list holding names in order.
func NewAuthors(names ...string) *Authors {
	return &Authors{items: append([]string(nil), names...)}
}

// DefaultAuthors is the list the walkthrough starts from.
func DefaultAuthors() *Authors {
	return NewAuthors("Tolkien", "Orwell", "Austen")
}

// Len returns the number of names.
func (a *Authors) Len() int { return len(a.items) }

// At returns the name at index i.
func (a *Authors) At(i int) (string, error) {
	if i < 0 || i >= len(a.items) {
		return "", errors.NewValueError("Authors.At", fmt.Sprintf("index %d out of range [0, %d)", i, len(a.items)))
	}
	return a.items[i], nil
}

// Append adds name at the end.
func (a *Authors) Append(name string) {
	a.items = append(a.items, name)
}

// Insert places name before index i; i == Len appends.
func (a *Authors) Insert(i int, name string) error {
	if i < 0 || i > len(a.items) {
		return errors.NewValueError("Authors.Insert", fmt.Sprintf("index %d out of range [0, %d]", i, len(a.items)))
	}
	a.items = append(a.items, "")
	copy(a.items[i+1:], a.items[i:])
	a.items[i] = name
	return nil
}

// Sort orders the names lexicographically (byte order).
func (a *Authors) Sort() {
	sort.Strings(a.items)
}

// Items returns a copy of the names.
func (a *Authors) Items() []string {
	return append([]string(nil), a.items...)
}

// String formats the list like a bracketed literal.
func (a *Authors) String() string {
	quoted := make([]string, len(a.items))
	for i, s := range a.items {
		quoted[i] = strconv.Quote(s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// SumRange sums the integers lo..hi inclusive.
func SumRange(lo, hi int) int {
	total := 0
	for i := lo; i <= hi; i++ {
		total += i
	}
	return total
}

// Sum adds up values.
func Sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

// GoldBranch returns the message of the conditional lesson:
// "Hello, 5!" when a == b, "Much gold!" when a > b, and "" otherwise.
func GoldBranch(a, b int) string {
	if a == b {
		return "Hello, 5!"
	} else if a > b {
		return "Much gold!"
	}
	return ""
}

// Introduce prints a two-line introduction in French.
func Introduce(w io.Writer, name string, age int) error {
	if _, err := fmt.Fprintf(w, "Je m'appelle %s\n", name); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Mon âge est %d\n", age)
	return err
}
