package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"  Jon   Smith ", "jon smith"},
		{"JON\tSMITH", "jon smith"},
		{"jon smith", "jon smith"},
		{"", ""},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, NormalizeName(test.input))
	}
}

func TestSimilarity(t *testing.T) {
	testCases := []struct {
		a, b string
		min  int
		max  int
	}{
		{"Jon Smith", "Jon Smith", 100, 100},
		{"Jon Smith", "jon  smith", 100, 100},
		{"Jon Smith", "Jon Smyth", 85, 95},
		{"Jon Smith", "Jane Smith", 0, 80},
		{"", "", 100, 100},
		{"abc", "xyz", 0, 0},
	}
	for _, test := range testCases {
		score := Similarity(test.a, test.b)
		require.GreaterOrEqual(t, score, test.min, "%q vs %q", test.a, test.b)
		require.LessOrEqual(t, score, test.max, "%q vs %q", test.a, test.b)
	}
}

func TestInitialism(t *testing.T) {
	require.Equal(t, "TCS", Initialism("Tata Consultancy Services"))
	require.Equal(t, "", Initialism("Microsoft"))
	require.Equal(t, "", Initialism(""))
}

func TestTitleCase(t *testing.T) {
	require.Equal(t, "Tata Consultancy", TitleCase("tata CONSULTANCY"))
}
