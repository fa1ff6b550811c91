package tracker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeEmpty(t *testing.T) {
	n := NewNormalizer(DefaultAliases())

	_, err := n.Normalize("")
	require.ErrorIs(t, err, ErrEmptyQuery)
	_, err = n.Normalize("   \t\n")
	require.ErrorIs(t, err, ErrEmptyQuery)
}

func TestNormalizeAlias(t *testing.T) {
	n := NewNormalizer(DefaultAliases())

	testCases := []struct {
		input    string
		expected string
	}{
		{"msft", "Microsoft"},
		{"MSFT", "Microsoft"},
		{"Microsoft", "Microsoft"},
		{"microsoft corpp", "Microsoft"}, // fuzzy hit on "microsoft corp"
		{"tcs", "Tata Consultancy Services"},
		{"acme widgets", "Acme Widgets"},
	}
	for _, test := range testCases {
		norm, err := n.Normalize(test.input)
		require.NoError(t, err)
		require.Equal(t, test.expected, norm.Base, "input %q", test.input)
	}
}

func TestNormalizeVariants(t *testing.T) {
	n := NewNormalizer(DefaultAliases())

	norm, err := n.Normalize("msft")
	require.NoError(t, err)
	require.Equal(t, []string{
		"Microsoft",
		"Microsoft India",
		"Microsoft GCC",
		"Microsoft Development Center",
		"Microsoft R&D",
	}, norm.Variants)

	norm, err = n.Normalize("acme widgets")
	require.NoError(t, err)
	require.Contains(t, norm.Variants, "AW", "multi-word names get an initialism variant")
}

func TestNormalizeIdempotent(t *testing.T) {
	n := NewNormalizer(DefaultAliases())

	for _, input := range []string{"msft", "acme widgets", "Google", "tcs"} {
		first, err := n.Normalize(input)
		require.NoError(t, err)
		second, err := n.Normalize(first.Base)
		require.NoError(t, err)
		require.Equal(t, first.Base, second.Base)
	}
}
