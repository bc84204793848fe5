package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHasValue(t *testing.T) {
	require.False(t, Token{Length: 2}.HasValue(), "plain whitespace filler has no value")
	require.False(t, Token{Length: 1, VBC: Filler}.HasValue(), "punctuation filler has no value")
	require.True(t, Token{Length: 4, VBC: Literal, VBD: LiteralTrue}.HasValue())
	require.True(t, Token{Length: 2, VBC: Filler, VBD: FillerCommentLine}.HasValue(), "comments carry value")
	require.True(t, Token{Length: 3, VMajor: 0x122C6D}.HasValue())
}

func TestBase38Tag(t *testing.T) {
	v, ok := PackTag("json")
	require.True(t, ok)
	require.Equal(t, [4]byte{'j', 's', 'o', 'n'}, Base38Tag(v))

	v, ok = PackTag(" 0?z")
	require.True(t, ok)
	require.Equal(t, [4]byte{' ', '0', '?', 'z'}, Base38Tag(v))

	require.Equal(t, [4]byte{' ', ' ', ' ', ' '}, Base38Tag(0))

	// Largest packable value.
	v, ok = PackTag("zzzz")
	require.True(t, ok)
	require.Equal(t, uint32(38*38*38*38-1), v)
	require.Equal(t, [4]byte{'z', 'z', 'z', 'z'}, Base38Tag(v))
}

func TestPackTagRejects(t *testing.T) {
	_, ok := PackTag("JSON")
	require.False(t, ok, "uppercase is not in the alphabet")
	_, ok = PackTag("abc")
	require.False(t, ok)
	_, ok = PackTag("abcde")
	require.False(t, ok)
}

func TestCategoryNames(t *testing.T) {
	require.Equal(t, "Filler", Filler.String())
	require.Equal(t, "UnicodeCodePoint", UnicodeCodePoint.String())
	require.Equal(t, "Reserved", BaseCategory(6).String())
	require.Equal(t, "Reserved", BaseCategory(7).String())
}
