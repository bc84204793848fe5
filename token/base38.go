package token

import "strings"

// alphabet is the 38-symbol set used to render a nonzero VMajor as a
// 4-character tag: space, the digits, '?', then the lowercase letters.
const alphabet = " 0123456789?abcdefghijklmnopqrstuvwxyz"

const base38Cubed = 38 * 38 * 38

// Base38Tag decodes v as a four-digit base-38 number, most significant
// digit first. Values of 38^4 or more wrap per digit rather than index out
// of the alphabet.
func Base38Tag(v uint32) [4]byte {
	var tag [4]byte
	tag[0] = alphabet[(v/base38Cubed)%38]
	tag[1] = alphabet[(v/(38*38))%38]
	tag[2] = alphabet[(v/38)%38]
	tag[3] = alphabet[v%38]
	return tag
}

// PackTag is the inverse of Base38Tag for well-formed tags: it packs a
// 4-character string of alphabet symbols into a uint32. It reports false
// if the tag is not exactly four symbols drawn from the alphabet.
func PackTag(tag string) (uint32, bool) {
	if len(tag) != 4 {
		return 0, false
	}
	var v uint32
	for i := 0; i < 4; i++ {
		d := strings.IndexByte(alphabet, tag[i])
		if d < 0 {
			return 0, false
		}
		v = v*38 + uint32(d)
	}
	return v, true
}
