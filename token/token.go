// Package token defines the value record produced by the streaming JSON
// decoder, one per span of input bytes.
//
// A token carries two mutually exclusive interpretations of its trailing
// value fields, selected by whether VMajor is zero: a nonzero VMajor is a
// packed 4-character base-38 tag paired with a free-form VMinor, while a
// zero VMajor selects the base interpretation of a 3-bit category plus a
// 24-bit detail. Either way a token's binary debug encoding is exactly 16
// bytes.
package token

// MaxLength is the largest span of input bytes a single token can cover.
// Longer runs are split into multiple tokens, linked when they form one
// logical value.
const MaxLength = 0xFFFF

// BaseCategory classifies a token when VMajor is zero.
type BaseCategory uint8

const (
	Filler           BaseCategory = 0
	Structure        BaseCategory = 1
	String           BaseCategory = 2
	UnicodeCodePoint BaseCategory = 3
	Literal          BaseCategory = 4
	Number           BaseCategory = 5
)

func (c BaseCategory) String() string {
	switch c {
	case Filler:
		return "Filler"
	case Structure:
		return "Structure"
	case String:
		return "String"
	case UnicodeCodePoint:
		return "UnicodeCodePoint"
	case Literal:
		return "Literal"
	case Number:
		return "Number"
	default:
		return "Reserved"
	}
}

// Base-detail bits, per category. The detail field is 24 bits wide.
const (
	// Filler. Whitespace and the , : punctuation carry detail 0 and no
	// semantic value; comments carry a comment bit and are therefore
	// emitted even when filler is elided.
	FillerCommentBlock = 0x00002
	FillerCommentLine  = 0x00004

	// Structure. A push/pop bit plus the container transitioned from/to.
	StructurePush     = 0x00001
	StructurePop      = 0x00002
	StructureFromNone = 0x00010
	StructureFromObj  = 0x00020
	StructureFromList = 0x00040
	StructureToNone   = 0x01000
	StructureToObj    = 0x02000
	StructureToList   = 0x04000

	// String fragments.
	StringDefinitelyUTF8   = 0x00001
	StringBackslashEscapes = 0x00002
	StringReplacedInvalid  = 0x00004

	// Literals.
	LiteralUndefined = 0x00001
	LiteralNull      = 0x00002
	LiteralFalse     = 0x00004
	LiteralTrue      = 0x00008

	// Numbers.
	NumberInteger = 0x00001
	NumberFloat   = 0x00002
	NumberInf     = 0x00010
	NumberNaN     = 0x00020
)

// Token is one unit of decoder output. It is a plain value record,
// immutable once produced.
type Token struct {
	// Length is the number of input bytes this token covers, including
	// any elided content.
	Length uint16

	// LinkPrev and LinkNext mark that this token is a fragment continuing
	// from / into the adjacent token, used when one logical value is split
	// across a buffer boundary.
	LinkPrev bool
	LinkNext bool

	// VMajor selects the interpretation of the remaining fields: zero
	// selects VBC/VBD, nonzero is a packed base-38 tag paired with VMinor.
	VMajor uint32

	// VMinor is meaningful only when VMajor is nonzero.
	VMinor uint32

	// VBC and VBD are meaningful only when VMajor is zero. VBD occupies
	// the low 24 bits.
	VBC BaseCategory
	VBD uint32
}

// HasValue reports whether the token carries any semantic content. Tokens
// without value (plain whitespace and punctuation filler) are elided from
// output unless all-tokens mode is requested, but still count toward the
// cumulative position.
func (t Token) HasValue() bool {
	return t.VMajor != 0 || t.VBC != 0 || t.VBD != 0
}
