package jsontok

// Quirks are optional relaxations of the strict JSON grammar, each
// independently toggleable. The set is fixed at decoder construction and
// never changes afterward.
type Quirks struct {
	// String escapes beyond the RFC 8259 set.
	AllowBackslashA            bool // \a (BEL)
	AllowBackslashCapitalU     bool // \UXXXXXXXX (8 hex digits)
	AllowBackslashE            bool // \e (ESC)
	AllowBackslashQuestionMark bool // \?
	AllowBackslashSingleQuote  bool // \'
	AllowBackslashV            bool // \v (VT)
	AllowBackslashX            bool // \xHH (2 hex digits)
	AllowBackslashZero         bool // \0 (NUL)

	// Comments, tokenized as filler.
	AllowCommentBlock bool // /* ... */
	AllowCommentLine  bool // // ... to end of line

	// AllowExtraComma permits a trailing comma before ] or }.
	AllowExtraComma bool

	// AllowInfNaNNumbers permits inf, infinity and nan (any case, with an
	// optional sign) as number values.
	AllowInfNaNNumbers bool

	// Leading bytes consumed as filler before the top-level value.
	AllowLeadingASCIIRecordSeparator bool // 0x1E
	AllowLeadingUnicodeByteOrderMark bool // EF BB BF

	// AllowTrailingNewLine is accepted for compatibility; trailing
	// whitespace after the top-level value is already consumed as filler.
	AllowTrailingNewLine bool

	// ReplaceInvalidUnicode replaces invalid UTF-8 bytes and unpaired
	// surrogate escapes with U+FFFD instead of failing.
	ReplaceInvalidUnicode bool
}

// AllQuirks returns the full quirk set, as enabled by the -q flag.
func AllQuirks() Quirks {
	return Quirks{
		AllowBackslashA:                  true,
		AllowBackslashCapitalU:           true,
		AllowBackslashE:                  true,
		AllowBackslashQuestionMark:       true,
		AllowBackslashSingleQuote:        true,
		AllowBackslashV:                  true,
		AllowBackslashX:                  true,
		AllowBackslashZero:               true,
		AllowCommentBlock:                true,
		AllowCommentLine:                 true,
		AllowExtraComma:                  true,
		AllowInfNaNNumbers:               true,
		AllowLeadingASCIIRecordSeparator: true,
		AllowLeadingUnicodeByteOrderMark: true,
		AllowTrailingNewLine:             true,
		ReplaceInvalidUnicode:            true,
	}
}
