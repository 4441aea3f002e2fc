package code

// Token is one symbolic element of an encoded message: a mark (dot or dash)
// or a gap of one of three strengths.
type Token uint8

const (
	Dot Token = iota + 1
	Dash
	IntraSymbolGap
	InterLetterGap
	InterWordGap
)

// IsMark reports whether the token is signal-on.
func (t Token) IsMark() bool {
	return t == Dot || t == Dash
}

// Units is the token's length in timing units.
func (t Token) Units() int {
	switch t {
	case Dot, IntraSymbolGap:
		return 1
	case Dash, InterLetterGap:
		return 3
	case InterWordGap:
		return 7
	default:
		return 0
	}
}

func (t Token) String() string {
	switch t {
	case Dot:
		return "dot"
	case Dash:
		return "dash"
	case IntraSymbolGap:
		return "symbol-gap"
	case InterLetterGap:
		return "letter-gap"
	case InterWordGap:
		return "word-gap"
	default:
		return "invalid"
	}
}

// MarkCount returns how many marks the sequence contains.
func MarkCount(tokens []Token) int {
	n := 0
	for _, t := range tokens {
		if t.IsMark() {
			n++
		}
	}
	return n
}
