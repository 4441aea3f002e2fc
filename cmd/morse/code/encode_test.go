package code

import (
	"reflect"
	"testing"
)

var (
	s = []Token{Dot, IntraSymbolGap, Dot, IntraSymbolGap, Dot}
	o = []Token{Dash, IntraSymbolGap, Dash, IntraSymbolGap, Dash}
)

func join(parts ...[]Token) []Token {
	var out []Token
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestEncode_SOS(t *testing.T) {
	want := join(s, []Token{InterLetterGap}, o, []Token{InterLetterGap}, s)
	got := Encode("SOS")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Encode(SOS) = %v, want %v", got, want)
	}
}

func TestEncode_WordGapAtSpace(t *testing.T) {
	got := Encode("SOS SOS")
	words, letterGaps := 0, 0
	for _, tok := range got {
		switch tok {
		case InterWordGap:
			words++
		case InterLetterGap:
			letterGaps++
		}
	}
	if words != 1 {
		t.Errorf("word gaps = %d, want 1", words)
	}
	if letterGaps != 4 {
		t.Errorf("letter gaps = %d, want 4", letterGaps)
	}
	sos := Encode("SOS")
	if !reflect.DeepEqual(got, join(sos, []Token{InterWordGap}, sos)) {
		t.Errorf("Encode(SOS SOS) = %v", got)
	}
}

func TestEncode_Normalization(t *testing.T) {
	tests := []struct {
		name  string
		input string
		same  string
	}{
		{"lowercase", "sos", "SOS"},
		{"unknown between letters", "A?B", "AB"},
		{"unknown between words", "A ? B", "A B"},
		{"repeated spaces", "A    B", "A B"},
		{"tabs and newlines", "A\t\nB", "A B"},
		{"leading and trailing space", "  SOS  ", "SOS"},
		{"leading unknown", "#SOS", "SOS"},
		{"trailing unknown", "SOS!", "SOS"},
		{"unknown word", "A ?? B", "A B"},
		{"non latin", "AÄB", "AB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Encode(tt.input)
			want := Encode(tt.same)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Encode(%q) = %v, want same as Encode(%q) = %v", tt.input, got, tt.same, want)
			}
		})
	}
}

func TestEncode_Empty(t *testing.T) {
	for _, input := range []string{"", "   ", "?!.,", "ÄÖÜ"} {
		if got := Encode(input); len(got) != 0 {
			t.Errorf("Encode(%q) = %v, want empty", input, got)
		}
	}
}

func TestEncode_WellFormed(t *testing.T) {
	inputs := []string{"SOS", "HELLO WORLD", "a1 b2  c3", " x ", "E", "T T T", "Q?R S!"}
	for _, input := range inputs {
		tokens := Encode(input)
		if len(tokens) == 0 {
			t.Fatalf("Encode(%q) is empty", input)
		}
		if !tokens[0].IsMark() || !tokens[len(tokens)-1].IsMark() {
			t.Errorf("Encode(%q) starts or ends with a gap: %v", input, tokens)
		}
		for i := 1; i < len(tokens); i++ {
			if tokens[i].IsMark() == tokens[i-1].IsMark() {
				t.Errorf("Encode(%q) has adjacent %v and %v at %d", input, tokens[i-1], tokens[i], i)
			}
		}
	}
}

func TestEncode_SingleMarkLetters(t *testing.T) {
	if got := Encode("E"); !reflect.DeepEqual(got, []Token{Dot}) {
		t.Errorf("Encode(E) = %v", got)
	}
	if got := Encode("ET"); !reflect.DeepEqual(got, []Token{Dot, InterLetterGap, Dash}) {
		t.Errorf("Encode(ET) = %v", got)
	}
}

func TestLookup(t *testing.T) {
	if Lookup('S') != "..." || Lookup('0') != "-----" {
		t.Error("unexpected table entries")
	}
	for _, r := range []rune{'s', '?', ' ', '.'} {
		if Lookup(r) != "" {
			t.Errorf("Lookup(%q) = %q, want empty", r, Lookup(r))
		}
	}
	count := 0
	for r := 'A'; r <= 'Z'; r++ {
		if Lookup(r) != "" {
			count++
		}
	}
	for r := '0'; r <= '9'; r++ {
		if Lookup(r) != "" {
			count++
		}
	}
	if count != 36 || len(letters) != 36 {
		t.Errorf("table covers %d of 36 (size %d)", count, len(letters))
	}
}

func TestPattern(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"SOS", "... --- ..."},
		{"SOS SOS", "... --- ... / ... --- ..."},
		{"e t", ". / -"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Pattern(Encode(tt.input)); got != tt.want {
			t.Errorf("Pattern(Encode(%q)) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMarkCount(t *testing.T) {
	if n := MarkCount(Encode("SOS")); n != 9 {
		t.Errorf("MarkCount(SOS) = %d, want 9", n)
	}
	if n := MarkCount(nil); n != 0 {
		t.Errorf("MarkCount(nil) = %d", n)
	}
}
