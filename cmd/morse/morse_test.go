package morse

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/gigurra/morselight/cmd/morse/code"
)

func TestRun_Encode(t *testing.T) {
	tests := []struct {
		name     string
		params   Params
		stdin    string
		expected string
	}{
		{
			name:     "args",
			params:   Params{Text: []string{"SOS", "help"}},
			expected: "... --- ... / .... . .-.. .--.\n",
		},
		{
			name:     "stdin lines",
			params:   Params{},
			stdin:    "e\nt\n",
			expected: ".\n-\n",
		},
		{
			name:     "decode",
			params:   Params{Text: []string{"...", "---", "...", "/", "..."}, Decode: true},
			expected: "SOS S\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := Run(&tt.params, strings.NewReader(tt.stdin), &out); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if out.String() != tt.expected {
				t.Errorf("output = %q, want %q", out.String(), tt.expected)
			}
		})
	}
}

func TestRun_Schedule(t *testing.T) {
	var out bytes.Buffer
	params := Params{Text: []string{"E"}, Schedule: true, WPM: 20}
	if err := Run(&params, strings.NewReader(""), &out); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	s := out.String()
	for _, want := range []string{".\n", "ON", "60ms", "TOTAL"} {
		if !strings.Contains(s, want) {
			t.Errorf("schedule output missing %q:\n%s", want, s)
		}
	}
}

func TestRun_InvalidRate(t *testing.T) {
	params := Params{Text: []string{"SOS"}, Schedule: true, WPM: 0}
	err := Run(&params, strings.NewReader(""), &bytes.Buffer{})
	if !errors.Is(err, code.ErrInvalidRate) {
		t.Errorf("Run() error = %v, want ErrInvalidRate", err)
	}
}

func TestRun_DecodeWithPlay(t *testing.T) {
	params := Params{Text: []string{"..."}, Decode: true, Play: true, WPM: 20}
	if err := Run(&params, strings.NewReader(""), &bytes.Buffer{}); err == nil {
		t.Error("expected error for --decode with --play")
	}
}

func TestRun_Copy(t *testing.T) {
	var copied string
	orig := clipboardWriteAll
	clipboardWriteAll = func(text string) error {
		copied = text
		return nil
	}
	defer func() { clipboardWriteAll = orig }()

	params := Params{Copy: true}
	if err := Run(&params, strings.NewReader("sos\nok\n"), &bytes.Buffer{}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if copied != "... --- ...\n--- -.-" {
		t.Errorf("copied = %q", copied)
	}
}
