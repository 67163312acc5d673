package picker

import (
	"reflect"
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "single word",
			input: "hello",
			want: []Token{
				{Text: "hello", Position: 0, Kind: KindWord},
			},
		},
		{
			name:  "words and spaces",
			input: "fast and furious driving",
			want: []Token{
				{Text: "fast", Position: 0, Kind: KindWord},
				{Text: " ", Position: 1, Kind: KindOther},
				{Text: "and", Position: 2, Kind: KindWord},
				{Text: " ", Position: 3, Kind: KindOther},
				{Text: "furious", Position: 4, Kind: KindWord},
				{Text: " ", Position: 5, Kind: KindOther},
				{Text: "driving", Position: 6, Kind: KindWord},
			},
		},
		{
			name:  "punctuation splits words",
			input: "don't",
			want: []Token{
				{Text: "don", Position: 0, Kind: KindWord},
				{Text: "'", Position: 1, Kind: KindOther},
				{Text: "t", Position: 2, Kind: KindWord},
			},
		},
		{
			name:  "punctuation runs group together",
			input: "wait...now",
			want: []Token{
				{Text: "wait", Position: 0, Kind: KindWord},
				{Text: "...", Position: 1, Kind: KindOther},
				{Text: "now", Position: 2, Kind: KindWord},
			},
		},
		{
			name:  "newline is its own token",
			input: "one\n\ntwo",
			want: []Token{
				{Text: "one", Position: 0, Kind: KindWord},
				{Text: "\n", Position: 1, Kind: KindNewline},
				{Text: "\n", Position: 2, Kind: KindNewline},
				{Text: "two", Position: 3, Kind: KindWord},
			},
		},
		{
			name:  "digits without letters are not words",
			input: "3.14 x2",
			want: []Token{
				{Text: "3", Position: 0, Kind: KindOther},
				{Text: ".", Position: 1, Kind: KindOther},
				{Text: "14", Position: 2, Kind: KindOther},
				{Text: " ", Position: 3, Kind: KindOther},
				{Text: "x2", Position: 4, Kind: KindWord},
			},
		},
		{
			name:  "em dash separates words",
			input: "one—two",
			want: []Token{
				{Text: "one", Position: 0, Kind: KindWord},
				{Text: "—", Position: 1, Kind: KindOther},
				{Text: "two", Position: 2, Kind: KindWord},
			},
		},
		{
			name:  "whitespace runs collapse into one token",
			input: "a \t b",
			want: []Token{
				{Text: "a", Position: 0, Kind: KindWord},
				{Text: " \t ", Position: 1, Kind: KindOther},
				{Text: "b", Position: 2, Kind: KindWord},
			},
		},
		{
			name:  "carriage return stays with whitespace",
			input: "a\r\nb",
			want: []Token{
				{Text: "a", Position: 0, Kind: KindWord},
				{Text: "\r", Position: 1, Kind: KindOther},
				{Text: "\n", Position: 2, Kind: KindNewline},
				{Text: "b", Position: 3, Kind: KindWord},
			},
		},
		{
			name:  "accented characters stay in words",
			input: "café naïve",
			want: []Token{
				{Text: "café", Position: 0, Kind: KindWord},
				{Text: " ", Position: 1, Kind: KindOther},
				{Text: "naïve", Position: 2, Kind: KindWord},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenizeRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"hello world",
		"Hello, world! How are you?\nFine — thanks.",
		"  leading and trailing  ",
		"tabs\tand\r\nmixed\n\nnewlines",
		"quotes \"inside\" (brackets) [and] {braces}",
		"don't stop believing... 42 times",
		"café au lait — naïve résumé",
	}

	for _, input := range inputs {
		tokens := Tokenize(input)
		var b strings.Builder
		for _, tok := range tokens {
			b.WriteString(tok.Text)
		}
		if b.String() != input {
			t.Errorf("round trip failed: got %q, want %q", b.String(), input)
		}
	}
}

func TestTokenizePositionsAreStable(t *testing.T) {
	tokens := Tokenize("one two three")
	for i, tok := range tokens {
		if tok.Position != i {
			t.Errorf("token %d has position %d", i, tok.Position)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Running!", "running"},
		{"apple", "apple"},
		{"Apple", "apple"},
		{"don't", "dont"},
		{"Hello-World", "helloworld"},
		{"1234", ""},
		{"x2", "x"},
		{"", ""},
		{"Café", "caf"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenKindString(t *testing.T) {
	tests := []struct {
		kind TokenKind
		want string
	}{
		{KindWord, "word"},
		{KindNewline, "newline"},
		{KindOther, "other"},
		{TokenKind(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("TokenKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
