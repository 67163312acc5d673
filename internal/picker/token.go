package picker

import (
	"strings"
	"unicode"
)

// TokenKind classifies a token produced by Tokenize.
type TokenKind int

const (
	// KindWord is a token containing at least one ASCII letter.
	KindWord TokenKind = iota
	// KindNewline is a single newline character.
	KindNewline
	// KindOther covers whitespace runs, punctuation runs and tokens
	// without any ASCII letter (digits, symbols).
	KindOther
)

// String returns a human-readable kind name.
func (k TokenKind) String() string {
	switch k {
	case KindWord:
		return "word"
	case KindNewline:
		return "newline"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// Token is one lexical unit of an article. Position is the token's
// index in emission order and stays stable for the lifetime of the
// tokenization; every other component refers to tokens by position.
type Token struct {
	Text     string
	Position int
	Kind     TokenKind
}

// punctuation is the fixed set of characters that form their own
// token runs, separate from word characters.
const punctuation = ".,!?;:'\"()[]{}—–-"

// character classes used to decide token boundaries
const (
	classWord = iota
	classSpace
	classPunct
)

func classOf(r rune) int {
	switch {
	case r != '\n' && unicode.IsSpace(r):
		return classSpace
	case strings.ContainsRune(punctuation, r):
		return classPunct
	default:
		return classWord
	}
}

func containsASCIILetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}

// Tokenize splits article text into an ordered token sequence. Each
// newline is its own token; runs of other whitespace, runs of
// punctuation and runs of word characters each form one token.
// Concatenating the emitted token texts in order reproduces the input
// exactly. Any input is valid; empty input yields no tokens.
func Tokenize(text string) []Token {
	var (
		tokens  []Token
		current strings.Builder
		class   = -1
	)

	flush := func() {
		if current.Len() == 0 {
			return
		}
		s := current.String()
		kind := KindOther
		if class == classWord && containsASCIILetter(s) {
			kind = KindWord
		}
		tokens = append(tokens, Token{Text: s, Position: len(tokens), Kind: kind})
		current.Reset()
	}

	for _, r := range text {
		if r == '\n' {
			flush()
			tokens = append(tokens, Token{Text: "\n", Position: len(tokens), Kind: KindNewline})
			class = -1
			continue
		}
		c := classOf(r)
		if c != class {
			flush()
			class = c
		}
		current.WriteRune(r)
	}
	flush()

	return tokens
}

// Normalize reduces a token text to its cache/export key: lowercase
// with everything but ASCII letters stripped. The result may be empty
// for tokens without letters.
func Normalize(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
