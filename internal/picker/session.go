package picker

import (
	"errors"
	"strings"
)

// ErrEmptyArticle is returned when a session is started with no
// usable text.
var ErrEmptyArticle = errors.New("article text is empty")

// Session owns the state of one article: the token sequence, the set
// of selected word positions and the phrases built from them. A new
// article means a new session; nothing carries over.
type Session struct {
	tokens   []Token
	selected map[int]bool
	phrases  *PhraseSet
}

// NewSession tokenizes article text and starts an empty selection.
// Empty or whitespace-only text is rejected before any state is
// created.
func NewSession(text string) (*Session, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyArticle
	}
	return &Session{
		tokens:   Tokenize(text),
		selected: make(map[int]bool),
		phrases:  NewPhraseSet(),
	}, nil
}

// Tokens returns the full token sequence in position order.
func (s *Session) Tokens() []Token {
	return s.tokens
}

// Token returns the token at pos.
func (s *Session) Token(pos int) (Token, bool) {
	if pos < 0 || pos >= len(s.tokens) {
		return Token{}, false
	}
	return s.tokens[pos], true
}

// Toggle flips the selection state of the word token at pos. Toggling
// any member of a phrase dissolves the whole phrase and deselects all
// of its members; there is no partial phrase deselection. Non-word
// positions are ignored.
func (s *Session) Toggle(pos int) {
	tok, ok := s.Token(pos)
	if !ok || tok.Kind != KindWord {
		return
	}

	if ph, ok := s.phrases.Containing(pos); ok {
		for _, member := range ph.Positions {
			delete(s.selected, member)
		}
		s.phrases.Remove(ph)
		return
	}

	if s.selected[pos] {
		delete(s.selected, pos)
	} else {
		s.selected[pos] = true
	}
}

// IsSelected reports whether pos carries a selection bit. Phrase
// members keep their bit until the phrase dissolves; use InPhrase to
// tell the two apart.
func (s *Session) IsSelected(pos int) bool {
	return s.selected[pos]
}

// InPhrase reports whether pos has been absorbed into a phrase.
func (s *Session) InPhrase(pos int) bool {
	_, ok := s.phrases.Containing(pos)
	return ok
}

// Pair is a merge candidate: two word-token positions that are
// adjacent in the word subsequence, both selected.
type Pair struct {
	A, B int
}

// MergeablePairs recomputes which adjacent selected word pairs may be
// merged. Adjacency ignores non-word tokens entirely, so two selected
// words separated only by punctuation or whitespace count as adjacent.
// A pair qualifies unless both positions already sit in the same
// phrase; pairs spanning two phrases, or a phrase and a loose word,
// stay eligible.
func (s *Session) MergeablePairs() []Pair {
	var pairs []Pair
	prev := -1
	for _, tok := range s.tokens {
		if tok.Kind != KindWord {
			continue
		}
		if prev >= 0 && s.selected[prev] && s.selected[tok.Position] && !s.samePhrase(prev, tok.Position) {
			pairs = append(pairs, Pair{A: prev, B: tok.Position})
		}
		prev = tok.Position
	}
	return pairs
}

func (s *Session) samePhrase(a, b int) bool {
	phraseA, okA := s.phrases.Containing(a)
	if !okA {
		return false
	}
	phraseB, okB := s.phrases.Containing(b)
	return okB && phraseA == phraseB
}

// Merge joins the two positions into a phrase (see PhraseSet.Merge).
func (s *Session) Merge(a, b int) {
	s.phrases.Merge(a, b)
}

// Phrases returns the session's phrases in creation order.
func (s *Session) Phrases() []*Phrase {
	return s.phrases.Phrases()
}

// EffectiveWords returns the selected word tokens that are not
// absorbed into any phrase, in position order. These are the words
// that appear in exports and receive dictionary enrichment.
func (s *Session) EffectiveWords() []Token {
	var words []Token
	for _, tok := range s.tokens {
		if tok.Kind != KindWord || !s.selected[tok.Position] {
			continue
		}
		if s.InPhrase(tok.Position) {
			continue
		}
		words = append(words, tok)
	}
	return words
}

// PhraseStrings renders each phrase as its member texts joined by
// single spaces, members in ascending position order, phrases in
// creation order.
func (s *Session) PhraseStrings() []string {
	phrases := s.phrases.Phrases()
	out := make([]string, 0, len(phrases))
	for _, ph := range phrases {
		parts := make([]string, 0, len(ph.Positions))
		for _, pos := range ph.Positions {
			if tok, ok := s.Token(pos); ok {
				parts = append(parts, tok.Text)
			}
		}
		out = append(out, strings.Join(parts, " "))
	}
	return out
}

// HasContent reports whether anything is picked: at least one
// effective word or one phrase. The floating panel shows only while
// this holds.
func (s *Session) HasContent() bool {
	if s.phrases.Len() > 0 {
		return true
	}
	return len(s.EffectiveWords()) > 0
}
