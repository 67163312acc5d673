// Package review implements a translation quiz over saved word groups.
package review

import (
	"fmt"
	"math/rand"
	"strings"

	"codeberg.org/snonux/lexipick/internal/groups"
)

// Card is a single quiz item. The term is shown and the translation is the
// expected answer.
type Card struct {
	Term        string
	Translation string
}

// Stats summarizes quiz progress
type Stats struct {
	Total    int
	Answered int
	Correct  int
	Wrong    int
	Skipped  int
}

// Accuracy returns the fraction of answered cards that were correct
func (s Stats) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Answered)
}

// Quiz walks through a shuffled deck of cards and grades typed answers
type Quiz struct {
	cards   []Card
	current int
	correct int
	skipped int
	wrong   []Card
}

// NewQuiz creates a quiz over the given cards in random order
func NewQuiz(cards []Card) (*Quiz, error) {
	if len(cards) == 0 {
		return nil, fmt.Errorf("no cards to review")
	}

	deck := make([]Card, len(cards))
	copy(deck, cards)
	rand.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return &Quiz{cards: deck}, nil
}

// FromEntries converts group entries into quiz cards. Entries without a
// translation cannot be graded and are skipped.
func FromEntries(entries []*groups.Entry) []Card {
	var cards []Card
	for _, e := range entries {
		if strings.TrimSpace(e.Translation) == "" {
			continue
		}
		cards = append(cards, Card{Term: e.Term, Translation: e.Translation})
	}
	return cards
}

// Card returns the card currently being asked. ok is false once the quiz
// is finished.
func (q *Quiz) Card() (Card, bool) {
	if q.current >= len(q.cards) {
		return Card{}, false
	}
	return q.cards[q.current], true
}

// Answer grades the typed answer against the current card and advances the
// quiz. Comparison ignores case and extra whitespace, and any single
// alternative from a translation like "car, automobile" is accepted.
func (q *Quiz) Answer(text string) bool {
	card, ok := q.Card()
	if !ok {
		return false
	}
	q.current++

	if matches(text, card.Translation) {
		q.correct++
		return true
	}
	q.wrong = append(q.wrong, card)
	return false
}

// Skip passes on the current card without grading it. Skipped cards
// count separately from wrong ones and are not replayed.
func (q *Quiz) Skip() {
	if _, ok := q.Card(); !ok {
		return
	}
	q.current++
	q.skipped++
}

// Done reports whether all cards have been answered
func (q *Quiz) Done() bool {
	return q.current >= len(q.cards)
}

// Stats returns the quiz progress so far. Answered counts graded cards
// only; skipped ones are reported separately.
func (q *Quiz) Stats() Stats {
	return Stats{
		Total:    len(q.cards),
		Answered: q.current - q.skipped,
		Correct:  q.correct,
		Wrong:    len(q.wrong),
		Skipped:  q.skipped,
	}
}

// WrongCards returns the cards answered incorrectly, in the order asked
func (q *Quiz) WrongCards() []Card {
	out := make([]Card, len(q.wrong))
	copy(out, q.wrong)
	return out
}

// Replay creates a new quiz from the cards answered incorrectly
func (q *Quiz) Replay() (*Quiz, error) {
	return NewQuiz(q.wrong)
}

// matches checks the answer against every alternative in the expected
// translation.
func matches(answer, translation string) bool {
	got := normalizeAnswer(answer)
	if got == "" {
		return false
	}
	for _, alt := range strings.FieldsFunc(translation, func(r rune) bool {
		return r == ',' || r == ';' || r == '/'
	}) {
		if normalizeAnswer(alt) == got {
			return true
		}
	}
	return false
}

// normalizeAnswer lowercases and collapses runs of whitespace
func normalizeAnswer(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
