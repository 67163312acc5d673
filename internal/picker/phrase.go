package picker

import "sort"

// Phrase is a user-declared group of at least two word-token positions,
// kept sorted ascending. Phrases in a set never share positions.
type Phrase struct {
	Positions []int
}

// Contains reports whether pos is a member of the phrase.
func (p *Phrase) Contains(pos int) bool {
	for _, member := range p.Positions {
		if member == pos {
			return true
		}
	}
	return false
}

// PhraseSet holds all phrases of one picker session in creation order.
type PhraseSet struct {
	phrases []*Phrase
}

// NewPhraseSet creates an empty phrase set.
func NewPhraseSet() *PhraseSet {
	return &PhraseSet{}
}

// Containing returns the phrase holding pos, if any. A linear scan is
// fine here; phrase counts are bounded by how much a user can paste
// and click through in one session.
func (s *PhraseSet) Containing(pos int) (*Phrase, bool) {
	for _, ph := range s.phrases {
		if ph.Contains(pos) {
			return ph, true
		}
	}
	return nil, false
}

// Merge combines the positions a and b into one phrase:
//   - neither belongs to a phrase: a new two-member phrase is created
//   - exactly one belongs to a phrase: that phrase absorbs the other position
//   - both belong to different phrases: the two phrases become one,
//     appended as the newest phrase
//   - both belong to the same phrase already: nothing changes
//
// Positions stay pairwise disjoint across phrases in every case.
func (s *PhraseSet) Merge(a, b int) {
	phraseA, okA := s.Containing(a)
	phraseB, okB := s.Containing(b)

	switch {
	case !okA && !okB:
		s.phrases = append(s.phrases, newPhrase(a, b))
	case okA && !okB:
		phraseA.Positions = sortedInsert(phraseA.Positions, b)
	case !okA && okB:
		phraseB.Positions = sortedInsert(phraseB.Positions, a)
	case phraseA == phraseB:
		// Already merged. Reachable only when merge is driven
		// directly rather than through the adjacency pairs.
		return
	default:
		merged := &Phrase{Positions: make([]int, 0, len(phraseA.Positions)+len(phraseB.Positions))}
		merged.Positions = append(merged.Positions, phraseA.Positions...)
		merged.Positions = append(merged.Positions, phraseB.Positions...)
		sort.Ints(merged.Positions)
		s.remove(phraseA)
		s.remove(phraseB)
		s.phrases = append(s.phrases, merged)
	}
}

// Remove deletes the phrase from the set. Used when a member word is
// toggled and the whole phrase dissolves.
func (s *PhraseSet) Remove(ph *Phrase) {
	s.remove(ph)
}

func (s *PhraseSet) remove(ph *Phrase) {
	for i, candidate := range s.phrases {
		if candidate == ph {
			s.phrases = append(s.phrases[:i], s.phrases[i+1:]...)
			return
		}
	}
}

// Phrases returns the phrases in creation order. The slice is a copy;
// the phrases themselves are shared.
func (s *PhraseSet) Phrases() []*Phrase {
	out := make([]*Phrase, len(s.phrases))
	copy(out, s.phrases)
	return out
}

// Len returns the number of phrases.
func (s *PhraseSet) Len() int {
	return len(s.phrases)
}

func newPhrase(a, b int) *Phrase {
	if a > b {
		a, b = b, a
	}
	return &Phrase{Positions: []int{a, b}}
}

func sortedInsert(positions []int, pos int) []int {
	positions = append(positions, pos)
	sort.Ints(positions)
	return positions
}
