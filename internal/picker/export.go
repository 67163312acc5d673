package picker

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"
)

// Document is the export artifact of a picker session. Words are
// normalized, deduplicated and sorted; phrases keep their creation
// order and raw spelling. Nothing reads a document back in; it exists
// for download, clipboard and group import.
type Document struct {
	ExportedAt time.Time `json:"exportedAt"`
	Words      []string  `json:"words"`
	Phrases    []string  `json:"phrases"`
}

// Export builds the document from the current selection and phrases.
// Positions absorbed into a phrase never contribute to Words, even
// though their selection bits are still set.
func (s *Session) Export(now time.Time) Document {
	words := []string{}
	seen := make(map[string]bool)
	for _, tok := range s.EffectiveWords() {
		normalized := Normalize(tok.Text)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		words = append(words, normalized)
	}
	sort.Strings(words)

	phrases := s.PhraseStrings()
	if phrases == nil {
		phrases = []string{}
	}

	return Document{
		ExportedAt: now,
		Words:      words,
		Phrases:    phrases,
	}
}

// WriteJSON encodes the document as indented JSON.
func (d Document) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to encode export document: %w", err)
	}
	return nil
}
