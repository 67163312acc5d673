package batch

import (
	"fmt"
	"os"
	"strings"
)

// WordEntry represents a term with optional translation
type WordEntry struct {
	Term        string
	Translation string
	// NeedsTranslation indicates the term itself is missing and must be
	// produced by translating the English text back into the study language
	NeedsTranslation bool
}

// ReadBatchFile reads terms from a file and returns WordEntry slice
// Supports formats:
// - Term only: "ябълка" (translation filled in later)
// - With translation: "ябълка = apple" (both provided)
// - English only: "= apple" (term will be produced by reverse translation)
func ReadBatchFile(filename string) ([]WordEntry, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var entries []WordEntry

	for _, line := range splitLines(string(content)) {
		if line = trimSpace(line); line != "" {
			// Check if line contains '=' for translation format
			if strings.Contains(line, "=") {
				parts := strings.SplitN(line, "=", 2)
				if len(parts) == 2 {
					term := strings.TrimSpace(parts[0])
					english := strings.TrimSpace(parts[1])

					if term == "" && english != "" {
						// Format: "= ENGLISH" - term comes from reverse translation
						entries = append(entries, WordEntry{
							Term:             "", // Will be filled by translation
							Translation:      english,
							NeedsTranslation: true,
						})
					} else if term != "" && english != "" {
						// Format: "TERM = ENGLISH" - both provided
						entries = append(entries, WordEntry{
							Term:             term,
							Translation:      english,
							NeedsTranslation: false,
						})
					}
					// Ignore lines with empty English part
				}
			} else {
				// Just a term - translation can be filled in later
				entries = append(entries, WordEntry{
					Term:             line,
					Translation:      "",
					NeedsTranslation: false,
				})
			}
		}
	}

	return entries, nil
}

// splitLines splits a string by newlines
func splitLines(s string) []string {
	var lines []string
	current := ""
	for _, r := range s {
		if r == '\n' {
			lines = append(lines, current)
			current = ""
		} else if r != '\r' {
			current += string(r)
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// trimSpace trims whitespace from string
func trimSpace(s string) string {
	start := 0
	end := len(s)

	// Trim from start
	for start < end && isSpace(rune(s[start])) {
		start++
	}

	// Trim from end
	for end > start && isSpace(rune(s[end-1])) {
		end--
	}

	return s[start:end]
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
