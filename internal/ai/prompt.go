package ai

import (
	"fmt"
	"strings"
)

// buildPrompt asks for one strictly formatted line per term so the
// response survives round-tripping through chatty models.
func buildPrompt(words []string, targetLanguage string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Translate each of the following terms into %s.\n", targetLanguage)
	b.WriteString("Respond with exactly one line per term, in the given order, formatted as:\n")
	b.WriteString("term = translation\n")
	b.WriteString("Do not add numbering, bullets or commentary.\n\nTerms:\n")
	for _, word := range words {
		b.WriteString(word)
		b.WriteString("\n")
	}
	return b.String()
}

// parseTranslations matches response lines back to the requested
// terms. Models occasionally ignore formatting instructions, so
// bullets, numbering and tab separators are tolerated. The result is
// aligned to the input order; terms without a usable line keep an
// empty translation.
func parseTranslations(words []string, response string) []Translation {
	found := make(map[string]string)

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*• \t")
		line = stripNumbering(line)
		if line == "" {
			continue
		}

		var term, translation string
		if i := strings.Index(line, "\t"); i >= 0 {
			term, translation = line[:i], line[i+1:]
		} else if i := strings.Index(line, " = "); i >= 0 {
			term, translation = line[:i], line[i+3:]
		} else if i := strings.Index(line, "="); i >= 0 {
			term, translation = line[:i], line[i+1:]
		} else {
			continue
		}

		term = strings.ToLower(strings.TrimSpace(term))
		translation = strings.TrimSpace(translation)
		if term == "" || translation == "" {
			continue
		}
		if _, dup := found[term]; !dup {
			found[term] = translation
		}
	}

	out := make([]Translation, 0, len(words))
	for _, word := range words {
		out = append(out, Translation{
			Term:        word,
			Translation: found[strings.ToLower(strings.TrimSpace(word))],
		})
	}
	return out
}

// stripNumbering removes a leading "1." or "1)" list marker.
func stripNumbering(line string) string {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(line) || (line[i] != '.' && line[i] != ')') {
		return line
	}
	return strings.TrimSpace(line[i+1:])
}
