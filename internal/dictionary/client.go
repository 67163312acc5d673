package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"codeberg.org/snonux/lexipick/internal"
	"codeberg.org/snonux/lexipick/internal/picker"
)

// DefaultEndpoint is the free dictionary API used when no endpoint is
// configured.
const DefaultEndpoint = "https://api.dictionaryapi.dev/api/v2/entries"

// maxDefinitions caps how many definitions one entry carries.
const maxDefinitions = 3

// maxDefinitionsPerMeaning caps how many definitions each meaning
// group contributes.
const maxDefinitionsPerMeaning = 2

// maxResponseSize limits how much of a lookup response is read.
const maxResponseSize = 1 << 20 // 1 MB

// Config configures the lookup client.
type Config struct {
	// Endpoint is the base URL of the lookup service.
	Endpoint string
	// Language is the dictionary language path segment (default "en").
	Language string
	// Timeout bounds each lookup request.
	Timeout time.Duration
}

// Entry is the enrichment extracted from a successful lookup.
type Entry struct {
	Word        string
	Phonetic    string
	Definitions []string
}

// LookupError describes a failed lookup for a single word.
type LookupError struct {
	Word       string
	StatusCode int
	NotFound   bool
	Message    string
}

func (e *LookupError) Error() string {
	return e.Message
}

// Client looks up words against a dictionaryapi.dev-compatible
// service. A circuit breaker stops hammering the service once it
// fails repeatedly; while open, lookups fail fast.
type Client struct {
	endpoint string
	language string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker
}

// NewClient creates a lookup client. Nil or zero config fields fall
// back to defaults.
func NewClient(cfg *Config) *Client {
	if cfg == nil {
		cfg = &Config{}
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	language := cfg.Language
	if language == "" {
		language = "en"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		endpoint: endpoint,
		language: language,
		client:   &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "dictionary",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

// lookupOutcome carries a round-trip result through the breaker. A 404
// is a valid answer about the word, not a service failure, so it must
// not trip the breaker.
type lookupOutcome struct {
	body     []byte
	notFound bool
}

// Lookup fetches the definition entry for a word. The word is
// normalized before the request; transport failures, missing words
// and malformed responses all come back as *LookupError.
func (c *Client) Lookup(ctx context.Context, word string) (*Entry, error) {
	key := picker.Normalize(word)
	if key == "" {
		return nil, &LookupError{Word: word, Message: fmt.Sprintf("nothing to look up in %q", word)}
	}

	requestURL := fmt.Sprintf("%s/%s/%s", c.endpoint, c.language, url.PathEscape(key))

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.get(ctx, requestURL)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, &LookupError{Word: key, Message: "dictionary service unavailable, lookups paused"}
		}
		return nil, &LookupError{Word: key, Message: err.Error()}
	}

	outcome := result.(*lookupOutcome)
	if outcome.notFound {
		return nil, &LookupError{
			Word:       key,
			StatusCode: http.StatusNotFound,
			NotFound:   true,
			Message:    fmt.Sprintf("no definitions found for %q", key),
		}
	}

	entry, err := parseResponse(key, outcome.body)
	if err != nil {
		return nil, &LookupError{Word: key, Message: err.Error()}
	}
	return entry, nil
}

func (c *Client) get(ctx context.Context, requestURL string) (*lookupOutcome, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create lookup request: %w", err)
	}
	req.Header.Set("User-Agent", "lexipick/"+internal.Version)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dictionary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &lookupOutcome{notFound: true}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dictionary service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read lookup response: %w", err)
	}
	return &lookupOutcome{body: body}, nil
}

// Wire types for the dictionaryapi.dev response shape.
type apiEntry struct {
	Word      string        `json:"word"`
	Phonetic  string        `json:"phonetic"`
	Phonetics []apiPhonetic `json:"phonetics"`
	Meanings  []apiMeaning  `json:"meanings"`
}

type apiPhonetic struct {
	Text string `json:"text"`
}

type apiMeaning struct {
	PartOfSpeech string          `json:"partOfSpeech"`
	Definitions  []apiDefinition `json:"definitions"`
}

type apiDefinition struct {
	Definition string `json:"definition"`
}

// parseResponse extracts up to the first two definitions of each
// meaning group, capped at three overall, plus the first phonetic
// transcription present.
func parseResponse(word string, body []byte) (*Entry, error) {
	var entries []apiEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("malformed dictionary response: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("empty dictionary response for %q", word)
	}

	entry := &Entry{Word: word}

	for _, e := range entries {
		for _, meaning := range e.Meanings {
			taken := 0
			for _, def := range meaning.Definitions {
				if def.Definition == "" {
					continue
				}
				entry.Definitions = append(entry.Definitions, def.Definition)
				taken++
				if taken >= maxDefinitionsPerMeaning || len(entry.Definitions) >= maxDefinitions {
					break
				}
			}
			if len(entry.Definitions) >= maxDefinitions {
				break
			}
		}
		if len(entry.Definitions) >= maxDefinitions {
			break
		}
	}

	for _, e := range entries {
		if e.Phonetic != "" {
			entry.Phonetic = e.Phonetic
			break
		}
		for _, p := range e.Phonetics {
			if p.Text != "" {
				entry.Phonetic = p.Text
				break
			}
		}
		if entry.Phonetic != "" {
			break
		}
	}

	if len(entry.Definitions) == 0 {
		return nil, fmt.Errorf("no definitions found for %q", word)
	}
	return entry, nil
}
