package testutil

import (
	"context"
	"sync"

	"codeberg.org/snonux/lexipick/internal/ai"
	"codeberg.org/snonux/lexipick/internal/dictionary"
)

// TranslateCall records one TranslateWords invocation.
type TranslateCall struct {
	Words          []string
	TargetLanguage string
}

// MockProvider implements ai.Provider with canned translations and a
// recorded call list. Words missing from Translations are silently
// dropped from the result, mirroring providers that skip words they
// cannot translate.
type MockProvider struct {
	ProviderName string
	Translations map[string]string
	TranslateErr error
	AvailableErr error

	mu    sync.Mutex
	calls []TranslateCall
}

func (m *MockProvider) TranslateWords(ctx context.Context, words []string, targetLanguage string) ([]ai.Translation, error) {
	m.mu.Lock()
	m.calls = append(m.calls, TranslateCall{
		Words:          append([]string(nil), words...),
		TargetLanguage: targetLanguage,
	})
	m.mu.Unlock()

	if m.TranslateErr != nil {
		return nil, m.TranslateErr
	}

	translations := make([]ai.Translation, 0, len(words))
	for _, word := range words {
		if translation, ok := m.Translations[word]; ok {
			translations = append(translations, ai.Translation{Term: word, Translation: translation})
		}
	}
	return translations, nil
}

func (m *MockProvider) Name() string {
	if m.ProviderName == "" {
		return "mock"
	}
	return m.ProviderName
}

func (m *MockProvider) IsAvailable() error {
	return m.AvailableErr
}

// Calls returns a copy of the recorded TranslateWords calls.
func (m *MockProvider) Calls() []TranslateCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]TranslateCall(nil), m.calls...)
}

// MockLookuper implements dictionary.Lookuper with canned entries and a
// recorded call list. When a gate is set every lookup blocks until the
// gate channel closes, which lets tests observe in-flight state.
type MockLookuper struct {
	Entries map[string]*dictionary.Entry
	Errs    map[string]error

	mu    sync.Mutex
	gate  chan struct{}
	calls []string
}

func (m *MockLookuper) Lookup(ctx context.Context, word string) (*dictionary.Entry, error) {
	m.mu.Lock()
	m.calls = append(m.calls, word)
	gate := m.gate
	m.mu.Unlock()

	if gate != nil {
		<-gate
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.Errs[word]; ok {
		return nil, err
	}
	if entry, ok := m.Entries[word]; ok {
		return entry, nil
	}
	return &dictionary.Entry{Word: word, Definitions: []string{"definition of " + word}}, nil
}

// SetGate installs or clears the blocking gate for subsequent lookups.
func (m *MockLookuper) SetGate(gate chan struct{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gate = gate
}

// Calls returns a copy of the recorded lookup words.
func (m *MockLookuper) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// CallCount returns how many lookups have been issued.
func (m *MockLookuper) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
