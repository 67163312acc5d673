// Package processor contains the core business logic for the headless
// flows. It orchestrates article loading, word and phrase selection,
// dictionary lookups, exports, group management, translation, illustration
// generation and the review quiz. This package serves as the main
// coordinator between all other components.
package processor
