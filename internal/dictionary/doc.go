// Package dictionary fetches word definitions from a free dictionary
// lookup service and caches them per normalized word. Each word is
// looked up at most once per article session; results, including
// failures, are terminal until the session resets.
package dictionary
