// Package groups persists word groups and their entries in a local
// SQLite database. A group is a named study set; entries are the
// words and phrases inside it, optionally enriched with translations,
// phonetics and illustration attachments.
package groups
