// Package picker implements the article word picker: tokenizing pasted
// article text, tracking which word tokens the user selected, merging
// adjacent selections into multi-word phrases, and exporting the result
// as a structured document. All state in this package is mutated only
// from UI event callbacks; nothing here is safe for concurrent use.
package picker
