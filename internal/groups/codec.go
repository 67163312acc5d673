package groups

import (
	"encoding/json"
	"fmt"
	"io"
)

// formatVersion is the envelope version of the group JSON format.
const formatVersion = 1

type groupFile struct {
	Version int         `json:"version"`
	Name    string      `json:"name"`
	Entries []entryJSON `json:"entries"`
}

type entryJSON struct {
	Term        string `json:"term"`
	Translation string `json:"translation,omitempty"`
	Phonetic    string `json:"phonetic,omitempty"`
	Note        string `json:"note,omitempty"`
	IsPhrase    bool   `json:"isPhrase,omitempty"`
}

// ExportJSON writes a group and its entries as a portable JSON file.
// Illustration attachments are file-local and deliberately not part
// of the format.
func ExportJSON(w io.Writer, group *Group, entries []*Entry) error {
	file := groupFile{
		Version: formatVersion,
		Name:    group.Name,
		Entries: make([]entryJSON, 0, len(entries)),
	}
	for _, e := range entries {
		file.Entries = append(file.Entries, entryJSON{
			Term:        e.Term,
			Translation: e.Translation,
			Phonetic:    e.Phonetic,
			Note:        e.Note,
			IsPhrase:    e.IsPhrase,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(file); err != nil {
		return fmt.Errorf("failed to encode group %q: %w", group.Name, err)
	}
	return nil
}

// ImportJSON parses a group file. Returned entries carry no IDs; the
// store assigns fresh ones on insert.
func ImportJSON(r io.Reader) (string, []*Entry, error) {
	var file groupFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return "", nil, fmt.Errorf("failed to decode group file: %w", err)
	}
	if file.Version != formatVersion {
		return "", nil, fmt.Errorf("unsupported group file version %d", file.Version)
	}
	if file.Name == "" {
		return "", nil, fmt.Errorf("group file has no name")
	}

	entries := make([]*Entry, 0, len(file.Entries))
	for _, e := range file.Entries {
		if e.Term == "" {
			continue
		}
		entries = append(entries, &Entry{
			Term:        e.Term,
			Translation: e.Translation,
			Phonetic:    e.Phonetic,
			Note:        e.Note,
			IsPhrase:    e.IsPhrase,
		})
	}
	return file.Name, entries, nil
}

// ExportGroup writes the stored group with the given ID to w.
func (s *Store) ExportGroup(w io.Writer, groupID string) error {
	group, err := s.Group(groupID)
	if err != nil {
		return err
	}
	entries, err := s.Entries(groupID)
	if err != nil {
		return err
	}
	return ExportJSON(w, group, entries)
}

// ImportGroup reads a group file and stores it as a new group with
// fresh IDs.
func (s *Store) ImportGroup(r io.Reader) (*Group, error) {
	name, entries, err := ImportJSON(r)
	if err != nil {
		return nil, err
	}

	group, err := s.CreateGroup(name)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if err := s.AddEntry(group.ID, entry); err != nil {
			return nil, err
		}
	}
	return group, nil
}
