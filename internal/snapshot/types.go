package snapshot

import (
	"encoding/json"
	"strings"
	"time"
)

// Entry is one bookmark as cached locally.
//
// Keywords is derived at snapshot build time and stored alongside the entry; loading a
// snapshot from disk reuses it as-is.
type Entry struct {
	Hash        string   `json:"hash"`
	Href        string   `json:"href"`
	Description string   `json:"description"`
	Extended    string   `json:"extended"`
	Meta        string   `json:"meta,omitempty"`
	Time        string   `json:"time,omitempty"`
	Shared      string   `json:"shared,omitempty"`
	ToRead      string   `json:"toread,omitempty"`
	Tags        Tags     `json:"tags"`
	Keywords    []string `json:"keywords"`
}

// Unread reports whether the entry is flagged "to read" remotely.
func (e Entry) Unread() bool {
	return e.ToRead == "yes"
}

// Text returns the fields the keyword index is built from.
func (e Entry) Text() string {
	return strings.Join([]string{e.Description, e.Extended, strings.Join(e.Tags, " ")}, " ")
}

// Tags is a tag list. It decodes from either a JSON array or the space-separated string
// the remote API sends.
type Tags []string

func (t *Tags) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*t = list
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*t = strings.Fields(s)
	return nil
}

// Snapshot is the locally cached copy of the whole bookmark set.
//
// A nil *Snapshot means nothing has been fetched yet.
type Snapshot struct {
	Entries   []Entry
	FetchedAt time.Time
	Dirty     bool
}

// document is the on-disk shape: { "entries": [...], "dirty": bool, "date": ms }.
// Entries is a pointer so a file without the key is distinguishable from an empty set.
type document struct {
	Entries *[]Entry `json:"entries,omitempty"`
	Dirty   bool     `json:"dirty,omitempty"`
	Date    int64    `json:"date,omitempty"`
}
