// Package post turns a finished draft into an immutable snapshot and
// delivers snapshots to Telegram.
package post

import (
	"github.com/JOHAALETRADER/Postbotjoha/internal/draft"
)

// Snapshot is a frozen copy of a draft taken at publish or schedule time.
// Later edits to the draft never reach a snapshot already handed to the
// scheduler or the transport.
type Snapshot struct {
	Kind    draft.ContentKind
	FileID  string
	Text    string
	Buttons []draft.Button
	// Destination is a chat reference the transport accepts, usually the
	// channel as "@name" or a numeric chat id rendered as a string.
	Destination string
}

// FromDraft freezes d for delivery to destination. The button list is
// deep-copied so the snapshot stays stable across draft edits.
func FromDraft(d *draft.Draft, destination string) Snapshot {
	s := Snapshot{Destination: destination}
	if d == nil {
		s.Kind = draft.KindNone
		return s
	}
	s.Kind = d.Content.Kind
	if s.Kind == "" {
		s.Kind = draft.KindNone
	}
	s.FileID = d.Content.FileID
	s.Text = d.Content.Text
	s.Buttons = draft.CloneButtons(d.Buttons)
	return s
}

// Empty reports whether the snapshot carries nothing deliverable.
func (s Snapshot) Empty() bool {
	return s.Kind == draft.KindNone && len(s.Buttons) == 0
}
