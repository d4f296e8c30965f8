// Package draft holds the in-progress publication composed by the operator.
package draft

import (
	"time"

	"github.com/google/uuid"
)

// ContentKind tags the variant of a draft's content.
type ContentKind string

const (
	KindNone  ContentKind = "none"
	KindText  ContentKind = "text"
	KindPhoto ContentKind = "photo"
	KindVideo ContentKind = "video"
	KindAudio ContentKind = "audio"
	KindVoice ContentKind = "voice"
)

// Content is the tagged union over the supported post bodies. For media
// variants FileID is the platform's opaque file reference and Text is the
// optional caption; for KindText, Text is the message body.
type Content struct {
	Kind   ContentKind
	FileID string
	Text   string
}

// Button is one inline link button; insertion order is display order.
type Button struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Draft is the not-yet-delivered post. At most one exists per operator.
type Draft struct {
	Content Content
	Buttons []Button
	// ScheduledAt is set only while a delivery is pending.
	ScheduledAt time.Time
	// PendingJob identifies the outstanding scheduled delivery, if any.
	PendingJob uuid.UUID
}

// Empty reports whether the draft has neither content nor buttons.
// Empty drafts block preview, publish and schedule.
func (d *Draft) Empty() bool {
	return d == nil || (d.Content.Kind == KindNone || d.Content.Kind == "") && len(d.Buttons) == 0
}

// HasContent reports whether any body was captured.
func (d *Draft) HasContent() bool {
	return d != nil && d.Content.Kind != KindNone && d.Content.Kind != ""
}

// CloneButtons returns an independent copy of the button list.
func CloneButtons(buttons []Button) []Button {
	if len(buttons) == 0 {
		return nil
	}
	out := make([]Button, len(buttons))
	copy(out, buttons)
	return out
}
