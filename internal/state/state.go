// Package state provides the in-memory session manager that drives the
// post-composition conversation.
package state

// State identifies a conversation step; exactly one is active per user.
type State string

const (
	// StateIdle indicates the main menu is shown and no flow is active.
	StateIdle State = "idle"
	// StateAwaitingContent waits for the first text or media message of a new post.
	StateAwaitingContent State = "awaiting_content"
	// StateChoosingButtonSource waits for a tap choosing saved buttons, new buttons or none.
	StateChoosingButtonSource State = "choosing_button_source"
	// StateAwaitingButtons collects "label - url" lines for the draft.
	StateAwaitingButtons State = "awaiting_buttons"
	// StateConfirmAction shows the preview and waits for publish/schedule/save/edit/cancel.
	StateConfirmAction State = "confirm_action"
	// StateAwaitingSchedule waits for a delivery datetime.
	StateAwaitingSchedule State = "awaiting_schedule"
	// StateAwaitingTemplateName waits for a name under which to save the draft buttons.
	StateAwaitingTemplateName State = "awaiting_template_name"
	// StateAwaitingNewText waits for replacement text / caption for the draft.
	StateAwaitingNewText State = "awaiting_new_text"
	// StateAwaitingNewMedia waits for a replacement media attachment.
	StateAwaitingNewMedia State = "awaiting_new_media"
	// StateAwaitingButtonEditIndex waits for the 1-based index of the button to edit.
	StateAwaitingButtonEditIndex State = "awaiting_button_edit_index"
	// StateAwaitingButtonEditLine waits for the replacement "label - url" line.
	StateAwaitingButtonEditLine State = "awaiting_button_edit_line"
	// StateAwaitingButtonDeleteIndex waits for the 1-based index of the button to delete.
	StateAwaitingButtonDeleteIndex State = "awaiting_button_delete_index"
	// StateAwaitingTemplateDeleteIndex waits for the 1-based index of the template to delete.
	StateAwaitingTemplateDeleteIndex State = "awaiting_template_delete_index"
	// StateButtonsMenu shows the saved-buttons submenu.
	StateButtonsMenu State = "buttons_menu"
	// StateAwaitingDefaultButton collects lines appended to the DEFAULT button set.
	StateAwaitingDefaultButton State = "awaiting_default_button"
)

// Session stores the conversation position and scratch data for a user.
// Sessions live in process memory only and are reset by /start.
type Session struct {
	State State
	// EditIndex is the 0-based index of the button being edited, valid only
	// while transitioning from StateAwaitingButtonEditIndex to
	// StateAwaitingButtonEditLine.
	EditIndex int
}

// Manager orchestrates user sessions and state transitions.
type Manager interface {
	Get(userID int64) Session
	SetState(userID int64, st State)
	GetState(userID int64) State
	ClearState(userID int64)
	SetEditIndex(userID int64, idx int)
	EditIndex(userID int64) int
	Clear(userID int64)

	// InProgress reports whether the user has an active state other than idle.
	InProgress(userID int64) bool
}
