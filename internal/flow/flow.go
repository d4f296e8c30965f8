// Package flow maps (conversation state, inbound event) pairs onto draft
// mutations, side effects and the next state. It owns no transport: the bot
// layer translates Telegram updates into events and renders replies back.
package flow

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JOHAALETRADER/Postbotjoha/internal/buttonset"
	"github.com/JOHAALETRADER/Postbotjoha/internal/draft"
	"github.com/JOHAALETRADER/Postbotjoha/internal/locales"
	"github.com/JOHAALETRADER/Postbotjoha/internal/logger"
	"github.com/JOHAALETRADER/Postbotjoha/internal/post"
	"github.com/JOHAALETRADER/Postbotjoha/internal/schedule"
	"github.com/JOHAALETRADER/Postbotjoha/internal/state"
)

// Action is the closed set of menu choices. The bot layer resolves tapped
// labels and callback payloads to one of these before calling the flow, so
// control never branches on display strings.
type Action int

const (
	ActionNone Action = iota
	ActionCreatePost
	ActionButtonsMenu
	ActionSchedulePost
	ActionCancel
	ActionPublishNow
	ActionSchedule
	ActionSaveTemplate
	ActionSaveDefault
	ActionEditMenu
	ActionEditText
	ActionEditMedia
	ActionEditButton
	ActionDeleteButton
	ActionBack
	ActionUseDefaults
	ActionNewButtons
	ActionNoButtons
	ActionAddButton
	ActionViewTemplates
	ActionDeleteTemplate
	ActionBackToMenu
)

// Menu selects which reply keyboard accompanies the response.
type Menu int

const (
	MenuKeep Menu = iota // leave the current keyboard alone
	MenuMain
	MenuConfirm
	MenuButtons
	MenuButtonSource
	MenuEdit
)

// Reply is everything the bot layer must render for the operator: texts in
// order, an optional draft preview, and the keyboard to show.
type Reply struct {
	Messages []string
	Preview  *post.Snapshot
	Menu     Menu
}

func say(menu Menu, messages ...string) Reply {
	return Reply{Messages: messages, Menu: menu}
}

// JobScheduler registers one-shot delivery jobs. Nil means scheduling is
// switched off and the flow degrades to publish-now only.
type JobScheduler interface {
	Schedule(owner int64, at time.Time, task func()) (uuid.UUID, error)
	Cancel(owner int64)
}

// Notifier pushes a plain text to the operator chat outside a handler turn,
// used when a scheduled job fires.
type Notifier interface {
	Notify(chatID int64, text string)
}

// Config wires the flow's collaborators.
type Config struct {
	States    state.Manager
	Drafts    *draft.Store
	Sets      buttonset.Repository
	Publisher post.Publisher
	Scheduler JobScheduler
	Notifier  Notifier
	// Channel is the publishing destination.
	Channel string
	// Location interprets operator-entered datetimes.
	Location *time.Location
	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

// Flow is the conversation state machine service. Safe for the single
// operator; collaborators carry their own locking.
type Flow struct {
	states state.Manager
	drafts *draft.Store
	sets   buttonset.Repository
	pub    post.Publisher
	sched  JobScheduler
	notify Notifier
	chann  string
	loc    *time.Location
	now    func() time.Time
}

// New builds the flow from its collaborators.
func New(cfg Config) *Flow {
	f := &Flow{
		states: cfg.States,
		drafts: cfg.Drafts,
		sets:   cfg.Sets,
		pub:    cfg.Publisher,
		sched:  cfg.Scheduler,
		notify: cfg.Notifier,
		chann:  cfg.Channel,
		loc:    cfg.Location,
		now:    cfg.Now,
	}
	if f.loc == nil {
		f.loc = time.Local
	}
	if f.now == nil {
		f.now = time.Now
	}
	return f
}

// Start resets the conversation and shows the main menu. Any in-progress
// draft is abandoned; pending scheduled deliveries are left alone.
func (f *Flow) Start(ctx context.Context, op int64) Reply {
	abandoned := f.states.InProgress(op)
	f.states.Clear(op)
	logger.Info(ctx, "flow", "session.start",
		slog.Int64("operator", op),
		slog.Bool("abandoned", abandoned),
	)
	return say(MenuMain, locales.T("MenuReady"))
}

// OnText handles a plain text message according to the current state.
func (f *Flow) OnText(ctx context.Context, op int64, text string) Reply {
	st := f.states.GetState(op)
	logger.Debug(ctx, "flow", "event.text",
		slog.Int64("operator", op),
		slog.String("state", string(st)),
	)

	switch st {
	case state.StateIdle:
		return say(MenuMain, locales.T("MenuUseOptions"))
	case state.StateAwaitingContent:
		return f.captureContent(ctx, op, draft.Content{Kind: draft.KindText, Text: text})
	case state.StateAwaitingButtons:
		return f.captureButtons(ctx, op, text)
	case state.StateChoosingButtonSource:
		return say(MenuButtonSource, locales.T("PromptButtonSource"))
	case state.StateConfirmAction:
		return say(MenuKeep, locales.T("ChooseOption"))
	case state.StateAwaitingSchedule:
		return f.captureSchedule(ctx, op, text)
	case state.StateAwaitingTemplateName:
		return f.captureTemplateName(ctx, op, text)
	case state.StateAwaitingNewText:
		return f.captureNewText(ctx, op, text)
	case state.StateAwaitingNewMedia:
		return say(MenuKeep, locales.T("UnsupportedFormat"))
	case state.StateAwaitingButtonEditIndex:
		return f.captureButtonEditIndex(ctx, op, text)
	case state.StateAwaitingButtonEditLine:
		return f.captureButtonEditLine(ctx, op, text)
	case state.StateAwaitingButtonDeleteIndex:
		return f.captureButtonDeleteIndex(ctx, op, text)
	case state.StateAwaitingTemplateDeleteIndex:
		return f.captureTemplateDeleteIndex(ctx, op, text)
	case state.StateButtonsMenu:
		return say(MenuButtons, locales.T("ChooseButtonsOption"))
	case state.StateAwaitingDefaultButton:
		return f.captureDefaultButton(ctx, op, text)
	default:
		f.states.Clear(op)
		return say(MenuMain, locales.T("UnknownState"))
	}
}

// OnMedia handles a message carrying one media attachment.
func (f *Flow) OnMedia(ctx context.Context, op int64, kind draft.ContentKind, fileID, caption string) Reply {
	st := f.states.GetState(op)
	logger.Debug(ctx, "flow", "event.media",
		slog.Int64("operator", op),
		slog.String("state", string(st)),
		slog.String("kind", string(kind)),
	)

	content := draft.Content{Kind: kind, FileID: fileID, Text: caption}
	switch st {
	case state.StateAwaitingContent:
		return f.captureContent(ctx, op, content)
	case state.StateAwaitingNewMedia:
		d := f.drafts.Get(op)
		d.Content = content
		f.states.SetState(op, state.StateConfirmAction)
		return f.confirmReply(op, locales.T("MediaUpdated"))
	default:
		// media is only meaningful while capturing content
		return say(MenuKeep, locales.T("UnsupportedFormat"))
	}
}

// OnAction handles a resolved menu choice.
func (f *Flow) OnAction(ctx context.Context, op int64, action Action) Reply {
	logger.Debug(ctx, "flow", "event.action",
		slog.Int64("operator", op),
		slog.String("state", string(f.states.GetState(op))),
		slog.Int("action", int(action)),
	)

	switch action {
	case ActionCreatePost:
		f.drafts.Reset(op)
		f.states.SetState(op, state.StateAwaitingContent)
		return say(MenuKeep, locales.T("PromptContent"))
	case ActionButtonsMenu:
		f.states.SetState(op, state.StateButtonsMenu)
		return say(MenuButtons, locales.T("ChooseButtonsOption"))
	case ActionSchedulePost:
		return f.promptSchedule(op, true)
	case ActionCancel:
		return f.cancel(ctx, op)
	case ActionPublishNow:
		return f.publishNow(ctx, op)
	case ActionSchedule:
		return f.promptSchedule(op, false)
	case ActionSaveTemplate:
		return f.promptTemplateName(op)
	case ActionSaveDefault:
		return f.saveDefault(ctx, op)
	case ActionEditMenu:
		return say(MenuEdit, locales.T("ChooseOption"))
	case ActionEditText:
		f.states.SetState(op, state.StateAwaitingNewText)
		return say(MenuKeep, locales.T("PromptNewText"))
	case ActionEditMedia:
		f.states.SetState(op, state.StateAwaitingNewMedia)
		return say(MenuKeep, locales.T("PromptNewMedia"))
	case ActionEditButton:
		return f.promptButtonIndex(op, state.StateAwaitingButtonEditIndex, "PromptButtonEditIndex")
	case ActionDeleteButton:
		return f.promptButtonIndex(op, state.StateAwaitingButtonDeleteIndex, "PromptButtonDeleteIndex")
	case ActionBack:
		f.states.SetState(op, state.StateConfirmAction)
		return f.confirmReply(op, locales.T("PreviewReady"))
	case ActionUseDefaults:
		return f.useDefaults(ctx, op)
	case ActionNewButtons:
		f.states.SetState(op, state.StateAwaitingButtons)
		return say(MenuKeep, locales.T("PromptButtons"))
	case ActionNoButtons:
		d := f.drafts.Get(op)
		d.Buttons = nil
		f.states.SetState(op, state.StateConfirmAction)
		return f.confirmReply(op, locales.T("PreviewReady"))
	case ActionAddButton:
		f.states.SetState(op, state.StateAwaitingDefaultButton)
		return say(MenuKeep, locales.T("PromptButtonAdd"))
	case ActionViewTemplates:
		return f.viewTemplates(ctx, op)
	case ActionDeleteTemplate:
		return f.promptTemplateDelete(ctx, op)
	case ActionBackToMenu:
		f.states.ClearState(op)
		return say(MenuMain, locales.T("BackToMenu"))
	default:
		return say(MenuKeep, locales.T("ChooseOption"))
	}
}

// captureContent stores the first content message and routes button capture.
// If a non-empty default set exists the operator picks a source first.
func (f *Flow) captureContent(ctx context.Context, op int64, content draft.Content) Reply {
	if content.Kind == draft.KindNone || (content.Kind == draft.KindText && strings.TrimSpace(content.Text) == "") {
		return say(MenuKeep, locales.T("UnsupportedFormat"))
	}
	d := f.drafts.Get(op)
	d.Content = content

	if f.hasDefaultSet(ctx) {
		f.states.SetState(op, state.StateChoosingButtonSource)
		return say(MenuButtonSource, locales.T("PromptButtonSource"))
	}
	f.states.SetState(op, state.StateAwaitingButtons)
	return say(MenuKeep, locales.T("PromptButtons"))
}

func (f *Flow) hasDefaultSet(ctx context.Context) bool {
	if f.sets == nil {
		return false
	}
	set, err := f.sets.Get(ctx, buttonset.DefaultName)
	if err != nil {
		if !errors.Is(err, buttonset.ErrNotFound) {
			logger.Error(ctx, "flow", "buttonset.default",
				slog.String("status", "error"),
				slog.String("err", err.Error()),
			)
		}
		return false
	}
	return len(set.Buttons) > 0
}

// captureButtons parses the whole batch strictly: one bad line rejects
// everything and the draft keeps its previous buttons.
func (f *Flow) captureButtons(ctx context.Context, op int64, text string) Reply {
	buttons, err := draft.ParseButtons(text)
	if err != nil {
		var invalid *draft.InvalidLineError
		if errors.As(err, &invalid) {
			return say(MenuKeep, locales.TD("InvalidButtonLine", map[string]interface{}{"Line": invalid.Line}))
		}
		return say(MenuKeep, locales.T("NoValidButtons"))
	}
	d := f.drafts.Get(op)
	d.Buttons = buttons
	f.states.SetState(op, state.StateConfirmAction)
	logger.Info(ctx, "flow", "draft.buttons",
		slog.Int64("operator", op),
		slog.Int("count", len(buttons)),
	)
	return f.confirmReply(op, locales.T("PreviewReady"))
}

// confirmReply emits the preview followed by the confirm menu.
func (f *Flow) confirmReply(op int64, message string) Reply {
	snapshot := post.FromDraft(f.drafts.Get(op), operatorChat(op))
	return Reply{
		Messages: []string{message},
		Preview:  &snapshot,
		Menu:     MenuConfirm,
	}
}

func operatorChat(op int64) string {
	return strconv.FormatInt(op, 10)
}

func (f *Flow) useDefaults(ctx context.Context, op int64) Reply {
	set, err := f.sets.Get(ctx, buttonset.DefaultName)
	if err != nil || len(set.Buttons) == 0 {
		f.states.SetState(op, state.StateAwaitingButtons)
		return say(MenuKeep, locales.T("PromptButtons"))
	}
	d := f.drafts.Get(op)
	d.Buttons = draft.CloneButtons(set.Buttons)
	f.states.SetState(op, state.StateConfirmAction)
	return f.confirmReply(op, locales.T("PreviewReady"))
}

// publishNow freezes the draft and delivers it immediately. Failure is
// reported and the draft is kept so the operator can retry or edit.
func (f *Flow) publishNow(ctx context.Context, op int64) Reply {
	d, ok := f.drafts.Current(op)
	if !ok || d.Empty() {
		f.states.SetState(op, state.StateIdle)
		return say(MenuMain, locales.T("EmptyDraft"))
	}
	snapshot := post.FromDraft(d, f.chann)
	if err := f.pub.Publish(ctx, snapshot); err != nil {
		return say(MenuKeep, locales.TD("PublishFailed", map[string]interface{}{"Error": err.Error()}))
	}
	f.drafts.Remove(op)
	f.states.SetState(op, state.StateIdle)
	return say(MenuMain, locales.T("Published"))
}

// promptSchedule enters datetime capture. fromIdle guards the main menu
// entry point, which requires an existing draft.
func (f *Flow) promptSchedule(op int64, fromIdle bool) Reply {
	if f.sched == nil {
		return say(MenuKeep, locales.T("SchedulerDisabled"))
	}
	d, ok := f.drafts.Current(op)
	if fromIdle && (!ok || d.Empty()) {
		return say(MenuMain, locales.T("CreateFirst"))
	}
	if !ok || d.Empty() {
		f.states.SetState(op, state.StateIdle)
		return say(MenuMain, locales.T("EmptyDraft"))
	}
	f.states.SetState(op, state.StateAwaitingSchedule)
	return say(MenuKeep, locales.T("PromptSchedule"))
}

// captureSchedule parses the datetime and registers the one-shot delivery.
// The job captures a frozen snapshot; later draft edits cannot change what
// gets sent.
func (f *Flow) captureSchedule(ctx context.Context, op int64, text string) Reply {
	d, ok := f.drafts.Current(op)
	if !ok || d.Empty() {
		f.states.SetState(op, state.StateIdle)
		return say(MenuMain, locales.T("NoDraft"))
	}

	at, err := schedule.ParseWhen(text, f.now(), f.loc)
	switch {
	case errors.Is(err, schedule.ErrPastTime):
		return say(MenuKeep, locales.T("PastDatetime"))
	case err != nil:
		return say(MenuKeep, locales.T("BadDatetime"))
	}

	snapshot := post.FromDraft(d, f.chann)
	jobID, err := f.sched.Schedule(op, at, func() {
		f.deliverScheduled(op, snapshot)
	})
	if err != nil {
		logger.Error(ctx, "flow", "schedule.register",
			slog.Int64("operator", op),
			slog.Time("at", at),
			slog.String("err", err.Error()),
		)
		return say(MenuKeep, locales.T("ScheduleFailed"))
	}

	d.ScheduledAt = at
	d.PendingJob = jobID
	f.states.SetState(op, state.StateIdle)
	logger.Info(ctx, "flow", "schedule.registered",
		slog.Int64("operator", op),
		slog.Time("at", at),
		slog.String("job_id", jobID.String()),
	)
	return say(MenuMain, locales.TD("Scheduled", map[string]interface{}{
		"Date": at.Format("02/01"),
		"Time": at.Format("15:04"),
	}))
}

// deliverScheduled runs inside the scheduler goroutine when the job fires.
func (f *Flow) deliverScheduled(op int64, snapshot post.Snapshot) {
	ctx := logger.Background()
	if err := f.pub.Publish(ctx, snapshot); err != nil {
		if f.notify != nil {
			f.notify.Notify(op, locales.TD("ScheduledFailed", map[string]interface{}{"Error": err.Error()}))
		}
		return
	}
	f.drafts.Remove(op)
	if f.notify != nil {
		f.notify.Notify(op, locales.T("ScheduledSent"))
	}
}

// cancel abandons the draft and any pending delivery.
func (f *Flow) cancel(ctx context.Context, op int64) Reply {
	if f.sched != nil {
		f.sched.Cancel(op)
	}
	f.drafts.Remove(op)
	f.states.Clear(op)
	logger.Info(ctx, "flow", "session.cancel", slog.Int64("operator", op))
	return say(MenuMain, locales.T("Cancelled"))
}

func (f *Flow) promptTemplateName(op int64) Reply {
	d, ok := f.drafts.Current(op)
	if !ok || len(d.Buttons) == 0 {
		return say(MenuKeep, locales.T("NoButtonsToSave"))
	}
	f.states.SetState(op, state.StateAwaitingTemplateName)
	return say(MenuKeep, locales.T("PromptTemplateName"))
}

func (f *Flow) captureTemplateName(ctx context.Context, op int64, text string) Reply {
	d, ok := f.drafts.Current(op)
	if !ok || len(d.Buttons) == 0 {
		f.states.SetState(op, state.StateIdle)
		return say(MenuMain, locales.T("NoButtonsToSave"))
	}
	name := strings.TrimSpace(text)
	if name == "" {
		return say(MenuKeep, locales.T("EmptyTemplateName"))
	}
	err := f.sets.Save(ctx, buttonset.ButtonSet{Name: name, Buttons: draft.CloneButtons(d.Buttons)})
	if err != nil {
		return say(MenuKeep, locales.T("StorageFailed"))
	}
	f.states.SetState(op, state.StateConfirmAction)
	return say(MenuConfirm, locales.TD("TemplateSaved", map[string]interface{}{"Name": name}))
}

// saveDefault copies the draft's buttons into the default set wholesale
// without leaving the confirm menu.
func (f *Flow) saveDefault(ctx context.Context, op int64) Reply {
	d, ok := f.drafts.Current(op)
	if !ok || len(d.Buttons) == 0 {
		return say(MenuKeep, locales.T("NoButtonsToSave"))
	}
	err := f.sets.Save(ctx, buttonset.ButtonSet{
		Name:    buttonset.DefaultName,
		Buttons: draft.CloneButtons(d.Buttons),
	})
	if err != nil {
		return say(MenuKeep, locales.T("StorageFailed"))
	}
	return say(MenuKeep, locales.T("DefaultSaved"))
}

// captureNewText replaces the text or caption, keeping media intact.
func (f *Flow) captureNewText(ctx context.Context, op int64, text string) Reply {
	d, ok := f.drafts.Current(op)
	if !ok || d.Empty() {
		f.states.SetState(op, state.StateIdle)
		return say(MenuMain, locales.T("NoDraft"))
	}
	if strings.TrimSpace(text) == "" {
		return say(MenuKeep, locales.T("UnsupportedFormat"))
	}
	if !d.HasContent() {
		d.Content.Kind = draft.KindText
	}
	d.Content.Text = text
	f.states.SetState(op, state.StateConfirmAction)
	logger.Debug(ctx, "flow", "draft.edit_text", slog.Int64("operator", op))
	return f.confirmReply(op, locales.T("TextUpdated"))
}

func (f *Flow) promptButtonIndex(op int64, next state.State, promptID string) Reply {
	d, ok := f.drafts.Current(op)
	if !ok || len(d.Buttons) == 0 {
		return say(MenuKeep, locales.T("NoButtonsToSave"))
	}
	f.states.SetState(op, next)
	lines := []string{locales.T("ButtonsHeader")}
	for i, b := range d.Buttons {
		lines = append(lines, locales.TD("ButtonLine", map[string]interface{}{
			"Index": i + 1,
			"Label": b.Label,
			"URL":   b.URL,
		}))
	}
	return say(MenuKeep, strings.Join(lines, "\n"), locales.T(promptID))
}

// parseIndex resolves 1-based operator input against length n.
func parseIndex(text string, n int) (int, bool) {
	idx, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || idx < 1 || idx > n {
		return 0, false
	}
	return idx - 1, true
}

func (f *Flow) captureButtonEditIndex(_ context.Context, op int64, text string) Reply {
	d, ok := f.drafts.Current(op)
	if !ok || len(d.Buttons) == 0 {
		f.states.SetState(op, state.StateIdle)
		return say(MenuMain, locales.T("NoDraft"))
	}
	idx, ok := parseIndex(text, len(d.Buttons))
	if !ok {
		return say(MenuKeep, locales.T("BadIndex"))
	}
	f.states.SetEditIndex(op, idx)
	f.states.SetState(op, state.StateAwaitingButtonEditLine)
	return say(MenuKeep, locales.T("PromptButtonEditLine"))
}

func (f *Flow) captureButtonEditLine(ctx context.Context, op int64, text string) Reply {
	d, ok := f.drafts.Current(op)
	idx := f.states.EditIndex(op)
	if !ok || idx < 0 || idx >= len(d.Buttons) {
		f.states.SetState(op, state.StateIdle)
		return say(MenuMain, locales.T("NoDraft"))
	}
	button, err := draft.ParseButtonLine(text)
	if err != nil {
		var invalid *draft.InvalidLineError
		if errors.As(err, &invalid) {
			return say(MenuKeep, locales.TD("InvalidButtonLine", map[string]interface{}{"Line": invalid.Line}))
		}
		return say(MenuKeep, locales.T("NoValidButtons"))
	}
	d.Buttons[idx] = button
	f.states.SetState(op, state.StateConfirmAction)
	logger.Debug(ctx, "flow", "draft.edit_button",
		slog.Int64("operator", op),
		slog.Int("index", idx),
	)
	return f.confirmReply(op, locales.T("ButtonUpdated"))
}

func (f *Flow) captureButtonDeleteIndex(ctx context.Context, op int64, text string) Reply {
	d, ok := f.drafts.Current(op)
	if !ok || len(d.Buttons) == 0 {
		f.states.SetState(op, state.StateIdle)
		return say(MenuMain, locales.T("NoDraft"))
	}
	idx, okIdx := parseIndex(text, len(d.Buttons))
	if !okIdx {
		return say(MenuKeep, locales.T("BadIndex"))
	}
	d.Buttons = append(d.Buttons[:idx], d.Buttons[idx+1:]...)
	f.states.SetState(op, state.StateConfirmAction)
	logger.Debug(ctx, "flow", "draft.delete_button",
		slog.Int64("operator", op),
		slog.Int("index", idx),
	)
	return f.confirmReply(op, locales.T("ButtonDeleted"))
}

// captureDefaultButton appends one button to the default set.
func (f *Flow) captureDefaultButton(ctx context.Context, op int64, text string) Reply {
	button, err := draft.ParseButtonLine(text)
	if err != nil {
		return say(MenuKeep, locales.T("NoValidButtons"))
	}
	set, err := f.sets.Get(ctx, buttonset.DefaultName)
	if err != nil && !errors.Is(err, buttonset.ErrNotFound) {
		return say(MenuKeep, locales.T("StorageFailed"))
	}
	set.Name = buttonset.DefaultName
	set.Buttons = append(set.Buttons, button)
	if err := f.sets.Save(ctx, set); err != nil {
		return say(MenuKeep, locales.T("StorageFailed"))
	}
	f.states.SetState(op, state.StateButtonsMenu)
	return say(MenuButtons, locales.T("ButtonAdded"))
}

// listTemplates renders the named templates, one numbered line each. The
// default set is managed through its own actions and stays out of the list.
func (f *Flow) listTemplates(ctx context.Context) ([]buttonset.ButtonSet, string, error) {
	all, err := f.sets.List(ctx)
	if err != nil {
		return nil, "", err
	}
	sets := buttonset.Templates(all)
	if len(sets) == 0 {
		return nil, "", nil
	}
	lines := []string{locales.T("TemplatesHeader")}
	for i, set := range sets {
		lines = append(lines, locales.TD("TemplateLine", map[string]interface{}{
			"Index": i + 1,
			"Name":  set.Name,
			"Count": len(set.Buttons),
		}))
	}
	return sets, strings.Join(lines, "\n"), nil
}

func (f *Flow) viewTemplates(ctx context.Context, _ int64) Reply {
	sets, listing, err := f.listTemplates(ctx)
	if err != nil {
		return say(MenuKeep, locales.T("StorageFailed"))
	}
	if len(sets) == 0 {
		return say(MenuKeep, locales.T("TemplatesEmpty"))
	}
	return say(MenuKeep, listing)
}

func (f *Flow) promptTemplateDelete(ctx context.Context, op int64) Reply {
	sets, listing, err := f.listTemplates(ctx)
	if err != nil {
		return say(MenuKeep, locales.T("StorageFailed"))
	}
	if len(sets) == 0 {
		return say(MenuKeep, locales.T("TemplatesEmpty"))
	}
	f.states.SetState(op, state.StateAwaitingTemplateDeleteIndex)
	return say(MenuKeep, listing, locales.T("PromptTemplateDeleteIndex"))
}

func (f *Flow) captureTemplateDeleteIndex(ctx context.Context, op int64, text string) Reply {
	all, err := f.sets.List(ctx)
	if err != nil {
		return say(MenuKeep, locales.T("StorageFailed"))
	}
	sets := buttonset.Templates(all)
	idx, ok := parseIndex(text, len(sets))
	if !ok {
		return say(MenuKeep, locales.T("BadIndex"))
	}
	name := sets[idx].Name
	if err := f.sets.Delete(ctx, name); err != nil {
		return say(MenuKeep, locales.T("StorageFailed"))
	}
	f.states.SetState(op, state.StateButtonsMenu)
	logger.Info(ctx, "flow", "buttonset.delete",
		slog.Int64("operator", op),
		slog.String("name", name),
	)
	return say(MenuButtons, locales.TD("TemplateDeleted", map[string]interface{}{"Name": name}))
}
