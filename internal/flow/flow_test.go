package flow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JOHAALETRADER/Postbotjoha/internal/buttonset"
	"github.com/JOHAALETRADER/Postbotjoha/internal/draft"
	"github.com/JOHAALETRADER/Postbotjoha/internal/post"
	"github.com/JOHAALETRADER/Postbotjoha/internal/state"
)

// Locale messages are not initialized in tests, so replies carry bare
// message ids. Assertions match on those ids.

const op = int64(42)

type fakePublisher struct {
	published []post.Snapshot
	err       error
}

func (p *fakePublisher) Publish(_ context.Context, s post.Snapshot) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, s)
	return nil
}

type fakeScheduler struct {
	at        time.Time
	task      func()
	scheduled int
	cancelled int
}

func (s *fakeScheduler) Schedule(_ int64, at time.Time, task func()) (uuid.UUID, error) {
	s.at, s.task = at, task
	s.scheduled++
	return uuid.New(), nil
}

func (s *fakeScheduler) Cancel(int64) { s.cancelled++ }

type fakeNotifier struct {
	notes []string
}

func (n *fakeNotifier) Notify(_ int64, text string) { n.notes = append(n.notes, text) }

type fixture struct {
	flow   *Flow
	states state.Manager
	drafts *draft.Store
	sets   buttonset.Repository
	pub    *fakePublisher
	sched  *fakeScheduler
	notes  *fakeNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fx := &fixture{
		states: state.NewMemoryManager(),
		drafts: draft.NewStore(),
		sets:   buttonset.NewMemoryRepository(),
		pub:    &fakePublisher{},
		sched:  &fakeScheduler{},
		notes:  &fakeNotifier{},
	}
	fx.flow = New(Config{
		States:    fx.states,
		Drafts:    fx.drafts,
		Sets:      fx.sets,
		Publisher: fx.pub,
		Scheduler: fx.sched,
		Notifier:  fx.notes,
		Channel:   "@canal",
		Location:  time.UTC,
		Now: func() time.Time {
			return time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
		},
	})
	return fx
}

func (fx *fixture) composeTextDraft(t *testing.T, text, buttons string) {
	t.Helper()
	ctx := context.Background()
	fx.flow.OnAction(ctx, op, ActionCreatePost)
	fx.flow.OnText(ctx, op, text)
	reply := fx.flow.OnText(ctx, op, buttons)
	require.Contains(t, reply.Messages, "PreviewReady")
}

func TestComposeAndPublishNow(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	reply := fx.flow.Start(ctx, op)
	assert.Equal(t, MenuMain, reply.Menu)
	assert.Contains(t, reply.Messages, "MenuReady")

	reply = fx.flow.OnAction(ctx, op, ActionCreatePost)
	assert.Contains(t, reply.Messages, "PromptContent")
	assert.Equal(t, state.StateAwaitingContent, fx.states.GetState(op))

	reply = fx.flow.OnText(ctx, op, "Hola")
	assert.Contains(t, reply.Messages, "PromptButtons")
	assert.Equal(t, state.StateAwaitingButtons, fx.states.GetState(op))

	reply = fx.flow.OnText(ctx, op, "Suscríbete - https://t.me/canal")
	assert.Equal(t, state.StateConfirmAction, fx.states.GetState(op))
	require.NotNil(t, reply.Preview)
	assert.Equal(t, draft.KindText, reply.Preview.Kind)
	assert.Len(t, reply.Preview.Buttons, 1)

	reply = fx.flow.OnAction(ctx, op, ActionPublishNow)
	assert.Contains(t, reply.Messages, "Published")
	assert.Equal(t, state.StateIdle, fx.states.GetState(op))

	require.Len(t, fx.pub.published, 1)
	sent := fx.pub.published[0]
	assert.Equal(t, "@canal", sent.Destination)
	assert.Equal(t, "Hola", sent.Text)
	assert.Equal(t, []draft.Button{{Label: "Suscríbete", URL: "https://t.me/canal"}}, sent.Buttons)

	_, ok := fx.drafts.Current(op)
	assert.False(t, ok)
}

func TestButtonBatchRejectedWholesale(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	fx.flow.OnAction(ctx, op, ActionCreatePost)
	fx.flow.OnText(ctx, op, "Hola")

	reply := fx.flow.OnText(ctx, op, "Suscríbete - https://t.me/canal\nmalo")
	assert.Contains(t, reply.Messages, "InvalidButtonLine")
	assert.Equal(t, state.StateAwaitingButtons, fx.states.GetState(op))

	d, ok := fx.drafts.Current(op)
	require.True(t, ok)
	assert.Empty(t, d.Buttons)
}

func TestPublishEmptyDraftRejected(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	reply := fx.flow.OnAction(ctx, op, ActionPublishNow)
	assert.Contains(t, reply.Messages, "EmptyDraft")
	assert.Equal(t, state.StateIdle, fx.states.GetState(op))
	assert.Empty(t, fx.pub.published)
}

func TestPublishFailureKeepsDraft(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	fx.composeTextDraft(t, "Hola", "A - https://a")

	fx.pub.err = errors.New("telegram: 502")
	reply := fx.flow.OnAction(ctx, op, ActionPublishNow)
	assert.Contains(t, reply.Messages, "PublishFailed")

	d, ok := fx.drafts.Current(op)
	require.True(t, ok)
	assert.False(t, d.Empty())
	assert.Equal(t, state.StateConfirmAction, fx.states.GetState(op))
}

func TestScheduleFreezesSnapshot(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	fx.composeTextDraft(t, "Hola", "A - https://a")

	reply := fx.flow.OnAction(ctx, op, ActionSchedule)
	assert.Contains(t, reply.Messages, "PromptSchedule")

	reply = fx.flow.OnText(ctx, op, "2025-12-03 14:30")
	assert.Contains(t, reply.Messages, "Scheduled")
	assert.Equal(t, state.StateIdle, fx.states.GetState(op))
	assert.Equal(t, 1, fx.sched.scheduled)
	assert.Equal(t, time.Date(2025, time.December, 3, 14, 30, 0, 0, time.UTC), fx.sched.at)

	d, ok := fx.drafts.Current(op)
	require.True(t, ok)
	assert.False(t, d.ScheduledAt.IsZero())

	// edit the draft after scheduling; the job must deliver the frozen copy
	d.Content.Text = "changed"

	require.NotNil(t, fx.sched.task)
	fx.sched.task()

	require.Len(t, fx.pub.published, 1)
	assert.Equal(t, "Hola", fx.pub.published[0].Text)
	assert.Equal(t, "@canal", fx.pub.published[0].Destination)
	assert.Contains(t, fx.notes.notes, "ScheduledSent")

	_, ok = fx.drafts.Current(op)
	assert.False(t, ok)
}

func TestScheduleRejectsPastAndBadInput(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	fx.composeTextDraft(t, "Hola", "A - https://a")
	fx.flow.OnAction(ctx, op, ActionSchedule)

	reply := fx.flow.OnText(ctx, op, "2025-01-01 10:00")
	assert.Contains(t, reply.Messages, "PastDatetime")
	assert.Equal(t, state.StateAwaitingSchedule, fx.states.GetState(op))

	reply = fx.flow.OnText(ctx, op, "mañana temprano")
	assert.Contains(t, reply.Messages, "BadDatetime")
	assert.Equal(t, state.StateAwaitingSchedule, fx.states.GetState(op))
	assert.Zero(t, fx.sched.scheduled)
}

func TestScheduleFromIdleRequiresDraft(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	reply := fx.flow.OnAction(ctx, op, ActionSchedulePost)
	assert.Contains(t, reply.Messages, "CreateFirst")
	assert.Equal(t, state.StateIdle, fx.states.GetState(op))
}

func TestSchedulerDisabled(t *testing.T) {
	fx := newFixture(t)
	fx.flow.sched = nil
	ctx := context.Background()
	fx.composeTextDraft(t, "Hola", "A - https://a")

	reply := fx.flow.OnAction(ctx, op, ActionSchedule)
	assert.Contains(t, reply.Messages, "SchedulerDisabled")
	assert.Equal(t, state.StateConfirmAction, fx.states.GetState(op))
}

func TestDefaultSetOffersSourceChoice(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	require.NoError(t, fx.sets.Save(ctx, buttonset.ButtonSet{
		Name:    buttonset.DefaultName,
		Buttons: []draft.Button{{Label: "VIP", URL: "https://t.me/vip"}},
	}))

	fx.flow.OnAction(ctx, op, ActionCreatePost)
	reply := fx.flow.OnText(ctx, op, "Hola")
	assert.Contains(t, reply.Messages, "PromptButtonSource")
	assert.Equal(t, state.StateChoosingButtonSource, fx.states.GetState(op))

	reply = fx.flow.OnAction(ctx, op, ActionUseDefaults)
	assert.Equal(t, state.StateConfirmAction, fx.states.GetState(op))
	require.NotNil(t, reply.Preview)
	assert.Equal(t, []draft.Button{{Label: "VIP", URL: "https://t.me/vip"}}, reply.Preview.Buttons)
}

func TestSaveDefaultKeepsState(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	fx.composeTextDraft(t, "Hola", "A - https://a")

	reply := fx.flow.OnAction(ctx, op, ActionSaveDefault)
	assert.Contains(t, reply.Messages, "DefaultSaved")
	assert.Equal(t, state.StateConfirmAction, fx.states.GetState(op))

	set, err := fx.sets.Get(ctx, buttonset.DefaultName)
	require.NoError(t, err)
	assert.Equal(t, []draft.Button{{Label: "A", URL: "https://a"}}, set.Buttons)
}

func TestSaveTemplateFlow(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	fx.composeTextDraft(t, "Hola", "A - https://a")

	reply := fx.flow.OnAction(ctx, op, ActionSaveTemplate)
	assert.Contains(t, reply.Messages, "PromptTemplateName")

	reply = fx.flow.OnText(ctx, op, "   ")
	assert.Contains(t, reply.Messages, "EmptyTemplateName")
	assert.Equal(t, state.StateAwaitingTemplateName, fx.states.GetState(op))

	reply = fx.flow.OnText(ctx, op, "promo")
	assert.Contains(t, reply.Messages, "TemplateSaved")

	set, err := fx.sets.Get(ctx, "promo")
	require.NoError(t, err)
	assert.Len(t, set.Buttons, 1)
}

func TestEditButtonByIndex(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	fx.composeTextDraft(t, "Hola", "A - https://a\nB - https://b")

	reply := fx.flow.OnAction(ctx, op, ActionEditButton)
	assert.Contains(t, reply.Messages, "PromptButtonEditIndex")

	reply = fx.flow.OnText(ctx, op, "9")
	assert.Contains(t, reply.Messages, "BadIndex")
	assert.Equal(t, state.StateAwaitingButtonEditIndex, fx.states.GetState(op))

	fx.flow.OnText(ctx, op, "2")
	reply = fx.flow.OnText(ctx, op, "C - https://c")
	assert.Contains(t, reply.Messages, "ButtonUpdated")

	d, _ := fx.drafts.Current(op)
	assert.Equal(t, []draft.Button{
		{Label: "A", URL: "https://a"},
		{Label: "C", URL: "https://c"},
	}, d.Buttons)
}

func TestDeleteButtonByIndex(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	fx.composeTextDraft(t, "Hola", "A - https://a\nB - https://b")

	fx.flow.OnAction(ctx, op, ActionDeleteButton)
	reply := fx.flow.OnText(ctx, op, "1")
	assert.Contains(t, reply.Messages, "ButtonDeleted")

	d, _ := fx.drafts.Current(op)
	assert.Equal(t, []draft.Button{{Label: "B", URL: "https://b"}}, d.Buttons)
}

func TestEditTextKeepsMedia(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	fx.flow.OnAction(ctx, op, ActionCreatePost)
	fx.flow.OnMedia(ctx, op, draft.KindPhoto, "file-1", "caption")
	fx.flow.OnText(ctx, op, "A - https://a")

	fx.flow.OnAction(ctx, op, ActionEditText)
	reply := fx.flow.OnText(ctx, op, "nuevo caption")
	assert.Contains(t, reply.Messages, "TextUpdated")

	d, _ := fx.drafts.Current(op)
	assert.Equal(t, draft.KindPhoto, d.Content.Kind)
	assert.Equal(t, "file-1", d.Content.FileID)
	assert.Equal(t, "nuevo caption", d.Content.Text)
}

func TestDefaultButtonAppend(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	fx.flow.OnAction(ctx, op, ActionButtonsMenu)
	fx.flow.OnAction(ctx, op, ActionAddButton)
	assert.Equal(t, state.StateAwaitingDefaultButton, fx.states.GetState(op))

	reply := fx.flow.OnText(ctx, op, "sin separador valido")
	assert.Contains(t, reply.Messages, "NoValidButtons")

	reply = fx.flow.OnText(ctx, op, "VIP - https://t.me/vip")
	assert.Contains(t, reply.Messages, "ButtonAdded")
	assert.Equal(t, state.StateButtonsMenu, fx.states.GetState(op))

	reply = fx.flow.OnText(ctx, op, "Canal - https://t.me/canal")
	assert.Contains(t, reply.Messages, "ChooseButtonsOption")

	fx.flow.OnAction(ctx, op, ActionAddButton)
	fx.flow.OnText(ctx, op, "Canal - https://t.me/canal")

	set, err := fx.sets.Get(ctx, buttonset.DefaultName)
	require.NoError(t, err)
	assert.Len(t, set.Buttons, 2)
}

func TestDeleteTemplateByIndex(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	require.NoError(t, fx.sets.Save(ctx, buttonset.ButtonSet{Name: buttonset.DefaultName}))
	require.NoError(t, fx.sets.Save(ctx, buttonset.ButtonSet{Name: "alfa"}))
	require.NoError(t, fx.sets.Save(ctx, buttonset.ButtonSet{Name: "beta"}))

	fx.flow.OnAction(ctx, op, ActionButtonsMenu)
	reply := fx.flow.OnAction(ctx, op, ActionDeleteTemplate)
	assert.Contains(t, reply.Messages, "PromptTemplateDeleteIndex")

	reply = fx.flow.OnText(ctx, op, "5")
	assert.Contains(t, reply.Messages, "BadIndex")

	reply = fx.flow.OnText(ctx, op, "2")
	assert.Contains(t, reply.Messages, "TemplateDeleted")

	_, err := fx.sets.Get(ctx, "beta")
	assert.ErrorIs(t, err, buttonset.ErrNotFound)
	_, err = fx.sets.Get(ctx, "alfa")
	assert.NoError(t, err)
	_, err = fx.sets.Get(ctx, buttonset.DefaultName)
	assert.NoError(t, err)
}

func TestBackToMenuReturnsIdle(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	fx.flow.OnAction(ctx, op, ActionButtonsMenu)
	require.Equal(t, state.StateButtonsMenu, fx.states.GetState(op))
	require.True(t, fx.states.InProgress(op))

	reply := fx.flow.OnAction(ctx, op, ActionBackToMenu)
	assert.Contains(t, reply.Messages, "BackToMenu")
	assert.Equal(t, MenuMain, reply.Menu)
	assert.Equal(t, state.StateIdle, fx.states.GetState(op))
	assert.False(t, fx.states.InProgress(op))
}

func TestCancelClearsEverything(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	fx.composeTextDraft(t, "Hola", "A - https://a")

	reply := fx.flow.OnAction(ctx, op, ActionCancel)
	assert.Contains(t, reply.Messages, "Cancelled")
	assert.Equal(t, state.StateIdle, fx.states.GetState(op))
	assert.Equal(t, 1, fx.sched.cancelled)

	_, ok := fx.drafts.Current(op)
	assert.False(t, ok)
}

func TestMediaOutsideCaptureRejected(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	reply := fx.flow.OnMedia(ctx, op, draft.KindPhoto, "file-1", "")
	assert.Contains(t, reply.Messages, "UnsupportedFormat")
	assert.Equal(t, state.StateIdle, fx.states.GetState(op))
}

func TestScheduledDeliveryFailureNotifies(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	fx.composeTextDraft(t, "Hola", "A - https://a")
	fx.flow.OnAction(ctx, op, ActionSchedule)
	fx.flow.OnText(ctx, op, "2025-12-03 14:30")

	fx.pub.err = errors.New("telegram: 502")
	fx.sched.task()

	assert.Contains(t, fx.notes.notes, "ScheduledFailed")
	// draft stays so the operator can retry
	_, ok := fx.drafts.Current(op)
	assert.True(t, ok)
}
