package bot

import (
	tele "gopkg.in/telebot.v4"

	"github.com/JOHAALETRADER/Postbotjoha/internal/flow"
	"github.com/JOHAALETRADER/Postbotjoha/internal/locales"
	"github.com/JOHAALETRADER/Postbotjoha/internal/telegram/keyboard"
)

// cbSource is the callback key for the button-source choice.
const cbSource = "btn_source"

const (
	srcDefaults = "defaults"
	srcNew      = "new"
	srcNone     = "none"
)

// menuLabels maps localized button labels to actions. Tapped reply-keyboard
// buttons arrive as plain text, so this is the boundary where display
// strings become closed enum values.
func menuLabels() map[string]flow.Action {
	return map[string]flow.Action{
		locales.T("BtnCreatePost"):     flow.ActionCreatePost,
		locales.T("BtnSavedButtons"):   flow.ActionButtonsMenu,
		locales.T("BtnSchedulePost"):   flow.ActionSchedulePost,
		locales.T("BtnCancel"):         flow.ActionCancel,
		locales.T("BtnPublishNow"):     flow.ActionPublishNow,
		locales.T("BtnSchedule"):       flow.ActionSchedule,
		locales.T("BtnSaveTemplate"):   flow.ActionSaveTemplate,
		locales.T("BtnSaveDefault"):    flow.ActionSaveDefault,
		locales.T("BtnEdit"):           flow.ActionEditMenu,
		locales.T("BtnEditText"):       flow.ActionEditText,
		locales.T("BtnEditMedia"):      flow.ActionEditMedia,
		locales.T("BtnEditButton"):     flow.ActionEditButton,
		locales.T("BtnDeleteButton"):   flow.ActionDeleteButton,
		locales.T("BtnBack"):           flow.ActionBack,
		locales.T("BtnAddButton"):      flow.ActionAddButton,
		locales.T("BtnViewTemplates"):  flow.ActionViewTemplates,
		locales.T("BtnDeleteTemplate"): flow.ActionDeleteTemplate,
		locales.T("BtnBackToMenu"):     flow.ActionBackToMenu,
	}
}

// sourceActions maps callback payloads of the button-source inline keyboard.
var sourceActions = map[string]flow.Action{
	srcDefaults: flow.ActionUseDefaults,
	srcNew:      flow.ActionNewButtons,
	srcNone:     flow.ActionNoButtons,
}

func mainMenu() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{locales.T("BtnCreatePost")},
		[]string{locales.T("BtnSavedButtons")},
		[]string{locales.T("BtnSchedulePost")},
		[]string{locales.T("BtnCancel")},
	)
}

func confirmMenu() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{locales.T("BtnPublishNow")},
		[]string{locales.T("BtnSchedule")},
		[]string{locales.T("BtnSaveTemplate"), locales.T("BtnSaveDefault")},
		[]string{locales.T("BtnEdit")},
		[]string{locales.T("BtnCancel")},
	)
}

func buttonsMenu() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{locales.T("BtnAddButton")},
		[]string{locales.T("BtnViewTemplates")},
		[]string{locales.T("BtnDeleteTemplate")},
		[]string{locales.T("BtnBackToMenu")},
	)
}

func editMenu() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{locales.T("BtnEditText"), locales.T("BtnEditMedia")},
		[]string{locales.T("BtnEditButton"), locales.T("BtnDeleteButton")},
		[]string{locales.T("BtnBack")},
	)
}

func sourceMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: locales.T("BtnUseDefaults"), Unique: cbSource, Data: srcDefaults},
		{Text: locales.T("BtnNewButtons"), Unique: cbSource, Data: srcNew},
		{Text: locales.T("BtnNoButtons"), Unique: cbSource, Data: srcNone},
	})
}

// markupFor resolves the flow's menu tag into a concrete keyboard.
// MenuKeep returns nil so the current keyboard stays.
func markupFor(menu flow.Menu) *tele.ReplyMarkup {
	switch menu {
	case flow.MenuMain:
		return mainMenu()
	case flow.MenuConfirm:
		return confirmMenu()
	case flow.MenuButtons:
		return buttonsMenu()
	case flow.MenuEdit:
		return editMenu()
	case flow.MenuButtonSource:
		return sourceMenu()
	default:
		return nil
	}
}
