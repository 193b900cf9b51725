package views

import (
	"fmt"

	"github.com/rivo/tview"

	"github.com/hrdash/hrdash/internal/mail"
	"github.com/hrdash/hrdash/internal/records"
	"github.com/hrdash/hrdash/internal/tui/ui"
)

// ReplyComposer edits the subject and body of a mail reply before it is
// handed to the mail client.
type ReplyComposer struct {
	*tview.Form
	theme    *ui.Theme
	subject  *tview.InputField
	body     *tview.TextArea
	id       string
	onSend   func(id, subject, body string)
	onCancel func()
}

// NewReplyComposer creates the reply form.
func NewReplyComposer(theme *ui.Theme) *ReplyComposer {
	rc := &ReplyComposer{
		Form:    tview.NewForm(),
		theme:   theme,
		subject: tview.NewInputField().SetLabel("Subject").SetFieldWidth(0),
		body:    tview.NewTextArea().SetLabel("Body").SetSize(8, 0),
	}
	rc.SetBorder(true)
	rc.SetBorderColor(theme.BorderColor)
	rc.SetBackgroundColor(theme.BgColor)
	rc.SetTitleColor(theme.TitleColor)
	rc.SetFieldBackgroundColor(tview.Styles.MoreContrastBackgroundColor)
	rc.SetButtonBackgroundColor(theme.MenuKeyColor)

	rc.AddFormItem(rc.subject)
	rc.AddFormItem(rc.body)
	rc.AddButton("Send", func() {
		if rc.onSend != nil {
			rc.onSend(rc.id, rc.subject.GetText(), rc.body.GetText())
		}
	})
	rc.AddButton("Cancel", func() {
		if rc.onCancel != nil {
			rc.onCancel()
		}
	})
	rc.SetCancelFunc(func() {
		if rc.onCancel != nil {
			rc.onCancel()
		}
	})
	return rc
}

// Name implements Component.
func (rc *ReplyComposer) Name() string { return "Reply" }

// Init implements Component.
func (rc *ReplyComposer) Init() {}

// Start implements Component.
func (rc *ReplyComposer) Start() {}

// Stop implements Component.
func (rc *ReplyComposer) Stop() {}

// Hints implements Component.
func (rc *ReplyComposer) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Esc", Description: "Cancel"},
	}
}

// Load prepares a reply to r with the default greeting.
func (rc *ReplyComposer) Load(r records.Record, subject string) {
	rc.id = r.ID
	if subject == "" {
		subject = mail.DefaultSubject
	}
	rc.subject.SetText(subject)
	rc.body.SetText(mail.DefaultBody(records.Value(r.Name)), false)
	rc.SetTitle(fmt.Sprintf(" Reply to %s ", tview.Escape(records.Value(r.Email))))
	rc.SetFocus(0)
}

// SetOnSend sets the callback receiving the edited reply.
func (rc *ReplyComposer) SetOnSend(fn func(id, subject, body string)) {
	rc.onSend = fn
}

// SetOnCancel sets the callback when the reply is abandoned.
func (rc *ReplyComposer) SetOnCancel(fn func()) {
	rc.onCancel = fn
}
