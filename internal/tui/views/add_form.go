package views

import (
	"strings"

	"github.com/rivo/tview"

	"github.com/hrdash/hrdash/internal/dashboard"
	"github.com/hrdash/hrdash/internal/records"
	"github.com/hrdash/hrdash/internal/tui/ui"
)

var (
	kindOptions    = []records.Kind{records.KindContact, records.KindAppointment}
	meetingOptions = []string{records.MeetingInPerson, records.MeetingRemote}
)

// AddForm collects a new contact or appointment.
type AddForm struct {
	*tview.Form
	theme    *ui.Theme
	kind     *tview.DropDown
	meeting  *tview.DropDown
	inputs   map[string]*tview.InputField
	onSubmit func(dashboard.NewEntry)
	onCancel func()
}

// addFields lists the text inputs in form order.
var addFields = []string{"Name", "Email", "Phone", "Company", "Service", "Date", "Time"}

// NewAddForm creates the add-record form.
func NewAddForm(theme *ui.Theme) *AddForm {
	af := &AddForm{
		Form:   tview.NewForm(),
		theme:  theme,
		inputs: make(map[string]*tview.InputField, len(addFields)),
	}
	af.SetBorder(true)
	af.SetBorderColor(theme.BorderColor)
	af.SetBackgroundColor(theme.BgColor)
	af.SetTitle(" New record ")
	af.SetTitleColor(theme.TitleColor)
	af.SetFieldBackgroundColor(tview.Styles.MoreContrastBackgroundColor)
	af.SetButtonBackgroundColor(theme.MenuKeyColor)

	kinds := make([]string, len(kindOptions))
	for i, k := range kindOptions {
		kinds[i] = string(k)
	}
	af.kind = tview.NewDropDown().SetLabel("Type").SetOptions(kinds, nil).SetCurrentOption(0)
	af.AddFormItem(af.kind)

	for _, label := range addFields {
		in := tview.NewInputField().SetLabel(label).SetFieldWidth(40)
		af.inputs[label] = in
		af.AddFormItem(in)
	}
	af.meeting = tview.NewDropDown().SetLabel("Meeting").SetOptions(meetingOptions, nil).SetCurrentOption(0)
	af.AddFormItem(af.meeting)
	af.AddTextArea("Message", "", 40, 4, 0, nil)

	af.AddButton("Save", func() {
		if af.onSubmit != nil {
			af.onSubmit(af.Entry())
		}
	})
	af.AddButton("Cancel", func() {
		if af.onCancel != nil {
			af.onCancel()
		}
	})
	af.SetCancelFunc(func() {
		if af.onCancel != nil {
			af.onCancel()
		}
	})
	return af
}

// Name implements Component.
func (af *AddForm) Name() string { return "New" }

// Init implements Component.
func (af *AddForm) Init() {}

// Start implements Component.
func (af *AddForm) Start() {}

// Stop implements Component.
func (af *AddForm) Stop() {}

// Hints implements Component.
func (af *AddForm) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Esc", Description: "Cancel"},
	}
}

// Entry reads the form. Date, time and meeting type only apply to
// appointments and are dropped for contacts by the payload builder.
func (af *AddForm) Entry() dashboard.NewEntry {
	kindIdx, _ := af.kind.GetCurrentOption()
	_, meeting := af.meeting.GetCurrentOption()
	text := func(label string) string {
		return strings.TrimSpace(af.inputs[label].GetText())
	}
	var message string
	if ta, ok := af.GetFormItemByLabel("Message").(*tview.TextArea); ok {
		message = strings.TrimSpace(ta.GetText())
	}

	kind := records.KindContact
	if kindIdx >= 0 && kindIdx < len(kindOptions) {
		kind = kindOptions[kindIdx]
	}
	return dashboard.NewEntry{
		Kind:          kind,
		Name:          text("Name"),
		Email:         text("Email"),
		Phone:         text("Phone"),
		Message:       message,
		Company:       text("Company"),
		Service:       text("Service"),
		PreferredDate: text("Date"),
		PreferredTime: text("Time"),
		MeetingType:   meeting,
	}
}

// Reset clears every field for a new entry.
func (af *AddForm) Reset(kind records.Kind) {
	idx := 0
	for i, k := range kindOptions {
		if k == kind {
			idx = i
		}
	}
	af.kind.SetCurrentOption(idx)
	af.meeting.SetCurrentOption(0)
	for _, in := range af.inputs {
		in.SetText("")
	}
	if ta, ok := af.GetFormItemByLabel("Message").(*tview.TextArea); ok {
		ta.SetText("", false)
	}
	af.SetFocus(0)
}

// SetOnSubmit sets the callback receiving the new entry.
func (af *AddForm) SetOnSubmit(fn func(dashboard.NewEntry)) {
	af.onSubmit = fn
}

// SetOnCancel sets the callback when the form is abandoned.
func (af *AddForm) SetOnCancel(fn func()) {
	af.onCancel = fn
}
