package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

type FlashLevel int

const (
	FlashInfo FlashLevel = iota
	FlashWarn
	FlashErr
)

// flashTTL is how long a message of each level stays on screen.
var flashTTL = map[FlashLevel]time.Duration{
	FlashInfo: 4 * time.Second,
	FlashWarn: 8 * time.Second,
	FlashErr:  12 * time.Second,
}

var flashIcons = map[FlashLevel]string{
	FlashInfo: "✓",
	FlashWarn: "!",
	FlashErr:  "✗",
}

// FlashMessage is one operator notification.
type FlashMessage struct {
	Text    string
	Level   FlashLevel
	Expires time.Time
}

// FlashModel keeps the latest notification. Errors from store calls end up
// here instead of interrupting the UI.
type FlashModel struct {
	now func() time.Time

	mu      sync.RWMutex
	current *FlashMessage
	notify  chan struct{}
}

func NewFlashModel() *FlashModel {
	return &FlashModel{now: time.Now, notify: make(chan struct{}, 1)}
}

func (f *FlashModel) Info(msg string) { f.push(FlashInfo, msg) }

func (f *FlashModel) Infof(format string, args ...any) {
	f.push(FlashInfo, fmt.Sprintf(format, args...))
}

func (f *FlashModel) Warn(msg string) { f.push(FlashWarn, msg) }

func (f *FlashModel) Err(err error) { f.push(FlashErr, err.Error()) }

// Clear drops the current message.
func (f *FlashModel) Clear() {
	f.mu.Lock()
	f.current = nil
	f.mu.Unlock()
	f.signal()
}

func (f *FlashModel) push(level FlashLevel, text string) {
	f.mu.Lock()
	f.current = &FlashMessage{Text: text, Level: level, Expires: f.now().Add(flashTTL[level])}
	f.mu.Unlock()
	f.signal()
}

func (f *FlashModel) signal() {
	select {
	case f.notify <- struct{}{}:
	default:
	}
}

// GetMessage returns a copy of the live message, or nil once it expired.
func (f *FlashModel) GetMessage() *FlashMessage {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.current == nil || !f.now().Before(f.current.Expires) {
		return nil
	}
	m := *f.current
	return &m
}

// Watch fires after every change. Bursts coalesce into one signal.
func (f *FlashModel) Watch() <-chan struct{} {
	return f.notify
}

// FlashBar renders the live message on the bottom line.
type FlashBar struct {
	*tview.TextView
	theme *Theme
}

func NewFlashBar(theme *Theme) *FlashBar {
	tv := tview.NewTextView().SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)
	return &FlashBar{TextView: tv, theme: theme}
}

func (fb *FlashBar) levelColor(l FlashLevel) tcell.Color {
	switch l {
	case FlashWarn:
		return fb.theme.FlashWarnColor
	case FlashErr:
		return fb.theme.FlashErrColor
	default:
		return fb.theme.FlashInfoColor
	}
}

// Update shows msg, or blanks the bar when msg is nil.
func (fb *FlashBar) Update(msg *FlashMessage) {
	fb.Clear()
	if msg == nil {
		return
	}
	_, _ = fmt.Fprintf(fb, " [%s]%s %s[-]", colorName(fb.levelColor(msg.Level)), flashIcons[msg.Level], tview.Escape(msg.Text))
}
