package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"github.com/hrdash/hrdash/internal/dashboard"
	"github.com/hrdash/hrdash/internal/mail"
	"github.com/hrdash/hrdash/internal/records"
	"github.com/hrdash/hrdash/internal/tui/client"
	"github.com/hrdash/hrdash/internal/tui/keys"
	"github.com/hrdash/hrdash/internal/tui/model"
	"github.com/hrdash/hrdash/internal/tui/ui"
	"github.com/hrdash/hrdash/internal/tui/views"
)

const (
	pageRecords   = "records"
	pageDetail    = "detail"
	pageReply     = "reply"
	pageAdd       = "new"
	pageAnalytics = "analytics"
	pageHelp      = "help"
)

// DefaultRefreshInterval is how often the snapshot is re-fetched when no
// change events arrive.
const DefaultRefreshInterval = 30 * time.Second

// Options configure the TUI.
type Options struct {
	Profile         string
	MailSubject     string
	ExportDir       string
	Formatter       records.Formatter
	Opener          mail.Opener
	Logger          *zap.Logger
	RefreshInterval time.Duration
}

// App is the main TUI application shell.
type App struct {
	app      *tview.Application
	theme    *ui.Theme
	root     *tview.Flex
	pages    *ui.Pages
	vm       *model.ViewModel
	client   *client.Client
	registry *keys.Registry
	opts     Options
	logger   *zap.Logger

	info      *ui.ProfileInfo
	menu      *ui.Menu
	logo      *ui.Logo
	crumbs    *ui.Crumbs
	flashBar  *ui.FlashBar
	prompt    *ui.Prompt
	statusBar *views.StatusBar

	list       *views.RecordList
	detail     *views.RecordDetail
	reply      *views.ReplyComposer
	add        *views.AddForm
	analytics  *views.AnalyticsView
	help       *views.HelpView
	components map[string]ui.Component

	promptActive bool
	ctx          context.Context
	cancel       context.CancelFunc
}

// NewApp creates the TUI application over a daemon connection.
func NewApp(c *client.Client, opts Options) *App {
	if opts.Opener == nil {
		opts.Opener = mail.NewLauncher()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = DefaultRefreshInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	theme := ui.DefaultTheme()

	a := &App{
		app:       tview.NewApplication(),
		theme:     theme,
		pages:     ui.NewPages(),
		vm:        model.NewViewModel(c, opts.Formatter),
		client:    c,
		registry:  keys.NewRegistry(),
		opts:      opts,
		logger:    opts.Logger,
		info:      ui.NewProfileInfo(theme),
		menu:      ui.NewMenu(theme),
		logo:      ui.NewLogo(theme),
		crumbs:    ui.NewCrumbs(theme),
		flashBar:  ui.NewFlashBar(theme),
		prompt:    ui.NewPrompt(theme),
		statusBar: views.NewStatusBar(),
		list:      views.NewRecordList(theme),
		detail:    views.NewRecordDetail(theme),
		reply:     views.NewReplyComposer(theme),
		add:       views.NewAddForm(theme),
		analytics: views.NewAnalyticsView(theme),
		help:      views.NewHelpView(theme),
		ctx:       ctx,
		cancel:    cancel,
	}
	a.components = map[string]ui.Component{
		pageRecords:   a.list,
		pageDetail:    a.detail,
		pageReply:     a.reply,
		pageAdd:       a.add,
		pageAnalytics: a.analytics,
		pageHelp:      a.help,
	}

	a.statusBar.SetProfile(opts.Profile)
	a.setupBindings()
	a.setupCallbacks()
	a.setupLayout()

	return a
}

func (a *App) setupBindings() {
	r := a.registry
	r.AddGlobal(&keys.Action{Name: "quit", Key: tcell.KeyRune, Rune: 'q', Description: "q:quit", Visible: true, Handler: a.Stop})
	r.AddGlobal(&keys.Action{Name: "help", Key: tcell.KeyRune, Rune: '?', Description: "?:help", Visible: true, Handler: func() { a.pages.Push(pageHelp) }})
	r.AddGlobal(&keys.Action{Name: "command", Key: tcell.KeyRune, Rune: ':', Description: ":command", Handler: func() { a.showPrompt(ui.PromptCommand) }})
	r.AddGlobal(&keys.Action{Name: "refresh", Key: tcell.KeyRune, Rune: 'r', Description: "r:refresh", Handler: a.refreshAsync})

	statusKeys := []struct {
		name string
		key  rune
		st   records.Status
	}{
		{"approve", 'a', records.StatusApproved},
		{"reject", 'x', records.StatusRejected},
		{"pending", 'p', records.StatusPending},
	}
	for _, page := range []string{pageRecords, pageDetail} {
		for _, sk := range statusKeys {
			sk := sk
			r.AddView(page, &keys.Action{Name: sk.name, Key: tcell.KeyRune, Rune: sk.key, Handler: func() { a.setStatus(sk.st) }})
		}
		r.AddView(page, &keys.Action{Name: "reply", Key: tcell.KeyRune, Rune: 'm', Handler: a.openReply})
	}

	r.AddView(pageRecords, &keys.Action{Name: "open", Key: tcell.KeyEnter, Handler: a.openDetail})
	r.AddView(pageRecords, &keys.Action{Name: "search", Key: tcell.KeyRune, Rune: '/', Handler: func() { a.showPrompt(ui.PromptSearch) }})
	r.AddView(pageRecords, &keys.Action{Name: "type", Key: tcell.KeyRune, Rune: 't', Handler: func() {
		a.vm.Flash.Info("type: " + string(a.vm.CycleKind()))
		a.redraw()
	}})
	r.AddView(pageRecords, &keys.Action{Name: "status", Key: tcell.KeyRune, Rune: 'f', Handler: func() {
		a.vm.Flash.Info("status: " + string(a.vm.CycleStatus()))
		a.redraw()
	}})
	r.AddView(pageRecords, &keys.Action{Name: "clear", Key: tcell.KeyRune, Rune: 'c', Handler: func() {
		a.vm.ClearFilters()
		a.redraw()
	}})
	r.AddView(pageRecords, &keys.Action{Name: "new", Key: tcell.KeyRune, Rune: 'n', Handler: func() { a.openAdd(records.KindContact) }})
	r.AddView(pageRecords, &keys.Action{Name: "export", Key: tcell.KeyRune, Rune: 'e', Handler: a.export})
	r.AddView(pageRecords, &keys.Action{Name: "analytics", Key: tcell.KeyRune, Rune: 'g', Handler: a.openAnalytics})
}

func (a *App) setupCallbacks() {
	a.pages.SetOnChange(func(stack []string) {
		a.crumbs.Update(stack)
		a.updateMenu()
	})

	a.prompt.SetOnChange(func(mode ui.PromptMode, text string) {
		if mode == ui.PromptSearch {
			a.vm.SetQuery(text)
			a.redraw()
		}
	})
	a.prompt.SetOnSubmit(func(mode ui.PromptMode, text string) {
		a.hidePrompt()
		if mode == ui.PromptCommand {
			a.runCommand(ParseCommand(text))
		}
	})
	a.prompt.SetOnCancel(func() {
		if a.prompt.Mode() == ui.PromptSearch {
			a.vm.SetQuery("")
		}
		a.hidePrompt()
		a.redraw()
	})

	a.reply.SetOnSend(func(id, subject, body string) {
		if err := a.vm.Reply(a.opts.Opener, id, subject, body); err != nil {
			a.logger.Warn("reply failed", zap.String("id", id), zap.Error(err))
		}
		a.back()
		a.redraw()
	})
	a.reply.SetOnCancel(a.back)

	a.add.SetOnSubmit(func(e dashboard.NewEntry) {
		a.back()
		go func() {
			if _, err := a.vm.Add(a.ctx, e); err != nil {
				a.logger.Warn("add failed", zap.String("kind", string(e.Kind)), zap.Error(err))
			}
			a.app.QueueUpdateDraw(a.redraw)
		}()
	})
	a.add.SetOnCancel(a.back)
}

func (a *App) setupLayout() {
	for name, c := range map[string]tview.Primitive{
		pageRecords:   a.list,
		pageDetail:    a.detail,
		pageReply:     a.reply,
		pageAdd:       a.add,
		pageAnalytics: a.analytics,
		pageHelp:      a.help,
	} {
		a.pages.AddPage(name, c, true, false)
	}

	header := tview.NewFlex().
		AddItem(a.info, 0, 1, false).
		AddItem(a.menu, 0, 2, false).
		AddItem(a.logo, 12, 0, false)

	a.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(header, 7, 0, false).
		AddItem(a.prompt, 0, 0, false).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.crumbs, 1, 0, false).
		AddItem(a.statusBar, 1, 0, false).
		AddItem(a.flashBar, 1, 0, false)

	a.app.SetRoot(a.root, true)
	a.pages.Reset(pageRecords)
	a.app.SetFocus(a.list)

	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if a.promptActive {
			return event
		}
		page := a.pages.Current()
		// Forms own every key, Esc included.
		if page == pageReply || page == pageAdd {
			return event
		}
		if event.Key() == tcell.KeyEscape {
			if a.pages.Depth() > 1 {
				a.back()
			}
			return nil
		}
		if a.registry.HandleEvent(page, event) {
			return nil
		}
		return event
	})
}

func (a *App) showPrompt(mode ui.PromptMode) {
	text := ""
	if mode == ui.PromptSearch {
		text = a.vm.Criteria().Query
	}
	a.prompt.Activate(mode, text)
	a.promptActive = true
	a.root.ResizeItem(a.prompt, 3, 0)
	a.app.SetFocus(a.prompt)
}

func (a *App) hidePrompt() {
	a.promptActive = false
	a.root.ResizeItem(a.prompt, 0, 0)
	a.focusCurrent()
}

func (a *App) focusCurrent() {
	if p, ok := a.components[a.pages.Current()].(tview.Primitive); ok {
		a.app.SetFocus(p)
	}
}

func (a *App) back() {
	if a.pages.Depth() > 1 {
		a.pages.Pop()
	}
	a.focusCurrent()
}

// selectedID is the record the status and reply keys act on.
func (a *App) selectedID() string {
	if a.pages.Current() == pageDetail {
		return a.detail.ID()
	}
	return a.list.Selected()
}

func (a *App) openDetail() {
	id := a.list.Selected()
	r, ok := a.vm.Find(id)
	if !ok {
		return
	}
	a.detail.Update(r)
	a.crumbs.SetLabel(pageDetail, records.Value(r.Name))
	a.pages.Push(pageDetail)
	a.app.SetFocus(a.detail)
}

func (a *App) openReply() {
	id := a.selectedID()
	r, ok := a.vm.Find(id)
	if !ok {
		return
	}
	// Refuse before showing the composer when there is nowhere to send to.
	if strings.TrimSpace(records.Value(r.Email)) == "" {
		a.vm.Flash.Warn(fmt.Sprintf("%s has no email address", records.Value(r.Name)))
		a.redraw()
		return
	}
	a.reply.Load(r, a.opts.MailSubject)
	a.pages.Push(pageReply)
	a.app.SetFocus(a.reply)
}

func (a *App) openAdd(kind records.Kind) {
	a.add.Reset(kind)
	a.pages.Push(pageAdd)
	a.app.SetFocus(a.add)
}

func (a *App) openAnalytics() {
	a.analytics.Update(a.vm.Analytics(), a.vm.Stats())
	a.pages.Push(pageAnalytics)
	a.app.SetFocus(a.analytics)
}

func (a *App) setStatus(st records.Status) {
	id := a.selectedID()
	if id == "" {
		return
	}
	go func() {
		if err := a.vm.SetStatus(a.ctx, id, st); err != nil {
			a.logger.Warn("status update failed", zap.String("id", id), zap.String("status", string(st)), zap.Error(err))
		}
		a.app.QueueUpdateDraw(a.redraw)
	}()
}

func (a *App) export() {
	if _, err := a.vm.Export(a.opts.ExportDir, time.Now()); err != nil {
		a.logger.Warn("export failed", zap.Error(err))
	}
	a.redraw()
}

func (a *App) runCommand(cmd Command) {
	switch cmd.Name {
	case "":
	case "quit":
		a.Stop()
		return
	case "help":
		a.pages.Push(pageHelp)
	case "refresh":
		a.refreshAsync()
	case "export":
		a.export()
	case "analytics":
		a.openAnalytics()
	case "clear":
		a.vm.ClearFilters()
	case "type":
		k, err := records.ParseKind(cmd.Args)
		if err != nil {
			a.vm.Flash.Err(err)
			break
		}
		a.vm.SetKind(k)
	case "status":
		if s := strings.ToLower(strings.TrimSpace(cmd.Args)); s == "" || s == string(records.StatusAll) {
			a.vm.SetStatusFilter(records.StatusAll)
			break
		}
		st, err := records.ParseStatus(cmd.Args)
		if err != nil {
			a.vm.Flash.Err(err)
			break
		}
		a.vm.SetStatusFilter(st)
	case "new":
		k, err := records.ParseKind(cmd.Args)
		if err != nil || k == records.KindAll {
			k = records.KindContact
		}
		a.openAdd(k)
	default:
		a.vm.Flash.Warn("unknown command: " + cmd.Name)
	}
	a.redraw()
}

// redraw pushes view-model state into every widget. Must run on the UI
// goroutine.
func (a *App) redraw() {
	rows := a.vm.Rows()
	a.list.Update(rows, a.vm.Total(), a.vm.Criteria())

	if a.pages.Current() == pageDetail {
		if r, ok := a.vm.Find(a.detail.ID()); ok {
			a.detail.Update(r)
		}
	}
	if a.pages.Current() == pageAnalytics {
		a.analytics.Update(a.vm.Analytics(), a.vm.Stats())
	}

	st := a.vm.Status()
	stats := a.vm.Stats()
	a.info.Update(&ui.ProfileData{
		Profile:      a.opts.Profile,
		Backend:      st.Backend,
		State:        st.State,
		Contacts:     stats.Contacts,
		Appointments: stats.Appointments,
		Pending:      stats.PendingAppointments,
		Uptime:       st.Uptime,
	})
	a.statusBar.SetState(st.State)
	a.statusBar.SetCounts(len(rows), a.vm.Total(), a.vm.FetchedAt())
	a.flashBar.Update(a.vm.Flash.GetMessage())
}

func (a *App) updateMenu() {
	var hints []ui.MenuHint
	if c, ok := a.components[a.pages.Current()]; ok {
		hints = c.Hints()
	}
	hints = append(hints,
		ui.MenuHint{Key: ":", Description: "Command"},
		ui.MenuHint{Key: "?", Description: "Help"},
		ui.MenuHint{Key: "q", Description: "Quit"},
	)
	a.menu.Update(hints)
}

func (a *App) refreshAsync() {
	go func() {
		a.load()
		a.app.QueueUpdateDraw(a.redraw)
	}()
}

func (a *App) load() {
	if err := a.vm.LoadStatus(a.ctx); err != nil {
		a.logger.Warn("daemon status failed", zap.Error(err))
	}
	if err := a.vm.Refresh(a.ctx); err != nil {
		a.logger.Warn("refresh failed", zap.Error(err))
	}
}

// Run starts the TUI application.
func (a *App) Run() error {
	go func() {
		a.load()
		a.app.QueueUpdateDraw(a.redraw)
		a.startRefreshLoop()
		go a.watchEvents()
	}()

	return a.app.Run()
}

func (a *App) startRefreshLoop() {
	refresh := time.NewTicker(a.opts.RefreshInterval)
	clock := time.NewTicker(time.Second)
	go func() {
		defer refresh.Stop()
		defer clock.Stop()
		for {
			select {
			case <-refresh.C:
				a.load()
				a.app.QueueUpdateDraw(a.redraw)
			case <-clock.C:
				// Expire flash messages and tick the clock.
				a.app.QueueUpdateDraw(func() {
					a.flashBar.Update(a.vm.Flash.GetMessage())
					a.statusBar.SetState(a.vm.Status().State)
				})
			case <-a.vm.Flash.Watch():
				a.app.QueueUpdateDraw(func() { a.flashBar.Update(a.vm.Flash.GetMessage()) })
			case <-a.ctx.Done():
				return
			}
		}
	}()
}

// watchEvents re-fetches whenever the daemon reports a record change,
// reconnecting after the stream drops.
func (a *App) watchEvents() {
	for {
		events, err := a.client.Watch(a.ctx)
		if err != nil {
			a.logger.Warn("watch failed", zap.Error(err))
		} else {
			for evt := range events {
				a.logger.Debug("record event", zap.String("kind", evt.Kind), zap.String("id", evt.DocumentID))
				a.load()
				a.app.QueueUpdateDraw(a.redraw)
			}
		}
		select {
		case <-a.ctx.Done():
			return
		case <-time.After(2 * time.Second):
		}
	}
}

// Stop gracefully shuts down the TUI.
func (a *App) Stop() {
	a.cancel()
	a.app.Stop()
}
