package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/five82/qbtui/internal/logtail"
	"github.com/five82/qbtui/internal/prefs"
	"github.com/five82/qbtui/internal/session"
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	State      *session.State
	Dispatcher *session.Dispatcher
	Logger     zerolog.Logger
	ThemeName  string
	PrefsPath  string
	LogPath    string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	st        *session.State
	disp      *session.Dispatcher
	log       zerolog.Logger
	prefsPath string
	logPath   string

	// Input
	keys  session.KeyMap
	local keyMap

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool

	spinner  spinner.Model
	help     help.Model
	progress progress.Model

	// A remote call is in flight. Keys that arrive meanwhile wait in
	// deferred and are replayed in order once the chain finishes.
	pending  bool
	deferred []tea.KeyMsg
	chain    session.Chain

	// Overlays
	showHelp   bool
	showLogs   bool
	logEntries []logtail.Entry
	logErr     error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}
	theme := GetTheme(themeName)

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))

	return Model{
		ctx:       ctx,
		st:        opts.State,
		disp:      opts.Dispatcher,
		log:       opts.Logger,
		prefsPath: opts.PrefsPath,
		logPath:   opts.LogPath,
		keys:      session.DefaultKeyMap(),
		local:     defaultKeyMap(),
		theme:     theme,
		spinner:   sp,
		help:      help.New(),
		progress:  newProgress(theme),
	}
}

func newProgress(theme Theme) progress.Model {
	return progress.New(
		progress.WithSolidFill(theme.Accent),
		progress.WithoutPercentage(),
	)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	// A first run starts in the config editor; saving it refreshes.
	if m.st != nil && m.st.Mode == session.ModeNormal {
		cmds = append(cmds, dispatchCmd(session.RefreshTorrents))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.pending {
			// ctrl+c never waits on the request in flight.
			if key.Matches(msg, m.keys.ForceQuit) {
				m.disp.Dispatch(m.st, session.Quit)
				m.deferred = nil
				return m, tea.Quit
			}
			m.deferred = append(m.deferred, msg)
			return m, nil
		}
		m, cmd := m.handleKey(msg)
		return m.settle(cmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tickMsg:
		return m, tickCmd()

	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case dispatchMsg:
		if m.pending {
			return m, nil
		}
		m.chain = session.Chain{}
		call := m.disp.Run(m.st, &m.chain, session.Message(msg))
		m, cmd := m.follow(call)
		return m.settle(cmd)

	case resultMsg:
		if !m.pending {
			return m, nil
		}
		m.pending = false
		call := m.disp.Resume(m.st, &m.chain, session.Result(msg))
		m, cmd := m.follow(call)
		return m.settle(cmd)

	case logsMsg:
		m.logEntries = msg.entries
		m.logErr = msg.err
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready || m.st == nil {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showLogs {
		return m.renderLogs()
	}
	return m.renderMain()
}

// handleKey processes a key press that is not deferred.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help.
		m.showHelp = false
		return m, nil
	}
	if m.showLogs {
		if key.Matches(msg, m.local.Close) {
			m.showLogs = false
		}
		return m, nil
	}

	if m.st.Mode == session.ModeNormal && !m.st.InfoOpen {
		switch {
		case key.Matches(msg, m.local.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, m.local.CycleTheme):
			m.cycleTheme()
			return m, nil
		case key.Matches(msg, m.local.Logs):
			m.showLogs = true
			return m, loadLogsCmd(m.logPath)
		}
	}

	m.chain = session.Chain{}
	call := m.disp.Run(m.st, &m.chain, m.keys.Handle(m.st, msg))
	return m.follow(call)
}

// follow starts call when the chain is waiting on one, and quits once the
// chain has stopped the session.
func (m Model) follow(call session.Call) (Model, tea.Cmd) {
	if call != nil {
		m.pending = true
		return m, tea.Batch(callCmd(m.ctx, call), m.spinner.Tick)
	}
	if !m.st.Running {
		return m, tea.Quit
	}
	return m, nil
}

// settle replays deferred keys once nothing is pending.
func (m Model) settle(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	for !m.pending && m.st.Running && len(m.deferred) > 0 {
		next := m.deferred[0]
		m.deferred = m.deferred[1:]
		var c tea.Cmd
		m, c = m.handleKey(next)
		if c != nil {
			cmds = append(cmds, c)
		}
	}
	if !m.st.Running {
		m.deferred = nil
	}
	switch len(cmds) {
	case 0:
		return m, nil
	case 1:
		return m, cmds[0]
	default:
		return m, tea.Batch(cmds...)
	}
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.progress = newProgress(m.theme)
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
		m.log.Error().Err(err).Str("path", m.prefsPath).Msg("save prefs")
		m.st.SetNotice(session.NoticeError, err.Error())
	}
}

// renderMain renders the header, the torrent table with any popup over it,
// and the footer.
func (m Model) renderMain() string {
	header := m.renderHeader()
	footer := m.renderFooter()
	contentHeight := maxInt(1, m.height-lipgloss.Height(header)-lipgloss.Height(footer))

	var content string
	switch {
	case m.st.ConfigEditorOpen():
		content = m.placePopup(m.renderConfigPopup(), contentHeight)
	case m.st.AddTorrentOpen():
		content = m.placePopup(m.renderAddPopup(), contentHeight)
	case m.st.InfoOpen:
		content = m.placePopup(m.renderInfoPopup(contentHeight-2), contentHeight)
	default:
		content = m.renderTable(contentHeight)
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(content)
	b.WriteString("\n")
	b.WriteString(footer)
	return b.String()
}

func (m Model) placePopup(popup string, height int) string {
	return lipgloss.Place(
		m.width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		popup,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

// Messages

type tickMsg time.Time

type dispatchMsg session.Message

type resultMsg session.Result

type logsMsg struct {
	entries []logtail.Entry
	err     error
}

// Commands

func tickCmd() tea.Cmd {
	return tea.Tick(RedrawInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func dispatchCmd(msg session.Message) tea.Cmd {
	return func() tea.Msg {
		return dispatchMsg(msg)
	}
}

func callCmd(ctx context.Context, call session.Call) tea.Cmd {
	return func() tea.Msg {
		return resultMsg(call(ctx))
	}
}

func loadLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return logsMsg{}
		}
		entries, err := logtail.Read(path, LogOverlayLines)
		return logsMsg{entries: entries, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until it exits. Cancelling
// the context ends the program without error.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	opts.Context = ctx

	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
