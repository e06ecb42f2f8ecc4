package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zyphh/mindly/internal/analytics"
	"github.com/zyphh/mindly/internal/api"
	"github.com/zyphh/mindly/internal/config"
	"github.com/zyphh/mindly/internal/notify"
)

type view int

const (
	viewLogin view = iota
	viewJournal
)

type focusArea int

const (
	focusText focusArea = iota
	focusDate
	focusList
)

type toastLevel int

const (
	toastSuccess toastLevel = iota
	toastError
)

// toastTTL is how long each toast stays on screen. Every toast runs its
// own timer; several can be visible at once.
const toastTTL = 3 * time.Second

type toast struct {
	id    int
	text  string
	level toastLevel
}

// timeFilters is the fixed set of trend windows the user can cycle through.
var timeFilters = []int{7, 30, 90, 365}

const fallbackPrompt = "What's on your mind today?"

// Model is the whole client: session gate, editor state machine, mutation
// coordinator, visualization projector and toast queue, all driven by the
// Bubble Tea update loop.
type Model struct {
	svc  Service
	sess SessionStore
	cfg  config.Config

	view view

	// login surface
	loginUser  textinput.Model
	loginPass  textinput.Model
	loginFocus int
	loggingIn  bool
	loginErr   string

	// entry editor; editingID == "" means submit creates a new entry
	textArea  textarea.Model
	dateInput textinput.Model
	editingID string
	saving    bool
	prompt    string

	// entries pane
	entries    []api.Entry
	entriesErr bool
	selected   int
	focus      focusArea

	// pending delete confirmation; the host asks before the coordinator acts
	confirmID string

	// visualization projector
	filterDays      int
	snapshot        *analytics.Snapshot
	snapshotDays    int
	snapshotBroken  bool
	loadingSnapshot bool

	streak      int
	insights    []string
	insightsErr bool

	// refreshes of the current cascade still in flight
	pendingRefresh int

	theme     Theme
	saveTheme func(theme string) error

	toasts      []toast
	nextToastID int
	expireToast func(id int) tea.Cmd

	width  int
	height int
	status string
}

// New builds the model. The session gate runs here: with a token present
// the journal view loads, otherwise the program starts on the login
// surface and nothing else initializes.
func New(cfg config.Config, svc Service, sess SessionStore) Model {
	user := textinput.New()
	user.Placeholder = "username"
	user.CharLimit = 64
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.CharLimit = 128
	pass.EchoMode = textinput.EchoPassword

	ta := textarea.New()
	ta.Placeholder = fallbackPrompt
	ta.CharLimit = 4000
	ta.SetHeight(6)
	ta.Focus()

	date := textinput.New()
	date.Placeholder = "YYYY-MM-DD"
	date.CharLimit = 32
	date.SetValue(time.Now().In(cfg.Location()).Format("2006-01-02"))

	m := Model{
		svc:        svc,
		sess:       sess,
		cfg:        cfg,
		view:       viewLogin,
		loginUser:  user,
		loginPass:  pass,
		textArea:   ta,
		dateInput:  date,
		filterDays: cfg.TrendDays,
		prompt:     fallbackPrompt,
		theme:      ThemeFor(cfg.Theme),
		saveTheme:  config.SaveTheme,
		expireToast: func(id int) tea.Cmd {
			return tea.Tick(toastTTL, func(time.Time) tea.Msg { return toastExpiredMsg{id} })
		},
	}

	if sess.Present() {
		m.view = viewJournal
		m.pendingRefresh = 3
		m.loadingSnapshot = true
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.view == viewJournal {
		return m.cascadeCmds()
	}
	return textinput.Blink
}

// pushToast queues a transient message with its own expiry timer. With
// desktop notifications enabled the message is mirrored to the system
// notifier as well.
func (m *Model) pushToast(text string, level toastLevel) tea.Cmd {
	m.nextToastID++
	id := m.nextToastID
	m.toasts = append(m.toasts, toast{id: id, text: text, level: level})
	if m.cfg.Notifications.Enabled {
		if level == toastError {
			_ = notify.Alert(text)
		} else {
			_ = notify.Info("Mindly", text)
		}
	}
	return m.expireToast(id)
}

func (m *Model) dropToast(id int) {
	for i, t := range m.toasts {
		if t.id == id {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			return
		}
	}
}

// beginCascade issues the consistency refreshes that follow a settled
// mutation (and the initial load): entry list, analytics snapshot and
// streak, joined by pendingRefresh. Insights and the writing prompt ride
// along but are not part of the join.
func (m *Model) beginCascade() tea.Cmd {
	m.pendingRefresh = 3
	m.loadingSnapshot = true
	return m.cascadeCmds()
}

func (m Model) cascadeCmds() tea.Cmd {
	return tea.Batch(
		loadEntriesCmd(m.svc),
		loadSnapshotCmd(m.svc, m.filterDays, m.cfg.SummaryWeeks),
		loadStreakCmd(m.svc),
		loadInsightsCmd(m.svc, m.cfg.TrendDays),
		loadPromptCmd(m.svc),
	)
}

func (m *Model) refreshSettled() {
	if m.pendingRefresh == 0 {
		return
	}
	m.pendingRefresh--
	if m.pendingRefresh == 0 {
		m.status = "in sync"
	}
}

// resetEditor returns the form to the idle state: empty text, today's
// date, next submit creates.
func (m *Model) resetEditor() {
	m.textArea.Reset()
	m.dateInput.SetValue(time.Now().In(m.cfg.Location()).Format("2006-01-02"))
	m.editingID = ""
	m.saving = false
}

// endSession forces the login surface. The API client has already
// discarded the token by the time this runs; whatever was in flight is
// ignored from here on.
func (m *Model) endSession() {
	m.view = viewLogin
	m.loggingIn = false
	m.loginErr = ""
	m.loginUser.SetValue("")
	m.loginPass.SetValue("")
	m.loginUser.Focus()
	m.loginPass.Blur()
	m.loginFocus = 0
	m.pendingRefresh = 0
	m.confirmID = ""
	m.saving = false
	m.status = "session ended, log in again"
}

func filterLabel(days int) string {
	if days >= 365 {
		return "1 year"
	}
	return fmt.Sprintf("%d days", days)
}

// Run starts the TUI.
func Run(cfg config.Config, svc Service, sess SessionStore) error {
	p := tea.NewProgram(New(cfg, svc, sess), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
