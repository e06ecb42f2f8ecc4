package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zyphh/mindly/internal/analytics"
	"github.com/zyphh/mindly/internal/api"
	"github.com/zyphh/mindly/internal/config"
)

type fakeService struct {
	mu    sync.Mutex
	calls map[string]int

	loginErr   error
	entries    []api.Entry
	entriesErr error
	entryErr   error
	deleteErr  error
	mood       []api.MoodPoint
	dist       api.Distribution
	weekly     []api.WeekSummary
	streakVal  int
	insights   []string
	prompt     string
}

func (f *fakeService) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[name]++
}

func (f *fakeService) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeService) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeService) Login(_ context.Context, _, _ string) (string, error) {
	f.record("Login")
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return "tok-123", nil
}

func (f *fakeService) Entries(context.Context) ([]api.Entry, error) {
	f.record("Entries")
	return f.entries, f.entriesErr
}

func (f *fakeService) Entry(_ context.Context, id string) (api.Entry, error) {
	f.record("Entry")
	if f.entryErr != nil {
		return api.Entry{}, f.entryErr
	}
	for _, e := range f.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return api.Entry{}, api.ErrNotFound
}

func (f *fakeService) CreateEntry(_ context.Context, text string, date time.Time) (api.Entry, error) {
	f.record("CreateEntry")
	return api.Entry{ID: "created", Text: text, Date: date}, nil
}

func (f *fakeService) UpdateEntry(_ context.Context, id, text string, date time.Time) (api.Entry, error) {
	f.record("UpdateEntry")
	return api.Entry{ID: id, Text: text, Date: date}, nil
}

func (f *fakeService) DeleteEntry(_ context.Context, _ string) error {
	f.record("DeleteEntry")
	return f.deleteErr
}

func (f *fakeService) MoodTrends(_ context.Context, _ int) ([]api.MoodPoint, error) {
	f.record("MoodTrends")
	return f.mood, nil
}

func (f *fakeService) SentimentDistribution(_ context.Context, _ int) (api.Distribution, error) {
	f.record("SentimentDistribution")
	return f.dist, nil
}

func (f *fakeService) WeeklySummary(_ context.Context, _ int) ([]api.WeekSummary, error) {
	f.record("WeeklySummary")
	return f.weekly, nil
}

func (f *fakeService) Streak(context.Context) (api.Streak, error) {
	f.record("Streak")
	return api.Streak{Current: f.streakVal}, nil
}

func (f *fakeService) Insights(_ context.Context, _ int) ([]string, error) {
	f.record("Insights")
	return f.insights, nil
}

func (f *fakeService) RandomPrompt(context.Context) (string, error) {
	f.record("RandomPrompt")
	return f.prompt, nil
}

type fakeSession struct {
	present bool
	saved   []string
	clears  int
}

func (s *fakeSession) Present() bool { return s.present }

func (s *fakeSession) Save(token string) error {
	s.saved = append(s.saved, token)
	s.present = true
	return nil
}

func (s *fakeSession) Clear() error {
	s.clears++
	s.present = false
	return nil
}

func testConfig() config.Config {
	return config.Config{
		BaseURL:      "http://test",
		Theme:        "light",
		TrendDays:    30,
		SummaryWeeks: 4,
	}
}

// journalModel returns a model past the session gate, with toast timers
// and theme persistence stubbed out.
func journalModel(svc *fakeService) Model {
	m := New(testConfig(), svc, &fakeSession{present: true})
	m.expireToast = func(int) tea.Cmd { return nil }
	m.saveTheme = func(string) error { return nil }
	return m
}

// runCmd executes a command synchronously, flattening batches.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// settle feeds a command's messages back through Update until the model
// produces no further work.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := runCmd(cmd)
	for guard := 0; len(queue) > 0; guard++ {
		if guard > 100 {
			t.Fatal("model never settled")
		}
		msg := queue[0]
		queue = queue[1:]
		next, c := m.Update(msg)
		m = next.(Model)
		queue = append(queue, runCmd(c)...)
	}
	return m
}

func press(t *testing.T, m Model, key tea.KeyMsg) Model {
	t.Helper()
	next, cmd := m.Update(key)
	return settle(t, next.(Model), cmd)
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func hasToast(m Model, fragment string) bool {
	for _, t := range m.toasts {
		if strings.Contains(t.text, fragment) {
			return true
		}
	}
	return false
}

func TestGateHoldsAtLoginWithoutToken(t *testing.T) {
	svc := &fakeService{}
	m := New(testConfig(), svc, &fakeSession{present: false})

	if m.view != viewLogin {
		t.Fatal("expected login view without a stored token")
	}
	runCmd(m.Init())
	if svc.total() != 0 {
		t.Fatalf("no requests should fire before login, got %d", svc.total())
	}
}

func TestGateOpensJournalWithToken(t *testing.T) {
	svc := &fakeService{streakVal: 4}
	m := journalModel(svc)

	if m.view != viewJournal {
		t.Fatal("expected journal view with a stored token")
	}
	m = settle(t, m, m.Init())

	for _, call := range []string{"Entries", "MoodTrends", "SentimentDistribution", "WeeklySummary", "Streak"} {
		if got := svc.count(call); got != 1 {
			t.Errorf("%s called %d times, want 1", call, got)
		}
	}
	if m.pendingRefresh != 0 {
		t.Errorf("pendingRefresh = %d after settling, want 0", m.pendingRefresh)
	}
	if m.streak != 4 {
		t.Errorf("streak = %d, want 4", m.streak)
	}
}

func TestLoginSavesTokenAndLoadsJournal(t *testing.T) {
	svc := &fakeService{}
	sess := &fakeSession{}
	m := New(testConfig(), svc, sess)
	m.expireToast = func(int) tea.Cmd { return nil }
	m.saveTheme = func(string) error { return nil }

	m.loginUser.SetValue("demo")
	m.loginPass.SetValue("secret")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if len(sess.saved) != 1 || sess.saved[0] != "tok-123" {
		t.Fatalf("saved tokens = %v, want [tok-123]", sess.saved)
	}
	if m.view != viewJournal {
		t.Fatal("expected journal view after login")
	}
	if got := svc.count("Entries"); got != 1 {
		t.Errorf("Entries called %d times after login, want 1", got)
	}
}

func TestLoginRejectionStaysOnLogin(t *testing.T) {
	svc := &fakeService{loginErr: api.ErrAuthFailed}
	m := New(testConfig(), svc, &fakeSession{})
	m.expireToast = func(int) tea.Cmd { return nil }

	m.loginUser.SetValue("demo")
	m.loginPass.SetValue("nope")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.view != viewLogin {
		t.Fatal("expected to stay on login view")
	}
	if !strings.Contains(m.loginErr, "wrong username or password") {
		t.Errorf("loginErr = %q", m.loginErr)
	}
}

func TestSaveCreatesAndRefreshesEverything(t *testing.T) {
	svc := &fakeService{}
	m := journalModel(svc)

	m.textArea.SetValue("Good day")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	if got := svc.count("CreateEntry"); got != 1 {
		t.Fatalf("CreateEntry called %d times, want 1", got)
	}
	for _, call := range []string{"Entries", "MoodTrends", "SentimentDistribution", "WeeklySummary", "Streak"} {
		if got := svc.count(call); got != 1 {
			t.Errorf("%s called %d times after save, want 1", call, got)
		}
	}
	if m.editingID != "" || m.textArea.Value() != "" {
		t.Error("editor should reset to idle after a successful save")
	}
	if !hasToast(m, "saved") {
		t.Error("expected a success toast after saving")
	}
}

func TestBlankSubmitNeverReachesTheNetwork(t *testing.T) {
	svc := &fakeService{}
	m := journalModel(svc)

	m.textArea.SetValue("   \n\t ")
	before := m.dateInput.Value()
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	if svc.total() != 0 {
		t.Fatalf("blank submit made %d requests, want 0", svc.total())
	}
	if m.saving {
		t.Error("saving flag should not be set for a rejected submit")
	}
	if m.dateInput.Value() != before {
		t.Error("form state should be unchanged by a rejected submit")
	}
	if !hasToast(m, "enter some text") {
		t.Error("expected a validation toast")
	}
}

func TestSubmitWhileEditingUpdatesInstead(t *testing.T) {
	svc := &fakeService{}
	m := journalModel(svc)

	loaded := api.Entry{ID: "e1", Text: "old text", Date: time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)}
	next, _ := m.Update(entryLoadedForEditMsg{loaded})
	m = next.(Model)

	if m.editingID != "e1" || m.textArea.Value() != "old text" {
		t.Fatal("edit load should populate the form and set the editing id")
	}

	m.textArea.SetValue("new text")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	if svc.count("UpdateEntry") != 1 || svc.count("CreateEntry") != 0 {
		t.Fatalf("want exactly one update and no create, got update=%d create=%d",
			svc.count("UpdateEntry"), svc.count("CreateEntry"))
	}
	if m.editingID != "" {
		t.Error("editor should return to idle after the update settles")
	}
}

func TestDeleteOfEditedEntryResetsEditorEvenWhenRefreshFails(t *testing.T) {
	svc := &fakeService{entriesErr: errors.New("list backend down")}
	m := journalModel(svc)

	loaded := api.Entry{ID: "e1", Text: "being edited", Date: time.Now()}
	next, _ := m.Update(entryLoadedForEditMsg{loaded})
	m = next.(Model)

	next, cmd := m.Update(entryDeletedMsg{id: "e1"})
	m = next.(Model)

	// the editor must already be idle before any refresh resolves
	if m.editingID != "" || m.textArea.Value() != "" {
		t.Fatal("deleting the edited entry should reset the editor immediately")
	}

	m = settle(t, m, cmd)
	if m.editingID != "" {
		t.Error("failed list refresh must not resurrect the editing state")
	}
	if !m.entriesErr {
		t.Error("expected the entries error flag after a failed refresh")
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	svc := &fakeService{entries: []api.Entry{{ID: "e1", Text: "hello", Date: time.Now()}}}
	m := journalModel(svc)
	m.entries = svc.entries
	m.focus = focusList

	m = press(t, m, keyRune('d'))
	if m.confirmID != "e1" {
		t.Fatalf("confirmID = %q, want e1", m.confirmID)
	}
	if svc.count("DeleteEntry") != 0 {
		t.Fatal("nothing should be deleted before confirmation")
	}

	m = press(t, m, keyRune('n'))
	if m.confirmID != "" || svc.count("DeleteEntry") != 0 {
		t.Fatal("declining should cancel the pending delete")
	}

	m = press(t, m, keyRune('d'))
	m = press(t, m, keyRune('y'))
	if svc.count("DeleteEntry") != 1 {
		t.Fatalf("DeleteEntry called %d times after confirming, want 1", svc.count("DeleteEntry"))
	}
	if !hasToast(m, "deleted") {
		t.Error("expected a delete toast")
	}
}

func TestThemeToggleTouchesNoData(t *testing.T) {
	svc := &fakeService{}
	m := journalModel(svc)
	var saves []string
	m.saveTheme = func(name string) error {
		saves = append(saves, name)
		return nil
	}
	m.focus = focusList

	m = press(t, m, keyRune('t'))

	if m.theme.Name != "dark" {
		t.Fatalf("theme = %q after toggle, want dark", m.theme.Name)
	}
	if len(saves) != 1 || saves[0] != "dark" {
		t.Errorf("persisted themes = %v, want [dark]", saves)
	}
	if svc.total() != 0 {
		t.Errorf("theme toggle made %d requests, want 0", svc.total())
	}

	m = press(t, m, keyRune('t'))
	if m.theme.Name != "light" {
		t.Errorf("theme = %q after second toggle, want light", m.theme.Name)
	}
}

func TestSnapshotLastResolvedWins(t *testing.T) {
	svc := &fakeService{}
	m := journalModel(svc)

	wide := snapshotLoadedMsg{
		snapshot: analytics.Snapshot{
			Mood:         []api.MoodPoint{{Score: 0.5}},
			Distribution: api.Distribution{Positive: 30},
		},
		days: 30,
	}
	narrow := snapshotLoadedMsg{
		snapshot: analytics.Snapshot{
			Mood:         []api.MoodPoint{{Score: -0.5}},
			Distribution: api.Distribution{Negative: 7},
		},
		days: 7,
	}

	next, _ := m.Update(wide)
	m = next.(Model)
	next, _ = m.Update(narrow)
	m = next.(Model)

	if m.snapshotDays != 7 {
		t.Fatalf("snapshotDays = %d, want the last resolved window 7", m.snapshotDays)
	}
	if m.snapshot.Distribution.Positive != 0 || m.snapshot.Distribution.Negative != 7 {
		t.Error("snapshot must be replaced wholesale, never merged across loads")
	}
	if len(m.snapshot.Mood) != 1 || m.snapshot.Mood[0].Score != -0.5 {
		t.Error("mood series should come from the last resolved load")
	}
}

func TestFilterCycleKeepsOldSnapshotWhileLoading(t *testing.T) {
	svc := &fakeService{dist: api.Distribution{Positive: 2}}
	m := journalModel(svc)
	m = settle(t, m, m.Init())
	m.focus = focusList

	if m.filterDays != 30 {
		t.Fatalf("filterDays = %d, want the configured 30", m.filterDays)
	}

	next, cmd := m.Update(keyRune('f'))
	m = next.(Model)
	if m.filterDays != 90 {
		t.Fatalf("filterDays = %d after cycling, want 90", m.filterDays)
	}
	if !m.loadingSnapshot {
		t.Error("loadingSnapshot should be set while the new window resolves")
	}
	if m.snapshot == nil {
		t.Error("the previous snapshot should stay visible while loading")
	}

	m = settle(t, m, cmd)
	if m.loadingSnapshot {
		t.Error("loadingSnapshot should clear once the window resolves")
	}
	if m.snapshotDays != 90 {
		t.Errorf("snapshotDays = %d, want 90", m.snapshotDays)
	}
}

func TestEditOfMissingEntryLeavesFormIdle(t *testing.T) {
	svc := &fakeService{
		entries:  []api.Entry{{ID: "gone", Text: "x", Date: time.Now()}},
		entryErr: api.ErrNotFound,
	}
	m := journalModel(svc)
	m.entries = svc.entries
	m.focus = focusList

	m = press(t, m, keyRune('e'))

	if m.editingID != "" {
		t.Fatal("a failed edit load must not enter the editing state")
	}
	if m.textArea.Value() != "" {
		t.Error("a failed edit load must not populate the form")
	}
	if !hasToast(m, "no longer exists") {
		t.Error("expected a not-found toast")
	}
}

func TestAuthFailureForcesLogin(t *testing.T) {
	svc := &fakeService{}
	m := journalModel(svc)
	m = settle(t, m, m.Init())

	next, _ := m.Update(entriesLoadErrMsg{api.ErrAuthFailed})
	m = next.(Model)

	if m.view != viewLogin {
		t.Fatal("an auth failure must return to the login surface")
	}
	if m.pendingRefresh != 0 {
		t.Error("pending refreshes should be abandoned when the session ends")
	}
	if hasToast(m, "Couldn't refresh") {
		t.Error("auth failures are not surfaced as toasts")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	svc := &fakeService{}
	sess := &fakeSession{present: true}
	m := New(testConfig(), svc, sess)
	m.expireToast = func(int) tea.Cmd { return nil }
	m.saveTheme = func(string) error { return nil }

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})

	if sess.clears != 1 {
		t.Fatalf("Clear called %d times, want 1", sess.clears)
	}
	if m.view != viewLogin {
		t.Fatal("expected login view after logout")
	}
}

func TestToastsExpireIndividually(t *testing.T) {
	svc := &fakeService{}
	m := journalModel(svc)
	m.expireToast = func(id int) tea.Cmd {
		return func() tea.Msg { return toastExpiredMsg{id} }
	}

	m.textArea.SetValue(" ")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	if len(m.toasts) != 0 {
		t.Fatalf("%d toasts left after expiry, want 0", len(m.toasts))
	}
}

func TestPromptFallsBackWhenUnavailable(t *testing.T) {
	svc := &fakeService{prompt: ""}
	m := journalModel(svc)
	m = settle(t, m, m.Init())

	if m.prompt != fallbackPrompt {
		t.Errorf("prompt = %q, want the fallback", m.prompt)
	}
}
