package app

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/compasshq/compass/internal/auth"
	"github.com/compasshq/compass/internal/router"
	"github.com/compasshq/compass/internal/screen"
	"github.com/compasshq/compass/internal/screens/account"
	"github.com/compasshq/compass/internal/screens/dashboard"
	"github.com/compasshq/compass/internal/screens/placeholder"
	"github.com/compasshq/compass/internal/services"
	"github.com/compasshq/compass/internal/store"
)

func newServices(t *testing.T) *services.Services {
	t.Helper()
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "compass.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return &services.Services{
		Auth:      auth.NewService(st.UserRepo(), st.SessionRepo(), auth.Options{BcryptCost: bcrypt.MinCost}),
		History:   st.HistoryRepo(),
		TokenPath: filepath.Join(dir, "session"),
	}
}

func update(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

func TestLanding(t *testing.T) {
	svc := newServices(t)
	m := newAppModel(svc)
	if _, ok := m.landing().(*account.LoginScreen); !ok {
		t.Fatal("signed-out users should land on login")
	}

	acct, err := svc.Auth.Signup(context.Background(), auth.SignupInput{
		Name: "Ada", Email: "ada@example.com", Password: "secret1", ConfirmPassword: "secret1",
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	svc.Account = acct
	if _, ok := m.landing().(*dashboard.DashboardScreen); !ok {
		t.Fatal("signed-in users should land on the dashboard")
	}
}

func TestSignInAndOutResetStack(t *testing.T) {
	svc := newServices(t)
	m := newAppModel(svc)
	m.router.Push(placeholder.New("X", "y"))

	m, _ = update(m, services.SignedInMsg{})
	if m.router.Depth() != 1 {
		t.Fatalf("depth = %d, want 1", m.router.Depth())
	}
	if _, ok := m.router.Active().(*dashboard.DashboardScreen); !ok {
		t.Fatalf("active = %T, want dashboard", m.router.Active())
	}

	m, _ = update(m, services.SignedOutMsg{})
	if _, ok := m.router.Active().(*account.LoginScreen); !ok {
		t.Fatalf("active = %T, want login", m.router.Active())
	}
}

func TestEscapePopsUnlessScreenHandlesIt(t *testing.T) {
	svc := newServices(t)
	m := newAppModel(svc)
	m.router.Push(placeholder.New("X", "y"))

	_, cmd := update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatal("Esc on a plain screen should pop")
	}

	s := &escapeScreen{handles: true}
	m.router.Push(s)
	m, cmd = update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil || !s.got {
		t.Fatal("Esc should reach a screen that handles it")
	}
	if m.router.Depth() != 3 {
		t.Fatalf("depth = %d, want 3", m.router.Depth())
	}
}

type escapeScreen struct {
	handles bool
	got     bool
}

func (s *escapeScreen) Init() tea.Cmd        { return nil }
func (s *escapeScreen) View(int, int) string { return "" }
func (s *escapeScreen) Title() string        { return "Esc" }
func (s *escapeScreen) HandlesEscape() bool  { return s.handles }

func (s *escapeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && k.String() == "esc" {
		s.got = true
	}
	return s, nil
}

func TestEscapeAtRootIsNoop(t *testing.T) {
	m := newAppModel(newServices(t))
	_, cmd := update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Fatal("Esc on the root screen should do nothing")
	}
}

func TestView(t *testing.T) {
	m := newAppModel(newServices(t))
	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if out := m.render(); !strings.Contains(out, "Not signed in") {
		t.Fatalf("header should show the anonymous state:\n%s", out)
	}

	m, _ = update(m, tea.WindowSizeMsg{Width: 40, Height: 10})
	if out := m.render(); !strings.Contains(out, "Terminal too small") {
		t.Fatal("expected the minimum size message")
	}
}
