// Package account holds the sign-in and sign-up screens.
package account

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/compasshq/compass/internal/auth"
	"github.com/compasshq/compass/internal/router"
	"github.com/compasshq/compass/internal/screen"
	"github.com/compasshq/compass/internal/services"
	"github.com/compasshq/compass/internal/ui/components"
	"github.com/compasshq/compass/internal/ui/layout"
	"github.com/compasshq/compass/internal/ui/theme"
)

const (
	loginEmail = iota
	loginPassword
)

// authResultMsg carries the outcome of a login or signup attempt.
type authResultMsg struct {
	Account *auth.Account
	Err     error
}

// LoginScreen is the email/password sign-in form.
type LoginScreen struct {
	svc     *services.Services
	form    components.Form
	errMsg  string
	pending bool
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// NewLogin creates the sign-in screen.
func NewLogin(svc *services.Services) *LoginScreen {
	return &LoginScreen{
		svc: svc,
		form: components.NewForm("Sign In",
			components.Field{Label: "Email", Input: components.NewTextInput("you@example.com", false, 254)},
			components.Field{Label: "Password", Input: components.NewPasswordInput("••••••")},
		),
	}
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.form.Init()
}

func (s *LoginScreen) Title() string {
	return "Sign In"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Sign in"},
		{Key: "Ctrl+N", Description: "Create account"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		s.pending = false
		if msg.Err != nil {
			s.errMsg = auth.Message(msg.Err)
			s.form.SetValue(loginPassword, "")
			return s, nil
		}
		s.svc.SignIn(msg.Account)
		return s, func() tea.Msg { return services.SignedInMsg{} }

	case components.SubmitMsg:
		return s, s.submit()

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+n" {
			return s, router.Push(NewSignup(s.svc))
		}
	}

	var cmd tea.Cmd
	s.form, cmd = s.form.Update(msg)
	return s, cmd
}

func (s *LoginScreen) submit() tea.Cmd {
	if s.pending {
		return nil
	}
	s.errMsg = ""
	s.pending = true
	in := auth.LoginInput{
		Email:    s.form.Value(loginEmail),
		Password: s.form.Value(loginPassword),
	}
	authSvc := s.svc.Auth
	return func() tea.Msg {
		acct, err := authSvc.Login(context.Background(), in)
		return authResultMsg{Account: acct, Err: err}
	}
}

func (s *LoginScreen) View(width, height int) string {
	return renderCard(width, height, "Sign in to your account", s.form.View(), s.errMsg, s.pending,
		"New here? Press Ctrl+N to create an account.")
}

// renderCard lays out an auth form in a centered card.
func renderCard(width, height int, heading, form, errMsg string, pending bool, footer string) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(layout.AppName))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(heading))
	b.WriteString("\n\n")
	b.WriteString(form)
	b.WriteString("\n\n")
	switch {
	case pending:
		b.WriteString(theme.Hint.Render("Working..."))
	case errMsg != "":
		b.WriteString(theme.ErrorText.Render(errMsg))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render(footer))

	cardWidth := 56
	if width-4 < cardWidth {
		cardWidth = width - 4
	}
	card := theme.Card.Width(cardWidth).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
