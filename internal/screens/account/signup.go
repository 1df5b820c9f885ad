package account

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/compasshq/compass/internal/auth"
	"github.com/compasshq/compass/internal/screen"
	"github.com/compasshq/compass/internal/services"
	"github.com/compasshq/compass/internal/ui/components"
	"github.com/compasshq/compass/internal/ui/layout"
)

const (
	signupName = iota
	signupEmail
	signupPassword
	signupConfirm
)

// SignupScreen is the account creation form.
type SignupScreen struct {
	svc     *services.Services
	form    components.Form
	errMsg  string
	pending bool
}

var _ screen.Screen = (*SignupScreen)(nil)
var _ screen.KeyHintProvider = (*SignupScreen)(nil)

// NewSignup creates the sign-up screen.
func NewSignup(svc *services.Services) *SignupScreen {
	return &SignupScreen{
		svc: svc,
		form: components.NewForm("Create Account",
			components.Field{Label: "Name", Input: components.NewTextInput("Your name", false, 100)},
			components.Field{Label: "Email", Input: components.NewTextInput("you@example.com", false, 254)},
			components.Field{Label: "Password", Input: components.NewPasswordInput("At least 6 characters")},
			components.Field{Label: "Confirm Password", Input: components.NewPasswordInput("Repeat password")},
		),
	}
}

func (s *SignupScreen) Init() tea.Cmd {
	return s.form.Init()
}

func (s *SignupScreen) Title() string {
	return "Create Account"
}

func (s *SignupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Sign up"},
		{Key: "Esc", Description: "Back to sign in"},
	}
}

func (s *SignupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		s.pending = false
		if msg.Err != nil {
			s.errMsg = auth.Message(msg.Err)
			return s, nil
		}
		s.svc.SignIn(msg.Account)
		return s, func() tea.Msg { return services.SignedInMsg{} }

	case components.SubmitMsg:
		return s, s.submit()
	}

	var cmd tea.Cmd
	s.form, cmd = s.form.Update(msg)
	return s, cmd
}

func (s *SignupScreen) submit() tea.Cmd {
	if s.pending {
		return nil
	}
	s.errMsg = ""
	s.pending = true
	in := auth.SignupInput{
		Name:            s.form.Value(signupName),
		Email:           s.form.Value(signupEmail),
		Password:        s.form.Value(signupPassword),
		ConfirmPassword: s.form.Value(signupConfirm),
	}
	authSvc := s.svc.Auth
	return func() tea.Msg {
		acct, err := authSvc.Signup(context.Background(), in)
		return authResultMsg{Account: acct, Err: err}
	}
}

func (s *SignupScreen) View(width, height int) string {
	return renderCard(width, height, "Create your account", s.form.View(), s.errMsg, s.pending,
		"Already have an account? Press Esc to sign in.")
}
