package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/compasshq/compass/internal/auth"
	"github.com/compasshq/compass/internal/store"
)

func TestSignInResumeSignOut(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "compass.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()
	ctx := context.Background()

	authSvc := auth.NewService(st.UserRepo(), st.SessionRepo(), auth.Options{BcryptCost: bcrypt.MinCost})
	acct, err := authSvc.Signup(ctx, auth.SignupInput{Name: "Ada", Email: "ada@example.com", Password: "secret1", ConfirmPassword: "secret1"})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	tokenPath := filepath.Join(dir, "session")
	svc := &Services{Auth: authSvc, TokenPath: tokenPath}
	svc.SignIn(acct)
	if svc.UserName() != "Ada" || svc.UserID() != acct.User.ID {
		t.Fatalf("signed-in user = %q/%d", svc.UserName(), svc.UserID())
	}

	restarted := &Services{Auth: authSvc, TokenPath: tokenPath}
	restarted.Resume(ctx)
	if restarted.Account == nil || restarted.Account.User.Email != "ada@example.com" {
		t.Fatalf("Resume did not restore the account: %+v", restarted.Account)
	}

	restarted.SignOut(ctx)
	if restarted.Account != nil {
		t.Fatal("SignOut should clear the account")
	}
	if tok, _ := auth.LoadToken(tokenPath); tok != "" {
		t.Fatalf("token file should be cleared, got %q", tok)
	}

	again := &Services{Auth: authSvc, TokenPath: tokenPath}
	again.Resume(ctx)
	if again.Account != nil {
		t.Fatal("revoked session must not resume")
	}
}

func TestZeroValue(t *testing.T) {
	var s Services
	if s.UserID() != 0 || s.UserName() != "" || s.Log() == nil {
		t.Fatal("zero Services should be usable")
	}
	s.Resume(context.Background())
	s.SignOut(context.Background())
}

type brokenSessions struct {
	store.SessionRepo
}

func (brokenSessions) ByToken(context.Context, string) (*store.Session, error) {
	return nil, errors.New("database is locked")
}

func TestResume_KeepsTokenOnTransientError(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "compass.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()
	ctx := context.Background()

	tokenPath := filepath.Join(dir, "session")
	if err := auth.SaveToken(tokenPath, "remembered"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}

	broken := auth.NewService(st.UserRepo(), brokenSessions{st.SessionRepo()}, auth.Options{})
	svc := &Services{Auth: broken, TokenPath: tokenPath}
	svc.Resume(ctx)
	if svc.Account != nil {
		t.Fatal("Resume should fail")
	}
	if tok, _ := auth.LoadToken(tokenPath); tok != "remembered" {
		t.Fatalf("token should survive a transient failure, got %q", tok)
	}

	healthy := auth.NewService(st.UserRepo(), st.SessionRepo(), auth.Options{})
	svc = &Services{Auth: healthy, TokenPath: tokenPath}
	svc.Resume(ctx)
	if tok, _ := auth.LoadToken(tokenPath); tok != "" {
		t.Fatalf("unknown token should be forgotten, got %q", tok)
	}
}
