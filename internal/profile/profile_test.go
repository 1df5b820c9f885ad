package profile

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/compasshq/compass/internal/store"
)

func TestJSON(t *testing.T) {
	got, err := Profile{Skills: " Go ", Education: "BSc"}.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(got), &m); err != nil {
		t.Fatalf("not JSON: %q", got)
	}
	if m["skills"] != "Go" || m["education"] != "BSc" {
		t.Fatalf("decoded = %v", m)
	}
	if _, ok := m["experience"]; ok {
		t.Fatal("empty fields should be omitted")
	}

	empty, err := Profile{Interests: "  "}.JSON()
	if err != nil || empty != "" {
		t.Fatalf("empty profile JSON = %q, %v", empty, err)
	}
}

func TestService_SaveAndGet(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "compass.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()
	ctx := context.Background()

	u := &store.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "x"}
	if err := st.UserRepo().Create(ctx, u); err != nil {
		t.Fatalf("create user: %v", err)
	}

	svc := NewService(st.ProfileRepo())
	p, err := svc.Get(ctx, u.ID)
	if err != nil || !p.Empty() {
		t.Fatalf("Get before save = %+v, %v", p, err)
	}

	if err := svc.Save(ctx, u.ID, Profile{Skills: "Go", Experience: "2 years "}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := svc.Save(ctx, u.ID, Profile{Skills: "Go, Rust", Experience: "3 years"}); err != nil {
		t.Fatalf("Save again: %v", err)
	}

	p, err = svc.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p != (Profile{Skills: "Go, Rust", Experience: "3 years"}) {
		t.Fatalf("Get = %+v", p)
	}
}
