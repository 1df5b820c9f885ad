package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(code rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: code} }

func TestForm_FocusCyclesThroughButton(t *testing.T) {
	f := NewForm("Sign In",
		Field{Label: "Email", Input: NewTextInput("you@example.com", false, 0)},
		Field{Label: "Password", Input: NewPasswordInput("password")},
	)
	if f.Focus != 0 {
		t.Fatalf("initial focus = %d", f.Focus)
	}

	f, _ = f.Update(key(tea.KeyTab))
	f, _ = f.Update(key(tea.KeyTab))
	if f.Focus != 2 {
		t.Fatalf("focus after two tabs = %d, want button (2)", f.Focus)
	}
	f, _ = f.Update(key(tea.KeyTab))
	if f.Focus != 0 {
		t.Fatalf("focus should wrap to 0, got %d", f.Focus)
	}
	f, _ = f.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if f.Focus != 2 {
		t.Fatalf("shift+tab should wrap to button, got %d", f.Focus)
	}
}

func TestForm_EnterAdvancesThenSubmits(t *testing.T) {
	f := NewForm("Go",
		Field{Label: "A", Input: NewTextInput("", false, 0)},
		Field{Label: "B", Input: NewTextInput("", false, 0)},
	)
	f.SetValue(0, "alpha")

	f, cmd := f.Update(key(tea.KeyEnter))
	if f.Focus != 1 {
		t.Fatalf("enter on first field should move focus, got %d", f.Focus)
	}
	if cmd != nil {
		if _, ok := cmd().(SubmitMsg); ok {
			t.Fatal("enter on first field must not submit")
		}
	}

	_, cmd = f.Update(key(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected submit command")
	}
	if _, ok := cmd().(SubmitMsg); !ok {
		t.Fatal("expected SubmitMsg")
	}
	if f.Value(0) != "alpha" {
		t.Fatalf("Value(0) = %q", f.Value(0))
	}
	if !strings.Contains(f.View(), "Go") {
		t.Fatal("view should render the submit label")
	}
}

func TestMultiChoice_ChooseByKey(t *testing.T) {
	m := NewMultiChoice("Pick one", []string{"a", "b", "c", "d"}, NoChoice)

	m, _ = m.Update(key(tea.KeyDown))
	m, cmd := m.Update(key(tea.KeyEnter))
	if m.Chosen != 1 {
		t.Fatalf("Chosen = %d, want 1", m.Chosen)
	}
	if msg, ok := cmd().(ChoiceMsg); !ok || msg.Index != 1 {
		t.Fatalf("expected ChoiceMsg{1}, got %#v", cmd())
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: '4', Text: "4"})
	if m.Chosen != 3 || m.Cursor != 3 {
		t.Fatalf("digit shortcut: Chosen %d Cursor %d", m.Chosen, m.Cursor)
	}

	m.Reveal = true
	m, cmd = m.Update(key(tea.KeyUp))
	if cmd != nil || m.Cursor != 3 {
		t.Fatal("revealed choice must ignore keys")
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	pressed := ""
	m := NewMenu([]MenuItem{
		{Label: "Soon", Disabled: true},
		{Label: "Quiz", Action: func() tea.Cmd { pressed = "quiz"; return nil }},
		{Label: "Also soon", Disabled: true},
		{Label: "Guide", Action: func() tea.Cmd { pressed = "guide"; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d", m.Selected)
	}
	m, _ = m.Update(key(tea.KeyDown))
	if m.Selected != 3 {
		t.Fatalf("down should skip disabled, got %d", m.Selected)
	}
	m.Update(key(tea.KeyEnter))
	if pressed != "guide" {
		t.Fatalf("pressed = %q", pressed)
	}
}

func TestProgressBarClamps(t *testing.T) {
	out := NewProgressBar("", 1.5, true, 20).View()
	if !strings.Contains(out, "150%") {
		t.Fatalf("percent label missing: %q", out)
	}
}

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown("## Next steps\n\n- Volunteer", 60)
	if !strings.Contains(out, "Next") || !strings.Contains(out, "Volunteer") {
		t.Fatalf("rendered markdown lost text: %q", out)
	}
}
