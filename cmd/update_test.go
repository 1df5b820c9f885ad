package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/compasshq/compass/internal/selfupdate"
)

func TestUpdateOutcome(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantOut string
		wantErr string
	}{
		{"success", nil, "", ""},
		{"dev build", selfupdate.ErrDevBuild, "development build", ""},
		{"already latest", selfupdate.ErrAlreadyLatest, "latest version", ""},
		{"invalid tag", fmt.Errorf("%w: %q", selfupdate.ErrInvalidTag, "nightly"), "", "--tag v1.4.0"},
		{"permission", fmt.Errorf("apply update: rename: %w", fs.ErrPermission), "", "sudo compass update"},
		{"other", errors.New("boom"), "", "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := updateOutcome(&out, tt.err)
			if tt.wantErr == "" && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != "" && (err == nil || !strings.Contains(err.Error(), tt.wantErr)) {
				t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
			}
			if !strings.Contains(out.String(), tt.wantOut) {
				t.Errorf("output = %q, want containing %q", out.String(), tt.wantOut)
			}
		})
	}
}
