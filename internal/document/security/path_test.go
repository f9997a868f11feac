package security

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewPathValidator(t *testing.T) {
	if _, err := NewPathValidator(""); err == nil {
		t.Error("empty directory must be rejected")
	}
	v, err := NewPathValidator("/some/dir")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Root() != "/some/dir" {
		t.Errorf("Root() = %q", v.Root())
	}
}

func TestValidatePath(t *testing.T) {
	root := t.TempDir()
	v, err := NewPathValidator(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inside := filepath.Join(root, "doc.pdf")
	if err := os.WriteFile(inside, []byte("%PDF-1.4"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"file inside root", inside, false},
		{"root itself", root, false},
		{"nested path inside root", filepath.Join(root, "sub", "doc.pdf"), false},
		{"empty path", "", true},
		{"outside root", "/etc/passwd", true},
		{"parent escape", filepath.Join(root, "..", "escape.pdf"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidatePath(tt.path)
			if tt.wantErr && err == nil {
				t.Errorf("expected error for %q", tt.path)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error for %q: %v", tt.path, err)
			}
		})
	}
}

func TestValidatePath_NonexistentRootAllowsAll(t *testing.T) {
	v, err := NewPathValidator(filepath.Join(t.TempDir(), "not-created-yet"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v.ValidatePath("/anywhere/doc.pdf"); err != nil {
		t.Errorf("validation against a not-yet-created root should pass: %v", err)
	}
}

func TestNormalizePath(t *testing.T) {
	root := t.TempDir()
	v, err := NewPathValidator(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := v.NormalizePath("doc.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Join(root, "doc.pdf")
	if got != want {
		t.Errorf("NormalizePath = %q, want %q", got, want)
	}

	if _, err := v.NormalizePath(""); err == nil {
		t.Error("empty path must be rejected")
	}
	if _, err := v.NormalizePath("../escape.pdf"); err == nil {
		t.Error("escaping relative path must be rejected")
	}
}
