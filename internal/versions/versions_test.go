package versions

import (
	"context"
	"errors"
	"testing"

	"github.com/tweedjs/tweed-cli/internal/filesystem"
	"github.com/tweedjs/tweed-cli/internal/process"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected int
		wantErr  bool
	}{
		{"older patch", "1.0.0", "1.0.1", -1, false},
		{"equal", "6.0.0", "6.0.0", 0, false},
		{"newer major", "v8.9.4", "6.0.0", 1, false},
		{"trailing newline", "v6.11.2\n", "6.0.0", 1, false},
		{"prerelease", "1.0.0-beta", "1.0.0", -1, false},
		{"invalid", "notaversion", "1.0.0", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compare(tt.a, tt.b)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestInstalled(t *testing.T) {
	f := filesystem.Memory()
	_ = f.WriteFile("/p/node_modules/tweed/package.json", `{"name": "tweed", "version": "0.4.2"}`)
	_ = f.WriteFile("/p/node_modules/broken/package.json", `{"name": "broken", "version": "latest"}`)

	v, err := Installed(f, "/p", "tweed")
	if err != nil {
		t.Fatalf("Installed() error: %v", err)
	}
	if v.String() != "0.4.2" {
		t.Errorf("version = %s, want 0.4.2", v)
	}

	if _, err := Installed(f, "/p", "tweed-router"); !errors.Is(err, ErrNotInstalled) {
		t.Errorf("missing package error = %v, want ErrNotInstalled", err)
	}
	if _, err := Installed(f, "/p", "broken"); err == nil {
		t.Error("an invalid version should fail")
	}
}

func TestCheckNode(t *testing.T) {
	tests := []struct {
		name      string
		installed bool
		output    string
		wantErr   bool
	}{
		{name: "supported", installed: true, output: "v8.9.4\n"},
		{name: "minimum", installed: true, output: "v6.0.0\n"},
		{name: "too old", installed: true, output: "v4.8.7\n", wantErr: true},
		{name: "garbage", installed: true, output: "node\n", wantErr: true},
		{name: "missing", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &process.Recorder{
				Installed: map[string]bool{"node": tt.installed},
				Outputs:   map[string]string{"node --version": tt.output},
			}
			err := CheckNode(context.Background(), r)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckNode() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
