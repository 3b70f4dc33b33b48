package model

import (
	"testing"
)

func TestGetArchivePathToSystem(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "sys1", want: "systems/sys1/system.txt"},
		{name: "with-hyphen", want: "systems/with-hyphen/system.txt"},
	}
	for _, tts := range tests {
		tt := tts
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := GetArchivePathToSystem(tt.name); got != tt.want {
				t.Errorf("GetArchivePathToSystem() = %v, want %v", got, tt.want)
			}
			name, ok := GetSystemNameFromArchivePath(tt.want)
			if !ok || name != tt.name {
				t.Errorf("GetSystemNameFromArchivePath() = %v, %v, want %v", name, ok, tt.name)
			}
		})
	}
}

func TestGetSystemNameFromArchivePath(t *testing.T) {
	for _, key := range []string{
		"systems/a/other.txt",
		"systems//system.txt",
		"repos/a/system.txt",
		"systems/a/b/system.txt",
		"system.txt",
	} {
		if name, ok := GetSystemNameFromArchivePath(key); ok {
			t.Errorf("expected %q not to be a system document, got %q", key, name)
		}
	}
}

func TestValidateSystemName(t *testing.T) {
	if err := ValidateSystemName("prod"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, name := range []string{"", "a/b", `a\b`, "a;b"} {
		if err := ValidateSystemName(name); err == nil {
			t.Errorf("expected %q to be rejected", name)
		}
	}
}
