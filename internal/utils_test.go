package internal

import (
	"regexp"
	"testing"
)

func TestHashText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty string",
			input: "",
			want:  "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:  "abc",
			input: "abc",
			want:  "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HashText(tt.input); got != tt.want {
				t.Errorf("HashText(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestHashText_Deterministic(t *testing.T) {
	input := "system: translate\nuser: Language: 'French'\n"
	if HashText(input) != HashText(input) {
		t.Error("HashText is not deterministic")
	}
	if HashText(input) == HashText(input+" ") {
		t.Error("Different inputs produced the same digest")
	}
}

func TestHashText_FilesystemSafe(t *testing.T) {
	safe := regexp.MustCompile(`^[0-9a-f]{64}$`)
	for _, input := range []string{"", "ябълка", "a/b\\c:d", "```xml```"} {
		if got := HashText(input); !safe.MatchString(got) {
			t.Errorf("HashText(%q) = %q is not a 64 char hex string", input, got)
		}
	}
}
