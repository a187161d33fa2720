package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Team standup", "Team standup"},
		{"leading and trailing space", "  Team standup  ", "Team standup"},
		{"internal runs collapsed", "Team    standup", "Team standup"},
		{"tabs and newlines", "Team\t\nstandup", "Team standup"},
		{"control characters dropped", "Team\x00standup", "Teamstandup"},
		{"empty", "", ""},
		{"whitespace only", " \t\n ", ""},
		{"unicode preserved", "Réunion d'équipe", "Réunion d'équipe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizePurpose(t *testing.T) {
	if got := NormalizePurpose("  quarterly   planning  "); got != "quarterly planning" {
		t.Errorf("NormalizePurpose() = %q, want %q", got, "quarterly planning")
	}
}
