package model

import "testing"

func TestValidRepoFullName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"simple", "octocat/hello-world", true},
		{"dots and underscores", "my-org/repo.name_v2", true},
		{"single char owner", "a/b", true},
		{"missing repo", "octocat", false},
		{"missing owner", "/repo", false},
		{"empty", "", false},
		{"trailing slash", "octocat/", false},
		{"nested path", "octocat/hello/world", false},
		{"leading hyphen owner", "-octocat/repo", false},
		{"spaces", "octo cat/repo", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ValidRepoFullName(tt.input); got != tt.want {
				t.Errorf("ValidRepoFullName(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPlan_IsValid(t *testing.T) {
	t.Parallel()

	if !PlanIndividual.IsValid() || !PlanTeam.IsValid() {
		t.Error("known plans should be valid")
	}
	if Plan("enterprise").IsValid() {
		t.Error("unknown plan should be invalid")
	}
}
