package domain

import (
	"testing"
)

func TestParseJobStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    JobStatus
		wantErr bool
	}{
		{"not applied", JobStatusNotApplied, false},
		{"applied", JobStatusApplied, false},
		{"interview", JobStatusInterview, false},
		{"offer", JobStatusOffer, false},
		{"rejected", JobStatusRejected, false},
		{"withdrawn", JobStatusWithdrawn, false},
		{"not-applied", "", true},
		{"", "", true},
		{"APPLIED", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseJobStatus(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseJobStatus(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseJobStatus(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIndustry_IsValid(t *testing.T) {
	if len(Industries) != 20 {
		t.Errorf("Expected 20 industries, got %d", len(Industries))
	}
	if !IndustryRealEstate.IsValid() {
		t.Error("Expected Real Estate to be valid")
	}
	if Industry("Mining").IsValid() {
		t.Error("Expected Mining to be invalid")
	}
}

func TestGoalType_IsValid(t *testing.T) {
	for _, g := range GoalTypes {
		if !g.IsValid() {
			t.Errorf("Expected %s to be valid", g)
		}
	}
	if GoalType("weekly_coffee").IsValid() {
		t.Error("Expected unknown goal type to be invalid")
	}
}

func TestActivityType_IsValid(t *testing.T) {
	if !ActivityTypeStatusChange.IsValid() || !ActivityTypeActivity.IsValid() {
		t.Error("Expected both activity types to be valid")
	}
	if ActivityType("note").IsValid() {
		t.Error("Expected unknown activity type to be invalid")
	}
}

func TestNormalizeKeyword(t *testing.T) {
	tests := map[string]string{
		"Go":            "go",
		"  Kubernetes ": "kubernetes",
		"SQL":           "sql",
		"":              "",
	}
	for input, want := range tests {
		if got := NormalizeKeyword(input); got != want {
			t.Errorf("NormalizeKeyword(%q) = %q, want %q", input, got, want)
		}
	}

	kw := &Keyword{Keyword: " React "}
	kw.Normalize()
	if kw.Keyword != "react" {
		t.Errorf("Expected 'react', got %q", kw.Keyword)
	}

	uk := &UserKeyword{Keyword: "TypeScript"}
	uk.Normalize()
	if uk.Keyword != "typescript" {
		t.Errorf("Expected 'typescript', got %q", uk.Keyword)
	}
}

func TestEmployer_Normalize(t *testing.T) {
	e := &Employer{Name: "  Acme Corp  "}
	e.Normalize()
	if e.Name != "Acme Corp" {
		t.Errorf("Expected 'Acme Corp', got %q", e.Name)
	}
}
