package utils

import (
	"errors"
	"testing"
	"time"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"first.last@sub.example.org", true},
		{"user@localhost", false},
		{"no-at-sign.com", false},
		{"Name <user@example.com>", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidEmail(tt.email); got != tt.want {
			t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name            string
		email, pw, conf string
		want            error
	}{
		{"ok", "a@example.com", "Str0ng!pass", "Str0ng!pass", nil},
		{"bad email", "a@", "Str0ng!pass", "Str0ng!pass", ErrInvalidEmail},
		{"weak password", "a@example.com", "password", "password", ErrWeakPassword},
		{"mismatch", "a@example.com", "Str0ng!pass", "Str0ng!pasS", ErrPasswordsDiffer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateRegistration(tt.email, tt.pw, tt.conf); !errors.Is(err, tt.want) {
				t.Fatalf("ValidateRegistration = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateGoal(t *testing.T) {
	if err := ValidateGoal("Run 5k", 3); err != nil {
		t.Fatalf("ValidateGoal(valid) = %v", err)
	}
	if err := ValidateGoal("   ", 3); !errors.Is(err, ErrInvalidTitle) {
		t.Errorf("blank title: got %v", err)
	}
	if err := ValidateGoal("Read", 0); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("zero target: got %v", err)
	}
	if err := ValidateGoal("Read", 8); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("eight target: got %v", err)
	}
}

func TestWeekStart(t *testing.T) {
	monday := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		day  time.Time
		want time.Time
	}{
		{monday, monday},
		{monday.AddDate(0, 0, 3), monday},
		{monday.AddDate(0, 0, 6), monday},
		{monday.AddDate(0, 0, 7), monday.AddDate(0, 0, 7)},
		{monday.AddDate(0, 0, -1), monday.AddDate(0, 0, -7)},
	}
	for _, tt := range tests {
		if got := WeekStart(tt.day); !got.Equal(tt.want) {
			t.Errorf("WeekStart(%s) = %s, want %s", tt.day.Format(DayLayout), got.Format(DayLayout), tt.want.Format(DayLayout))
		}
	}

	days := WeekDays(monday)
	if len(days) != 7 || days[6].Weekday() != time.Sunday {
		t.Fatalf("WeekDays returned %v", days)
	}
}

func TestDay_UsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 20:00 UTC on the 19th is already the 20th in Tokyo.
	instant := time.Date(2026, 10, 19, 20, 0, 0, 0, time.UTC)

	if got := Day(instant, time.UTC); got.Day() != 19 {
		t.Errorf("Day in UTC = %s", got)
	}
	got := Day(instant, tokyo)
	if got.Day() != 20 || got.Location() != time.UTC || got.Hour() != 0 {
		t.Errorf("Day in Tokyo = %s, want 2026-10-20 00:00 UTC", got)
	}
}

func TestParseDay(t *testing.T) {
	fallback := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	got, err := ParseDay("", fallback)
	if err != nil || !got.Equal(fallback) {
		t.Fatalf("ParseDay(\"\") = %v, %v", got, err)
	}
	got, err = ParseDay("2026-03-04", fallback)
	if err != nil || got.Month() != time.March || got.Day() != 4 {
		t.Fatalf("ParseDay(2026-03-04) = %v, %v", got, err)
	}
	if _, err := ParseDay("03/04/2026", fallback); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
}

func TestGenerateSecureToken(t *testing.T) {
	a, err := GenerateSecureToken(32)
	if err != nil {
		t.Fatalf("GenerateSecureToken: %v", err)
	}
	b, _ := GenerateSecureToken(32)
	if a == b || len(a) == 0 {
		t.Fatalf("tokens should be random and non-empty: %q %q", a, b)
	}
	if _, err := GenerateSecureToken(0); err == nil {
		t.Fatal("expected error for zero length")
	}
}
