package utils

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "plain date",
			input: "2024-03-15",
			want:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "surrounding whitespace",
			input: "  2024-03-15 ",
			want:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "datetime rejected",
			input:   "2024-03-15T10:00:00Z",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDate(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestParseMonth(t *testing.T) {
	year, month, err := ParseMonth("2024-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if year != 2024 || month != time.February {
		t.Fatalf("expected 2024 February, got %d %v", year, month)
	}

	if _, _, err := ParseMonth("2024-13"); err == nil {
		t.Fatalf("expected error for month 13")
	}
	if _, _, err := ParseMonth("February"); err == nil {
		t.Fatalf("expected error for unparseable month")
	}
}

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds(2024, time.January)
	if !start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start: %v", start)
	}
	if !end.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected end: %v", end)
	}

	// December rolls into the next year
	start, end = MonthBounds(2024, time.December)
	if !end.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected end in 2025, got %v", end)
	}
	if !start.Before(end) {
		t.Fatalf("start %v not before end %v", start, end)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("password stored in plain text")
	}
	if err := CheckPassword("secret123", hash); err != nil {
		t.Fatalf("correct password rejected: %v", err)
	}
	if err := CheckPassword("wrong", hash); err == nil {
		t.Fatal("wrong password accepted")
	}
}

func TestIsValidRole(t *testing.T) {
	for _, role := range []string{RoleAdmin, RoleTeacher, RoleStudent} {
		if !IsValidRole(role) {
			t.Fatalf("expected %q to be valid", role)
		}
	}
	for _, role := range []string{"", "owner", "Admin"} {
		if IsValidRole(role) {
			t.Fatalf("expected %q to be invalid", role)
		}
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hello\x00world  "); got != "helloworld" {
		t.Fatalf("unexpected result: %q", got)
	}
}
