package models

import "testing"

func TestAttendanceStatusValid(t *testing.T) {
	for _, s := range []AttendanceStatus{AttendancePresent, AttendanceAbsent, AttendanceLate} {
		if !s.Valid() {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	for _, s := range []AttendanceStatus{"", "vacation", "Present"} {
		if s.Valid() {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}

func TestClassDisplayName(t *testing.T) {
	tests := []struct {
		name    string
		class   Class
		display string
	}{
		{name: "with section", class: Class{Name: "Grade 9", Section: "A"}, display: "Grade 9 - A"},
		{name: "without section", class: Class{Name: "Grade 9"}, display: "Grade 9"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.class.DisplayName(); got != tc.display {
				t.Fatalf("expected %q, got %q", tc.display, got)
			}
		})
	}
}

func TestFullName(t *testing.T) {
	teacher := Teacher{Name: "John", Surname: "Smith"}
	if teacher.FullName() != "John Smith" {
		t.Fatalf("unexpected teacher name: %q", teacher.FullName())
	}
	student := Student{Name: "Alice", Surname: "Wilson"}
	if student.FullName() != "Alice Wilson" {
		t.Fatalf("unexpected student name: %q", student.FullName())
	}
	admin := Admin{Name: "System", Surname: "Administrator"}
	if admin.FullName() != "System Administrator" {
		t.Fatalf("unexpected admin name: %q", admin.FullName())
	}
}
