package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	valid := []string{"123", "0", "9876543210"}
	invalid := []string{"abc", "123a", "", "-123"}
	for _, s := range valid {
		if !IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2026-01-01", "2000-12-31"}
	invalid := []string{"2026-13-01", "2026-01-32", "2026/01/01", "01-01-2026", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidMonth(t *testing.T) {
	for _, month := range []int{1, 6, 12} {
		if !IsValidMonth(month) {
			t.Errorf("IsValidMonth(%d) = false, want true", month)
		}
	}
	for _, month := range []int{0, 13, -1} {
		if IsValidMonth(month) {
			t.Errorf("IsValidMonth(%d) = true, want false", month)
		}
	}
}

func TestIsValidYear(t *testing.T) {
	for _, year := range []int{2000, 2026, 2100} {
		if !IsValidYear(year) {
			t.Errorf("IsValidYear(%d) = false, want true", year)
		}
	}
	for _, year := range []int{1999, 2101, 0} {
		if IsValidYear(year) {
			t.Errorf("IsValidYear(%d) = true, want false", year)
		}
	}
}

func TestIsValidEmployeeNo(t *testing.T) {
	valid := []string{"2020-0001", "1999-1234"}
	invalid := []string{"20200001", "2020-001", "2020-00011", "abcd-0001", ""}
	for _, no := range valid {
		if !IsValidEmployeeNo(no) {
			t.Errorf("IsValidEmployeeNo(%q) = false, want true", no)
		}
	}
	for _, no := range invalid {
		if IsValidEmployeeNo(no) {
			t.Errorf("IsValidEmployeeNo(%q) = true, want false", no)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("a", slice) {
		t.Errorf("IsInSlice('a') = false, want true")
	}
	if IsInSlice("d", slice) {
		t.Errorf("IsInSlice('d') = true, want false")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "leave_type", Message: "invalid"},
		{Field: "end_date", Message: "required"},
	}
	got := errs.Error()
	want := "leave_type: invalid; end_date: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "leave_type", Message: "invalid"},
		{Field: "end_date", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"leave_type": "invalid", "end_date": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}
