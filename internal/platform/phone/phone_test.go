package phone

import "testing"

func TestNormalize(t *testing.T) {
	v := NewValidator("KG")

	cases := []struct {
		in   string
		want string
	}{
		{"+996700123456", "+996700123456"},
		{"0700123456", "+996700123456"},
		{"0 700 12 34 56", "+996700123456"},
	}
	for _, tc := range cases {
		got, err := v.Normalize(tc.in)
		if err != nil {
			t.Errorf("Normalize(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeRejects(t *testing.T) {
	v := NewValidator("KG")

	for _, in := range []string{"", "12345", "not-a-number", "+14155550123"} {
		if _, err := v.Normalize(in); err == nil {
			t.Errorf("Normalize(%q) accepted", in)
		}
	}
}
