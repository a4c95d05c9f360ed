package render

import "testing"

func TestFormatDate(t *testing.T) {
	cases := []struct {
		name   string
		input  any
		format any
		want   string
	}{
		{"day first", "2025-01-10", "DD-MM-YYYY", "10-01-2025"},
		{"month first", "2025-01-10", "MM-DD-YYYY", "01-10-2025"},
		{"no format", "2025-01-10", nil, "2025-01-10"},
		{"empty", "", "DD-MM-YYYY", ""},
		{"missing", nil, "DD-MM-YYYY", ""},
		{"not iso", "10/01/2025", "DD-MM-YYYY", "10/01/2025"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FormatDate(tc.input, tc.format)
			if err != nil {
				t.Fatalf("format: %v", err)
			}
			if got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}
