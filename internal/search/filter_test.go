package search

import "testing"

func TestFilterAllow(t *testing.T) {
	cases := []struct {
		name    string
		include []string
		exclude []string
		path    string
		allow   bool
	}{
		{"no rules", nil, nil, "dir/any.bin", true},
		{"include hit", []string{"*.log"}, nil, "var/app.log", true},
		{"include miss", []string{"*.log"}, nil, "var/app.txt", false},
		{"second include", []string{"*.log", "*.md"}, nil, "README.md", true},
		{"include optional char", []string{"data?.csv"}, nil, "data.csv", true},
		{"exclude hit", nil, []string{"*.{gz,zip}"}, "backup/old.zip", false},
		{"exclude miss", nil, []string{"*.{gz,zip}"}, "backup/old.tar", true},
		{"exclude class", nil, []string{"part[0-9]"}, "part7", false},
		{"exclude beats include", []string{"*.log"}, []string{"debug*"}, "logs/debug.log", false},
		{"base name only", []string{"src*"}, nil, "src/main.go", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := NewFilter(tc.include, tc.exclude)
			if err != nil {
				t.Fatalf("NewFilter failed: %v", err)
			}
			if got := f.Allow(tc.path); got != tc.allow {
				t.Errorf("Allow(%q) = %v, expected %v", tc.path, got, tc.allow)
			}
		})
	}
}

func TestNewFilterBadExclude(t *testing.T) {
	if _, err := NewFilter(nil, []string{"[unclosed"}); err == nil {
		t.Error("Expected an error for an unclosed class")
	}
}
