package controller

import (
	"reflect"
	"testing"
)

func TestNormalizeImageURLs(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			"bare URL",
			[]string{"https://example.com/a.jpg"},
			[]string{"https://example.com/a.jpg"},
		},
		{
			"comma-separated with whitespace",
			[]string{"https://example.com/a.jpg , https://example.com/b.jpg"},
			[]string{"https://example.com/a.jpg", "https://example.com/b.jpg"},
		},
		{
			"JSON array",
			[]string{`["https://example.com/a.jpg","/uploads/superheroes/b.webp"]`},
			[]string{"https://example.com/a.jpg", "/uploads/superheroes/b.webp"},
		},
		{
			"multiple form values",
			[]string{"https://example.com/a.jpg", "https://example.com/b.jpg"},
			[]string{"https://example.com/a.jpg", "https://example.com/b.jpg"},
		},
		{
			"malformed entries dropped",
			[]string{"ftp://example.com/a.jpg, not a url, https://example.com/ok.jpg"},
			[]string{"https://example.com/ok.jpg"},
		},
		{
			"path traversal dropped",
			[]string{"/uploads/../etc/passwd"},
			nil,
		},
		{
			"empty input",
			[]string{"", "   "},
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeImageURLs(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("normalizeImageURLs(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidImageURL(t *testing.T) {
	valid := []string{
		"https://example.com/a.jpg",
		"http://example.com/a.jpg",
		"/uploads/superheroes/hero-1-1-0.webp",
	}
	for _, s := range valid {
		if !isValidImageURL(s) {
			t.Errorf("%q should be valid", s)
		}
	}

	invalid := []string{
		"",
		"ftp://example.com/a.jpg",
		"javascript:alert(1)",
		"example.com/a.jpg",
		"https://",
		"/uploads/../secret",
	}
	for _, s := range invalid {
		if isValidImageURL(s) {
			t.Errorf("%q should be rejected", s)
		}
	}
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name           string
		current, total int
		want           []int
	}{
		{"single page", 1, 1, nil},
		{"few pages", 2, 4, []int{1, 2, 3, 4}},
		{"middle of many", 10, 20, []int{1, -1, 8, 9, 10, 11, 12, -1, 20}},
		{"near the start", 2, 20, []int{1, 2, 3, 4, -1, 20}},
		{"near the end", 19, 20, []int{1, -1, 17, 18, 19, 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pageWindow(tt.current, tt.total)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("pageWindow(%d, %d) = %v, want %v", tt.current, tt.total, got, tt.want)
			}
		})
	}
}
