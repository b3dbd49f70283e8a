package model

import "testing"

func TestItem_DisplayTitle(t *testing.T) {
	tests := []struct {
		name     string
		item     Item
		expected string
	}{
		{"title set", Item{Title: "Woodworking Tricks", URL: "https://youtube.com/shorts/abc"}, "Woodworking Tricks"},
		{"default title falls back to URL", Item{Title: DefaultTitle, URL: "https://youtube.com/shorts/abc"}, "https://youtube.com/shorts/abc"},
		{"url-like title falls back to URL", Item{Title: "https://youtu.be/x", URL: "https://youtube.com/shorts/abc"}, "https://youtube.com/shorts/abc"},
		{"empty everything", Item{}, ""},
	}

	for _, test := range tests {
		result := test.item.DisplayTitle()
		if result != test.expected {
			t.Errorf("%s: DisplayTitle() = %q, expected %q", test.name, result, test.expected)
		}
	}
}
