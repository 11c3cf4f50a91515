package domain

import "testing"

func TestParseLocale(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Locale
	}{
		{name: "uzbek", input: "uz", want: LocaleUz},
		{name: "russian", input: "ru", want: LocaleRu},
		{name: "empty defaults to uzbek", input: "", want: LocaleUz},
		{name: "unknown defaults to uzbek", input: "en", want: LocaleUz},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLocale(tt.input); got != tt.want {
				t.Errorf("ParseLocale(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLocalizedTextGet(t *testing.T) {
	text := LocalizedText{Uz: "Salom", Ru: "Привет"}

	if got := text.Get(LocaleUz); got != "Salom" {
		t.Errorf("Get(LocaleUz) = %q, want %q", got, "Salom")
	}
	if got := text.Get(LocaleRu); got != "Привет" {
		t.Errorf("Get(LocaleRu) = %q, want %q", got, "Привет")
	}
}

func TestLocalizedTextEmpty(t *testing.T) {
	tests := []struct {
		name string
		text LocalizedText
		want bool
	}{
		{name: "both present", text: LocalizedText{Uz: "a", Ru: "b"}, want: false},
		{name: "missing ru", text: LocalizedText{Uz: "a"}, want: true},
		{name: "missing uz", text: LocalizedText{Ru: "b"}, want: true},
		{name: "both missing", text: LocalizedText{}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.text.Empty(); got != tt.want {
				t.Errorf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}
}
