package domain

// Locale identifies one of the two supported site languages.
type Locale string

const (
	LocaleUz Locale = "uz"
	LocaleRu Locale = "ru"
)

// ParseLocale maps a request value to a supported locale, defaulting to Uzbek.
func ParseLocale(s string) Locale {
	if Locale(s) == LocaleRu {
		return LocaleRu
	}
	return LocaleUz
}

// LocalizedText is a value that exists in two parallel copies, one per
// supported language. Lookup is always by enumerated locale, never by
// string field name.
type LocalizedText struct {
	Uz string `json:"uz" bson:"uz"`
	Ru string `json:"ru" bson:"ru"`
}

// Get returns the copy for the given locale.
func (t LocalizedText) Get(l Locale) string {
	if l == LocaleRu {
		return t.Ru
	}
	return t.Uz
}

// Empty reports whether either locale copy is missing.
func (t LocalizedText) Empty() bool {
	return t.Uz == "" || t.Ru == ""
}
