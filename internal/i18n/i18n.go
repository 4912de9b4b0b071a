// Package i18n provides translations for the public site. Catalogs are
// embedded JSON files, one per locale.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/language"
)

//go:embed locales
var localesFS embed.FS

// SupportedLocales lists the site languages, Russian first as the default.
var SupportedLocales = []string{"ru", "en", "be"}

// DefaultLocale is served when nothing else matches.
const DefaultLocale = "ru"

// Message represents a single translatable message.
type Message struct {
	ID          string `json:"id"`
	Message     string `json:"message"`
	Translation string `json:"translation"`
}

// MessageFile represents the structure of a messages JSON file.
type MessageFile struct {
	Language string    `json:"language"`
	Messages []Message `json:"messages"`
}

// Translator holds the loaded catalogs for all supported locales. It is
// built once at startup and read-only afterwards.
type Translator struct {
	translations map[string]map[string]string // locale -> key -> translation
	matcher      language.Matcher
	supported    []language.Tag
	defaultLang  string
}

// New loads all embedded catalogs and builds the locale matcher.
func New() (*Translator, error) {
	tr := &Translator{
		translations: make(map[string]map[string]string),
		defaultLang:  DefaultLocale,
	}

	tags := make([]language.Tag, 0, len(SupportedLocales))
	for _, locale := range SupportedLocales {
		tags = append(tags, language.MustParse(locale))
	}
	tr.supported = tags
	tr.matcher = language.NewMatcher(tags)

	for _, locale := range SupportedLocales {
		if err := tr.loadLocale(locale); err != nil {
			return nil, fmt.Errorf("failed to load locale %s: %w", locale, err)
		}
	}

	slog.Info("i18n initialized", "locales", SupportedLocales)
	return tr, nil
}

func (tr *Translator) loadLocale(locale string) error {
	path := fmt.Sprintf("locales/%s/messages.json", locale)
	data, err := localesFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var msgFile MessageFile
	if err := json.Unmarshal(data, &msgFile); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	tr.translations[locale] = make(map[string]string, len(msgFile.Messages))
	for _, msg := range msgFile.Messages {
		tr.translations[locale][msg.ID] = msg.Translation
	}

	slog.Debug("loaded translations", "locale", locale, "count", len(msgFile.Messages))
	return nil
}

// T translates a message key to the given locale. Missing keys fall back
// to the default locale, then to the key itself. Optional arguments are
// applied with Sprintf.
func (tr *Translator) T(locale, key string, args ...any) string {
	translation, ok := tr.lookup(locale, key)
	if !ok {
		translation, ok = tr.lookup(tr.defaultLang, key)
		if !ok {
			return key
		}
		slog.Debug("missing translation, using default", "key", key, "locale", locale)
	}

	if len(args) > 0 {
		return fmt.Sprintf(translation, args...)
	}
	return translation
}

func (tr *Translator) lookup(locale, key string) (string, bool) {
	msgs, ok := tr.translations[locale]
	if !ok {
		return "", false
	}
	translation, ok := msgs[key]
	return translation, ok
}

// MatchLocale finds the best supported locale for an Accept-Language
// header or a bare language code.
func (tr *Translator) MatchLocale(acceptLang string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		tag, err := language.Parse(acceptLang)
		if err != nil {
			return tr.defaultLang
		}
		tags = []language.Tag{tag}
	}

	_, idx, _ := tr.matcher.Match(tags...)
	if idx >= 0 && idx < len(tr.supported) {
		return SupportedLocales[idx]
	}
	return tr.defaultLang
}

// IsSupported checks if a locale code is one of the site languages.
func IsSupported(locale string) bool {
	locale = strings.ToLower(locale)
	for _, supported := range SupportedLocales {
		if supported == locale {
			return true
		}
	}
	return false
}

// TranslationCount returns the number of translations loaded for a locale.
func (tr *Translator) TranslationCount(locale string) int {
	return len(tr.translations[locale])
}
