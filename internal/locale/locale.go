// Package locale wraps go-i18n with the embedded message catalogues.
package locale

import (
	"embed"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/tartampluch/go-numerology/internal/favorability"
	"github.com/tartampluch/go-numerology/internal/numerology"
	"github.com/tartampluch/go-numerology/internal/wizard"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator resolves message ids for one active language.
type Translator struct {
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	lang      string

	// Languages lists the language codes found in the embedded catalogues.
	Languages []string
}

// New loads every embedded catalogue and activates lang.
// An unknown or empty lang falls back to config.DefaultLanguage.
func New(lang string) *Translator {
	// English is the bundle default: missing French keys resolve to English.
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	t := &Translator{bundle: bundle}

	// 1. Discover catalogues (active.<lang>.json)
	entries, err := localeFS.ReadDir(config.LocalesDir)
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, config.LocalePrefix) || !strings.HasSuffix(name, config.LocaleSuffix) {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, config.LocalePrefix), config.LocaleSuffix)
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		// 2. Load; a broken file is skipped, the others still work
		if _, err := bundle.LoadMessageFileFS(localeFS, config.LocalesDir+"/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}

		t.Languages = append(t.Languages, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
		)
	}

	t.SetLanguage(lang)
	return t
}

// SetLanguage switches the active language.
func (t *Translator) SetLanguage(lang string) {
	if lang == "" || !slices.Contains(t.Languages, lang) {
		lang = config.DefaultLanguage
	}
	t.lang = lang
	t.localizer = i18n.NewLocalizer(t.bundle, lang)
}

// For returns a translator sharing the loaded catalogues, with lang active.
// The receiver is left untouched, so For is safe to call concurrently.
func (t *Translator) For(lang string) *Translator {
	c := &Translator{bundle: t.bundle, Languages: t.Languages}
	c.SetLanguage(lang)
	return c
}

// Language returns the active language code, or the default language for
// a nil translator.
func (t *Translator) Language() string {
	if t == nil {
		return config.DefaultLanguage
	}
	return t.lang
}

// Msg translates key, returning the key itself when it is missing.
func (t *Translator) Msg(key string) string {
	return t.MsgOr(key, key)
}

// MsgOr translates key, returning fallback when it is missing.
func (t *Translator) MsgOr(key, fallback string) string {
	return t.Format(key, fallback, nil)
}

// Format translates key with template data.
func (t *Translator) Format(key, fallback string, data map[string]any) string {
	if t == nil || t.localizer == nil {
		return fallback
	}
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	// Missing ids are expected for planets added without a catalogue entry.
	if err != nil || msg == "" {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return fallback
	}
	return msg
}

// Activity translates a suggested activity.
func (t *Translator) Activity(a favorability.Activity) string {
	return t.MsgOr(a.ID, a.Default)
}

// Activities translates a list of activities.
func (t *Translator) Activities(list []favorability.Activity) []string {
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = t.Activity(a)
	}
	return out
}

// Error turns a core error into a message suitable for the end user.
func (t *Translator) Error(err error) string {
	// Wrapped errors match too: validation.Error unwraps to ErrInvalidDateFormat.
	switch {
	case err == nil:
		return ""
	case errors.Is(err, numerology.ErrInvalidDateFormat):
		return t.MsgOr(config.TKeyErrDateFormat, config.ErrDateFormat)
	case errors.Is(err, wizard.ErrNameRequired):
		return t.MsgOr(config.TKeyErrNameRequired, config.ErrWizardName)
	case errors.Is(err, wizard.ErrTierRequired):
		return t.MsgOr(config.TKeyErrTierRequired, config.ErrWizardTier)
	case errors.Is(err, wizard.ErrIncomplete):
		return t.MsgOr(config.TKeyErrIncomplete, config.ErrWizardIncomplete)
	default:
		// Technical errors (I/O, configuration) are not translated.
		return err.Error()
	}
}
