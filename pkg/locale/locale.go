// Package locale resolves field and enumeration labels at render time. The
// catalog models only know label keys; this package turns them into text for
// a requested language.
package locale

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gedex/inflector"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/lt"
	ut "github.com/go-playground/universal-translator"
	"github.com/pkg/errors"
	"github.com/shishobooks/catalog/pkg/models"
	"golang.org/x/text/language"
)

const fallbackLocale = "en"

type Translator struct {
	uni           *ut.UniversalTranslator
	defaultLocale string
}

// New loads the bundled label tables. defaultLocale is used when a request
// doesn't ask for a supported language; an unknown default falls back to
// English.
func New(defaultLocale string) (*Translator, error) {
	fallback := en.New()
	uni := ut.New(fallback, fallback, lt.New())

	tables := map[string]map[string]string{
		"en": english,
		"lt": lithuanian,
	}
	for tag, table := range tables {
		trans, ok := uni.GetTranslator(tag)
		if !ok {
			return nil, errors.Errorf("locale %q is not registered", tag)
		}
		for key, text := range table {
			if err := trans.Add(key, text, false); err != nil {
				return nil, errors.Wrapf(err, "failed to add %q to locale %q", key, tag)
			}
		}
	}

	if _, ok := uni.GetTranslator(defaultLocale); !ok {
		defaultLocale = fallbackLocale
	}

	return &Translator{uni: uni, defaultLocale: defaultLocale}, nil
}

// Find returns the translator for the first supported locale in tags, or the
// default locale.
func (t *Translator) Find(tags ...string) ut.Translator {
	if trans, ok := t.uni.FindTranslator(tags...); ok {
		return trans
	}
	trans, _ := t.uni.GetTranslator(t.defaultLocale)
	return trans
}

// FromRequest picks a translator from the "lang" query param, then the
// Accept-Language header. "lang" takes a single tag in the header's syntax.
func (t *Translator) FromRequest(req *http.Request) ut.Translator {
	tags := ParseAcceptLanguage(req.URL.Query().Get("lang"))
	tags = append(tags, ParseAcceptLanguage(req.Header.Get("Accept-Language"))...)
	return t.Find(tags...)
}

// Label translates key. Keys missing from trans fall back to English, then to
// the key itself.
func (t *Translator) Label(trans ut.Translator, key string) string {
	if text, err := trans.T(key); err == nil && text != "" {
		return text
	}
	if trans.Locale() != fallbackLocale {
		if english, ok := t.uni.GetTranslator(fallbackLocale); ok {
			if text, err := english.T(key); err == nil && text != "" {
				return text
			}
		}
	}
	return key
}

// VerboseName returns the singular display name of an entity ("book").
func (t *Translator) VerboseName(trans ut.Translator, entity string) string {
	return t.Label(trans, entity+".verbose_name")
}

// VerboseNamePlural returns the plural display name of an entity. Locales
// without an explicit plural get the inflected singular.
func (t *Translator) VerboseNamePlural(trans ut.Translator, entity string) string {
	key := entity + ".verbose_name_plural"
	if text, err := trans.T(key); err == nil && text != "" {
		return text
	}
	return inflector.Pluralize(t.VerboseName(trans, entity))
}

// StatusLabel translates a loan status. Values outside the enumeration render
// as "unknown".
func (t *Translator) StatusLabel(trans ut.Translator, status models.LoanStatus) string {
	if !status.Valid() {
		return status.String()
	}
	return t.Label(trans, "bookinstance.status."+status.String())
}

// Labels translates every known key, including derived plurals.
func (t *Translator) Labels(trans ut.Translator) map[string]string {
	labels := make(map[string]string, len(english)+len(Entities))
	for key := range english {
		labels[key] = t.Label(trans, key)
	}
	for _, entity := range Entities {
		labels[entity+".verbose_name_plural"] = t.VerboseNamePlural(trans, entity)
	}
	return labels
}

// Keys returns the sorted label keys.
func Keys() []string {
	keys := make([]string, 0, len(english))
	for key := range english {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ParseAcceptLanguage returns the language tags of an Accept-Language header
// ordered by quality, each followed by its base language ("lt_LT", "lt").
// A malformed header yields no tags.
func ParseAcceptLanguage(header string) []string {
	tags := []string{}
	parsed, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return tags
	}

	seen := map[string]bool{}
	add := func(tag string) {
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	for _, tag := range parsed {
		base, _ := tag.Base()
		// "*" parses as the "mul" (multiple languages) tag.
		if base == wildcard {
			continue
		}
		add(localeName(tag))
		add(base.String())
	}
	return tags
}

var wildcard = language.MustParseBase("mul")

// localeName converts a BCP 47 tag ("lt-LT") to the locale names used by
// go-playground/locales ("lt_LT").
func localeName(tag language.Tag) string {
	return strings.ReplaceAll(tag.String(), "-", "_")
}
