package templates

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/notifydispatch/pkg/dispatch"
)

// Store is an immutable, locale-aware template catalog. It is safe for
// concurrent use.
type Store struct {
	defaultLocale language.Tag
	byType        map[string]*localized
}

type localized struct {
	templates []dispatch.Template
	matcher   language.Matcher
}

// NewStore indexes tpls by type and locale. For every type, a template in
// defaultLocale (when present) is the fallback for unmatched locales;
// otherwise the first template listed for the type is.
func NewStore(defaultLocale string, tpls []dispatch.Template) (*Store, error) {
	def, err := ParseLocale(defaultLocale)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		tpls []dispatch.Template
		tags []language.Tag
	}
	buckets := make(map[string]*bucket)

	for _, t := range tpls {
		if strings.TrimSpace(t.Type) == "" {
			return nil, fmt.Errorf("%w: empty type", ErrInvalidTemplate)
		}
		tag := def
		if t.Locale != "" {
			if tag, err = ParseLocale(t.Locale); err != nil {
				return nil, fmt.Errorf("template %q: %w", t.Type, err)
			}
		}

		key := typeKey(t.Type)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		for _, existing := range b.tags {
			if existing == tag {
				return nil, fmt.Errorf("%w: %s (%s)", ErrDuplicateTemplate, t.Type, tag)
			}
		}

		t.Locale = tag.String()
		if tag == def {
			b.tpls = append([]dispatch.Template{t}, b.tpls...)
			b.tags = append([]language.Tag{tag}, b.tags...)
		} else {
			b.tpls = append(b.tpls, t)
			b.tags = append(b.tags, tag)
		}
	}

	s := &Store{defaultLocale: def, byType: make(map[string]*localized, len(buckets))}
	for key, b := range buckets {
		s.byType[key] = &localized{templates: b.tpls, matcher: language.NewMatcher(b.tags)}
	}
	return s, nil
}

// Lookup returns the template of templateType best matching locale.
// An empty locale selects the store default.
func (s *Store) Lookup(templateType, locale string) (dispatch.Template, error) {
	l, ok := s.byType[typeKey(templateType)]
	if !ok {
		return dispatch.Template{}, fmt.Errorf("%w: %q", ErrTemplateNotFound, templateType)
	}

	want := s.defaultLocale
	if locale != "" {
		if tag, err := ParseLocale(locale); err == nil {
			want = tag
		}
	}

	_, idx, _ := l.matcher.Match(want)
	return l.templates[idx], nil
}

// Types lists the template types in the store, sorted.
func (s *Store) Types() []string {
	out := make([]string, 0, len(s.byType))
	for _, l := range s.byType {
		out = append(out, l.templates[0].Type)
	}
	slices.Sort(out)
	return out
}

// ParseLocale accepts BCP 47 tags and underscore forms such as "en_US".
func ParseLocale(locale string) (language.Tag, error) {
	tag, err := language.Parse(strings.ReplaceAll(strings.TrimSpace(locale), "_", "-"))
	if err != nil {
		return language.Und, fmt.Errorf("%w: %q: %w", ErrInvalidLocale, locale, err)
	}
	return tag, nil
}

func typeKey(templateType string) string {
	return dispatch.NormalizeName(templateType)
}
