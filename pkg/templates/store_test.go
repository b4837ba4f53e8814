package templates_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifydispatch/pkg/dispatch"
	"github.com/dmitrymomot/notifydispatch/pkg/templates"
)

func sampleTemplates() []dispatch.Template {
	return []dispatch.Template{
		{Type: "AccountConfirmation", DisplayName: "Account Confirmation", Locale: "fr_FR", Subject: "Bienvenue"},
		{Type: "AccountConfirmation", DisplayName: "Account Confirmation", Locale: "en-US", Subject: "Welcome"},
		{Type: "PasswordReset", DisplayName: "Password Reset", Locale: "de-DE", Subject: "Passwort"},
	}
}

func TestStore_Lookup(t *testing.T) {
	t.Parallel()

	store, err := templates.NewStore("en-US", sampleTemplates())
	require.NoError(t, err)

	tests := []struct {
		name    string
		typ     string
		locale  string
		subject string
		wantErr error
	}{
		{name: "exact default", typ: "AccountConfirmation", locale: "en-US", subject: "Welcome"},
		{name: "underscore locale", typ: "AccountConfirmation", locale: "fr_FR", subject: "Bienvenue"},
		{name: "regional variant", typ: "AccountConfirmation", locale: "fr-CA", subject: "Bienvenue"},
		{name: "empty locale uses default", typ: "AccountConfirmation", subject: "Welcome"},
		{name: "unsupported locale falls back", typ: "AccountConfirmation", locale: "ja-JP", subject: "Welcome"},
		{name: "garbage locale falls back", typ: "AccountConfirmation", locale: "!!", subject: "Welcome"},
		{name: "type is normalized", typ: "account confirmation", subject: "Welcome"},
		{name: "default missing uses first", typ: "PasswordReset", locale: "en-US", subject: "Passwort"},
		{name: "unknown type", typ: "Nope", wantErr: templates.ErrTemplateNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tpl, err := store.Lookup(tt.typ, tt.locale)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.subject, tpl.Subject)
		})
	}
}

func TestStore_NormalizesLocale(t *testing.T) {
	t.Parallel()

	store, err := templates.NewStore("en-US", sampleTemplates())
	require.NoError(t, err)

	tpl, err := store.Lookup("AccountConfirmation", "fr-FR")
	require.NoError(t, err)
	assert.Equal(t, "fr-FR", tpl.Locale)

	assert.Equal(t, []string{"AccountConfirmation", "PasswordReset"}, store.Types())
}

func TestNewStore_Invalid(t *testing.T) {
	t.Parallel()

	_, err := templates.NewStore("not a locale", nil)
	require.ErrorIs(t, err, templates.ErrInvalidLocale)

	_, err = templates.NewStore("en", []dispatch.Template{{Type: " "}})
	require.ErrorIs(t, err, templates.ErrInvalidTemplate)

	_, err = templates.NewStore("en", []dispatch.Template{{Type: "A", Locale: "???"}})
	require.ErrorIs(t, err, templates.ErrInvalidLocale)

	_, err = templates.NewStore("en", []dispatch.Template{
		{Type: "A", Locale: "en_US"},
		{Type: "a", Locale: "en-US"},
	})
	require.ErrorIs(t, err, templates.ErrDuplicateTemplate)
}

func TestNewStore_EmptyLocaleIsDefault(t *testing.T) {
	t.Parallel()

	store, err := templates.NewStore("en-GB", []dispatch.Template{{Type: "A", Subject: "s"}})
	require.NoError(t, err)

	tpl, err := store.Lookup("A", "")
	require.NoError(t, err)
	assert.Equal(t, "en-GB", tpl.Locale)
}

func TestParseCatalog(t *testing.T) {
	t.Parallel()

	tpls, err := templates.ParseCatalog(strings.NewReader(`
templates:
  - type: AccountConfirmation
    display_name: Account Confirmation
    locale: en-US
    content_type: text/html
    subject: "Welcome {{userName}}"
`))
	require.NoError(t, err)
	require.Len(t, tpls, 1)
	assert.Equal(t, "Account Confirmation", tpls[0].DisplayName)
	assert.Equal(t, "text/html", tpls[0].ContentType)

	_, err = templates.ParseCatalog(strings.NewReader("templates:\n  - unknown_field: x\n"))
	require.ErrorIs(t, err, templates.ErrFailedToParseYAML)

	tpls, err = templates.ParseCatalog(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, tpls)
}

func TestLoadFS(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte("templates:\n  - type: A\n    locale: en\n")},
		"b.yaml": {Data: []byte("templates:\n  - type: B\n    locale: en\n")},
		"c.txt":  {Data: []byte("ignored")},
	}

	tpls, err := templates.LoadFS(fsys, "*.yaml")
	require.NoError(t, err)
	assert.Len(t, tpls, 2)
}

func TestLoadPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("templates:\n  - type: A\n    locale: en\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yml"), []byte("templates:\n  - type: B\n    locale: en\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	t.Run("directory", func(t *testing.T) {
		t.Parallel()
		tpls, err := templates.LoadPath(context.Background(), dir)
		require.NoError(t, err)
		require.Len(t, tpls, 2)
		assert.Equal(t, "A", tpls[0].Type)
		assert.Equal(t, "B", tpls[1].Type)
	})

	t.Run("single file", func(t *testing.T) {
		t.Parallel()
		tpls, err := templates.LoadPath(context.Background(), filepath.Join(dir, "b.yml"))
		require.NoError(t, err)
		require.Len(t, tpls, 1)
		assert.Equal(t, "B", tpls[0].Type)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		_, err := templates.LoadPath(context.Background(), filepath.Join(dir, "nope"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	store, err := templates.NewStore("en-US", templates.DefaultCatalog())
	require.NoError(t, err)

	tpl, err := store.Lookup("AccountConfirmation", "fr")
	require.NoError(t, err)
	assert.Equal(t, "fr-FR", tpl.Locale)
	assert.Contains(t, store.Types(), "PasswordReset")
}
