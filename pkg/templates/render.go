package templates

import (
	"html"
	"mime"
	"regexp"

	"github.com/dmitrymomot/notifydispatch/pkg/dispatch"
)

// placeholderRegex matches "{{key}}" with optional inner spaces.
var placeholderRegex = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.\-]+)\s*\}\}`)

// Render substitutes every {{key}} in tmpl with the matching placeholder.
// Unknown keys are left untouched so missing data is visible downstream.
func Render(tmpl string, ph dispatch.Placeholders) string {
	return render(tmpl, ph, nil)
}

// RenderHTML works like Render but HTML-escapes every substituted value.
// The template text itself is trusted and kept as is.
func RenderHTML(tmpl string, ph dispatch.Placeholders) string {
	return render(tmpl, ph, html.EscapeString)
}

func render(tmpl string, ph dispatch.Placeholders, escape func(string) string) string {
	return placeholderRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		key := placeholderRegex.FindStringSubmatch(match)[1]
		v, ok := ph.Get(key)
		if !ok {
			return match
		}
		if escape != nil {
			return escape(v)
		}
		return v
	})
}

// isHTML reports whether contentType names an HTML body, parameters ignored.
func isHTML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "text/html"
}
