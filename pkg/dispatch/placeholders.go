package dispatch

// Placeholder keys shared with the delivery workers. Changing any of them
// breaks the downstream contract.
const (
	KeyTenantDomain    = "tenantDomain"
	KeyUserName        = "userName"
	KeyUserStoreDomain = "userStoreDomain"
	KeyTemplateType    = "templateType"
	KeyOrganizationID  = "organizationId"

	KeyEventType       = "notificationEvent"
	KeySendFrom        = "sendFrom"
	KeySendTo          = "sendTo"
	KeySubjectTemplate = "subjectTemplate"
	KeyBodyTemplate    = "bodyTemplate"
	KeyFooterTemplate  = "footerTemplate"
	KeyLocale          = "locale"
	KeyContentType     = "contentType"
	KeySubject         = "subject"
	KeyBody            = "body"
	KeyFooter          = "footer"
)

// Placeholders maps placeholder keys to their string values.
// A fresh map is built for every event.
type Placeholders map[string]string

// ExtractPlaceholders copies the string-valued properties of ev into a new
// Placeholders map. Values of any other type are dropped, not coerced.
func ExtractPlaceholders(ev Event) Placeholders {
	ph := make(Placeholders, len(ev.Properties))
	for k, v := range ev.Properties {
		if s, ok := v.(string); ok {
			ph[k] = s
		}
	}
	return ph
}

// Get returns the value for key, reporting whether it was present.
func (p Placeholders) Get(key string) (string, bool) {
	v, ok := p[key]
	return v, ok
}
