package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error records err under "error". A nil error yields an empty Attr, which
// slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups the non-nil errors under "errors".
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the domain event name.
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

func TemplateType(t string) slog.Attr {
	return slog.String("template_type", t)
}

func StreamID(id string) slog.Attr {
	return slog.String("stream_id", id)
}

// TenantDomain records the tenant domain. Blank domains are omitted.
func TenantDomain(domain string) slog.Attr {
	if domain == "" {
		return slog.Attr{}
	}
	return slog.String("tenant_domain", domain)
}

// OrganizationID records the organization id. Blank ids are omitted.
func OrganizationID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("organization_id", id)
}

func Transport(name string) slog.Attr {
	return slog.String("transport", name)
}
