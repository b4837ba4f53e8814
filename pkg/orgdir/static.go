package orgdir

import (
	"context"
	"fmt"
	"strings"
)

// StaticDirectory resolves organizations from a fixed tenant-domain map.
// Used for single-tenant deployments and tests.
type StaticDirectory map[string]string

// ParseStatic builds a StaticDirectory from "domain=orgID" pairs.
func ParseStatic(pairs map[string]string) StaticDirectory {
	d := make(StaticDirectory, len(pairs))
	for domain, id := range pairs {
		d[normalizeDomain(domain)] = id
	}
	return d
}

func (d StaticDirectory) ResolveOrganizationID(_ context.Context, tenantDomain string) (string, error) {
	if id, ok := d[normalizeDomain(tenantDomain)]; ok {
		return id, nil
	}
	return "", fmt.Errorf("%w: %q", ErrOrganizationNotFound, tenantDomain)
}

// Tenant domains are case-insensitive DNS names.
func normalizeDomain(domain string) string {
	return strings.ToLower(strings.TrimSpace(domain))
}
