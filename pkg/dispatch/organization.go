package dispatch

import (
	"context"
	"fmt"
	"strings"
)

// OrganizationDirectory maps a tenant domain to the id of the organization
// that owns it. Implementations must be safe for concurrent use.
type OrganizationDirectory interface {
	ResolveOrganizationID(ctx context.Context, tenantDomain string) (string, error)
}

// OrganizationDirectoryFunc adapts an ordinary function to OrganizationDirectory.
type OrganizationDirectoryFunc func(ctx context.Context, tenantDomain string) (string, error)

// ResolveOrganizationID calls f.
func (f OrganizationDirectoryFunc) ResolveOrganizationID(ctx context.Context, tenantDomain string) (string, error) {
	return f(ctx, tenantDomain)
}

// ResolveOrganization stores the organization id owning the tenant domain in
// ph. A blank tenant domain is a no-op. A directory failure is returned
// wrapped in ErrOrganizationResolution; the organization id overwrites any
// value already stored under KeyOrganizationID.
func ResolveOrganization(ctx context.Context, dir OrganizationDirectory, ph Placeholders) error {
	tenantDomain := ph[KeyTenantDomain]
	if strings.TrimSpace(tenantDomain) == "" {
		return nil
	}

	orgID, err := dir.ResolveOrganizationID(ctx, tenantDomain)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrOrganizationResolution, tenantDomain, err)
	}

	ph[KeyOrganizationID] = orgID
	return nil
}
