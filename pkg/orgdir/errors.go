package orgdir

import "errors"

var (
	// ErrOrganizationNotFound is returned when no organization owns the tenant domain.
	ErrOrganizationNotFound = errors.New("organization not found for tenant domain")

	// ErrLookupFailed wraps backend failures.
	ErrLookupFailed = errors.New("organization lookup failed")
)
