package dispatch

import "errors"

var (
	// ErrOrganizationResolution is returned when the organization directory
	// fails to resolve a tenant domain. Handling of the event is aborted.
	ErrOrganizationResolution = errors.New("failed to resolve organization for tenant domain")

	// ErrStreamResolution is returned when the stream resolver fails.
	ErrStreamResolution = errors.New("failed to resolve target stream")

	// ErrAssembly is returned when the assembler fails to build a notification.
	ErrAssembly = errors.New("failed to assemble notification")

	// ErrNilDependency is returned by NewHandler when a required collaborator is missing.
	ErrNilDependency = errors.New("dispatch: required dependency is nil")
)
