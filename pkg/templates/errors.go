package templates

import "errors"

var (
	ErrTemplateNotFound  = errors.New("notification template not found")
	ErrInvalidLocale     = errors.New("invalid template locale")
	ErrInvalidTemplate   = errors.New("invalid notification template")
	ErrDuplicateTemplate = errors.New("duplicate notification template")
	ErrFailedToParseYAML = errors.New("failed to parse template catalog")
	ErrMissingRecipient  = errors.New("event has no recipient address")
)
