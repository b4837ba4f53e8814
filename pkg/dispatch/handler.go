package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/notifydispatch/pkg/diagnostic"
	"github.com/dmitrymomot/notifydispatch/pkg/logger"
)

// HandlerName is the subscription name the handler registers under.
const HandlerName = "emailSend"

// Diagnostic record vocabulary.
const (
	DiagnosticComponent      = "notification-handler-service"
	DiagnosticActionHandle   = "handle-event"
	DiagnosticInputEventName = "eventName" // carries the resolved template type
	DiagnosticInputTenant    = "tenantDomain"
)

// DiagnosticEmitter receives best-effort diagnostic records.
// Emission must never block the caller for long or report errors back.
type DiagnosticEmitter interface {
	Enabled() bool
	Emit(ctx context.Context, rec diagnostic.Record)
}

// Handler turns identity events into notification envelopes and publishes
// them to the notification stream.
//
// A Handler holds no per-event state and is safe for concurrent use as long
// as its collaborators are.
type Handler struct {
	directory   OrganizationDirectory
	assembler   Assembler
	publisher   Publisher
	templates   TemplateOverride
	streams     StreamResolver
	diagnostics DiagnosticEmitter
	logger      *slog.Logger
	now         func() time.Time
}

// NewHandler creates a Handler. The directory, assembler and publisher are required.
// Only nil interface values are rejected: a non-nil interface wrapping a nil
// pointer passes the check and panics on first use, so callers must not pass
// unchecked constructor results.
func NewHandler(dir OrganizationDirectory, asm Assembler, pub Publisher, opts ...Option) (*Handler, error) {
	if dir == nil || asm == nil || pub == nil {
		return nil, ErrNilDependency
	}

	h := &Handler{
		directory: dir,
		assembler: asm,
		publisher: pub,
		logger:    slog.Default(),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h, nil
}

// Name returns HandlerName.
func (h *Handler) Name() string {
	return HandlerName
}

// Handle processes a single event.
//
// It returns an error wrapping ErrOrganizationResolution when the tenant's
// organization cannot be resolved, in which case nothing is published.
// When the assembler reports that no notification applies, Handle returns nil
// without publishing. Publish errors are returned unchanged.
func (h *Handler) Handle(ctx context.Context, ev Event) error {
	ph := ExtractPlaceholders(ev)
	ResolveTemplate(ctx, h.templates, ev, ph)
	h.emitDiagnostic(ctx, ev, ph)

	if err := ResolveOrganization(ctx, h.directory, ph); err != nil {
		return err
	}

	notif, err := h.assembler.Assemble(ctx, ev, ph)
	if err != nil {
		return errors.Join(ErrAssembly, err)
	}
	if notif == nil {
		h.logger.LogAttrs(ctx, slog.LevelDebug, "No notification applies to event, skipping publish",
			logger.Event(ev.Name),
			logger.TemplateType(ph[KeyTemplateType]),
		)
		return nil
	}

	streamID, err := ResolveStreamTarget(ctx, h.streams, ev)
	if err != nil {
		return err
	}

	env := BuildEnvelope(h.now(), streamID, notif, ph)
	if err := h.publisher.Publish(ctx, env); err != nil {
		return err
	}

	h.logger.LogAttrs(ctx, slog.LevelDebug, "Notification published",
		logger.Event(ev.Name),
		logger.StreamID(streamID),
		logger.TenantDomain(ph[KeyTenantDomain]),
		logger.OrganizationID(ph[KeyOrganizationID]),
	)
	return nil
}

func (h *Handler) emitDiagnostic(ctx context.Context, ev Event, ph Placeholders) {
	if h.diagnostics == nil || !h.diagnostics.Enabled() {
		return
	}
	h.diagnostics.Emit(ctx, diagnostic.Record{
		Component: DiagnosticComponent,
		Action:    DiagnosticActionHandle,
		Inputs: map[string]string{
			DiagnosticInputEventName: ph[KeyTemplateType],
			DiagnosticInputTenant:    ph[KeyTenantDomain],
		},
		ResultStatus:  diagnostic.StatusSuccess,
		ResultMessage: "Notification will be handled.",
		DetailLevel:   diagnostic.DetailInternalSystem,
	})
}
