// Package dispatch turns identity events into notification envelopes and
// publishes them to the stream consumed by email and SMS delivery workers.
//
// A Handler runs every event through the same fixed pipeline:
//
//  1. ExtractPlaceholders copies the string-valued event properties into a
//     fresh Placeholders map. Numbers, objects and other values are dropped.
//  2. ResolveTemplate applies the subscription's template override, if any,
//     under KeyTemplateType. The override always beats the event's own value.
//  3. A diagnostic record is emitted when diagnostics are enabled.
//  4. ResolveOrganization looks up the organization owning the tenant domain
//     and stores it under KeyOrganizationID. A blank tenant domain skips the
//     lookup; a directory failure aborts the event with ErrOrganizationResolution.
//  5. The Assembler builds a Notification. A nil Notification ends handling
//     without an error and without publishing.
//  6. ResolveStreamTarget picks the target stream, falling back to DefaultStreamID.
//  7. BuildEnvelope layers the placeholders and notification fields and the
//     Publisher hands the envelope to the transport.
//
// # Collaborators
//
// The handler is constructed with its collaborators and never looks them up
// globally:
//
//	h, err := dispatch.NewHandler(directory, assembler, publisher,
//	    dispatch.WithStreamResolver(dispatch.StaticStreamResolver{Default: cfg.StreamID}),
//	    dispatch.WithDiagnostics(emitter),
//	    dispatch.WithLogger(log),
//	)
//
// Config loads the subscription settings from the environment and exposes
// them as options through Config.Options.
//
// # Envelope layering
//
// Subscription data is copied after the identity fields and sender, and the
// template and rendered notification fields are written last. A placeholder
// named "subject" coming from the event is therefore always replaced by the
// rendered subject.
//
// # Errors
//
// ErrOrganizationResolution, ErrStreamResolution and ErrAssembly are matched
// with errors.Is. Publisher errors are returned as is; the handler never
// retries.
package dispatch
