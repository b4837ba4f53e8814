package templates

import (
	"context"
	"io"
	"log/slog"
	"slices"

	"github.com/dmitrymomot/notifydispatch/pkg/dispatch"
	"github.com/dmitrymomot/notifydispatch/pkg/logger"
)

// Event property keys read by the assembler in addition to the dispatch vocabulary.
const (
	KeyEmail           = "email"
	KeyRequestedLocale = "locale"
)

// Assembler is the catalog-backed dispatch.Assembler.
type Assembler struct {
	store    *Store
	sendFrom string
	channels []dispatch.Channel
	logger   *slog.Logger
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithSendFrom sets the sender address used for every notification.
func WithSendFrom(addr string) Option {
	return func(a *Assembler) { a.sendFrom = addr }
}

// WithChannels restricts the channels the assembler produces notifications for.
// Events with no channel are treated as email.
func WithChannels(channels ...dispatch.Channel) Option {
	return func(a *Assembler) {
		if len(channels) > 0 {
			a.channels = channels
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(a *Assembler) {
		if l != nil {
			a.logger = l
		}
	}
}

func NewAssembler(store *Store, opts ...Option) *Assembler {
	a := &Assembler{
		store:    store,
		channels: []dispatch.Channel{dispatch.ChannelEmail},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble renders the template named by the templateType placeholder.
// It returns nil, nil when the event carries no template type or targets
// a channel this assembler does not serve.
func (a *Assembler) Assemble(ctx context.Context, ev dispatch.Event, ph dispatch.Placeholders) (*dispatch.Notification, error) {
	templateType, _ := ph.Get(dispatch.KeyTemplateType)
	if templateType == "" {
		a.logger.LogAttrs(ctx, slog.LevelDebug, "event has no template type",
			logger.Event(ev.Name))
		return nil, nil
	}

	channel := ev.Channel
	if channel == "" {
		channel = dispatch.ChannelEmail
	}
	if !slices.Contains(a.channels, channel) {
		a.logger.LogAttrs(ctx, slog.LevelDebug, "channel not served",
			logger.Event(ev.Name),
			slog.String("channel", string(channel)))
		return nil, nil
	}

	locale, _ := ph.Get(KeyRequestedLocale)
	tpl, err := a.store.Lookup(templateType, locale)
	if err != nil {
		return nil, err
	}

	sendTo, ok := ph.Get(dispatch.KeySendTo)
	if !ok || sendTo == "" {
		sendTo, _ = ph.Get(KeyEmail)
	}
	if sendTo == "" {
		return nil, ErrMissingRecipient
	}

	sendFrom := a.sendFrom
	if sendFrom == "" {
		sendFrom, _ = ph.Get(dispatch.KeySendFrom)
	}

	// Subjects travel as a mail header and are never markup.
	renderBody := Render
	if isHTML(tpl.ContentType) {
		renderBody = RenderHTML
	}

	return &dispatch.Notification{
		Template: tpl,
		SendFrom: sendFrom,
		SendTo:   sendTo,
		Subject:  Render(tpl.Subject, ph),
		Body:     renderBody(tpl.Body, ph),
		Footer:   renderBody(tpl.Footer, ph),
	}, nil
}
