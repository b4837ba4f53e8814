package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrymomot/notifydispatch/pkg/dispatch"
)

// EventHandler is satisfied by *dispatch.Handler.
type EventHandler interface {
	Handle(ctx context.Context, ev dispatch.Event) error
}

func decodeEvent(data []byte) (dispatch.Event, error) {
	var ev dispatch.Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return dispatch.Event{}, fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}
	if strings.TrimSpace(ev.Name) == "" {
		return dispatch.Event{}, fmt.Errorf("%w: name is required", ErrInvalidEvent)
	}
	return ev, nil
}
