package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"campusfood/internal/core/ports"
	"campusfood/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// heartbeatInterval is how often an SSE comment is written to keep
// intermediaries from closing an idle stream.
const heartbeatInterval = 30 * time.Second

// StreamEvents handles GET /api/v1/events/stream?kind=&id= - streams order
// lifecycle events for one subscription key as server-sent events until the
// client disconnects.
func (s *Server) StreamEvents(ctx echo.Context) error {
	key, err := subscriptionKeyFromParams(ctx.QueryParam("kind"), ctx.QueryParam("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	sub, err := s.subscriber.Subscribe(ctx.Request().Context(), key)
	if err != nil {
		return writeError(ctx, err)
	}
	defer sub.Close()

	resp := ctx.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set("Cache-Control", "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)
	resp.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Request().Context().Done():
			return nil

		case <-heartbeat.C:
			if _, err = fmt.Fprint(resp, ": keep-alive\n\n"); err != nil {
				return nil
			}
			resp.Flush()

		case event, ok := <-sub.Events():
			if !ok {
				return nil
			}

			payload, marshalErr := json.Marshal(event)
			if marshalErr != nil {
				continue
			}
			if _, err = fmt.Fprintf(resp, "event: order\ndata: %s\n\n", payload); err != nil {
				return nil
			}
			resp.Flush()
		}
	}
}

// subscriptionKeyFromParams validates the stream parameters. Every kind
// except the shared pool requires the subject's ID.
func subscriptionKeyFromParams(kind string, id string) (ports.SubscriptionKey, error) {
	switch ports.SubscriptionKind(kind) {
	case ports.SubscriptionPool:
		return ports.SubscriptionKey{Kind: ports.SubscriptionPool}, nil

	case ports.SubscriptionCustomer, ports.SubscriptionVendor, ports.SubscriptionRider:
		if id == "" {
			return ports.SubscriptionKey{}, errs.NewValueIsRequiredError("id")
		}
		return ports.SubscriptionKey{Kind: ports.SubscriptionKind(kind), ID: id}, nil

	default:
		return ports.SubscriptionKey{}, errs.NewValueIsInvalidErrorWithCause(
			"kind", fmt.Errorf("%q is not a valid subscription kind", kind))
	}
}
