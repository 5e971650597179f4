package proxy

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/hoistlabs/hostgate/internal/app"
	"github.com/hoistlabs/hostgate/internal/domain"
	"github.com/hoistlabs/hostgate/internal/metrics"
	"github.com/hoistlabs/hostgate/internal/ports"
)

// DefaultDialAttempts is how many times an upstream dial is tried before the
// session is refused.
const DefaultDialAttempts = 3

// Proxy forwards WebSocket sessions between embedded UI clients and the
// research engine. Each client connection gets its own upstream connection;
// frames are relayed verbatim in both directions until either side closes.
type Proxy struct {
	upgrader     websocket.Upgrader
	dialer       *websocket.Dialer
	logger       ports.Logger
	dialAttempts int
	backoff      func() *app.Backoff
}

// New creates a proxy. The upgrader accepts any origin; the gateway fronts
// embedded iframes on arbitrary third-party hosts.
func New(logger ports.Logger) *Proxy {
	return &Proxy{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		dialer: &websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
		},
		logger:       logger,
		dialAttempts: DefaultDialAttempts,
		backoff: func() *app.Backoff {
			return app.NewBackoff(app.DefaultBackoffInitial, app.DefaultBackoffMax)
		},
	}
}

// Handle upgrades the client connection and relays frames to the engine at
// upstreamURL (a ws:// or wss:// address). It blocks until the session ends.
func (p *Proxy) Handle(w http.ResponseWriter, r *http.Request, upstreamURL string) {
	client, err := p.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		p.logger.Warn("websocket upgrade failed", ports.Err(err))
		return
	}
	defer client.Close()

	logger := p.logger.With(
		ports.String("session", uuid.NewString()),
		ports.String("upstream", upstreamURL),
	)

	upstream, err := p.dialUpstream(r.Context(), upstreamURL)
	if err != nil {
		logger.Error("upstream dial failed", ports.Err(err))
		msg := websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "upstream unavailable")
		_ = client.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		return
	}
	defer upstream.Close()

	metrics.SessionsTotal.Inc()
	metrics.SessionsActive.Inc()
	defer metrics.SessionsActive.Dec()
	logger.Info("session open")

	errc := make(chan error, 2)
	go relay(upstream, client, errc)
	go relay(client, upstream, errc)

	err = <-errc
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		logger.Info("session closed")
	} else {
		logger.Warn("session ended", ports.Err(err))
	}
}

// relay copies frames from src to dst until a read or write fails.
func relay(dst, src *websocket.Conn, errc chan<- error) {
	for {
		messageType, payload, err := src.ReadMessage()
		if err != nil {
			errc <- err
			return
		}
		if err := dst.WriteMessage(messageType, payload); err != nil {
			errc <- err
			return
		}
	}
}

// dialUpstream dials the engine with jittered exponential backoff between
// attempts.
func (p *Proxy) dialUpstream(ctx context.Context, url string) (*websocket.Conn, error) {
	backoff := p.backoff()
	var lastErr error

	for attempt := 0; attempt < p.dialAttempts; attempt++ {
		if attempt > 0 {
			if err := backoff.Wait(ctx); err != nil {
				return nil, err
			}
		}

		conn, resp, err := p.dialer.DialContext(ctx, url, nil)
		if err == nil {
			return conn, nil
		}
		if resp != nil {
			resp.Body.Close()
		}
		metrics.UpstreamDialFailures.Inc()
		lastErr = err
	}

	return nil, fmt.Errorf("%w after %d attempts: %v", domain.ErrUpstreamUnavailable, p.dialAttempts, lastErr)
}
