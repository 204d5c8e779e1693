package vault

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sethvargo/go-retry"

	"github.com/rishank14/serenityspace-cli/internal/client/models"
	"github.com/rishank14/serenityspace-cli/internal/logging"
)

// eventVaultDelivered is the push event emitted once per server-side delivery.
const eventVaultDelivered = "vaultDelivered"

// frame is the wire format of the push channel: a register handshake going
// out, delivery events coming in.
type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// DeliveryHandler consumes push delivery events. *Reconciler satisfies it.
type DeliveryHandler interface {
	OnPushDelivered(entry models.VaultEntry)
}

// Endpoint derives the push-channel URL from the REST base URL: same origin,
// the "/api/v1" path suffix stripped, ws(s) scheme.
func Endpoint(apiBaseURL string) (string, error) {
	u, err := url.Parse(apiBaseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = strings.TrimSuffix(strings.TrimRight(u.Path, "/"), "/api/v1")
	if u.Path == "" {
		u.Path = "/"
	}
	u.RawQuery = ""
	return u.String(), nil
}

// Subscriber owns the persistent push connection for one user. Its lifetime is
// scoped to the vault view: cancel the context passed to Run to tear it down.
type Subscriber struct {
	wsURL   string
	userID  string
	handler DeliveryHandler
	log     logging.Logger

	dial func(ctx context.Context, url string) (*websocket.Conn, error) // test seam
}

func NewSubscriber(wsURL, userID string, handler DeliveryHandler, log logging.Logger) *Subscriber {
	return &Subscriber{
		wsURL:   wsURL,
		userID:  userID,
		handler: handler,
		log:     log.With("component", "vault-push"),
		dial: func(ctx context.Context, u string) (*websocket.Conn, error) {
			conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
			return conn, err
		},
	}
}

// Run connects, registers, and dispatches delivery events until ctx is
// canceled. Dropped connections are re-dialed with capped exponential backoff;
// missed events during an outage are recovered by the reconciler's sweep and
// the next bulk fetch, so Run never replays history.
func (s *Subscriber) Run(ctx context.Context) {
	backoff := retry.WithCappedDuration(30*time.Second, retry.NewExponential(time.Second))

	_ = retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := s.connectAndListen(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.log.Warn(ctx, "push connection lost, reconnecting", "error", err)
		return retry.RetryableError(err)
	})
}

func (s *Subscriber) connectAndListen(ctx context.Context) error {
	conn, err := s.dial(ctx, s.wsURL)
	if err != nil {
		return fmt.Errorf("dial push channel: %w", err)
	}
	defer conn.Close()

	// Unblock the read loop when the view goes away.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	register := frame{Event: "register"}
	if register.Data, err = json.Marshal(s.userID); err != nil {
		return err
	}
	if err := conn.WriteJSON(register); err != nil {
		return fmt.Errorf("register on push channel: %w", err)
	}
	s.log.Debug(ctx, "push channel registered", "user", s.userID)

	for {
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			return err
		}
		if f.Event != eventVaultDelivered {
			continue
		}

		var entry models.VaultEntry
		if err := json.Unmarshal(f.Data, &entry); err != nil {
			s.log.Warn(ctx, "malformed delivery event", "error", err)
			continue
		}
		s.handler.OnPushDelivered(entry)
	}
}
