// Package events broadcasts cache invalidations between service instances
// over NATS. Without a NATS URL the bus only notifies local subscribers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// DefaultSubject is the NATS subject invalidations are published on.
const DefaultSubject = "route-analytics.invalidate"

// ScopeRoutes is published whenever stored routes change.
const ScopeRoutes = "routes"

// Handler reacts to an invalidation of scope.
type Handler func(scope string)

type publisher interface {
	Publish(subject string, data []byte) error
}

type message struct {
	Origin string `json:"origin"`
	Scope  string `json:"scope"`
	SentAt int64  `json:"sent_at"`
}

// Bus fans invalidations out to local handlers and, when connected, to every
// other instance subscribed to the same subject.
type Bus struct {
	origin  string
	subject string

	conn *nats.Conn
	sub  *nats.Subscription
	pub  publisher

	mu       sync.RWMutex
	handlers []Handler
}

func NewLocalBus() *Bus {
	return &Bus{origin: uuid.NewString(), subject: DefaultSubject}
}

// ConnectBus connects to NATS at url and subscribes to subject.
func ConnectBus(url, subject string) (*Bus, error) {
	if subject == "" {
		subject = DefaultSubject
	}
	b := &Bus{origin: uuid.NewString(), subject: subject}

	conn, err := nats.Connect(url,
		nats.Name("route-analytics-service"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warnw("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Infow("nats reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", url, err)
	}

	sub, err := conn.Subscribe(subject, b.handleMessage)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("subscribe %s: %w", subject, err)
	}

	b.conn = conn
	b.sub = sub
	b.pub = conn
	return b, nil
}

// Origin identifies this instance in published messages.
func (b *Bus) Origin() string {
	return b.origin
}

// OnInvalidate registers h for local and remote invalidations.
func (b *Bus) OnInvalidate(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Invalidate notifies local handlers, then publishes to other instances. A
// failed publish is returned after local handlers have already run.
func (b *Bus) Invalidate(ctx context.Context, scope string) error {
	b.dispatch(scope)

	if b.pub == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(message{Origin: b.origin, Scope: scope, SentAt: time.Now().Unix()})
	if err != nil {
		return err
	}
	if err := b.pub.Publish(b.subject, data); err != nil {
		return fmt.Errorf("publish invalidation: %w", err)
	}
	return nil
}

func (b *Bus) handleMessage(msg *nats.Msg) {
	var m message
	if err := json.Unmarshal(msg.Data, &m); err != nil {
		log.Warnw("dropping malformed invalidation", "subject", msg.Subject, "error", err)
		return
	}
	if m.Origin == b.origin {
		return
	}
	log.Debugw("remote invalidation", "scope", m.Scope, "origin", m.Origin)
	b.dispatch(m.Scope)
}

func (b *Bus) dispatch(scope string) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, h := range handlers {
		h(scope)
	}
}

// Close drains the subscription and closes the connection, if any.
func (b *Bus) Close() error {
	if b.conn == nil {
		return nil
	}
	if err := b.conn.Drain(); err != nil {
		b.conn.Close()
		return err
	}
	return nil
}
