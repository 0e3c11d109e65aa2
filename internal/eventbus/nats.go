// Package eventbus publishes recommendation events over NATS, using JetStream
// when the server provides it.
package eventbus

import (
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Client owns a NATS connection and its optional JetStream context
type Client struct {
	conn   *nats.Conn
	js     nats.JetStreamContext
	logger *zap.Logger
}

// Connect dials natsURL. A missing JetStream is logged and tolerated.
func Connect(natsURL string, logger *zap.Logger) (*Client, error) {
	nc, err := nats.Connect(natsURL,
		nats.Name("designpanda"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(3),
	)
	if err != nil {
		return nil, err
	}

	c := &Client{conn: nc, logger: logger}
	js, err := nc.JetStream()
	if err != nil {
		logger.Warn("JetStream unavailable, using core NATS", zap.Error(err))
		return c, nil
	}
	c.js = js

	logger.Info("NATS initialized", zap.String("url", natsURL))
	return c, nil
}

// JetStream returns the JetStream context or nil
func (c *Client) JetStream() nats.JetStreamContext {
	if c == nil {
		return nil
	}
	return c.js
}

// Publish sends data on subject over core NATS
func (c *Client) Publish(subject string, data []byte) error {
	if c == nil || c.conn == nil {
		return nats.ErrConnectionClosed
	}
	return c.conn.Publish(subject, data)
}

// Subscribe registers handler for subject over core NATS
func (c *Client) Subscribe(subject string, handler nats.MsgHandler) (*nats.Subscription, error) {
	if c == nil || c.conn == nil {
		return nil, nats.ErrConnectionClosed
	}
	return c.conn.Subscribe(subject, handler)
}

// Connected reports whether the connection is usable
func (c *Client) Connected() bool {
	return c != nil && c.conn != nil && c.conn.IsConnected()
}

// Close drains and closes the connection
func (c *Client) Close() {
	if c == nil || c.conn == nil {
		return
	}
	if err := c.conn.Drain(); err != nil {
		c.conn.Close()
	}
}
