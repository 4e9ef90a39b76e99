// Package publish defines the uplink session the duty cycle hands its
// payload to. Topic names and client identifiers are opaque strings derived
// from device configuration; the session treats the body as bytes.
package publish

import "context"

// Options identify the broker and this device.
type Options struct {
	Server   string // broker host or IP
	Port     uint16
	ClientID string
	Username string
	Password string
}

// Session is one cycle's publish connection. Disconnect is safe to call
// whether or not Connect succeeded.
type Session interface {
	Connect(ctx context.Context, opts Options) error
	Publish(ctx context.Context, topic string, body []byte) error
	Disconnect(ctx context.Context)
}
