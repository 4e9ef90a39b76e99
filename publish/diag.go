package publish

import "context"

// DiagSession prints what it would publish instead of talking to a broker.
// Used on MCU builds until the netdev-backed uplink lands, and by dry runs.
type DiagSession struct {
	connected bool
}

func (d *DiagSession) Connect(ctx context.Context, opts Options) error {
	println("publish:", "connect", opts.Server, "client", opts.ClientID)
	d.connected = true
	return nil
}

func (d *DiagSession) Publish(ctx context.Context, topic string, body []byte) error {
	if !d.connected {
		println("publish:", "publish before connect")
		return nil
	}
	println("publish:", topic, string(body))
	return nil
}

func (d *DiagSession) Disconnect(ctx context.Context) {
	if d.connected {
		println("publish:", "disconnect")
	}
	d.connected = false
}
