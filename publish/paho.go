//go:build !tinygo && !baremetal

package publish

import (
	"context"
	"log/slog"
	"net"
	"net/url"
	"strconv"

	"github.com/eclipse/paho.golang/autopaho"
	"github.com/eclipse/paho.golang/paho"

	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/errcode"
)

// PahoSession is the MQTT session used by host builds and the simulator.
type PahoSession struct {
	logger *slog.Logger
	cm     *autopaho.ConnectionManager
}

func NewPahoSession(logger *slog.Logger) *PahoSession {
	if logger == nil {
		logger = slog.Default()
	}
	return &PahoSession{logger: logger}
}

func (s *PahoSession) Connect(ctx context.Context, opts Options) error {
	broker := &url.URL{
		Scheme: "mqtt",
		Host:   net.JoinHostPort(opts.Server, strconv.Itoa(int(opts.Port))),
	}
	cfg := autopaho.ClientConfig{
		ServerUrls:      []*url.URL{broker},
		KeepAlive:       30,
		ConnectUsername: opts.Username,
		ConnectPassword: []byte(opts.Password),
		OnConnectError: func(err error) {
			s.logger.Warn("mqtt connection error", "error", err)
		},
		ClientConfig: paho.ClientConfig{
			ClientID: opts.ClientID,
		},
	}
	cm, err := autopaho.NewConnection(ctx, cfg)
	if err != nil {
		return err
	}
	s.cm = cm
	if err := cm.AwaitConnection(ctx); err != nil {
		_ = cm.Disconnect(ctx)
		s.cm = nil
		return err
	}
	return nil
}

func (s *PahoSession) Publish(ctx context.Context, topic string, body []byte) error {
	if s.cm == nil {
		return errcode.NotConnected
	}
	_, err := s.cm.Publish(ctx, &paho.Publish{
		Topic:   topic,
		QoS:     0,
		Payload: body,
	})
	return err
}

func (s *PahoSession) Disconnect(ctx context.Context) {
	if s.cm == nil {
		return
	}
	_ = s.cm.Disconnect(ctx)
	s.cm = nil
}
