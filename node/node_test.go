package node

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/publish"
	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/rtcmem"
	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/sensor"
	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/wifilink"
)

type fakeSleeper struct {
	calls int
	last  time.Duration
}

func (f *fakeSleeper) DeepSleep(d time.Duration) {
	f.calls++
	f.last = d
}

// fakeSession records calls; ConnectErr / PublishErr script failures.
type fakeSession struct {
	ConnectErr  error
	PublishErr  error
	connects    int
	disconnects int
	topics      []string
	bodies      []string
}

func (f *fakeSession) Connect(ctx context.Context, opts publish.Options) error {
	f.connects++
	return f.ConnectErr
}

func (f *fakeSession) Publish(ctx context.Context, topic string, body []byte) error {
	f.topics = append(f.topics, topic)
	f.bodies = append(f.bodies, string(body))
	return f.PublishErr
}

func (f *fakeSession) Disconnect(ctx context.Context) { f.disconnects++ }

type fixture struct {
	radio   *wifilink.Sim
	region  *rtcmem.MemRegion
	store   *rtcmem.Store
	session *fakeSession
	sleeper *fakeSleeper
	ctrl    *Controller
}

func newFixture(radio *wifilink.Sim, reader sensor.Reader) *fixture {
	f := &fixture{
		radio:   radio,
		region:  &rtcmem.MemRegion{},
		session: &fakeSession{},
		sleeper: &fakeSleeper{},
	}
	f.store = rtcmem.NewStore(f.region)
	linkCfg := wifilink.Config{
		Tick:          10 * time.Millisecond,
		FallbackTicks: 4,
		GiveUpTicks:   10,
		ResetPause:    time.Millisecond,
		SleepInterval: 10 * time.Minute,
	}
	machine := wifilink.NewMachine(radio, f.store, f.sleeper, linkCfg)
	f.ctrl = New(Config{
		Topic:         "home/esp-node",
		Credentials:   wifilink.Credentials{SSID: "attic"},
		SleepInterval: 10 * time.Minute,
	}, Deps{
		Radio:   radio,
		Store:   f.store,
		Machine: machine,
		Reader:  reader,
		Session: f.session,
		Sleeper: f.sleeper,
	})
	return f
}

// Scenario A: no persisted record, standard association succeeds on tick 3.
func TestRunCycle_FreshBootConnectsAndPersists(t *testing.T) {
	radio := &wifilink.Sim{FastUpAfter: -1, SlowUpAfter: 3, Channel: 6, BSSID: [6]byte{0x02, 0x13, 0x37, 0xAB, 0xCD, 0xEF}}
	f := newFixture(radio, sensor.Fixed(23.4, 51))

	f.ctrl.RunCycle(context.Background())

	if radio.FastJoins != 0 || radio.SlowJoins != 1 {
		t.Fatalf("joins fast=%d slow=%d, want 0/1", radio.FastJoins, radio.SlowJoins)
	}
	if len(f.session.bodies) != 1 {
		t.Fatalf("published %d messages, want 1", len(f.session.bodies))
	}
	if f.session.topics[0] != "home/esp-node" {
		t.Fatalf("topic %q", f.session.topics[0])
	}
	if f.session.bodies[0] != `{"temperature":23.4,"humidity":51.0}` {
		t.Fatalf("body %q", f.session.bodies[0])
	}
	rec, ok := f.store.Load()
	if !ok || rec.Channel != 6 {
		t.Fatalf("store after cycle: %+v ok=%v, want negotiated record", rec, ok)
	}
	if f.sleeper.calls != 1 || f.sleeper.last != 10*time.Minute {
		t.Fatalf("sleep calls=%d last=%v, want one 10m sleep", f.sleeper.calls, f.sleeper.last)
	}
	if f.session.disconnects != 1 {
		t.Fatalf("disconnects = %d, want 1", f.session.disconnects)
	}
	if f.radio.Enabled() {
		t.Fatal("radio left enabled at end of cycle")
	}
}

// Scenario B: valid record, fast path never comes up, slow path succeeds
// after the fallback; the record is overwritten with the new values.
func TestRunCycle_FastPathFallsBackAndOverwritesRecord(t *testing.T) {
	radio := &wifilink.Sim{FastUpAfter: -1, SlowUpAfter: 5, Channel: 11, BSSID: [6]byte{9, 9, 9, 9, 9, 9}}
	f := newFixture(radio, sensor.Fixed(20, 40))
	f.store.Save(rtcmem.LinkRecord{Channel: 6, BSSID: [6]byte{1, 1, 1, 1, 1, 1}})

	f.ctrl.RunCycle(context.Background())

	if radio.FastJoins != 1 || radio.SlowJoins != 1 {
		t.Fatalf("joins fast=%d slow=%d, want 1/1", radio.FastJoins, radio.SlowJoins)
	}
	if len(f.session.bodies) != 1 {
		t.Fatalf("published %d messages, want 1", len(f.session.bodies))
	}
	rec, ok := f.store.Load()
	if !ok || rec.Channel != 11 || rec.BSSID != radio.BSSID {
		t.Fatalf("record not overwritten: %+v ok=%v", rec, ok)
	}
	if f.sleeper.calls != 1 {
		t.Fatalf("sleep calls = %d, want 1", f.sleeper.calls)
	}
}

// Scenario C: association never succeeds. Give-up at the ceiling: radio off, nothing
// published, nothing persisted, exactly one deep sleep.
func TestRunCycle_GiveUpSleepsOnceWithoutPublishing(t *testing.T) {
	radio := &wifilink.Sim{FastUpAfter: -1, SlowUpAfter: -1}
	f := newFixture(radio, sensor.Fixed(20, 40))

	f.ctrl.RunCycle(context.Background())

	if f.session.connects != 0 || len(f.session.bodies) != 0 {
		t.Fatal("publish attempted on a failed cycle")
	}
	if _, ok := f.store.Load(); ok {
		t.Fatal("record persisted on a failed cycle")
	}
	if f.sleeper.calls != 1 {
		t.Fatalf("deep sleep invoked %d times, want exactly 1", f.sleeper.calls)
	}
	if f.radio.Enabled() {
		t.Fatal("radio left enabled after give-up")
	}
}

func TestRunCycle_SensorFailureStillPublishesSentinels(t *testing.T) {
	radio := &wifilink.Sim{FastUpAfter: -1, SlowUpAfter: 1, Channel: 1}
	f := newFixture(radio, sensor.Failing())

	f.ctrl.RunCycle(context.Background())

	if len(f.session.bodies) != 1 {
		t.Fatalf("published %d messages, want 1", len(f.session.bodies))
	}
	if !strings.Contains(f.session.bodies[0], "null") {
		t.Fatalf("body %q, want null sentinels", f.session.bodies[0])
	}
	if f.sleeper.calls != 1 {
		t.Fatalf("sleep calls = %d, want 1", f.sleeper.calls)
	}
}

func TestRunCycle_PublishFailureStillSleepsOnce(t *testing.T) {
	radio := &wifilink.Sim{FastUpAfter: -1, SlowUpAfter: 1, Channel: 1}
	f := newFixture(radio, sensor.Fixed(20, 40))
	f.session.ConnectErr = errFake("broker unreachable")

	f.ctrl.RunCycle(context.Background())

	if len(f.session.bodies) != 0 {
		t.Fatal("publish reached the session despite failed connect")
	}
	if f.session.disconnects != 1 {
		t.Fatalf("disconnects = %d, want teardown even after failure", f.session.disconnects)
	}
	if f.sleeper.calls != 1 {
		t.Fatalf("sleep calls = %d, want 1", f.sleeper.calls)
	}
	if f.radio.Enabled() {
		t.Fatal("radio left enabled after failed publish")
	}
}

type errFake string

func (e errFake) Error() string { return string(e) }
