package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Populate embeddedConfigs at build time (e.g. via code generation) or
// manually during development.
// Key: device ID
// Val: raw JSON bytes for that device
// -----------------------------------------------------------------------------

const cfgEspNode = `{
  "ssid": "example-net",
  "passphrase": "example-pass",
  "server": "192.168.1.10",
  "port": 1883,
  "topic_prefix": "home/",
  "sleep_minutes": 10,
  "tick_ms": 100,
  "fallback_ticks": 100,
  "giveup_ticks": 600,
  "ip": "192.168.1.251",
  "gateway": "192.168.1.1",
  "mask": "255.255.255.0",
  "diagnostics": true
}`

var embeddedConfigs = map[string][]byte{
	"esp-node": []byte(cfgEspNode),
}
