//go:build !tinygo && !baremetal

package rtcmem

import (
	"os"

	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/errcode"
)

// FileRegion backs the record with a file so host builds and the simulator
// keep state across process restarts, the same way RTC memory keeps state
// across deep sleep. A missing or short file reads as a region fault, which
// the store reports as an absent record.
type FileRegion struct {
	Path string
}

func (f *FileRegion) Read(buf []byte) error {
	if len(buf) != RecordSize {
		return errcode.RegionFault
	}
	b, err := os.ReadFile(f.Path)
	if err != nil || len(b) != RecordSize {
		return errcode.RegionFault
	}
	copy(buf, b)
	return nil
}

func (f *FileRegion) Write(buf []byte) error {
	if len(buf) != RecordSize {
		return errcode.RegionFault
	}
	if err := os.WriteFile(f.Path, buf, 0o644); err != nil {
		return &errcode.E{C: errcode.RegionFault, Op: "rtcmem.write", Err: err}
	}
	return nil
}
