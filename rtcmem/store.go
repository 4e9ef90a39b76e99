package rtcmem

import (
	"encoding/binary"

	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/x/crc32x"
)

// LinkRecord is the payload of the persisted record: the channel and access
// point hardware address of the last successful association. It is only ever
// written after a success, so a failed cycle cannot clobber a good record.
type LinkRecord struct {
	Channel uint8
	BSSID   [6]byte
}

// Store reads and writes the link record through a Region, validating every
// read against the embedded CRC.
type Store struct {
	region Region
}

func NewStore(region Region) *Store {
	return &Store{region: region}
}

// Load reads the record back. ok is false when the underlying read fails or
// the checksum does not match; both are expected, common outcomes (first
// boot, brown-out, corrupted region) and yield no fast-path data. An invalid
// record is discarded whole, never partially trusted.
func (s *Store) Load() (rec LinkRecord, ok bool) {
	var buf [RecordSize]byte
	if err := s.region.Read(buf[:]); err != nil {
		return LinkRecord{}, false
	}
	stored := binary.LittleEndian.Uint32(buf[0:4])
	if crc32x.Sum(buf[4:]) != stored {
		return LinkRecord{}, false
	}
	rec.Channel = buf[4]
	copy(rec.BSSID[:], buf[5:11])
	return rec, true
}

// Save recomputes the checksum over the new field values and writes the full
// record in a single region write. Best-effort: a failed or interrupted write
// is caught by the checksum on the next Load, so the error is swallowed.
func (s *Store) Save(rec LinkRecord) {
	var buf [RecordSize]byte
	buf[4] = rec.Channel
	copy(buf[5:11], rec.BSSID[:])
	buf[11] = 0 // padding, keeps the record 4-byte aligned
	binary.LittleEndian.PutUint32(buf[0:4], crc32x.Sum(buf[4:]))
	_ = s.region.Write(buf[:])
}
