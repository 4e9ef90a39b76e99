package rtcmem

import (
	"testing"
)

func TestStore_RoundTrip(t *testing.T) {
	region := &MemRegion{}
	s := NewStore(region)

	want := LinkRecord{Channel: 6, BSSID: [6]byte{0x02, 0x13, 0x37, 0xAB, 0xCD, 0xEF}}
	s.Save(want)

	got, ok := s.Load()
	if !ok {
		t.Fatal("Load after Save reported absent")
	}
	if got != want {
		t.Fatalf("round trip: got %+v, want %+v", got, want)
	}
}

func TestStore_SaveIdempotent(t *testing.T) {
	region := &MemRegion{}
	s := NewStore(region)
	rec := LinkRecord{Channel: 11, BSSID: [6]byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x01}}

	s.Save(rec)
	first, ok := s.Load()
	if !ok {
		t.Fatal("first Load reported absent")
	}
	s.Save(rec)
	second, ok := s.Load()
	if !ok {
		t.Fatal("second Load reported absent")
	}
	if first != second || first != rec {
		t.Fatalf("idempotence: %+v then %+v, want %+v both times", first, second, rec)
	}
}

func TestStore_NeverWrittenIsAbsent(t *testing.T) {
	s := NewStore(&MemRegion{})
	if _, ok := s.Load(); ok {
		t.Fatal("Load on never-written region reported a valid record")
	}
}

func TestStore_ReadFaultIsAbsent(t *testing.T) {
	region := &MemRegion{}
	s := NewStore(region)
	s.Save(LinkRecord{Channel: 1})

	region.FailReads = true
	if _, ok := s.Load(); ok {
		t.Fatal("Load over failing region reported a valid record")
	}
}

func TestStore_WriteFaultIsSilent(t *testing.T) {
	region := &MemRegion{}
	s := NewStore(region)
	s.Save(LinkRecord{Channel: 3, BSSID: [6]byte{1, 2, 3, 4, 5, 6}})

	// A failed overwrite must leave the prior record intact and valid.
	region.FailWrites = true
	s.Save(LinkRecord{Channel: 9})
	got, ok := s.Load()
	if !ok || got.Channel != 3 {
		t.Fatalf("failed overwrite: got %+v ok=%v, want prior record intact", got, ok)
	}
}

func TestStore_AnyBitFlipInvalidates(t *testing.T) {
	for i := 0; i < RecordSize; i++ {
		for bit := uint(0); bit < 8; bit++ {
			region := &MemRegion{}
			s := NewStore(region)
			s.Save(LinkRecord{Channel: 6, BSSID: [6]byte{0x02, 0x13, 0x37, 0xAB, 0xCD, 0xEF}})

			region.Corrupt(i, bit)
			if _, ok := s.Load(); ok {
				t.Fatalf("flip of byte %d bit %d still loaded as valid", i, bit)
			}
		}
	}
}

func TestFileRegion_RoundTripAndAbsence(t *testing.T) {
	path := t.TempDir() + "/rtc.bin"
	region := &FileRegion{Path: path}
	s := NewStore(region)

	if _, ok := s.Load(); ok {
		t.Fatal("Load before any Save reported a valid record")
	}

	want := LinkRecord{Channel: 4, BSSID: [6]byte{9, 8, 7, 6, 5, 4}}
	s.Save(want)
	got, ok := s.Load()
	if !ok || got != want {
		t.Fatalf("file round trip: got %+v ok=%v, want %+v", got, ok, want)
	}
}
