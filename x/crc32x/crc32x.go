// Package crc32x implements the checksum used to self-validate records kept
// in sleep-surviving memory: bit-at-a-time CRC-32 with polynomial 0x04C11DB7,
// seeded all-ones, consuming each byte MSB-first, no final xor (CRC-32/MPEG-2).
//
// The exact polynomial and seed must not change: a stored record is only
// readable by the implementation that wrote it, and a parameter change would
// invalidate every record already persisted on deployed devices. The value has
// no meaning to anything outside this device.
package crc32x

const poly = 0x04C11DB7

// Sum returns the checksum of p. Pure and total; equal inputs give equal sums.
func Sum(p []byte) uint32 {
	crc := uint32(0xFFFFFFFF)
	for _, b := range p {
		crc ^= uint32(b) << 24
		for i := 0; i < 8; i++ {
			if crc&0x80000000 != 0 {
				crc = crc<<1 ^ poly
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
