package blaster

// payloadMask covers the bits the checksum is computed over.
const payloadMask = 0x00FFFFFF

// Checksum computes the 8-bit checksum of the low 24 bits of raw.
//
// The masks are fixed by the existing transmitters and must not change.
func Checksum(raw uint32) uint8 {
	raw &= payloadMask
	c := ((raw << 2) & 0b10000000111111110111111100) ^
		((raw << 1) & 0b01111111100000000111111110) ^
		((raw << 0) & 0b00000000111111111111111111) ^
		((raw >> 1) & 0b00000000100000000000000000) ^
		((raw >> 2) & 0b00000000011111110000000000) ^
		((raw >> 3) & 0b00000000111111111000000000) ^
		((raw >> 4) & 0b00000011100000001111111100) ^
		((raw >> 5) & 0b00000000111111111000000010)
	c ^= c>>8 ^ c>>16 ^ c>>24
	return uint8(c)
}

// Embed XORs the checksum of raw into its top byte. Applied by a sender to
// a word with bits 22-31 clear it produces the word to transmit; applied by
// the receiver to what it got it clears the crc field of an intact frame.
func Embed(raw uint32) uint32 {
	return raw ^ uint32(Checksum(raw))<<24
}

// Seal returns p with its checksum in place, ready to go on the air.
// Whatever p held in bits 22-31 is discarded.
func Seal(p Packet) Packet {
	raw := uint32(p) &^ (crcMask | unusedMask)
	return Packet(Embed(raw))
}

// Valid reports whether raw is a non-empty frame whose checksum holds.
func Valid(raw uint32) bool {
	if raw == 0 {
		return false
	}
	return Packet(Embed(raw)).CRC() == 0
}
