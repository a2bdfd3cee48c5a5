package truetype

// Big-endian accessors. Out-of-range reads return zero; callers that need
// to distinguish truncated data use reader.

func u8(b []byte, i int) uint8 {
	if i < 0 || i >= len(b) {
		return 0
	}
	return b[i]
}

func u16(b []byte, i int) uint16 {
	if i < 0 || i+2 > len(b) {
		return 0
	}
	return uint16(b[i])<<8 | uint16(b[i+1])
}

func i16(b []byte, i int) int16 { return int16(u16(b, i)) }

func u32(b []byte, i int) uint32 {
	if i < 0 || i+4 > len(b) {
		return 0
	}
	return uint32(b[i])<<24 | uint32(b[i+1])<<16 | uint32(b[i+2])<<8 | uint32(b[i+3])
}

// reader is a cursor over b that records, instead of panicking, when a
// read runs off the end.
type reader struct {
	b   []byte
	off int
	bad bool
}

func (r *reader) need(n int) bool {
	if r.off < 0 || r.off+n > len(r.b) {
		r.bad = true
		return false
	}
	return true
}

func (r *reader) u8() uint8 {
	if !r.need(1) {
		return 0
	}
	v := r.b[r.off]
	r.off++
	return v
}

func (r *reader) u16() uint16 {
	if !r.need(2) {
		return 0
	}
	v := uint16(r.b[r.off])<<8 | uint16(r.b[r.off+1])
	r.off += 2
	return v
}

func (r *reader) i16() int16 { return int16(r.u16()) }

func (r *reader) skip(n int) {
	if r.need(n) {
		r.off += n
	}
}
