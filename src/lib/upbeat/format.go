package upbeat

// AppendHex appends d in upper case hex, without leading zeros (a zero value
// is a single '0').  No allocation, so it is safe before the heap is up.
func AppendHex(dst []byte, d uint64) []byte {
	var rb uint64
	var rc uint64

	started := false
	rb = 64
	for {
		rb -= 4
		rc = (d >> rb) & 0xF
		if rc != 0 || started || rb == 0 {
			started = true
			if rc > 9 {
				rc += 0x37
			} else {
				rc += 0x30
			}
			dst = append(dst, uint8(rc))
		}
		if rb == 0 {
			break
		}
	}
	return dst
}

// AppendDec appends d in decimal.
func AppendDec(dst []byte, d uint32) []byte {
	var digits [10]byte
	i := len(digits)
	for {
		i--
		digits[i] = byte('0' + d%10)
		d /= 10
		if d == 0 {
			break
		}
	}
	return append(dst, digits[i:]...)
}
