package ppu

// decodeRow decodes a row of tile data into 8 colour indices,
// leftmost pixel first. Each pixel takes its high bit from the
// first byte, and its low bit from the second.
func decodeRow(first, second uint8) [8]uint8 {
	var row [8]uint8
	for i := 0; i < 8; i++ {
		bit := 7 - i
		row[i] = ((first>>bit)&1)<<1 | (second>>bit)&1
	}
	return row
}

// reverse mirrors a decoded row horizontally.
func reverse(row [8]uint8) [8]uint8 {
	for i, j := 0, 7; i < j; i, j = i+1, j-1 {
		row[i], row[j] = row[j], row[i]
	}
	return row
}
