package plir

import "math/bits"

// Copyright © 2024 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// expand appends to dst[:0] one word per 4-byte chunk of msg, read little-endian and padded with
// pad past the end of msg. Each word is whitened by a seed derived from the byte sum of msg, and
// the seed evolves strictly in order, so this loop cannot be split up. An empty msg expands to a
// single word made entirely of padding, since compress indexes blocks modulo their count.
func expand(dst []uint32, msg []byte, pad byte) []uint32 {
	dst, padWord := dst[:0], uint32(pad)*0x01010101
	if len(msg) == 0 {
		return append(dst, padWord) /* The seed of an empty message is 0. */
	}

	var sum uint32
	for _, b := range msg {
		sum += uint32(b)
	}
	seed := sum * 137

	for i := 0; i < len(msg); i += 4 {
		var word uint32
		if rem := msg[i:]; len(rem) >= 4 {
			/* Little-endian byte order */
			word = uint32(rem[0]) | uint32(rem[1])<<8 | uint32(rem[2])<<16 | uint32(rem[3])<<24
		} else {
			word = padWord
			for k, b := range rem {
				word = word&^(0xff<<(k*8)) | uint32(b)<<(k*8)
			}
		}
		dst = append(dst, word^seed>>((i>>2)&15))
		seed = bits.RotateLeft32(seed, 5) ^ seed*71
	}
	return dst
}
