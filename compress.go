package plir

import "math/bits"

// Copyright © 2024 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// GoldenRatio is the first 32 fractional bits of the golden ratio. It seeds every round key and
// offsets every block before it is folded into the state.
const GoldenRatio uint32 = 0x9e3779b9

// compress updates h in place over rounds rounds, keying each even word with the round key and
// a block and each odd word with its freshly updated even neighbour. blocks must not be empty;
// short messages cycle through their blocks.
func compress(h *State, blocks []uint32, rounds int) {
	n := len(blocks)
	for i := 0; i < rounds; i++ {
		key := GoldenRatio ^ uint32(i*73) ^
			h[i&7]<<(i%6) ^ h[(i+3)&7]>>(i&3) ^ h[(i+5)&7]<<(i&7)

		/* Pairs are processed in order; each sees the words updated by the pairs before it. */
		for j := 0; j < 8; j += 2 {
			prev := h[(j+1)&7] ^ h[(j+3)&7]
			h[j] = mix(h[j], key) ^ (blocks[j%n] + GoldenRatio) ^ prev
			h[j+1] = mix(h[j+1], bits.RotateLeft32(h[j], 13)) ^
				h[(j+3)&7]>>5 ^ h[(j+6)&7]<<3 ^ bits.RotateLeft32(h[(j+7)&7], 17) ^ prev
		}
	}
}
