package plir

import "math/bits"

// Copyright © 2024 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// mix combines two words asymmetrically; mix(x, y) != mix(y, x) in general. The xor of the two
// products is taken before the additions, and y<<2 is folded in last.
func mix(x, y uint32) uint32 {
	return ((x*33 ^ y*19) + bits.RotateLeft32(x, 11) + bits.RotateLeft32(y, 15) + x>>3) ^ y<<2
}
