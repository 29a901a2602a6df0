package main

import (
	"math/bits"
	"math/rand"
	"strconv"

	"github.com/minio/sha256-simd"
	"github.com/p7r0x7/plir"
	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"
)

// Copyright © 2024 Matthew R Bonnette. Licensed under the Apache-2.0 license.

type alg struct {
	name string
	sum  func(msg []byte) []byte
}

var algs = []alg{
	{"github.com/p7r0x7/plir", func(msg []byte) []byte {
		b := plir.DefaultConfig().Stage(msg, 0).Bytes()
		return b[:]
	}},
	{"github.com/minio/sha256-simd", func(msg []byte) []byte {
		b := sha256.Sum256(msg)
		return b[:]
	}},
	{"github.com/zeebo/blake3", func(msg []byte) []byte {
		b := blake3.Sum256(msg)
		return b[:]
	}},
	{"github.com/zeebo/xxh3", func(msg []byte) []byte {
		b := xxh3.Hash128(msg).Bytes()
		return b[:]
	}},
}

// meanBias returns how far, on average, each output bit strays from being set in exactly half of
// digests, as a percentage of that half. 0% is ideal.
func meanBias(digests [][]byte) float64 {
	if len(digests) == 0 {
		return 0
	}
	tally := make([]int, len(digests[0])*8)
	for _, d := range digests {
		for i := range tally {
			tally[i] += int(d[i>>3] >> (7 - i&7) & 1)
		}
	}
	var total float64
	half := float64(len(digests)) / 2
	for _, v := range tally {
		if dev := float64(v) - half; dev < 0 {
			total -= dev
		} else {
			total += dev
		}
	}
	return total / float64(len(tally)) / half * 100
}

// randomDecimal returns the decimal text of a random integer below 10^18.
func randomDecimal(rng *rand.Rand) []byte {
	return strconv.AppendInt(nil, rng.Int63n(1e18), 10)
}

// monobit hashes samples random decimal strings and reports meanBias over the digests.
func monobit(a alg, samples int, rng *rand.Rand) float64 {
	digests := make([][]byte, samples)
	for i := range digests {
		digests[i] = a.sum(randomDecimal(rng))
	}
	return meanBias(digests)
}

// avalanche flips the lowest bit of the last byte of random decimal strings and returns the mean
// percentage of digest bits that change. 50% is ideal.
func avalanche(a alg, samples int, rng *rand.Rand) float64 {
	var changed, total int
	for i := samples; i > 0; i-- {
		msg := randomDecimal(rng)
		before := a.sum(msg)
		msg[len(msg)-1] ^= 1
		after := a.sum(msg)
		for k := range before {
			changed += bits.OnesCount8(before[k] ^ after[k])
		}
		total += len(before) * 8
	}
	return float64(changed) / float64(total) * 100
}

// collisions counts distinct random decimal strings whose digest was already produced by another.
func collisions(a alg, samples int, rng *rand.Rand) int {
	seen, count := make(map[string]string, samples), 0
	for i := samples; i > 0; i-- {
		msg := string(randomDecimal(rng))
		digest := string(a.sum([]byte(msg)))
		if prior, ok := seen[digest]; ok && prior != msg {
			count++
		} else if !ok {
			seen[digest] = msg
		}
	}
	return count
}
