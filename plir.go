// Package plir implements PLIR-256, a 256-bit non-cryptographic digest built from a seeded message
// expansion and an 8-word mixing round. It offers two distinct, mutually incompatible modes:
//
//   - chain: Sum and Config.Sum restart from the initialization vector at every stage, feeding
//     each stage the previous stage's hex digest and a 32-bit running fold of it.
//   - stream: Digest, SumStream and SumReader fold fixed-size chunks into one persistent state and
//     render it once at the end.
//
// For single-stage hashing of messages no longer than one chunk, the two modes agree.
//
// PLIR-256 has no security analysis behind it; do not use it where collision or preimage
// resistance matters.
package plir

import (
	"crypto/subtle"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"strings"
)

//go:generate go run ./iv_gen

// N.B.: This project is currently InDev.
// Copyright © 2024 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const (
	// Size is the length of a digest in bytes; HexSize its length as rendered text.
	Size, HexSize = 32, 64

	DefaultRounds    = 8
	DefaultStages    = 1
	DefaultChunkSize = 4 << 10
	DefaultPad       = ' '

	// MaxChunkSize bounds Config.ChunkSize; a stream-mode Digest may buffer up to one chunk.
	MaxChunkSize = 1 << 30
)

var (
	ErrRounds    = errors.New("plir: round count must be at least 1")
	ErrStages    = errors.New("plir: stage count must be at least 1")
	ErrChunkSize = errors.New("plir: chunk size must be between 1 byte and 1 GiB")
)

// State is the 8-word working register of a digest computation.
type State [8]uint32

// Bytes renders s as 32 bytes, each word big-endian, h[0] first.
func (s State) Bytes() (b [Size]byte) {
	for i, w := range s {
		binary.BigEndian.PutUint32(b[i<<2:], w)
	}
	return b
}

// String renders s as 64 lower-case hexadecimal digits, h[0] first.
func (s State) String() string {
	b := s.Bytes()
	return hex.EncodeToString(b[:])
}

// Config selects one variant of the construction. The zero Config is invalid; start from
// DefaultConfig.
type Config struct {
	Rounds    int       // compression rounds per stage or chunk
	Stages    int       // chain mode only
	ChunkSize int       // stream mode only
	Pad       byte      // fills the final partial block
	IV        [8]uint32 // initial state before any prior-stage fold
}

// DefaultConfig returns the canonical variant: 8 rounds, 1 stage, 4 KiB chunks, space padding
// and the SHA-256 initial words.
func DefaultConfig() Config {
	return Config{
		Rounds:    DefaultRounds,
		Stages:    DefaultStages,
		ChunkSize: DefaultChunkSize,
		Pad:       DefaultPad,
		IV:        IV,
	}
}

// Validate reports the first setting that would make c unusable.
func (c Config) Validate() error {
	switch {
	case c.Rounds < 1:
		return ErrRounds
	case c.Stages < 1:
		return ErrStages
	case c.ChunkSize < 1 || c.ChunkSize > MaxChunkSize:
		return ErrChunkSize
	}
	return nil
}

// Stage runs a single stage over msg: the state starts as the IV with every word xored by prior,
// then absorbs the expansion of msg over c.Rounds rounds.
func (c Config) Stage(msg []byte, prior uint32) State {
	var h State
	for i, w := range c.IV {
		h[i] = w ^ prior
	}
	compress(&h, expand(nil, msg, c.Pad), c.Rounds)
	return h
}

// Sum returns the chain-mode digest of msg. Every stage after the first hashes the previous
// stage's hex digest, seeded with the running xor of each completed stage's leading word.
func (c Config) Sum(msg []byte) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}

	var chain uint32
	var digest string
	for s := 0; s < c.Stages; s++ {
		h := c.Stage(msg, chain)
		digest = h.String()
		chain ^= h[0] /* The first 8 hex digits of digest. */
		msg = []byte(digest)
	}
	return digest, nil
}

// Sum returns the chain-mode digest of msg using the canonical padding and IV.
func Sum(msg []byte, rounds, stages int) (string, error) {
	c := DefaultConfig()
	c.Rounds, c.Stages = rounds, stages
	return c.Sum(msg)
}

// Equal reports whether two rendered digests match, ignoring case, in time independent of where
// they first differ.
func Equal(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(strings.ToLower(a)), []byte(strings.ToLower(b))) == 1
}
