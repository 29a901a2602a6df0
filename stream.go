package plir

import (
	"context"
	"fmt"
	"hash"
	"io"
)

// Copyright © 2024 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This file contains the stream-mode API, implementing the standard hash.Hash interface.

// Digest folds successive ChunkSize-byte chunks of everything written to it into one persistent
// state, in order, and never renders intermediate results. Chunk boundaries depend only on the
// total bytes written, not on how they were split across calls to Write. A Digest is not safe
// for concurrent use. Only Config.New and NewHash produce a usable Digest; the zero value
// rejects every write with ErrChunkSize.
type Digest struct {
	cfg    Config
	h      State
	dex    uint64 /* chunks folded so far */
	carry  []byte
	blocks []uint32
}

var _ hash.Hash = (*Digest)(nil)

// New returns a stream-mode Digest for c.
func (c Config) New() (*Digest, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	d := &Digest{cfg: c} /* carry and blocks grow with the input, never past one chunk. */
	d.Reset()
	return d, nil
}

// NewHash returns a stream-mode hash.Hash with the canonical configuration.
func NewHash() hash.Hash {
	d, _ := DefaultConfig().New()
	return d
}

func (d *Digest) Size() int { return Size }

func (d *Digest) BlockSize() int { return d.cfg.ChunkSize }

// Reset returns d to the IV, discarding anything written.
func (d *Digest) Reset() {
	d.h, d.dex, d.carry = State(d.cfg.IV), 0, d.carry[:0]
}

// Write only fails on a Digest that was not made by Config.New or NewHash.
func (d *Digest) Write(buf []byte) (int, error) {
	count, size := len(buf), d.cfg.ChunkSize
	if size < 1 {
		return 0, ErrChunkSize
	}
	if len(d.carry) > 0 {
		n := min(size-len(d.carry), len(buf))
		d.carry, buf = append(d.carry, buf[:n]...), buf[n:]
		if len(d.carry) < size {
			return count, nil
		}
		d.fold(d.carry)
		d.carry = d.carry[:0]
	}

	for len(buf) >= size {
		d.fold(buf[:size])
		buf = buf[size:]
	}
	if len(buf) > 0 {
		d.carry = append(d.carry, buf...)
	}
	return count, nil
}

// Sum appends the big-endian digest of everything written so far to b. d itself is unchanged,
// so writing may continue afterwards.
func (d *Digest) Sum(b []byte) []byte {
	h := d.State()
	sum := h.Bytes()
	return append(b, sum[:]...)
}

// State returns the state d would render if summed now. The pending partial chunk is folded into
// a copy; if nothing was ever written, a single empty chunk is.
func (d *Digest) State() State {
	h := d.h
	if len(d.carry) > 0 || d.dex == 0 {
		compress(&h, expand(nil, d.carry, d.cfg.Pad), d.cfg.Rounds)
	}
	return h
}

// String renders the current digest as hexadecimal text.
func (d *Digest) String() string { return d.State().String() }

func (d *Digest) fold(chunk []byte) {
	d.blocks = expand(d.blocks, chunk, d.cfg.Pad)
	compress(&d.h, d.blocks, d.cfg.Rounds)
	d.dex++
}

// SumStream returns the stream-mode digest of msg, as if msg had been written to a new Digest.
func (c Config) SumStream(msg []byte) (string, error) {
	d, err := c.New()
	if err != nil {
		return "", err
	}
	_, _ = d.Write(msg)
	return d.String(), nil
}

const readSize = 64 << 10

// SumReader streams r into a new Digest until io.EOF, reading at most readSize bytes at a time.
// ctx is checked between reads; a cancelled context stops the read and its error is returned.
func SumReader(ctx context.Context, r io.Reader, c Config) (string, error) {
	d, err := c.New()
	if err != nil {
		return "", err
	}

	buf := make([]byte, min(c.ChunkSize, readSize))
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		n, err := io.ReadFull(r, buf)
		_, _ = d.Write(buf[:n])
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		} else if err != nil {
			return "", fmt.Errorf("plir: reading chunk %d: %w", d.dex, err)
		}
	}
	return d.String(), nil
}
