// Package clockhex derives throwaway hexadecimal strings from the wall clock. Nothing it returns
// is deterministic across calls to time.Now, and none of it is suitable as a secret.
package clockhex

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"github.com/aead/chacha20/chacha"
	"github.com/p7r0x7/plir"
)

// Copyright © 2024 Matthew R Bonnette. Licensed under the Apache-2.0 license.

var ErrLength = errors.New("clockhex: length must not be negative")

// Hex returns n hexadecimal digits drawn from a ChaCha20 keystream keyed with the PLIR-256 state
// of now's decimal nanosecond timestamp, with the timestamp itself as the nonce.
func Hex(n int, now time.Time) (string, error) {
	if n < 0 {
		return "", ErrLength
	} else if n == 0 {
		return "", nil
	}
	nanos := now.UnixNano()
	key := plir.DefaultConfig().Stage(strconv.AppendInt(nil, nanos, 10), 0).Bytes()

	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], uint64(nanos))
	stream := make([]byte, (n+1)/2)
	chacha.XORKeyStream(stream, stream, nonce[:], key[:], 20)
	return hex.EncodeToString(stream)[:n], nil
}

// Tail returns the last n decimal digits of now's nanosecond timestamp, or all of them if there
// are fewer than n.
func Tail(n int, now time.Time) (string, error) {
	if n < 0 {
		return "", ErrLength
	}
	digits := strconv.FormatInt(now.UnixNano(), 10)
	if n < len(digits) {
		digits = digits[len(digits)-n:]
	}
	return digits, nil
}
