package plir

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Copyright © 2024 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Mode names one of the two constructions. They agree only on single-stage messages no longer
// than one chunk.
type Mode int

const (
	Stream Mode = iota
	Chain
)

func (m Mode) String() string {
	switch m {
	case Stream:
		return "stream"
	case Chain:
		return "chain"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// SumFrom hashes everything r yields under mode m. Chain mode holds the whole message in memory;
// stream mode holds one chunk and checks ctx between chunks.
func (c Config) SumFrom(ctx context.Context, r io.Reader, m Mode) (string, error) {
	if m == Stream {
		return SumReader(ctx, r, c)
	}
	if err := c.Validate(); err != nil {
		return "", err
	}
	msg, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("plir: reading message: %w", err)
	}
	return c.Sum(msg)
}

// SumFile hashes the file at path under mode m.
func (c Config) SumFile(ctx context.Context, path string, m Mode) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("plir: opening %s: %w", path, err)
	}
	defer file.Close()

	digest, err := c.SumFrom(ctx, file, m)
	if err != nil {
		return "", fmt.Errorf("plir: hashing %s: %w", path, err)
	}
	return digest, nil
}
