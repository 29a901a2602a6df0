package main

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"os"
	"time"

	"github.com/p7r0x7/plir"
)

// Copyright © 2024 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// settings returns the configuration and mode the flags select. More than one stage implies
// chain mode, as stream mode has no stages.
func settings(rounds, stages, chunk int, chain, zeroPad bool) (plir.Config, plir.Mode, error) {
	cfg, mode := plir.DefaultConfig(), plir.Stream
	cfg.Rounds, cfg.Stages, cfg.ChunkSize = rounds, stages, chunk
	if zeroPad {
		cfg.Pad = 0
	}
	if chain || stages > 1 {
		mode = plir.Chain
	}
	return cfg, mode, cfg.Validate()
}

// render returns digest unchanged, or re-encoded as standard base64 when b64 is set.
func render(digest string, b64 bool) (string, error) {
	if !b64 {
		return digest, nil
	}
	raw, err := hex.DecodeString(digest)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// sumTargets hashes targets in order and reports each to fn with the time it took. Targets are
// messages themselves when strs is set; otherwise "-" is STDIN and anything else a path. Once
// ctx is done, no further target is started.
func sumTargets(ctx context.Context, cfg plir.Config, mode plir.Mode, targets []string, strs bool,
	fn func(target, digest string, took time.Duration, err error)) {
	for _, target := range targets {
		start := time.Now()
		digest, err := sumTarget(ctx, cfg, mode, target, strs)
		fn(target, digest, time.Since(start), err)
		if ctx.Err() != nil {
			return
		}
	}
}

func sumTarget(ctx context.Context, cfg plir.Config, mode plir.Mode, target string, strs bool) (string, error) {
	switch {
	case strs && mode == plir.Chain:
		return cfg.Sum([]byte(target))
	case strs:
		return cfg.SumStream([]byte(target))
	case target == "-" || target == os.Stdin.Name():
		return cfg.SumFrom(ctx, os.Stdin, mode)
	}
	return cfg.SumFile(ctx, target, mode)
}
