package main

import (
	"context"
	. "fmt"
	"github.com/p7r0x7/plir/clockhex"
	"github.com/p7r0x7/vainpath"
	"github.com/sirupsen/logrus"
	. "github.com/spf13/pflag"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

// Copyright © 2024 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const n, version = "\n", "0.2.0"
const success, failure, invalid = 0, 1, 2

var warnings = 0
var log = logrus.New()

func main() { os.Exit(program()) }

// help prints a usage menu. To consistently correctly render this menu in most terminal windows,
// its content should be no wider than 80 columns.
func help() {
	origin, err := os.Executable()
	if err != nil {
		origin = "plirsum" /* Default binary name */
	} else {
		origin = filepath.Base(origin)
	}
	name := vainpath.Trim(origin, "…", 12)
	spaces := strings.Repeat(" ", utf8.RuneCountInString(name)+3)
	Fprint(os.Stderr, yell, "PLIR-256: a 256-bit digest with no security claims whatsoever.", zero, n+n+
		"Usage:"+n+
		"  ", name, " [-h|-V]"+n,
		spaces, "[-g <int>|-n <int>]"+n,
		spaces, "[-bct] [-r <int>] [-S <int>] [--chunk <int>] [--zero-pad]"+n,
		spaces, "[--quiet|no-codes] [--strict] -|PATH..."+n,
		spaces, "[-bct] [-r <int>] [-S <int>] [--chunk <int>] [--zero-pad]"+n,
		spaces, "[--quiet|no-codes] [--strict] -s STRING..."+n+n+
			"Options:"+n)
	PrintDefaults()
	name = vainpath.Trim(origin, "…", 15)
	Fprint(os.Stderr, n+"Order of arguments placed after `", name, "` does not matter unless `--` is"+
		n+"specified, signaling the end of parsed flags. Long-form flag equivalents are"+n+
		"above. `-` is treated as a reference to ", os.Stdin.Name(), " on this platform."+n+n+
		"Stream mode folds fixed-size chunks into one state; chain mode rehashes each"+n+
		"stage's hex digest. They agree only on one stage of at most one chunk."+n)
}

// This program is a command-line interface for plir: It handles various flags and an unlimited
// number of arguments, processing files as required by the command-line operator.
func program() int {
	parse()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableColors: pNoCodes, DisableTimestamp: true})
	if pDebug {
		log.SetLevel(logrus.DebugLevel)
	} else if pQuiet {
		log.SetLevel(logrus.ErrorLevel)
	}

	switch {
	case pVersion:
		Println("plirsum", version)
		return success
	case pGenerate >= 0:
		return auxiliary(clockhex.Hex, pGenerate)
	case pNanos >= 0:
		return auxiliary(clockhex.Tail, pNanos)
	case pHelp || NArg() == 0:
		help()
		return success
	}

	cfg, mode, err := settings(pRounds, pStages, pChunk, pChain, pZeroPad)
	if err != nil {
		log.Error(err)
		return invalid
	}
	log.WithFields(logrus.Fields{"mode": mode, "rounds": cfg.Rounds, "stages": cfg.Stages,
		"chunk": cfg.ChunkSize}).Debug("configured")

	/* An interrupt stops stream mode at the next read and skips any remaining targets. */
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sumTargets(ctx, cfg, mode, Args(), pString, func(target, digest string, took time.Duration, err error) {
		if err == nil {
			digest, err = render(digest, pBase64)
		}
		if err != nil {
			warn(target, err)
			return
		}

		delta := ""
		if pTime {
			if took.Microseconds() > 99 {
				took = took.Truncate(10 * time.Microsecond)
			}
			delta = " (" + took.String() + ")"
		}

		if pQuiet {
			Print(digest, n)
		} else if pString {
			Print(yell, digest, zero, `  "`, target, `"`, delta, n)
		} else if pNoCodes {
			Print(digest, `  `, filepath.Clean(target), delta, n)
		} else {
			Print(yell, digest, zero, `  `, und, vainpath.Simplify(target), zero, delta, n)
		}
	})

	if !pQuiet {
		if warnings == 1 {
			Fprint(os.Stderr, "1 ", purp, "target is a directory or is otherwise inaccessible.", zero, n)
		} else if warnings > 1 {
			Fprint(os.Stderr, warnings, " ", purp, "targets are directories or are otherwise inaccessible.", zero, n)
		}
	}
	if warnings > 0 {
		return failure
	}
	return success
}

// auxiliary prints the clock-derived output of fn, which does not involve any message.
func auxiliary(fn func(int, time.Time) (string, error), length int) int {
	out, err := fn(length, time.Now())
	if err != nil {
		log.Error(err)
		return invalid
	}
	Println(out)
	return success
}

func warn(target string, err error) {
	if pStrict {
		panic(err)
	}
	log.WithField("target", target).Warn(err)
	warnings++
}
