// Package udf exposes PLIR-256 the way a database expects a user-defined function: an argument
// check run once, then an evaluation per row with fixed parameters. Serve makes the same function
// available as a command over the Redis protocol.
package udf

import (
	"errors"

	"github.com/p7r0x7/plir"
)

// Copyright © 2024 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const (
	Name   = "PLIR256"
	Rounds = plir.DefaultRounds
	Stages = 1
)

var (
	ErrArgCount = errors.New(Name + "() requires exactly one string argument.")
	ErrArgType  = errors.New(Name + "() argument must be a string.")
)

// Init validates the arguments a caller declared for the function. Exactly one is allowed, and
// it must be a string, a byte slice, or nil (SQL NULL).
func Init(args []interface{}) error {
	if len(args) != 1 {
		return ErrArgCount
	}
	switch args[0].(type) {
	case string, []byte, *string, nil:
		return nil
	}
	return ErrArgType
}

// Eval returns the digest of *arg, or nil when arg is nil. Every call returns a fresh string.
func Eval(arg *string) *string {
	if arg == nil {
		return nil
	}
	digest, err := plir.Sum([]byte(*arg), Rounds, Stages)
	if err != nil {
		panic(err) /* Rounds and Stages are valid constants. */
	}
	return &digest
}
