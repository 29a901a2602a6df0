package udf

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/p7r0x7/plir"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/redcon"
)

// Copyright © 2024 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Limits on what a single client request may ask of the server.
const (
	MaxRounds    = 1 << 10
	MaxStages    = 1 << 6
	MaxChunkSize = 1 << 20
)

// Serve answers Redis-protocol clients on ln until it fails. Besides PING and QUIT it knows:
//
//	PLIR256 value                   chain mode, 8 rounds, 1 stage
//	PLIR256X value rounds stages    chain mode, at most MaxRounds rounds and MaxStages stages
//	PLIR256STREAM value [chunk]     stream mode, 8 rounds, 4 KiB chunks up to MaxChunkSize
func Serve(ln net.Listener, log logrus.FieldLogger) error {
	return redcon.Serve(ln,
		func(conn redcon.Conn, cmd redcon.Command) {
			exec(conn, cmd.Args)
			for _, cmd := range conn.ReadPipeline() {
				exec(conn, cmd.Args)
			}
		},
		func(conn redcon.Conn) bool {
			log.WithField("remote", conn.RemoteAddr()).Debug("connection opened")
			return true
		},
		func(conn redcon.Conn, err error) {
			entry := log.WithField("remote", conn.RemoteAddr())
			if err != nil {
				entry.WithError(err).Warn("connection closed")
				return
			}
			entry.Debug("connection closed")
		})
}

func exec(conn redcon.Conn, args [][]byte) {
	if len(args) == 0 {
		return
	}
	switch name := strings.ToUpper(string(args[0])); name {
	case "PING":
		if len(args) > 1 {
			conn.WriteBulk(args[1])
			return
		}
		conn.WriteString("PONG")
	case "QUIT":
		conn.WriteString("OK")
		_ = conn.Close()
	case Name:
		if len(args) != 2 {
			conn.WriteError("ERR " + ErrArgCount.Error())
			return
		}
		arg := string(args[1])
		conn.WriteBulkString(*Eval(&arg))
	case Name + "X":
		if len(args) != 4 {
			conn.WriteError(fmt.Sprintf("ERR wrong number of arguments for '%s' command", name))
			return
		}
		rounds, err1 := strconv.Atoi(string(args[2]))
		stages, err2 := strconv.Atoi(string(args[3]))
		if err1 != nil || err2 != nil {
			conn.WriteError("ERR value is not an integer or out of range")
			return
		} else if rounds > MaxRounds || stages > MaxStages {
			conn.WriteError(fmt.Sprintf("ERR %s allows at most %d rounds and %d stages", name, MaxRounds, MaxStages))
			return
		}
		digest, err := plir.Sum(args[1], rounds, stages)
		if err != nil {
			conn.WriteError("ERR " + err.Error())
			return
		}
		conn.WriteBulkString(digest)
	case Name + "STREAM":
		if len(args) != 2 && len(args) != 3 {
			conn.WriteError(fmt.Sprintf("ERR wrong number of arguments for '%s' command", name))
			return
		}
		c := plir.DefaultConfig()
		if len(args) == 3 {
			size, err := strconv.Atoi(string(args[2]))
			if err != nil {
				conn.WriteError("ERR value is not an integer or out of range")
				return
			} else if size > MaxChunkSize {
				conn.WriteError(fmt.Sprintf("ERR %s allows chunks of at most %d bytes", name, MaxChunkSize))
				return
			}
			c.ChunkSize = size
		}
		digest, err := c.SumStream(args[1])
		if err != nil {
			conn.WriteError("ERR " + err.Error())
			return
		}
		conn.WriteBulkString(digest)
	default:
		conn.WriteError(fmt.Sprintf("ERR unknown command '%s'", string(args[0])))
	}
}
