package main

import (
	"net"
	"os"

	"github.com/p7r0x7/plir/udf"
	"github.com/sirupsen/logrus"
	. "github.com/spf13/pflag"
)

// Copyright © 2024 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// plird serves PLIR-256 as a database command to any Redis-protocol client.

var pAddr, pDebug, pHelp = "", false, false

func init() {
	BoolVarP(&pHelp, "help", "h", false, "print this help menu")
	StringVarP(&pAddr, "addr", "a", "127.0.0.1:6380", "address to listen on")
	BoolVar(&pDebug, "debug", false, "log every connection")
	CommandLine.SortFlags = false
	Parse()
}

func main() {
	if pHelp {
		PrintDefaults()
		return
	}
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if pDebug {
		log.SetLevel(logrus.DebugLevel)
	}

	ln, err := net.Listen("tcp", pAddr)
	if err != nil {
		log.WithError(err).Error("listen failed")
		os.Exit(1)
	}
	log.WithField("addr", ln.Addr().String()).Infof("serving %s", udf.Name)
	if err := udf.Serve(ln, log); err != nil {
		log.WithError(err).Error("server stopped")
		os.Exit(1)
	}
}
