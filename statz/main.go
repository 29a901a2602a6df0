package main

import (
	. "fmt"
	"github.com/dterei/gotsc"
	"github.com/spf13/pflag"
	"math/rand"
	"os"
	"runtime"
	"strconv"
	"sync"
	"testing"
	"time"
)

// Copyright © 2024 Matthew R Bonnette. Licensed under the Apache-2.0 license.

var sizes = [...]int{64, 512 << 10, 64 << 20, 1 << 30}
var labels = [len(sizes)]string{"64B", "512K", "64M", "1G"}
var bytes, calltime = []byte(nil), gotsc.TSCOverhead()

func benchFunc(a alg) func(b *testing.B) {
	return func(b *testing.B) {
		b.SetBytes(int64(len(bytes)))
		b.ResetTimer()
		for i := b.N; i > 0; i-- {
			a.sum(bytes)
		}
	}
}

// throughput reports, for each of sizes, how many MB/s a.sum processes and, where the time stamp
// counter is usable, how many cycles it spends per byte.
func throughput(a alg) (mbps, cpb []float64) {
	mbps, cpb = make([]float64, len(sizes)), make([]float64, len(sizes))
	for i, v := range sizes {
		bytes = make([]byte, v)

		var hz, polls uint64
		var mut sync.Mutex
		done := make(chan struct{})
		if calltime > 0 {
			go func() {
				for {
					select {
					case <-done:
						return
					case <-time.After(9 * time.Millisecond):
					}
					tsc := gotsc.BenchStart()
					time.Sleep(time.Millisecond)
					tsc = gotsc.BenchEnd() - tsc - calltime

					mut.Lock()
					hz, polls = hz+tsc*1000, polls+1
					mut.Unlock()
				}
			}()
		}
		r := testing.Benchmark(benchFunc(a))
		close(done)

		bps := float64(r.Bytes*int64(r.N)) / r.T.Seconds()
		mbps[i] = bps / 1e6
		mut.Lock()
		if polls > 0 {
			cpb[i] = float64(hz) / float64(polls) / bps
		}
		mut.Unlock()
	}
	return mbps, cpb
}

// header titles a results table with one column per entry of sizes.
func header(title string) string {
	line := Sprintf("%-30s", title)
	for _, l := range labels {
		line += Sprintf(" %10s", l)
	}
	return line
}

// row renders one line of a results table: the name padded to the statistics column, then each
// value right-aligned with as many decimals as fit in ten columns.
func row(name string, vals []float64) string {
	line := Sprintf("%-30s", name)
	for _, v := range vals {
		cell := strconv.FormatFloat(v, 'f', 3, 64)
		if len(cell) > 10 {
			cell = strconv.FormatFloat(v, 'g', 4, 64)
		}
		line += Sprintf(" %10s", cell)
	}
	return line
}

func main() {
	flags := pflag.NewFlagSet("statz", pflag.ExitOnError)
	samples := flags.IntP("samples", "n", 50000, "messages hashed per statistical test")
	seed := flags.Int64("seed", time.Now().UnixNano(), "seed for generated messages")
	quick := flags.BoolP("quick", "q", false, "skip throughput benchmarks")
	flags.SortFlags = false
	_ = flags.Parse(os.Args[1:])

	Printf("Running Statz on %d CPUs!\n%s/%s\n\n", runtime.NumCPU(), runtime.GOOS, runtime.GOARCH)
	t := time.Now()

	Printf("%-30s %9s %10s %11s\n", "Statistics", "Monobit", "Avalanche", "Collisions")
	for _, a := range algs {
		rng := rand.New(rand.NewSource(*seed))
		Printf("%-30s %8.3f%% %9.3f%% %11d\n", a.name,
			monobit(a, *samples, rng), avalanche(a, *samples, rng), collisions(a, *samples, rng))
	}
	Println()

	if !*quick {
		Println(header("Throughput"))
		cycles := make([]string, 0, len(algs))
		for _, a := range algs {
			mbps, cpb := throughput(a)
			Println(row(a.name, mbps) + "  MB/s")
			if calltime > 0 {
				cycles = append(cycles, row(a.name, cpb)+"  cpb")
			}
		}
		if len(cycles) > 0 {
			Println()
			Println(header("Cycles"))
			for _, line := range cycles {
				Println(line)
			}
		}
		Println()
	}

	Println("Finished in " + time.Since(t).Truncate(time.Millisecond).String() + ".")
}
