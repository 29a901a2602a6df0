package main

import (
	"fmt"
	"math/big"
	"os"
)

// Copyright © 2024 Matthew R Bonnette. Licensed under the Apache-2.0 license.
/* Writes iv.go: the first 32 fractional bits of the square roots of the first eight primes. */

func main() {
	const count = 8
	iv := [count]uint32{}
	one, two32 := big.NewInt(1), new(big.Float).SetMantExp(big.NewFloat(1), 32)

	for i, dex := big.NewInt(2), 0; dex < count; i.Add(i, one) {
		if !i.ProbablyPrime(1) {
			continue
		}
		root := new(big.Float).SetPrec(128).SetInt(i)
		root.Sqrt(root)
		whole, _ := root.Int(nil)
		root.Sub(root, new(big.Float).SetInt(whole)).Mul(root, two32)
		frac, _ := root.Uint64()
		iv[dex] = uint32(frac)
		dex++
	}

	str := "// Code generated by iv_gen; DO NOT EDIT.\n\npackage plir\n\n" +
		"// IV holds the first 32 fractional bits of the square roots of the first eight primes, the\n" +
		"// same words SHA-256 starts from. Here they are only arbitrary-looking constants.\n" +
		"var IV = [8]uint32{\n"
	for i, v := range iv {
		switch i++; {
		case i%4 == 0:
			str += fmt.Sprintf("0x%08x,\n", v)
		case i%4 == 1:
			str += fmt.Sprintf("\t0x%08x, ", v)
		default:
			str += fmt.Sprintf("0x%08x, ", v)
		}
	}
	str += "}\n"

	if err := os.WriteFile("iv.go", []byte(str), 0666); err != nil {
		fmt.Println("Failed: iv.go could not be written.")
		os.Exit(1)
	}
	fmt.Println(len(str), "bytes written successfully to iv.go")
}
