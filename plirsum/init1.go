package main

import (
	. "github.com/spf13/pflag"
	"os"
)

var pRounds, pStages, pChunk, pGenerate, pNanos, pNoCodesDefault = 8, 1, 4096, -1, -1, false
var pHelp, pBase64, pChain, pNoCodes, pQuiet, pStrict, pString, pTime, pVersion, pZeroPad, pDebug bool
var yell, purp, und, zero = "\033[33m", "\033[35m", "\033[4m", "\033[0m"

func init() {
	for _, arg := range os.Args[1:] {
		switch arg {
		case "--no-codes=false":
			pNoCodes = false
		case "--quiet", "--quiet=true":
			pNoCodes, pQuiet = true, true
		case "--no-codes", "--no-codes=true":
			pNoCodes = true
		}
	}
	if pNoCodes {
		yell, purp, und, zero = "", "", "", ""
	}

	BoolVarP(&pHelp, "help", "h", false,
		purp+"print this help menu"+zero+n)

	BoolVarP(&pBase64, "base64", "b", false,
		purp+"render digests in base64"+zero+" (default hex)")

	BoolVarP(&pChain, "chain", "c", false,
		purp+"hash in chain mode, holding each message in memory"+zero+
			n+"(default stream mode; implied by --stages > 1)")

	IntVar(&pChunk, "chunk", pChunk,
		purp+"set stream mode chunk size in bytes"+zero)

	BoolVar(&pDebug, "debug", false, "")
	CommandLine.MarkHidden("debug")

	IntVarP(&pGenerate, "generate", "g", pGenerate,
		purp+"print this many clock-seeded hex digits and exit"+zero)

	IntVarP(&pNanos, "nanos", "n", pNanos,
		purp+"print this many trailing digits of the current"+zero+
			n+purp+"nanosecond timestamp and exit"+zero)

	Bool("no-codes", pNoCodesDefault,
		purp+"print to console w/o formatting codes or simplified"+zero+
			n+purp+"filepaths"+zero)

	Bool("quiet", false,
		purp+"suppress non-breaking errors and print ONLY digests"+zero+
			n+"(enables --no-codes)")

	IntVarP(&pRounds, "rounds", "r", pRounds,
		purp+"set compression rounds per stage or chunk"+zero)

	IntVarP(&pStages, "stages", "S", pStages,
		purp+"set chain mode stage count"+zero)

	BoolVar(&pStrict, "strict", false,
		purp+"cause plirsum to panic on any error"+zero)

	BoolVarP(&pString, "string", "s", false,
		purp+"process arguments instead as UTF-8 strings to be hashed"+zero)

	BoolVarP(&pTime, "time", "t", false,
		purp+"print time taken to read and hash each message"+zero)

	BoolVarP(&pVersion, "version", "V", false,
		purp+"print version information and exit"+zero)

	BoolVar(&pZeroPad, "zero-pad", false,
		purp+"pad final blocks with zero bytes"+zero+" (default spaces)")

	/* Order flags alphabetically except for help, which is hoisted to the top. */
	CommandLine.SortFlags = false
}

// parse reads the command line into the flag variables above.
func parse() {
	Parse()
	pStrict = pStrict || pDebug
}
