// tes3conv converts TES3 plugins (.esp, .esm, .omwaddon) to JSON and
// back. The input format is detected from the file contents and the
// output format from the destination's extension.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/julianedwards/tes3conv"
)

// Set via ldflags.
var version = "dev"

func main() {
	if err := newRootCommand(tes3conv.NewConverter()).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "tes3conv: %v\n", err)
		os.Exit(1)
	}
}
