// Command draftctl is the terminal companion for a live draft: one-shot
// status, needs, and recommendation views, plus a watch mode that polls the
// provider and re-prints recommendations as picks come in.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
