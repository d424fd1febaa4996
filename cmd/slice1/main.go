package main

import (
	"fmt"
	"os"

	"github.com/sooomo/nonempty/cmd/slice1/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
