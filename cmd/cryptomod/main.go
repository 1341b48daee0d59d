package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/cryptomod/cryptomod/internal/adapters/inbound/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		var coded interface{ ExitCode() int }
		if errors.As(err, &coded) {
			os.Exit(coded.ExitCode())
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
