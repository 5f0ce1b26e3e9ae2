package main

import (
	"os"

	"github.com/finko/finko/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
