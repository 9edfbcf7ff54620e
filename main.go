package main

import (
	"os"

	"github.com/routepg/routepg/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
