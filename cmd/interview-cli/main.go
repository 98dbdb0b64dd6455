package main

import (
	"os"

	"github.com/futig/interview-bot/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
