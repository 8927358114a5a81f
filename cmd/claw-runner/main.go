// Package main is the entry point for claw-runner.
package main

import (
	"log"
	"os"

	"github.com/openclaw/claw-runner/internal/cli"
)

func main() {
	log.SetPrefix("[claw-runner] ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
