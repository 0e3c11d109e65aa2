package main

import (
	"fmt"
	"os"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
