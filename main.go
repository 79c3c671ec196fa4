package main

import (
	"context"
	"fmt"
	"os"

	"github.com/thenoetrevino/dealboard/cmd"
	"github.com/thenoetrevino/dealboard/internal/cli"
)

func main() {
	err := cmd.Execute(context.Background(), os.Args[1:])
	if err == nil {
		return
	}

	// Command handlers print their own errors; anything else failed
	// before a handler ran
	if cli.Reported(err) {
		os.Exit(cli.ExitCode(err))
	}
	_, exit, suggestion := cli.Classify(err)
	fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
	if suggestion != "" {
		fmt.Fprintf(os.Stderr, "💡 Suggestion: %s\n", suggestion)
	}
	os.Exit(exit)
}
