package main

import (
	"fmt"
	"os"

	pkgversion "github.com/ledgerstream/streams-go/pkg/version"
)

// Build-time variables (set via -ldflags)
var (
	version   = ""        // Set via -ldflags "-X main.version=x.y.z"
	gitCommit = "unknown" // Set via -ldflags "-X main.gitCommit=..."
)

func getVersion() string {
	if version != "" {
		return version
	}
	return pkgversion.String()
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch command := os.Args[1]; command {
	case "demo":
		demoCommand()
	case "version":
		fmt.Printf("streamsctl version %s\n", getVersion())
		if gitCommit != "unknown" {
			fmt.Printf("Commit: %s\n", gitCommit)
		}
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`streamsctl - ledgerstream channel demo tool

USAGE:
    streamsctl <command> [options]

COMMANDS:
    demo      Publish messages through an in-memory ledger and print cursors
    version   Print version information
    help      Show this help message

EXAMPLES:
    # Two publishers, three messages each, deterministic from the seed
    streamsctl demo --seed "my demo seed" --publishers 2 --messages 3

    # JSON log output
    streamsctl demo --seed "my demo seed" --log-format json`)
}
