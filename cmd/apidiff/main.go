package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/erraggy/apidiff"
	"github.com/erraggy/apidiff/cmd/apidiff/commands"
)

// commandNames lists every top-level command, for typo suggestions.
var commandNames = []string{"diff", "format", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	os.Exit(run(os.Args[1], os.Args[2:]))
}

// run dispatches a command and returns the process exit status.
func run(command string, args []string) int {
	var err error
	switch command {
	case "version", "-v", "--version":
		fmt.Printf("apidiff %s\n", apidiff.Version())
		if len(args) > 0 && args[0] == "--verbose" {
			fmt.Println(apidiff.BuildInfo())
		}
		return 0
	case "help", "-h", "--help":
		printUsage()
		return 0
	case "diff":
		err = commands.HandleDiff(args)
	case "format":
		err = commands.HandleFormat(args)
	case "mcp":
		err = commands.HandleMCP(args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", s)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		return 1
	}

	if err != nil {
		if !errors.Is(err, commands.ErrDifferencesFound) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// suggestCommand returns the closest known command within edit distance 2,
// or "" when nothing is close enough.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Println(`apidiff - API description diff tool

Usage:
  apidiff <command> [options]

Commands:
  diff        Compare two versions of an API description document
  format      Pretty-print a JSON document, keeping key order
  mcp         Serve the diff and parse tools over MCP (stdio)
  version     Show version information (--verbose for build details)
  help        Show this help message

Examples:
  apidiff diff api-v1.yaml api-v2.yaml
  apidiff diff --format json -o changes.json api-v1.json api-v2.json
  apidiff format swagger.json swagger-formatted.json
  apidiff mcp

Run 'apidiff <command> --help' for more information on a command.`)
}
