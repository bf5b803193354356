package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/erraggy/apidiff/internal/cliutil"
	"github.com/erraggy/apidiff/internal/mcpserver"
)

// HandleMCP runs the MCP server on stdio until the client disconnects or
// the process is interrupted.
func HandleMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: apidiff mcp\n\n")
		cliutil.Writef(fs.Output(), "Serve the diff and parse tools over the Model Context Protocol on stdio.\n")
		cliutil.Writef(fs.Output(), "Server defaults are read from APIDIFF_MCP_* environment variables.\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
