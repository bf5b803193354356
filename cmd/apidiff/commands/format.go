package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/erraggy/apidiff/apidoc"
	"github.com/erraggy/apidiff/internal/cliutil"
)

// FormatFlags contains flags for the format command
type FormatFlags struct {
	Output string
	Quiet  bool
}

// SetupFormatFlags creates and configures a FlagSet for the format command.
func SetupFormatFlags() (*flag.FlagSet, *FormatFlags) {
	fs := flag.NewFlagSet("format", flag.ContinueOnError)
	flags := &FormatFlags{}

	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "o", "", "output file path (shorthand)")
	fs.BoolVar(&flags.Quiet, "q", false, "suppress progress messages")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: apidiff format [flags] <input.json> [output.json]\n\n")
		cliutil.Writef(fs.Output(), "Re-indent a JSON document with two spaces, keeping key order and non-ASCII text.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  apidiff format swagger.json\n")
		cliutil.Writef(fs.Output(), "  apidiff format swagger.json swagger-formatted.json\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - The output file may not be the input file\n")
		cliutil.Writef(fs.Output(), "  - Output file is written with restrictive permissions (0600)\n")
	}

	return fs, flags
}

// HandleFormat executes the format command
func HandleFormat(args []string) error {
	fs, flags := SetupFormatFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return fmt.Errorf("format command requires an input file and an optional output file")
	}
	inputPath := fs.Arg(0)
	outputPath := flags.Output
	if fs.NArg() == 2 {
		if outputPath != "" {
			return fmt.Errorf("output file given both as argument and with --output")
		}
		outputPath = fs.Arg(1)
	}

	data, err := os.ReadFile(inputPath) //nolint:gosec // reading user-supplied paths is the purpose
	if err != nil {
		return fmt.Errorf("reading input file: %w", err)
	}
	formatted, err := apidoc.FormatJSON(data)
	if err != nil {
		return fmt.Errorf("formatting %s: %w", inputPath, err)
	}
	formatted = append(formatted, '\n')

	if err := writeOutput(outputPath, []string{inputPath}, formatted); err != nil {
		return err
	}
	if outputPath != "" && !flags.Quiet {
		cliutil.Writef(Stderr, "Formatted %s -> %s (%s)\n", inputPath, outputPath, apidoc.FormatBytes(int64(len(formatted))))
	}
	return nil
}
