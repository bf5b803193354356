package commands

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/erraggy/apidiff"
	"github.com/erraggy/apidiff/apidoc"
	"github.com/erraggy/apidiff/differ"
	"github.com/erraggy/apidiff/internal/cliutil"
	"github.com/erraggy/apidiff/report"
)

// DiffFlags contains flags for the diff command
type DiffFlags struct {
	Config        string
	Format        string
	Output        string
	Methods       string
	NoSchemas     bool
	NoTags        bool
	NoServers     bool
	Responses     bool
	ParamIdentity string
	Workers       int
	Emoji         bool
	Fingerprint   bool
	FailOnDiff    bool
	LogLevel      string
	LogFile       string
}

// SetupDiffFlags creates and configures a FlagSet for the diff command.
// Returns the FlagSet and a DiffFlags struct with bound flag variables.
func SetupDiffFlags() (*flag.FlagSet, *DiffFlags) {
	fs := flag.NewFlagSet("diff", flag.ContinueOnError)
	flags := &DiffFlags{}

	fs.StringVar(&flags.Config, "config", "", "YAML configuration file")
	fs.StringVar(&flags.Format, "format", report.FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.Format, "f", report.FormatText, "output format (shorthand)")
	fs.StringVar(&flags.Output, "output", "", "write the report to a file instead of stdout")
	fs.StringVar(&flags.Output, "o", "", "output file (shorthand)")
	fs.StringVar(&flags.Methods, "methods", "", "comma-separated HTTP methods to compare (default get,post,put,delete,patch)")
	fs.BoolVar(&flags.NoSchemas, "no-schemas", false, "skip the schema name comparison")
	fs.BoolVar(&flags.NoTags, "no-tags", false, "skip the document-level tag comparison")
	fs.BoolVar(&flags.NoServers, "no-servers", false, "skip the server list comparison")
	fs.BoolVar(&flags.Responses, "responses", false, "compare declared response codes")
	fs.StringVar(&flags.ParamIdentity, "param-identity", "", "parameter identity: name or name-in (default name)")
	fs.IntVar(&flags.Workers, "workers", 0, "concurrent endpoint comparisons (default GOMAXPROCS)")
	fs.BoolVar(&flags.Emoji, "emoji", false, "prefix text report headings with emoji")
	fs.BoolVar(&flags.Fingerprint, "fingerprint", false, "print a hash of the result to stderr")
	fs.BoolVar(&flags.FailOnDiff, "fail-on-diff", false, "exit with status 1 when the documents differ")
	fs.StringVar(&flags.LogLevel, "log-level", "", "log level: debug, info, warn, or error (default warn)")
	fs.StringVar(&flags.LogFile, "log-file", "", "write JSON logs to a rotated file instead of stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: apidiff diff [flags] <old> <new>\n\n")
		cliutil.Writef(fs.Output(), "Compare two versions of an API description document and report differences.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nOutput Formats:\n")
		cliutil.Writef(fs.Output(), "  text (default)  Human-readable report\n")
		cliutil.Writef(fs.Output(), "  json            JSON format for programmatic processing\n")
		cliutil.Writef(fs.Output(), "  yaml            YAML format for programmatic processing\n")
		cliutil.Writef(fs.Output(), "\nConfiguration:\n")
		cliutil.Writef(fs.Output(), "  Defaults can be set in a YAML file passed with --config and overridden by\n")
		cliutil.Writef(fs.Output(), "  %s_* environment variables, e.g. %s_DIFF_PARAM_IDENTITY=name-in.\n", EnvPrefix, EnvPrefix)
		cliutil.Writef(fs.Output(), "  Flags take precedence over both.\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  apidiff diff api-v1.yaml api-v2.yaml\n")
		cliutil.Writef(fs.Output(), "  apidiff diff --emoji --responses api-v1.yaml api-v2.yaml\n")
		cliutil.Writef(fs.Output(), "  apidiff diff --format json -o changes.json api-v1.json api-v2.json\n")
		cliutil.Writef(fs.Output(), "  apidiff diff --methods get,post --param-identity name-in old.yaml new.yaml\n")
		cliutil.Writef(fs.Output(), "\nExit Status:\n")
		cliutil.Writef(fs.Output(), "  0    Comparison completed (or no differences with --fail-on-diff)\n")
		cliutil.Writef(fs.Output(), "  1    Error, or differences found with --fail-on-diff\n")
	}

	return fs, flags
}

// HandleDiff executes the diff command
func HandleDiff(args []string) error {
	fs, flags := SetupDiffFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("diff command requires exactly two file paths")
	}
	oldPath, newPath := fs.Arg(0), fs.Arg(1)

	cfg, err := LoadConfig(flags.Config)
	if err != nil {
		return err
	}
	applyDiffFlags(fs, flags, cfg)

	if err := report.ValidateFormat(cfg.Diff.Format); err != nil {
		return err
	}
	identity, err := differ.ParseParamIdentity(cfg.Diff.ParamIdentity)
	if err != nil {
		return err
	}

	logger, closer, err := NewLogger(cfg.Log, Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()
	logger = logger.With("command", "diff", "version", apidiff.Version())

	opts := []differ.Option{
		differ.WithSourceFilePath(oldPath),
		differ.WithTargetFilePath(newPath),
		differ.WithCompareSchemas(cfg.Diff.CompareSchemas),
		differ.WithCompareTags(cfg.Diff.CompareTags),
		differ.WithCompareServers(cfg.Diff.CompareServers),
		differ.WithCompareResponses(cfg.Diff.CompareResponses),
		differ.WithParamIdentity(identity),
		differ.WithLogger(apidoc.NewSlogAdapter(logger)),
	}
	if len(cfg.Diff.Methods) > 0 {
		opts = append(opts, differ.WithMethods(cfg.Diff.Methods...))
	}
	if cfg.Diff.Workers != 0 {
		opts = append(opts, differ.WithWorkers(cfg.Diff.Workers))
	}

	startTime := time.Now()
	result, err := differ.DiffWithOptions(opts...)
	if err != nil {
		return fmt.Errorf("comparing documents: %w", err)
	}
	logger.Info("diff finished",
		"old", oldPath,
		"new", newPath,
		"modified", result.Stats.Modified,
		"elapsed", time.Since(startTime))

	var buf bytes.Buffer
	textOpts := report.TextOptions{Emoji: cfg.Diff.Emoji, OldLabel: oldPath, NewLabel: newPath}
	if err := report.Write(&buf, result, cfg.Diff.Format, textOpts); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	if err := writeOutput(flags.Output, []string{oldPath, newPath}, buf.Bytes()); err != nil {
		return err
	}

	if flags.Fingerprint {
		sum, err := report.Fingerprint(result)
		if err != nil {
			return err
		}
		cliutil.Writef(Stderr, "Fingerprint: %s\n", sum)
	}

	if flags.FailOnDiff && result.HasChanges() {
		return ErrDifferencesFound
	}
	return nil
}

// applyDiffFlags overrides cfg with the flags the user actually set.
func applyDiffFlags(fs *flag.FlagSet, flags *DiffFlags, cfg *Config) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format", "f":
			cfg.Diff.Format = flags.Format
		case "methods":
			cfg.Diff.Methods = splitList(flags.Methods)
		case "no-schemas":
			cfg.Diff.CompareSchemas = !flags.NoSchemas
		case "no-tags":
			cfg.Diff.CompareTags = !flags.NoTags
		case "no-servers":
			cfg.Diff.CompareServers = !flags.NoServers
		case "responses":
			cfg.Diff.CompareResponses = flags.Responses
		case "param-identity":
			cfg.Diff.ParamIdentity = flags.ParamIdentity
		case "workers":
			cfg.Diff.Workers = flags.Workers
		case "emoji":
			cfg.Diff.Emoji = flags.Emoji
		case "log-level":
			cfg.Log.Level = flags.LogLevel
		case "log-file":
			cfg.Log.File = flags.LogFile
		}
	})
}
