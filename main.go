package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mcncl/proptyper/internal/analyzer"
	"github.com/mcncl/proptyper/internal/config"
	"github.com/mcncl/proptyper/internal/errors"
	"github.com/mcncl/proptyper/internal/fetcher"
	"github.com/mcncl/proptyper/internal/formatter"
	"github.com/mcncl/proptyper/internal/generator"
	"github.com/mcncl/proptyper/internal/models"
	"github.com/mcncl/proptyper/internal/parser"
	"github.com/mcncl/proptyper/internal/prompt"
)

// Version information
const (
	Version = "0.1.0"
)

// Data sources offered when --source is not given
const (
	SourceURL  = "URL"
	SourceJSON = "JSON"
)

// CLI defines the command-line interface
type CLI struct {
	Config string `help:"Path to a config file. Defaults to the nearest .proptyper.yml." short:"c" type:"path"`
	Debug  bool   `help:"Enable debug logging." short:"d"`

	PropType PropTypeCmd `cmd:"" name:"propType" aliases:"proptype" help:"Generate a prop-types schema from example JSON."`
	Version  VersionCmd  `cmd:"" help:"Show version information."`
}

// PropTypeCmd generates a schema. Anything not given as a flag is prompted for.
type PropTypeCmd struct {
	Name   string `help:"Name of the generated schema and file." short:"n"`
	Source string `help:"Source of the JSON data: url or json." short:"s"`
	Data   string `help:"Example JSON given inline."`
	URL    string `help:"GET URL returning the example JSON." name:"url" short:"u"`
	Input  string `help:"Path to a file with the example JSON, - for stdin." short:"i"`
	Format string `help:"Output format: proptypes or jsonschema." short:"f"`
	OutDir string `help:"Directory the file is written to." short:"o"`
	Stdout bool   `help:"Print the result instead of writing a file."`
}

// VersionCmd prints the version
type VersionCmd struct{}

// Context holds the runtime context shared by all commands
type Context struct {
	Ctx        context.Context
	Debug      bool
	ConfigPath string
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
	HTTPClient *http.Client
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("proptyper"),
		kong.Description("A tool to infer React prop-types from example JSON"),
		kong.UsageOnError(),
	)

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := kctx.Run(&Context{
		Ctx:        sigCtx,
		Debug:      cli.Debug,
		ConfigPath: cli.Config,
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	})
	if err != nil {
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: proptyper --help\n")
		stop()
		os.Exit(1)
	}
}

// Run prints the version
func (v *VersionCmd) Run(ctx *Context) error {
	_, err := fmt.Fprintf(ctx.Stdout, "proptyper version %s\n", Version)
	return err
}

// Run executes parse -> infer -> emit -> format -> write
func (c *PropTypeCmd) Run(ctx *Context) error {
	// 1. Load configuration
	cfg, err := loadConfig(ctx, c)
	if err != nil {
		return err
	}
	logger := newLogger(ctx.Stderr, cfg.Dev.Debug)
	logger.Debug("configuration loaded", "format", cfg.Output.Format, "dir", cfg.Output.Dir, "conflict", cfg.Merge.Conflict)

	prompter := prompt.New(ctx.Stdin, ctx.Stderr)

	// 2. Resolve the schema name
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name, err = prompter.Input("Name of the file", func(s string) error {
			return validateName(cfg, s)
		})
		if err != nil {
			return err
		}
	} else if err := validateName(cfg, name); err != nil {
		return err
	}

	// 3. Read the example JSON
	value, err := c.readValue(ctx, cfg, prompter, logger)
	if err != nil {
		return err
	}

	// 4. Infer the schema
	node := analyzer.NewAnalyzerWithConfig(cfg).Infer(value)
	logger.Debug("schema inferred", "kind", value.Kind.String())

	// 5. Emit the file contents
	code, err := generator.NewEmitter(cfg).Emit(node, cfg.IdentifierName(name))
	if err != nil {
		return err
	}

	// 6. Format
	code, err = formatter.NewFormatterWithConfig(cfg).Format(code, cfg.Output.Format)
	if err != nil {
		return errors.NewFormatError("failed to format generated code", err)
	}

	// 7. Output the result
	if c.Stdout {
		if _, err := io.WriteString(ctx.Stdout, code); err != nil {
			return errors.NewOutputError("failed to write to stdout", err)
		}
		return nil
	}
	return writeFile(ctx, cfg.OutputPath(name), code, logger)
}

func loadConfig(ctx *Context, c *PropTypeCmd) (*config.Config, error) {
	configPath := ctx.ConfigPath
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	debug := ctx.Debug
	cfg, err := config.LoadConfigWithCLI(configPath, config.Overrides{
		Format: strings.ToLower(c.Format),
		OutDir: c.OutDir,
		Debug:  &debug,
	})
	if err != nil {
		return nil, errors.NewConfigError(err.Error(), err)
	}
	return cfg, nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// validateName checks the user supplied name before any work is done. The
// prop-types target also needs it to be usable as a JavaScript binding.
func validateName(cfg *config.Config, name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.NewInputError("a name is required", errors.ErrInvalidName)
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return errors.NewInputError(fmt.Sprintf("'%s' cannot be used as a file name", name), errors.ErrInvalidName)
	}
	if cfg.Output.Format == config.FormatPropTypes && !generator.ValidIdentifier(cfg.IdentifierName(name)) {
		return errors.NewInputError(fmt.Sprintf("'%s' is not a valid JavaScript identifier", cfg.IdentifierName(name)), errors.ErrInvalidName)
	}
	return nil
}

// readValue resolves the JSON from flags, or prompts for the source and data
func (c *PropTypeCmd) readValue(ctx *Context, cfg *config.Config, prompter *prompt.Prompter, logger *slog.Logger) (models.JSONValue, error) {
	given := 0
	for _, v := range []string{c.Data, c.URL, c.Input} {
		if v != "" {
			given++
		}
	}
	if given > 1 {
		return models.JSONValue{}, errors.NewInputError("only one of --data, --url and --input may be given", errors.ErrInvalidSource)
	}

	switch {
	case c.Input == "-":
		logger.Debug("reading JSON from stdin")
		return parser.Parse(ctx.Stdin)
	case c.Input != "":
		logger.Debug("reading JSON from file", "path", c.Input)
		return parser.ParseFile(c.Input)
	case c.Data != "":
		return parser.ParseString(c.Data)
	case c.URL != "":
		return c.fetch(ctx, cfg, c.URL, logger)
	}

	source, err := c.resolveSource(prompter)
	if err != nil {
		return models.JSONValue{}, err
	}
	logger.Debug("data source selected", "source", source)

	if source == SourceJSON {
		text, err := prompter.JSON("JSON of data you want propTypes for")
		if err != nil {
			return models.JSONValue{}, err
		}
		return parser.ParseString(text)
	}

	rawURL, err := prompter.Input("GET url of the raw data", func(s string) error {
		if s == "" {
			return fmt.Errorf("a URL is required")
		}
		return nil
	})
	if err != nil {
		return models.JSONValue{}, err
	}
	return c.fetch(ctx, cfg, rawURL, logger)
}

func (c *PropTypeCmd) resolveSource(prompter *prompt.Prompter) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(c.Source)) {
	case "":
		return prompter.Select("Source for the JSON data", []string{SourceURL, SourceJSON})
	case SourceURL:
		return SourceURL, nil
	case SourceJSON:
		return SourceJSON, nil
	default:
		return "", errors.NewInputError(fmt.Sprintf("unknown source '%s'", c.Source), errors.ErrInvalidSource)
	}
}

func (c *PropTypeCmd) fetch(ctx *Context, cfg *config.Config, rawURL string, logger *slog.Logger) (models.JSONValue, error) {
	f := fetcher.NewFetcherWithConfig(cfg, logger)
	if ctx.HTTPClient != nil {
		f.HTTPClient = ctx.HTTPClient
	}
	runCtx := ctx.Ctx
	if runCtx == nil {
		runCtx = context.Background()
	}
	return f.Fetch(runCtx, rawURL)
}

// writeFile writes code to path, creating the directory when missing
func writeFile(ctx *Context, path, code string, logger *slog.Logger) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to create directory '%s'", dir), err)
		}
	}
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", path), err)
	}
	logger.Debug("file written", "path", path, "bytes", len(code))
	fmt.Fprintf(ctx.Stderr, "Generated %s\n", path)
	return nil
}
