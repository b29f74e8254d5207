package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/jsontree-cli/jsontree/internal/analyzer"
	"github.com/jsontree-cli/jsontree/internal/config"
	"github.com/jsontree-cli/jsontree/internal/encoder"
	"github.com/jsontree-cli/jsontree/internal/errors"
	"github.com/jsontree-cli/jsontree/internal/formatter"
	"github.com/jsontree-cli/jsontree/internal/generator"
	"github.com/jsontree-cli/jsontree/internal/inspector"
	"github.com/jsontree-cli/jsontree/internal/parser"
	"github.com/jsontree-cli/jsontree/internal/schema"
	"github.com/jsontree-cli/jsontree/internal/value"
)

// Version information
const Version = "0.1.0"

// CLI defines the command-line interface
type CLI struct {
	Input   string      `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output  string      `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Config  string      `help:"Path to config file. Defaults to the nearest .jsontree.yml." type:"path"`
	Debug   bool        `help:"Enable debug logging." short:"d"`
	Version VersionFlag `help:"Show version information." short:"v"`

	Check   CheckCmd   `cmd:"" help:"Validate a JSON document and report the first error with its offset."`
	Fmt     FmtCmd     `cmd:"" help:"Reformat a JSON document, preserving key order."`
	Inspect InspectCmd `cmd:"" help:"Show the structure of a JSON document."`
	Typegen TypegenCmd `cmd:"" help:"Generate Go struct definitions from a JSON document."`
	Schema  SchemaCmd  `cmd:"" help:"Infer a JSON Schema from a JSON document."`
}

// VersionFlag prints the version and exits.
type VersionFlag bool

// BeforeApply implements the kong hook
func (v VersionFlag) BeforeApply(app *kong.Kong) error {
	fmt.Fprintf(app.Stdout, "jsontree version %s\n", Version)
	app.Exit(0)
	return nil
}

// Context holds the runtime context shared by all subcommands
type Context struct {
	Config *config.Config
	Log    zerolog.Logger
	Input  string
	Output string
}

func main() {
	cli := &CLI{}
	kctx := kong.Parse(cli,
		kong.Name("jsontree"),
		kong.Description("Parse, validate, format and inspect JSON documents with an order-preserving parser."),
		kong.UsageOnError(),
	)

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if !cli.Debug {
		logger = logger.Level(zerolog.WarnLevel)
	}

	configPath := cli.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	cfg := config.NewConfig()
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
			os.Exit(1)
		}
		cfg = loaded
		logger.Debug().Str("path", configPath).Msg("loaded config file")
	}

	ctx := &Context{
		Config: cfg,
		Log:    logger,
		Input:  cli.Input,
		Output: cli.Output,
	}

	if err := kctx.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}
}

// CheckCmd validates a document.
type CheckCmd struct{}

// Run implements the check command
func (c *CheckCmd) Run(ctx *Context) error {
	doc, err := readInput(ctx)
	if err != nil {
		return err
	}
	sum := inspector.Summarize(inspector.Inspect(doc))
	ctx.Log.Debug().Int("nodes", sum.TotalNodes).Int("max_depth", sum.MaxDepth).Msg("document parsed")
	return writeOutput(ctx, fmt.Sprintf("valid JSON document (%d nodes, max depth %d)\n", sum.TotalNodes, sum.MaxDepth))
}

// FmtCmd reformats a document.
type FmtCmd struct {
	Compact bool   `help:"Emit compact output without insignificant whitespace." short:"c"`
	Indent  string `help:"Indentation unit for pretty output. Overrides the config file."`
}

// Run implements the fmt command
func (c *FmtCmd) Run(ctx *Context) error {
	doc, err := readInput(ctx)
	if err != nil {
		return err
	}
	var out string
	if c.Compact {
		out = encoder.Compact(doc)
	} else {
		indent := ctx.Config.Indent
		if c.Indent != "" {
			indent = c.Indent
		}
		out = encoder.Indent(doc, "", indent)
	}
	return writeOutput(ctx, out+"\n")
}

// InspectCmd shows the structure of a document.
type InspectCmd struct {
	Plain bool `help:"Emit one tab-separated line per node instead of a table."`
}

// Run implements the inspect command
func (c *InspectCmd) Run(ctx *Context) error {
	doc, err := readInput(ctx)
	if err != nil {
		return err
	}
	records := inspector.Inspect(doc)
	ctx.Log.Debug().Int("nodes", len(records)).Msg("inspected document")

	var buf bytes.Buffer
	if c.Plain {
		inspector.RenderPlain(&buf, records)
	} else {
		inspector.RenderTable(&buf, records)
	}
	return writeOutput(ctx, buf.String())
}

// TypegenCmd generates Go structs from a document.
type TypegenCmd struct {
	Package  string `help:"Package name for generated code." short:"p"`
	RootName string `help:"Name for the root struct." short:"r"`
	Format   bool   `help:"Format the output code according to Go standards." short:"f" default:"true" negatable:""`
}

// Run implements the typegen command
func (c *TypegenCmd) Run(ctx *Context) error {
	doc, err := readInput(ctx)
	if err != nil {
		return err
	}

	pkg := ctx.Config.Package
	if c.Package != "" {
		pkg = c.Package
	}
	rootName := ctx.Config.RootName
	if c.RootName != "" {
		rootName = c.RootName
	}

	analyzerInst := analyzer.NewAnalyzerWithConfig(ctx.Config)
	analysisResult, err := analyzerInst.Analyze(doc, rootName)
	if err != nil {
		return errors.NewGenerateError("failed to analyze JSON structure", err)
	}
	ctx.Log.Debug().Int("structs", len(analysisResult.Structs)).Msg("analysis complete")

	generatorInst := generator.NewGenerator()
	code, err := generatorInst.GenerateStructs(analysisResult, pkg)
	if err != nil {
		return errors.NewGenerateError("failed to generate Go structs", err)
	}

	if c.Format {
		formatterInst := formatter.NewFormatter()
		code, err = formatterInst.Format(code)
		if err != nil {
			return errors.NewFormatError("failed to format Go code", err)
		}
	}

	return writeOutput(ctx, strings.TrimSpace(code)+"\n")
}

// SchemaCmd infers a JSON Schema from a document.
type SchemaCmd struct {
	Compact bool `help:"Emit compact output without insignificant whitespace." short:"c"`
}

// Run implements the schema command
func (c *SchemaCmd) Run(ctx *Context) error {
	doc, err := readInput(ctx)
	if err != nil {
		return err
	}
	inferred := schema.Infer(doc).Value()
	var out string
	if c.Compact {
		out = encoder.Compact(inferred)
	} else {
		out = encoder.Indent(inferred, "", ctx.Config.Indent)
	}
	return writeOutput(ctx, out+"\n")
}

// readInput parses the JSON document from the input file or stdin
func readInput(ctx *Context) (*value.Value, error) {
	if ctx.Input != "" {
		ctx.Log.Debug().Str("path", ctx.Input).Msg("reading input file")
		return parser.ParseFile(ctx.Input)
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return nil, errors.NewInputError("failed to access stdin", err)
	}
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive, nothing was piped in.
		return nil, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, errors.NewInputError("failed to read from stdin", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return parser.ParseBytes(data)
}

// writeOutput writes the result to the output file or stdout
func writeOutput(ctx *Context, out string) error {
	if ctx.Output != "" {
		if err := os.WriteFile(ctx.Output, []byte(out), 0644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", ctx.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Output written to %s\n", ctx.Output)
		return nil
	}

	if _, err := io.WriteString(os.Stdout, out); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}
