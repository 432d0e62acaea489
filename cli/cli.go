package cli

import (
	"context"
	"os"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/ardnew/catlang/cli/cmd"
	"github.com/ardnew/catlang/lang"
	"github.com/ardnew/catlang/pkg"
)

// CLI is the top-level command-line interface for catlang.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Include  []string         `help:"Add a directory to the script search path (before $${pathEnv})" placeholder:"DIR" short:"I" type:"path"`
	MaxDepth int              `default:"${maxDepth}"                                                  help:"Maximum depth of nested function calls"`
	Version  kong.VersionFlag `help:"Print version and exit"                                          short:"V"`

	Repl cmd.Repl `cmd:"" default:"withargs" help:"Start an interactive session"`
	Run  cmd.Run  `cmd:""                    help:"Run script files"`
	Eval cmd.Eval `cmd:""                    help:"Evaluate statements"`
	Fmt  cmd.Fmt  `cmd:""                    help:"Format a script"`
	Init cmd.Init `cmd:""                    help:"Initialize configuration file"`
}

// Run executes the catlang CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(".yaml")

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  pkg.CacheDir(),
		"pathEnv":            pkg.EnvPath,
		"maxDepth":           strconv.Itoa(lang.DefaultMaxDepth),
		"version":            pkg.Name + " " + pkg.Version(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position. TextUnmarshaler on logFormat/logLevel handles those flags
	// during normal parsing, but this early scan also catches boolean flags
	// like --log-pretty.
	cli.Log.scan(args)

	// Parse command line
	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(".json")),
		kong.Configuration(resolveYAML, configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSearchPath(ctx, searchPath(cli.Include, os.Getenv(pkg.EnvPath)))
	ctx = cmd.WithOptions(ctx, lang.WithMaxDepth(cli.MaxDepth))

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	defer cli.Log.start(ctx)()

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	// Execute the selected command
	return ktx.Run(ctx, &cli)
}
