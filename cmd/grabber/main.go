package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/IvanShishkin/grabber/internal/config"
	"github.com/IvanShishkin/grabber/internal/core"
	"github.com/IvanShishkin/grabber/internal/filesystem"
	"github.com/IvanShishkin/grabber/internal/report"
	"github.com/IvanShishkin/grabber/internal/search"
	"github.com/IvanShishkin/grabber/pkg/models"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		// cobra falls back to os.Args for nil
		args = []string{}
	}

	cmd := rootCmd(stdout, stderr)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		// Per-root failures have already been reported
		if !errors.Is(err, core.ErrAllRootsFailed) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// options holds the raw flag values
type options struct {
	configFile string
	verbose    bool
	recursive  bool
	numbered   bool
	searchType models.SearchType
	format     string
	color      string
}

// rootCmd creates the grabber command
func rootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "grabber [-hvrnFC] <search-string> [directory ...]",
		Short: "Search files by name or contents for a literal string",
		Long: `Search one or more directories for files whose path or contents contain
a literal string. Content matches are printed as path:line:column: text,
file name matches as the path. Without a directory the current directory
is searched.`,
		Version:               version,
		Args:                  cobra.ArbitraryArgs,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Flag errors print usage, search errors do not
			cmd.SilenceUsage = true
			return runSearch(cmd, opts, args, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	// Flags must come before the search string
	flags.SetInterspersed(false)

	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Show the config settings and skipped files")
	flags.BoolVarP(&opts.recursive, "recursive", "r", false, "Search child directories (dot-directories are skipped)")
	flags.BoolVarP(&opts.numbered, "numbered", "n", false, "Display the line and column number where match was found")
	searchTypeVarP(flags, &opts.searchType, models.SearchFileNames, "filenames", "F", "Search for match in the file names")
	searchTypeVarP(flags, &opts.searchType, models.SearchContents, "contents", "C", "Search for match in the file contents (default)")
	flags.StringVar(&opts.format, "format", "", "Output format: text, json, yaml, md (default: text)")
	flags.StringVar(&opts.color, "color", "", "Colorize text output: auto, always, never (default: auto)")
	flags.StringVar(&opts.configFile, "config", "", "YAML config file (or set "+config.ConfigFileEnv+")")

	return cmd
}

// runSearch validates the arguments and searches every root
func runSearch(cmd *cobra.Command, opts *options, args []string, stdout, stderr io.Writer) error {
	// A missing search string is reported before any configuration is read
	if len(args) == 0 {
		fmt.Fprintln(stderr, "Didn't provide a search string! Search string is required")
		fmt.Fprintln(stdout, cmd.UseLine())
		return nil
	}

	cfg, err := config.LoadConfig(opts.configFile)
	if err != nil {
		return err
	}
	applyFlags(cmd.Flags(), opts, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cfg.Verbose, stderr)
	defer logger.Sync()

	cwd, _ := os.Getwd()
	logger.Debug("Configuration",
		zap.String("program", cmd.Root().Name()),
		zap.String("current_directory", cwd),
		zap.String("search_type", cfg.SearchType),
		zap.Bool("recursive", cfg.Recursive),
		zap.Bool("numbered", cfg.Numbered),
		zap.String("format", cfg.Format),
		zap.Strings("args", args))

	term := strings.TrimSpace(args[0])
	roots, ok := resolveRoots(args[1:], stderr)
	if !ok {
		return nil
	}
	logger.Debug("Search", zap.String("term", term), zap.Strings("roots", roots))

	gen, err := report.NewGenerator(stdout, report.Options{
		Format: cfg.Format,
		Color:  useColor(cfg.Color, stdout),
		Term:   term,
	}, logger)
	if err != nil {
		return err
	}

	engine := search.New(cfg.SearchConfig(), logger)
	runner := core.NewRunner(engine, logger)
	runner.SetRootCallback(func(root string, res *models.RootResult, err error) {
		if err != nil {
			fmt.Fprintf(stderr, "Failed to read files in directory `%s`: %v\n", report.DisplayPath(root), err)
			gen.WriteFailure(root, err)
			return
		}
		if cfg.Verbose {
			for _, skip := range res.Skipped {
				fmt.Fprintf(stderr, "Skipped: %v\n", skip)
			}
		}
		if err := gen.WriteRoot(res); err != nil {
			logger.Error("Failed to write results", zap.String("root", root), zap.Error(err))
		}
	})

	summary, runErr := runner.Run(term, roots)
	if err := gen.Flush(); err != nil {
		return err
	}

	logger.Debug("Done",
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Int("matches", summary.Matches))

	return runErr
}

// resolveRoots checks every directory argument. It returns false after
// reporting the first argument that is not a directory.
func resolveRoots(dirs []string, stderr io.Writer) ([]string, bool) {
	roots := make([]string, 0, len(dirs))
	for _, d := range dirs {
		p := filepath.FromSlash(d)
		if !filesystem.IsDir(p) {
			fmt.Fprintf(stderr, "Path `%s`: is not a valid directory\n", p)
			return nil, false
		}
		roots = append(roots, p)
	}

	if len(roots) == 0 {
		roots = append(roots, filesystem.DefaultRoot())
	}
	return roots, true
}

// applyFlags overrides config values with flags given on the command line
func applyFlags(flags *pflag.FlagSet, opts *options, cfg *config.Config) {
	if flags.Changed("verbose") {
		cfg.Verbose = opts.verbose
	}
	if flags.Changed("recursive") {
		cfg.Recursive = opts.recursive
	}
	if flags.Changed("numbered") {
		cfg.Numbered = opts.numbered
	}
	if flags.Changed("filenames") || flags.Changed("contents") {
		cfg.SearchType = opts.searchType.String()
	}
	if opts.format != "" {
		cfg.Format = strings.ToLower(opts.format)
	}
	if opts.color != "" {
		cfg.Color = strings.ToLower(opts.color)
	}
}

// newLogger builds a debug console logger in verbose mode and an
// error-only JSON logger otherwise
func newLogger(verbose bool, w io.Writer) *zap.Logger {
	if verbose {
		c := zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.AddSync(w),
			zapcore.DebugLevel,
		)
		return zap.New(c, zap.Development())
	}

	// Silent logger - only errors
	c := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(w),
		zapcore.ErrorLevel,
	)
	return zap.New(c)
}

// useColor resolves the color mode for w
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// searchTypeValue is a bool-like flag that sets a shared search type.
// -F and -C both write the same variable, so the last one given wins.
type searchTypeValue struct {
	target *models.SearchType
	value  models.SearchType
}

func (v *searchTypeValue) String() string {
	if v.target == nil {
		return "false"
	}
	return strconv.FormatBool(*v.target == v.value)
}

func (v *searchTypeValue) Set(s string) error {
	on, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if on {
		*v.target = v.value
	}
	return nil
}

func (v *searchTypeValue) Type() string {
	return "bool"
}

// searchTypeVarP registers a search type flag that takes no argument
func searchTypeVarP(flags *pflag.FlagSet, target *models.SearchType, value models.SearchType, name, shorthand, usage string) {
	f := flags.VarPF(&searchTypeValue{target: target, value: value}, name, shorthand, usage)
	f.NoOptDefVal = "true"
}
