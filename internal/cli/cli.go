// Package cli provides the command line interface.
package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/tyemirov/gaspy/internal/config"
	"github.com/tyemirov/gaspy/internal/counting"
	"github.com/tyemirov/gaspy/internal/output"
	"github.com/tyemirov/gaspy/internal/printer"
	"github.com/tyemirov/gaspy/internal/services/clipboard"
	"github.com/tyemirov/gaspy/internal/services/stream"
	"github.com/tyemirov/gaspy/internal/types"
	"github.com/tyemirov/gaspy/internal/utils"
)

const (
	recursiveFlagName      = "recursive"
	recursiveFlagShorthand = "r"
	exclusionFlagName      = "exclude"
	exclusionFlagShorthand = "e"
	exclusionFileFlagName  = "exclude-file"
	ruleFlagName           = "rule"
	followSymlinksFlagName = "follow-symlinks"
	formatFlagName         = "format"
	copyFlagName           = "copy"
	numberFlagName         = "number"
	numberFlagShorthand    = "n"
	nonBlankFlagName       = "number-nonblank"
	nonBlankFlagShorthand  = "b"
	globalFlagName         = "global"
	forceFlagName          = "force"
	configFlagName         = "config"
	debugFlagName          = "debug"

	defaultPath          = "."
	versionTemplate      = utils.ApplicationName + " version: {{.Version}}\n"
	rootUse              = utils.ApplicationName
	rootShortDescription = "gaspy prints files and counts lines"
	rootLongDescription  = `gaspy prints the contents of files or standard input and counts lines across files and directory trees.
Use count to total qualifying lines, print to copy inputs to the terminal, and init to write a configuration file.`

	countUse              = "count [paths...]"
	countAlias            = "c"
	countShortDescription = "count lines in files and directories (" + countAlias + ")"
	countLongDescription  = `Count qualifying lines for one or more paths. A directory counts as the sum of its files.
Use --recursive to descend into subdirectories and --exclude to skip entries by base name.
Use --format to select raw, json, xml, or yaml output.`
	countUsageExample = `  # Count non-empty lines under the current directory, recursively
  gaspy count -r

  # Count every line, skipping Git metadata and dependencies
  gaspy count -r --rule all -e .git -e node_modules src docs`

	printUse              = "print [paths...]"
	printAlias            = "p"
	printShortDescription = "print file contents (" + printAlias + ")"
	printLongDescription  = `Print files, or standard input when no path or "-" is given.
Use --number to number every line or --number-nonblank to number non-blank lines only.`
	printUsageExample = `  # Print two files with continuous line numbers
  gaspy print -n main.go go.mod

  # Number non-blank lines read from a pipe
  cat notes.txt | gaspy print -b`

	initUse              = "init"
	initShortDescription = "write a default configuration file"
	initLongDescription  = `Write the default configuration to ./config.yaml, or to ~/.gaspy/config.yaml with --global.
Existing files are kept unless --force is given.`

	recursiveFlagDescription      = "descend into subdirectories"
	exclusionFlagDescription      = "exclude entries with this base name (repeatable)"
	exclusionFileFlagDescription  = "read excluded names from a file, one per line"
	ruleFlagDescription           = "counting rule: all or non-empty"
	followSymlinksFlagDescription = "descend into symbolic links to directories"
	formatFlagDescription         = "output format: raw, json, xml, or yaml"
	copyFlagDescription           = "copy standard output to the system clipboard"
	numberFlagDescription         = "number all output lines"
	nonBlankFlagDescription       = "number non-blank output lines"
	globalFlagDescription         = "write the global configuration"
	forceFlagDescription          = "overwrite an existing configuration file"
	configFlagDescription         = "path to a configuration file"
	debugFlagDescription          = "log configuration and run parameters"

	invalidFormatMessage           = "Invalid format value '%s'"
	clipboardServiceMissingMessage = "clipboard service is not configured"
	clipboardCopyErrorFormat       = "copy output to clipboard: %w"
	loadConfigurationErrorFormat   = "load configuration: %w"
	configurationWrittenFormat     = "Configuration written to %s\n"
	noColorEnvironmentVariable     = "NO_COLOR"
)

var supportedFormats = []string{types.FormatRaw, types.FormatJSON, types.FormatXML, types.FormatYAML}

// Dependencies carries the process-level collaborators of the CLI.
type Dependencies struct {
	Logger *zap.Logger
	// LogLevel is lowered to debug by --debug when set.
	LogLevel         *zap.AtomicLevel
	Stdin            io.Reader
	Stdout           io.Writer
	Stderr           io.Writer
	Clipboard        clipboard.Copier
	WorkingDirectory string
	HomeDirectory    string
}

func (dependencies Dependencies) withDefaults() Dependencies {
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	if dependencies.Stdin == nil {
		dependencies.Stdin = os.Stdin
	}
	if dependencies.Stdout == nil {
		dependencies.Stdout = os.Stdout
	}
	if dependencies.Stderr == nil {
		dependencies.Stderr = os.Stderr
	}
	return dependencies
}

// application holds state shared by the commands of one invocation.
type application struct {
	dependencies      Dependencies
	configurationPath string
	debugEnabled      bool
	configuration     config.ApplicationConfiguration
}

// Execute runs the gaspy application with the provided arguments.
func Execute(ctx context.Context, dependencies Dependencies, arguments []string) error {
	rootCommand := NewRootCommand(dependencies)
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, arguments))
	return rootCommand.ExecuteContext(ctx)
}

// NewRootCommand builds the root Cobra command.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	app := &application{dependencies: dependencies.withDefaults()}

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Version:       utils.GetApplicationVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return app.prepare(command)
		},
	}
	rootCommand.SetVersionTemplate(versionTemplate)
	rootCommand.SetIn(app.dependencies.Stdin)
	rootCommand.SetOut(app.dependencies.Stdout)
	rootCommand.SetErr(app.dependencies.Stderr)
	rootCommand.PersistentFlags().StringVar(&app.configurationPath, configFlagName, "", configFlagDescription)
	registerBooleanFlag(rootCommand.PersistentFlags(), &app.debugEnabled, debugFlagName, "", false, debugFlagDescription)
	rootCommand.AddCommand(
		app.createCountCommand(),
		app.createPrintCommand(),
		app.createInitCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// prepare applies --debug and loads configuration for commands that use it.
func (app *application) prepare(command *cobra.Command) error {
	if app.debugEnabled && app.dependencies.LogLevel != nil {
		app.dependencies.LogLevel.SetLevel(zapcore.DebugLevel)
	}
	if command.Name() == types.CommandInit {
		return nil
	}
	loaded, loadErr := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: app.dependencies.WorkingDirectory,
		HomeDirectory:    app.dependencies.HomeDirectory,
		ExplicitFilePath: app.configurationPath,
	})
	if loadErr != nil {
		return fmt.Errorf(loadConfigurationErrorFormat, loadErr)
	}
	app.configuration = loaded
	app.dependencies.Logger.Debug("configuration loaded",
		zap.String("command", command.Name()),
		zap.String("explicit_path", app.configurationPath),
	)
	return nil
}

// countOptions stores the resolved flags of the count command.
type countOptions struct {
	recursive        bool
	exclusionNames   []string
	exclusionFile    string
	rule             string
	followSymlinks   bool
	format           string
	clipboardEnabled bool
}

// createCountCommand returns the count subcommand.
func (app *application) createCountCommand() *cobra.Command {
	var options countOptions

	countCommand := &cobra.Command{
		Use:     countUse,
		Aliases: []string{countAlias},
		Short:   countShortDescription,
		Long:    countLongDescription,
		Example: countUsageExample,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			if len(arguments) == 0 {
				arguments = []string{defaultPath}
			}
			resolved := app.applyCountConfiguration(command, options)
			return app.runCount(command.Context(), arguments, resolved)
		},
	}

	flagSet := countCommand.Flags()
	registerBooleanFlag(flagSet, &options.recursive, recursiveFlagName, recursiveFlagShorthand, false, recursiveFlagDescription)
	flagSet.StringArrayVarP(&options.exclusionNames, exclusionFlagName, exclusionFlagShorthand, nil, exclusionFlagDescription)
	flagSet.StringVar(&options.exclusionFile, exclusionFileFlagName, "", exclusionFileFlagDescription)
	flagSet.StringVar(&options.rule, ruleFlagName, counting.RuleNameNonEmpty, ruleFlagDescription)
	registerBooleanFlag(flagSet, &options.followSymlinks, followSymlinksFlagName, "", false, followSymlinksFlagDescription)
	flagSet.StringVar(&options.format, formatFlagName, types.FormatRaw, formatFlagDescription)
	registerBooleanFlag(flagSet, &options.clipboardEnabled, copyFlagName, "", false, copyFlagDescription)
	return countCommand
}

// applyCountConfiguration fills every option not set on the command line from
// the loaded configuration.
func (app *application) applyCountConfiguration(command *cobra.Command, options countOptions) countOptions {
	configured := app.configuration.Count
	flags := command.Flags()
	if !flags.Changed(recursiveFlagName) && configured.Recursive != nil {
		options.recursive = *configured.Recursive
	}
	if !flags.Changed(exclusionFlagName) && len(configured.Exclude) > 0 {
		options.exclusionNames = append([]string{}, configured.Exclude...)
	}
	if !flags.Changed(exclusionFileFlagName) && configured.ExcludeFile != "" {
		options.exclusionFile = configured.ExcludeFile
	}
	if !flags.Changed(ruleFlagName) && configured.Rule != "" {
		options.rule = configured.Rule
	}
	if !flags.Changed(followSymlinksFlagName) && configured.FollowSymlinks != nil {
		options.followSymlinks = *configured.FollowSymlinks
	}
	if !flags.Changed(formatFlagName) && configured.Format != "" {
		options.format = configured.Format
	}
	if !flags.Changed(copyFlagName) && configured.Clipboard != nil {
		options.clipboardEnabled = *configured.Clipboard
	}
	return options
}

// buildCountConfig validates options and converts them into a walker configuration.
func buildCountConfig(options countOptions) (counting.Config, error) {
	rule, ruleErr := counting.ParseCountRule(options.rule)
	if ruleErr != nil {
		return counting.Config{}, ruleErr
	}
	exclusionNames := append([]string{}, options.exclusionNames...)
	if options.exclusionFile != "" {
		fileNames, loadErr := config.LoadExclusionNames(options.exclusionFile)
		if loadErr != nil {
			return counting.Config{}, loadErr
		}
		exclusionNames = append(exclusionNames, fileNames...)
	}
	return counting.Config{
		Recursive:      options.recursive,
		FollowSymlinks: options.followSymlinks,
		Exclusions:     counting.NewExclusionSet(utils.DeduplicatePatterns(exclusionNames)...),
		Rule:           rule,
	}, nil
}

// runCount walks every root and renders the results in the requested format.
func (app *application) runCount(ctx context.Context, roots []string, options countOptions) (err error) {
	format := strings.ToLower(strings.TrimSpace(options.format))
	if !utils.ContainsString(supportedFormats, format) {
		return fmt.Errorf(invalidFormatMessage, format)
	}
	countConfig, configErr := buildCountConfig(options)
	if configErr != nil {
		return configErr
	}

	app.dependencies.Logger.Debug("counting lines",
		zap.Strings("roots", roots),
		zap.Bool("recursive", countConfig.Recursive),
		zap.Bool("follow_symlinks", countConfig.FollowSymlinks),
		zap.String("rule", countConfig.Rule.String()),
		zap.Strings("exclusions", countConfig.Exclusions.Names()),
		zap.String("format", format),
	)

	return app.withClipboard(options.clipboardEnabled, func(stdout io.Writer) error {
		colorize := format == types.FormatRaw && shouldColorize(app.dependencies.Stderr)
		renderer, rendererErr := output.NewStreamRenderer(format, stdout, app.dependencies.Stderr, colorize)
		if rendererErr != nil {
			return rendererErr
		}

		producer := func(streamCtx context.Context, ch chan<- stream.Event) error {
			return stream.StreamCount(streamCtx, stream.CountOptions{Roots: roots, Config: countConfig}, ch)
		}
		if dispatchErr := dispatchStream(ctx, producer, renderer.Handle); dispatchErr != nil {
			return dispatchErr
		}
		return renderer.Flush()
	})
}

// printOptions stores the resolved flags of the print command.
type printOptions struct {
	number           bool
	numberNonBlank   bool
	clipboardEnabled bool
}

// createPrintCommand returns the print subcommand.
func (app *application) createPrintCommand() *cobra.Command {
	var options printOptions

	printCommand := &cobra.Command{
		Use:     printUse,
		Aliases: []string{printAlias},
		Short:   printShortDescription,
		Long:    printLongDescription,
		Example: printUsageExample,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			resolved := app.applyPrintConfiguration(command, options)
			return app.runPrint(arguments, resolved)
		},
	}

	flagSet := printCommand.Flags()
	registerBooleanFlag(flagSet, &options.number, numberFlagName, numberFlagShorthand, false, numberFlagDescription)
	registerBooleanFlag(flagSet, &options.numberNonBlank, nonBlankFlagName, nonBlankFlagShorthand, false, nonBlankFlagDescription)
	registerBooleanFlag(flagSet, &options.clipboardEnabled, copyFlagName, "", false, copyFlagDescription)
	return printCommand
}

func (app *application) applyPrintConfiguration(command *cobra.Command, options printOptions) printOptions {
	configured := app.configuration.Print
	flags := command.Flags()
	if !flags.Changed(numberFlagName) && configured.Number != nil {
		options.number = *configured.Number
	}
	if !flags.Changed(nonBlankFlagName) && configured.NumberNonBlank != nil {
		options.numberNonBlank = *configured.NumberNonBlank
	}
	if !flags.Changed(copyFlagName) && configured.Clipboard != nil {
		options.clipboardEnabled = *configured.Clipboard
	}
	return options
}

func (app *application) runPrint(paths []string, options printOptions) error {
	app.dependencies.Logger.Debug("printing inputs",
		zap.Strings("paths", paths),
		zap.Bool("number", options.number),
		zap.Bool("number_nonblank", options.numberNonBlank),
	)
	return app.withClipboard(options.clipboardEnabled, func(stdout io.Writer) error {
		linePrinter := printer.New(stdout, app.dependencies.Stderr, app.dependencies.Stdin, printer.Options{
			Number:         options.number,
			NumberNonBlank: options.numberNonBlank,
		})
		return linePrinter.PrintPaths(paths)
	})
}

// createInitCommand returns the init subcommand.
func (app *application) createInitCommand() *cobra.Command {
	var globalTarget bool
	var forceOverwrite bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if globalTarget {
				target = config.InitTargetGlobal
			}
			destinationPath, initErr := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            forceOverwrite,
				WorkingDirectory: app.dependencies.WorkingDirectory,
				HomeDirectory:    app.dependencies.HomeDirectory,
			})
			if initErr != nil {
				return initErr
			}
			_, writeErr := fmt.Fprintf(app.dependencies.Stdout, configurationWrittenFormat, destinationPath)
			return writeErr
		},
	}

	registerBooleanFlag(initCommand.Flags(), &globalTarget, globalFlagName, "", false, globalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &forceOverwrite, forceFlagName, "", false, forceFlagDescription)
	return initCommand
}

// withClipboard runs render against stdout, also capturing its output for the
// clipboard when enabled.
func (app *application) withClipboard(enabled bool, render func(io.Writer) error) error {
	if !enabled {
		return render(app.dependencies.Stdout)
	}
	if app.dependencies.Clipboard == nil {
		return errors.New(clipboardServiceMissingMessage)
	}
	clipboardBuffer := &bytes.Buffer{}
	if renderErr := render(io.MultiWriter(app.dependencies.Stdout, clipboardBuffer)); renderErr != nil {
		return renderErr
	}
	if copyErr := app.dependencies.Clipboard.Copy(clipboardBuffer.String()); copyErr != nil {
		return fmt.Errorf(clipboardCopyErrorFormat, copyErr)
	}
	return nil
}

// shouldColorize reports whether diagnostics written to writer may carry ANSI colors.
func shouldColorize(writer io.Writer) bool {
	if _, disabled := os.LookupEnv(noColorEnvironmentVariable); disabled {
		return false
	}
	file, isFile := writer.(*os.File)
	if !isFile {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

func dispatchStream(
	ctx context.Context,
	produce func(context.Context, chan<- stream.Event) error,
	consume func(stream.Event) error,
) error {
	if ctx == nil {
		ctx = context.Background()
	}
	group, streamCtx := errgroup.WithContext(ctx)
	events := make(chan stream.Event)

	group.Go(func() error {
		defer close(events)
		return produce(streamCtx, events)
	})

	group.Go(func() error {
		for {
			select {
			case <-streamCtx.Done():
				return streamCtx.Err()
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := consume(event); err != nil {
					return err
				}
			}
		}
	})

	return group.Wait()
}
