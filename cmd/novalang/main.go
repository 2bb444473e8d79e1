// Command novalang is the CLI driver around the novalang package: run
// scripts, watch them for changes during development, start a REPL, or
// inspect the parsed AST. Modeled on the teacher's cli/main.go: a cobra
// root command with subcommands, errors formatted once at the entry point,
// process exit codes set after every deferred cleanup has run.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/SPSarkar88/NovaLang-sub001/config"
	"github.com/SPSarkar88/NovaLang-sub001/diagnostic"
	"github.com/SPSarkar88/NovaLang-sub001/eval"
	"github.com/SPSarkar88/NovaLang-sub001/novalang"
)

// Exit codes per spec.md §6: 0 success, 1 runtime error, 2 parse/lex error,
// 64 usage error (sysexits EX_USAGE, the same code the teacher's devcmd tool
// uses for not-yet-built tiers).
const (
	exitRuntimeError = 1
	exitParseError   = 2
	// exitUsageError also covers the fmt/lint stubs' "not supported" exit and
	// any cobra-level usage failure (bad flags, wrong arg count) that never
	// produced a diagnostic.Diagnostic to classify.
	exitUsageError    = 64
	exitUnimplemented = exitUsageError
)

// exitCodeErr wraps a diagnostic-originated error with the exit code spec.md
// §6 assigns its Kind, so main's single error-handling path at the bottom of
// Execute doesn't need to re-inspect every subcommand's failure.
type exitCodeErr struct {
	err  error
	code int
}

func (e *exitCodeErr) Error() string { return e.err.Error() }

func exitFor(diag *diagnostic.Diagnostic) error {
	code := exitRuntimeError
	if diag.Kind == diagnostic.LexError || diag.Kind == diagnostic.ParseError {
		code = exitParseError
	}
	return &exitCodeErr{err: fmt.Errorf("%s", diag.Error()), code: code}
}

func main() {
	var noColor bool
	var configPath string

	root := &cobra.Command{
		Use:           "novalang",
		Short:         "Run and inspect NovaLang scripts",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored diagnostic output")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to novalang.yaml or .novalangrc (defaults to ./novalang.yaml if present)")

	root.AddCommand(
		newRunCommand(&noColor, &configPath),
		newReplCommand(&noColor, &configPath),
		newParseCommand(),
		newFmtCommand(),
		newLintCommand(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, colorize(err.Error(), colorRed, shouldUseColor(noColor)))
		if ec, ok := err.(*exitCodeErr); ok {
			os.Exit(ec.code)
		}
		// Any other failure (bad flags, wrong arg count) is a cobra usage error.
		os.Exit(exitUsageError)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if _, err := os.Stat("novalang.yaml"); err == nil {
			path = "novalang.yaml"
		} else if _, err := os.Stat(".novalangrc"); err == nil {
			path = ".novalangrc"
		} else {
			return config.Default(), nil
		}
	}
	return config.Load(path)
}

func newRunCommand(noColor *bool, configPath *string) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Evaluate a NovaLang script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			useColor := shouldUseColor(*noColor)

			run := func() error {
				return runFile(file, cfg, useColor)
			}
			if err := run(); err != nil {
				if !watch {
					return err
				}
				fmt.Fprintln(os.Stderr, colorize(err.Error(), colorRed, useColor))
			}
			if !watch {
				return nil
			}
			return watchAndRerun(file, run)
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "re-run the script whenever the file changes on disk")
	return cmd
}

func runFile(file string, cfg *config.Config, useColor bool) error {
	source, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}
	_, diag := novalang.Evaluate(string(source), novalang.Options{
		Out:          os.Stdout,
		File:         file,
		MaxCallDepth: cfg.MaxCallDepth,
	})
	if diag != nil {
		return formatDiagnostic(diag, useColor)
	}
	return nil
}

// watchAndRerun re-evaluates file every time it changes, the same dev-loop
// idiom the teacher's watch-driven decorators use for live config reload:
// watch the containing directory rather than the file itself, since editors
// commonly replace a file (rename over it) rather than writing in place,
// which an fsnotify watch on the bare file path would silently miss.
func watchAndRerun(file string, run func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", file, err)
	}
	defer watcher.Close()

	dir := filepath.Dir(file)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	target, err := filepath.Abs(file)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "watching %s for changes (ctrl-c to stop)\n", file)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			changed, err := filepath.Abs(event.Name)
			if err != nil || changed != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := run(); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, "watch error:", err)
		}
	}
}

func newReplCommand(noColor *bool, configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive NovaLang session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			return runRepl(cfg, shouldUseColor(*noColor))
		},
	}
}

// runRepl evaluates one line at a time against a single shared global
// environment, so declarations made on one line stay visible on the next,
// the same persistent-scope behavior the spec's own REPL section describes.
func runRepl(cfg *config.Config, useColor bool) error {
	global := novalang.NewGlobalEnv(os.Stdout, nil)
	ev := eval.New(os.Stdout)
	if cfg.MaxCallDepth > 0 {
		ev.MaxDepth = cfg.MaxCallDepth
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Fprintln(os.Stdout, "novalang repl, ctrl-d to exit")
	for {
		fmt.Fprint(os.Stdout, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(os.Stdout)
			return scanner.Err()
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		prog, diag := novalang.Parse(line)
		if diag != nil {
			fmt.Fprintln(os.Stderr, colorize(diag.Error(), colorRed, useColor))
			continue
		}
		value, diag := ev.Run(prog, global)
		if diag != nil {
			fmt.Fprintln(os.Stderr, colorize(diag.Error(), colorRed, useColor))
			continue
		}
		if value != nil {
			fmt.Fprintln(os.Stdout, value.Display())
		}
	}
}

func newParseCommand() *cobra.Command {
	var dump bool
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a script and report whether it is well-formed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			prog, diag := novalang.Parse(string(source))
			if diag != nil {
				diag.File = args[0]
				diag.Source = string(source)
				return formatDiagnostic(diag, shouldUseColor(false))
			}
			if dump {
				for _, stmt := range prog.Statements {
					fmt.Fprintf(os.Stdout, "%#v\n", stmt)
				}
			} else {
				fmt.Fprintf(os.Stdout, "%s: ok (%d top-level statements)\n", args[0], len(prog.Statements))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "print the parsed AST instead of a summary")
	return cmd
}

func newFmtCommand() *cobra.Command {
	return &cobra.Command{
		Use:    "fmt <file>",
		Short:  "Format a script (not implemented in this tier)",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(os.Stderr, "novalang fmt: not implemented in this tier")
			os.Exit(exitUnimplemented)
			return nil
		},
	}
}

func newLintCommand() *cobra.Command {
	return &cobra.Command{
		Use:    "lint <file>",
		Short:  "Lint a script (not implemented in this tier)",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(os.Stderr, "novalang lint: not implemented in this tier")
			os.Exit(exitUnimplemented)
			return nil
		},
	}
}

func formatDiagnostic(diag *diagnostic.Diagnostic, useColor bool) error {
	snippet := diag.Snippet()
	if snippet != "" {
		fmt.Fprintln(os.Stderr, colorize(snippet, colorGray, useColor))
	}
	wrapped := exitFor(diag)
	wrapped.(*exitCodeErr).err = fmt.Errorf("%s", colorize(diag.Error(), colorRed, useColor))
	return wrapped
}
