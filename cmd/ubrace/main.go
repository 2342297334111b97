// SPDX-License-Identifier: Apache-2.0
package main

import (
	goerrors "errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/tliron/commonlog"

	"github.com/arma2d0/uncrustify/internal/brace"
	"github.com/arma2d0/uncrustify/internal/config"
	"github.com/arma2d0/uncrustify/internal/dump"
	"github.com/arma2d0/uncrustify/internal/errors"
	"github.com/arma2d0/uncrustify/internal/lexer"
)

const usage = `Usage: ubrace [options] <file>...

Resolves brace, paren and preprocessor nesting for C-family sources and
reports structural problems.

Options:
  -c <file>     read options from a config file
  -l <name>     force the input dialect (c, cpp, cs, d, java, pawn)
  -p            print the annotated chunk dump for each file
  --watch       stay running and re-resolve files when they change
  --verbose     enable debug logging
  --version     print the version and exit
`

type cliArgs struct {
	configPath string
	dialect    string
	parsed     bool
	watch      bool
	verbose    bool
	version    bool
	help       bool
	files      []string
}

func parseArgs(argv []string) (cliArgs, error) {
	var args cliArgs

	for i := 0; i < len(argv); i++ {
		switch argv[i] {
		case "-c":
			i++
			if i >= len(argv) {
				return args, fmt.Errorf("-c needs a file argument")
			}
			args.configPath = argv[i]
		case "-l":
			i++
			if i >= len(argv) {
				return args, fmt.Errorf("-l needs a dialect name")
			}
			args.dialect = argv[i]
		case "-p":
			args.parsed = true
		case "--watch":
			args.watch = true
		case "--verbose":
			args.verbose = true
		case "--version":
			args.version = true
		case "-h", "--help":
			args.help = true
		default:
			if strings.HasPrefix(argv[i], "-") {
				return args, fmt.Errorf("unknown option %s", argv[i])
			}
			args.files = append(args.files, argv[i])
		}
	}

	return args, nil
}

func main() {
	args, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	if args.help {
		fmt.Print(usage)
		return
	}
	if args.version {
		fmt.Println("ubrace " + config.Version)
		return
	}
	if len(args.files) == 0 {
		fmt.Print(usage)
		os.Exit(1)
	}

	verbosity := 0
	if args.verbose {
		verbosity = 1
	}
	commonlog.Configure(verbosity, nil)

	opts := config.Default()
	if args.configPath != "" {
		loaded, warns, err := config.Load(args.configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config %s: %v\n", args.configPath, err)
			os.Exit(1)
		}
		for _, w := range warns {
			fmt.Fprintf(os.Stderr, "%s: %s\n", args.configPath, w.Error())
		}
		opts = loaded
	}

	var forced *config.Dialect
	if args.dialect != "" {
		d, ok := config.ByName(args.dialect)
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown dialect %q\n", args.dialect)
			os.Exit(1)
		}
		forced = &d
	}

	r := &runner{opts: opts, forced: forced, parsed: args.parsed}

	failed := false
	for _, path := range args.files {
		if !r.processFile(path) {
			failed = true
		}
	}

	if args.watch {
		if err := watchFiles(r, args.files); err != nil {
			fmt.Fprintf(os.Stderr, "watch failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if failed {
		os.Exit(1)
	}
}

// runner holds the per-invocation settings shared by every processed
// file.
type runner struct {
	opts   config.Options
	forced *config.Dialect
	parsed bool
}

func (r *runner) dialectFor(path string) config.Dialect {
	if r.forced != nil {
		return *r.forced
	}
	if d, ok := config.FromExtension(path); ok {
		return d
	}
	return config.C()
}

// processFile resolves one file and prints its diagnostics and summary.
// It returns false when the file could not be read or has a fatal
// structural error.
func (r *runner) processFile(path string) bool {
	startTime := time.Now()

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
		return false
	}

	dialect := r.dialectFor(path)

	arena, err := lexer.New(dialect).Lex(path, string(source))
	if err != nil {
		color.Red("Failed to scan %s: %v", path, err)
		return false
	}

	warns, resolveErr := brace.Resolve(arena, r.opts, dialect)

	reporter := errors.NewErrorReporter(path, string(source))
	fmt.Print(reporter.FormatAll(warns))

	duration := formatDuration(time.Since(startTime))

	if resolveErr != nil {
		var serr errors.StructuralError
		if goerrors.As(resolveErr, &serr) {
			fmt.Print(reporter.FormatError(serr))
		} else {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, resolveErr)
		}
		color.Red("Failed to resolve %s after %s", path, duration)
		return false
	}

	if r.parsed {
		if err := dump.Write(os.Stdout, arena); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write dump: %v\n", err)
			return false
		}
	}

	color.Green("Resolved %s in %s (%d chunks)", path, duration, arena.Len())
	return true
}

// watchFiles re-resolves each file whenever it changes, until the
// process is interrupted.
func watchFiles(r *runner, files []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, path := range files {
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("cannot watch %s: %w", path, err)
		}
	}

	fmt.Printf("watching %d file(s), interrupt to stop\n", len(files))

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			r.processFile(ev.Name)
			// Editors that replace the file on save drop the watch.
			_ = watcher.Add(ev.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
