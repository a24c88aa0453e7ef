// Command xmlcanon parses an XML document and writes its exclusive
// canonical form to stdout or a file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jacoelho/xmlc14n"
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func runWithArgs(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("xmlcanon", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inclusiveNS := fs.String("inclusive-ns", "", "comma-separated namespace prefixes to retain at the root")
	outPath := fs.String("out", "", "write canonical output to file instead of stdout")
	maxDepth := fs.Int("max-depth", 0, "maximum element nesting depth (0 = default)")
	maxAttrs := fs.Int("max-attrs", 0, "maximum attributes per element (0 = default)")
	verbose := fs.Bool("verbose", false, "log progress to stderr")
	cpuProfilePath := fs.String("cpuprofile", "", "write CPU profile to file")
	memProfilePath := fs.String("memprofile", "", "write memory profile to file")
	var usageErr error
	fs.Usage = func() {
		usageErr = errors.Join(
			usageErr,
			writef(stderr, "Usage: %s [options] <document.xml | ->\n\n", os.Args[0]),
			writeln(stderr, "Writes the exclusive canonical form of an XML document."),
			writeln(stderr),
			writeln(stderr, "Options:"),
		)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	remaining := fs.Args()
	if len(remaining) != 1 {
		if err := writeln(stderr, "error: exactly one XML file argument is required (or - for stdin)"); err != nil {
			return 1
		}
		fs.Usage()
		if usageErr != nil {
			return 1
		}
		return 2
	}
	inputPath := remaining[0]

	log := zerolog.Nop()
	if *verbose {
		log = zerolog.New(zerolog.ConsoleWriter{Out: stderr}).With().Timestamp().Logger()
	}

	if *cpuProfilePath != "" {
		stopCPUProfile, err := startCPUProfile(*cpuProfilePath)
		if err != nil {
			if writeErr := writef(stderr, "error starting CPU profile: %v\n", err); writeErr != nil {
				return 1
			}
			return 1
		}
		defer func() {
			if err := stopCPUProfile(); err != nil {
				_ = writef(stderr, "error stopping CPU profile: %v\n", err)
			}
		}()
	}

	if *memProfilePath != "" {
		defer func() {
			if err := writeMemProfile(*memProfilePath); err != nil {
				_ = writef(stderr, "error writing memory profile: %v\n", err)
			}
		}()
	}

	data, err := readInput(inputPath, stdin)
	if err != nil {
		if writeErr := writef(stderr, "error reading input: %v\n", err); writeErr != nil {
			return 1
		}
		return 1
	}
	log.Debug().Str("input", inputPath).Int("bytes", len(data)).Msg("read document")

	start := time.Now()
	root, err := xmlc14n.ParseWithOptions(data, xmlc14n.ParseOptions{
		MaxDepth: *maxDepth,
		MaxAttrs: *maxAttrs,
	})
	if err != nil {
		if writeErr := writef(stderr, "error parsing: %v\n", err); writeErr != nil {
			return 1
		}
		return 1
	}
	log.Debug().Dur("elapsed", time.Since(start)).Msg("parsed document")

	opts := xmlc14n.CanonicalizeOptions{InclusiveNamespaces: splitPrefixes(*inclusiveNS)}
	start = time.Now()
	canonical := xmlc14n.Canonicalize(root, opts).String()
	log.Debug().
		Dur("elapsed", time.Since(start)).
		Int("bytes", len(canonical)).
		Strs("inclusive_ns", opts.InclusiveNamespaces).
		Msg("canonicalized document")

	if *outPath != "" {
		if err := os.WriteFile(*outPath, []byte(canonical), 0o644); err != nil {
			if writeErr := writef(stderr, "error writing output: %v\n", err); writeErr != nil {
				return 1
			}
			return 1
		}
		return 0
	}
	if err := writef(stdout, "%s", canonical); err != nil {
		return 1
	}
	return 0
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func splitPrefixes(list string) []string {
	if list == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(list, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}

func startCPUProfile(path string) (func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create cpu profile %s: %w", path, err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		if closeErr := f.Close(); closeErr != nil {
			return nil, fmt.Errorf("start cpu profile %s: %w (close failed: %w)", path, err, closeErr)
		}
		return nil, fmt.Errorf("start cpu profile %s: %w", path, err)
	}
	return func() error {
		pprof.StopCPUProfile()
		if err := f.Close(); err != nil {
			return fmt.Errorf("close cpu profile %s: %w", path, err)
		}
		return nil
	}, nil
}

func writeMemProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create mem profile %s: %w", path, err)
	}
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		if closeErr := f.Close(); closeErr != nil {
			return fmt.Errorf("write mem profile %s: %w (close failed: %w)", path, err, closeErr)
		}
		return fmt.Errorf("write mem profile %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close mem profile %s: %w", path, err)
	}
	return nil
}
