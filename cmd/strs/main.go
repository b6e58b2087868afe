// Command strs scans files, directories, and wildcard globs for printable
// text. It is a thin wrapper over the scan/decode/filter/sink packages:
// every scanning decision lives there, not here.
package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/grimdork/climate"

	"github.com/Urethramancer/strs/charset"
	"github.com/Urethramancer/strs/decode"
	"github.com/Urethramancer/strs/filter"
	"github.com/Urethramancer/strs/scan"
	"github.com/Urethramancer/strs/sink"
)

type cliArgs struct {
	climate.Help
	Encoding   string `short:"e" long:"encoding" help:"Comma-separated encodings to scan for: ascii, utf8, utf16." default:"utf8,utf16"`
	Blocks     string `short:"b" long:"blocks" help:"Comma-separated Unicode block names to accept, or All." default:"BasicLatin"`
	MinLength  int    `short:"n" long:"min-length" help:"Minimum run length to report." default:"4"`
	Offset     int64  `short:"o" long:"offset" help:"Start offset into each source."`
	Length     int64  `short:"l" long:"length" help:"Bytes to scan from the offset (0 = to the end)."`
	ExcludeCC  bool   `short:"x" long:"exclude-control" help:"Exclude tab/LF/CR from the printable set."`
	Unicode    bool   `short:"u" long:"unicode-output" help:"Transcode matches to UTF-16LE output."`
	Regex      string `long:"regex" help:"Only report runs matching this regular expression."`
	Wildcard   string `long:"wildcard" help:"Only report runs matching this DOS-style wildcard."`
	Sync       bool   `long:"sync" help:"Force the sequential decoder driver."`
	BufferSize int    `long:"buffer-size" help:"Read buffer size in bytes." default:"65536"`
}

func main() {
	log.SetFlags(0)

	var args cliArgs
	paths, err := climate.Parse(&args, "strs 1.0.0")
	if err != nil {
		log.Fatalf("parsing arguments: %v", err)
	}
	if len(paths) == 0 {
		log.Fatalf("Usage: strs [options] <file|dir|glob> ...")
	}

	opts, err := buildOptions(args)
	if err != nil {
		log.Fatalf("building scan options: %v", err)
	}

	files := expandPaths(paths)
	if len(files) == 0 {
		log.Fatalf("no input files matched %v", paths)
	}

	out := sink.NewBufferedSink(os.Stdout)
	defer out.Close()

	scanner := scan.NewScanner()
	ctx := context.Background()
	for _, path := range files {
		if err := scanFile(ctx, scanner, path, opts, out); err != nil {
			log.Printf("%s: %v", path, err)
		}
	}
}

func buildOptions(args cliArgs) (scan.Options, error) {
	blocks, err := charset.NewBlockSet(splitNonEmpty(args.Blocks)...)
	if err != nil {
		return scan.Options{}, err
	}

	var encs scan.EncodingSet
	for _, name := range splitNonEmpty(args.Encoding) {
		switch strings.ToLower(name) {
		case "ascii":
			encs.ASCII = true
		case "utf8", "utf-8":
			encs.UTF8 = true
		case "utf16", "utf-16":
			encs.UTF16 = true
		}
	}

	var f filter.Filter
	switch {
	case args.Regex != "":
		rf, err := filter.NewRegexFilter(args.Regex, filter.RegexOptions{IgnoreCase: true})
		if err != nil {
			return scan.Options{}, err
		}
		f = rf
	case args.Wildcard != "":
		wf, err := filter.NewWildcardFilter(args.Wildcard)
		if err != nil {
			return scan.Options{}, err
		}
		f = wf
	}

	target := decode.TargetRaw
	if args.Unicode {
		target = decode.TargetUnicode
	}

	return scan.Options{
		Encodings:        encs,
		Blocks:           blocks,
		StartOffset:      args.Offset,
		BytesToScan:      args.Length,
		MinLength:        args.MinLength,
		BufferSize:       args.BufferSize,
		ExcludeControlCP: args.ExcludeCC,
		Sync:             args.Sync,
		Target:           target,
		Filter:           f,
	}, nil
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// expandPaths implements the non-recursive directory expansion and glob
// expansion this command handles itself rather than pushing onto the core
// scanner: a directory
// argument yields its immediate file entries, and an argument containing
// glob metacharacters is resolved with filepath.Glob.
func expandPaths(paths []string) []string {
	var out []string
	for _, p := range paths {
		if strings.ContainsAny(p, "*?[") {
			matches, err := filepath.Glob(p)
			if err != nil {
				log.Printf("%s: %v", p, err)
				continue
			}
			out = append(out, matches...)
			continue
		}

		info, err := os.Stat(p)
		if err != nil {
			log.Printf("%s: %v", p, err)
			continue
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			log.Printf("%s: %v", p, err)
			continue
		}
		for _, e := range entries {
			if !e.IsDir() {
				out = append(out, filepath.Join(p, e.Name()))
			}
		}
	}
	return out
}

type fileSource struct {
	*os.File
}

func (f fileSource) Len() (int64, error) {
	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func scanFile(ctx context.Context, scanner *scan.Scanner, path string, opts scan.Options, out *sink.BufferedSink) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return scanner.Scan(ctx, fileSource{f}, opts, out)
}
