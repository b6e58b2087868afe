// Command pstrs scans one or more running processes' virtual memory for
// printable text. Like cmd/strs, it stays a thin wrapper over
// scan/decode/filter/sink/procmem.
package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"

	flag "github.com/ogier/pflag"

	"github.com/Urethramancer/strs/charset"
	"github.com/Urethramancer/strs/decode"
	"github.com/Urethramancer/strs/filter"
	"github.com/Urethramancer/strs/model"
	"github.com/Urethramancer/strs/procmem"
	"github.com/Urethramancer/strs/scan"
	"github.com/Urethramancer/strs/sink"
)

var (
	encoding   = flag.StringP("encoding", "e", "utf8,utf16", "comma-separated encodings: ascii, utf8, utf16")
	blockNames = flag.StringP("blocks", "b", "BasicLatin", "comma-separated Unicode block names, or All")
	minLength  = flag.IntP("min-length", "n", 4, "minimum run length to report")
	offset     = flag.Int64P("offset", "o", 0, "start offset into each process's concatenated memory stream")
	length     = flag.Int64P("length", "l", 0, "bytes to scan from the offset (0 = to the end)")
	excludeCC  = flag.BoolP("exclude-control", "x", false, "exclude tab/LF/CR from the printable set")
	unicodeOut = flag.BoolP("unicode-output", "u", false, "transcode matches to UTF-16LE output")
	regex      = flag.String("regex", "", "only report runs matching this regular expression")
	wildcard   = flag.String("wildcard", "", "only report runs matching this DOS-style wildcard")
	syncMode   = flag.Bool("sync", false, "force the sequential decoder driver")
	bufferSize = flag.Int("buffer-size", 65536, "read buffer size in bytes")
	parallel   = flag.IntP("parallel", "p", 4, "maximum number of processes scanned concurrently")
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	if flag.NArg() == 0 {
		log.Fatalf("Usage: pstrs [options] <pid> [pid...]")
	}

	opts, err := buildOptions()
	if err != nil {
		log.Fatalf("building scan options: %v", err)
	}

	out := sink.NewBufferedSink(os.Stdout)
	defer out.Close()

	var items []scan.ScanItem
	for _, arg := range flag.Args() {
		pid, err := strconv.ParseUint(arg, 10, 32)
		if err != nil {
			log.Printf("%s: not a process id: %v", arg, err)
			continue
		}

		proc := procmem.NewWindowsProcess()
		if err := proc.Open(uint32(pid)); err != nil {
			log.Printf("pid %d: %v", pid, err)
			continue
		}
		stream, err := procmem.NewStream(proc)
		if err != nil {
			log.Printf("pid %d: %v", pid, err)
			proc.Close()
			continue
		}

		items = append(items, scan.ScanItem{
			Source: stream,
			Opts:   opts,
			Sink:   &enrichingSink{Sink: out, stream: stream, pid: uint32(pid), path: proc.ProcessPath()},
		})
	}
	if len(items) == 0 {
		log.Fatalf("no valid process ids to scan")
	}

	if err := scan.ScanMany(context.Background(), items, *parallel); err != nil {
		log.Printf("scan failed: %v", err)
	}
}

func buildOptions() (scan.Options, error) {
	blocks, err := charset.NewBlockSet(splitNonEmpty(*blockNames)...)
	if err != nil {
		return scan.Options{}, err
	}

	var encs scan.EncodingSet
	for _, name := range splitNonEmpty(*encoding) {
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
	case *regex != "":
		rf, err := filter.NewRegexFilter(*regex, filter.RegexOptions{IgnoreCase: true})
		if err != nil {
			return scan.Options{}, err
		}
		f = rf
	case *wildcard != "":
		wf, err := filter.NewWildcardFilter(*wildcard)
		if err != nil {
			return scan.Options{}, err
		}
		f = wf
	}

	target := decode.TargetRaw
	if *unicodeOut {
		target = decode.TargetUnicode
	}

	return scan.Options{
		Encodings:        encs,
		Blocks:           blocks,
		StartOffset:      *offset,
		BytesToScan:      *length,
		MinLength:        *minLength,
		BufferSize:       *bufferSize,
		ExcludeControlCP: *excludeCC,
		Sync:             *syncMode,
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

// enrichingSink fills in the process-source fields of each Result (process
// id/path, region kind, heap, thread, mapped file) by locating its offset
// back in the originating stream before forwarding it to the wrapped sink.
// This lives in the CLI, not in scan or procmem, because only the caller
// that built the stream knows which process it belongs to.
type enrichingSink struct {
	sink.Sink
	stream *procmem.Stream
	pid    uint32
	path   string
}

func (s *enrichingSink) Emit(r model.Result) error {
	if region, _, ok := s.stream.Locate(r.Offset); ok {
		r.ProcessID = s.pid
		r.ProcessPath = s.path
		r.RegionKind = region.Kind
		r.MappedFile = region.MappedFilePath
		r.ThreadID = region.OwningThreadID
		if region.Heap != nil {
			r.HeapID = region.Heap.ID
		}
	}
	return s.Sink.Emit(r)
}
