package scan

import "io"

// Source is anything Scanner can read bytes from at a known length: an
// *os.File given a Len method by the file/directory CLI, or a
// *procmem.Stream for the process CLI.
type Source interface {
	io.ReadSeeker
	Len() (int64, error)
	Close() error
}
