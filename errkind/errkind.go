// Package errkind defines the scanner's error taxonomy as sentinel errors
// meant to be wrapped with fmt.Errorf("...: %w", err) and compared with
// errors.Is.
package errkind

import "errors"

var (
	// ErrConfig signals a ConfigError: option validation failed before any I/O.
	ErrConfig = errors.New("config error")
	// ErrSourceOpen signals a SourceOpenError: the source could not be opened.
	ErrSourceOpen = errors.New("source open error")
	// ErrOutOfRange signals an OutOfRangeError: start_offset/bytes_to_scan outside source bounds.
	ErrOutOfRange = errors.New("out of range")
	// ErrOsRead signals an unrecoverable OsReadError from file or process memory.
	ErrOsRead = errors.New("os read error")
	// ErrCancelled signals that a cancellation token fired mid-scan.
	ErrCancelled = errors.New("cancelled")
	// ErrSink signals a SinkError: the sink failed to accept or flush a result.
	ErrSink = errors.New("sink error")
)
