package report

import "fmt"

// WriteError is an output failure: the file could not be created or written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string { return fmt.Sprintf("write %s: %v", e.Path, e.Err) }

func (e *WriteError) Unwrap() error { return e.Err }

// RenderError is a chart that could not be drawn.
type RenderError struct {
	Report string
	Format Format
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s chart for %s: %v", e.Format, e.Report, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
