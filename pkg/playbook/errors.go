package playbook

import "fmt"

// IOError reports a playbook or report file that could not be read or written.
type IOError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ParseError reports input that is not a valid YAML document.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse playbook: %v", e.Err)
	}
	return fmt.Sprintf("parse playbook %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
