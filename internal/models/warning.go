package models

import "fmt"

// Warning describes an input line that was skipped while reading a file.
type Warning struct {
	Line   int
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Reason)
}
