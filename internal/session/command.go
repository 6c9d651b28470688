package session

import (
	"errors"
	"fmt"
	"strings"
)

// Command is a menu action. Its numeric value is what the ledger records.
type Command int

const (
	Add Command = iota + 1
	View
	Update
	Remove
	Export
	Import
	Report
	Exit
)

var commandLabels = map[Command]string{
	Add:    "Add Item",
	View:   "View Inventory",
	Update: "Update Item",
	Remove: "Remove Item",
	Export: "Export Data",
	Import: "Import Data",
	Report: "Generate Report",
	Exit:   "Exit",
}

// Commands lists every command in menu order.
func Commands() []Command {
	return []Command{Add, View, Update, Remove, Export, Import, Report, Exit}
}

// ParseCommand maps a menu number to a command.
func ParseCommand(n int) (Command, bool) {
	c := Command(n)
	_, ok := commandLabels[c]
	return c, ok
}

func (c Command) String() string {
	if s, ok := commandLabels[c]; ok {
		return s
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// Format is a file format for export and import.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for formats other than csv and json.
var ErrUnknownFormat = errors.New("unknown format")

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}
