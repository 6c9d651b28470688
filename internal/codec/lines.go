package codec

import (
	"bufio"
	"encoding/csv"
	"io"
	"strings"
)

// ReadLines calls fn once per physical line of r with the 1-based line number
// and the line's comma-separated fields. Quoting never spans lines: a quote
// left open is confined to its own line and surfaces as err or as a short
// record. Blank lines are passed on as a single empty field.
func ReadLines(r io.Reader, fn func(line int, fields []string, err error) error) error {
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		fields, err := SplitLine(strings.TrimSuffix(sc.Text(), "\r"))
		if err := fn(n, fields, err); err != nil {
			return err
		}
	}
	return sc.Err()
}

// SplitLine splits one line on commas, honouring double-quoted fields.
func SplitLine(line string) ([]string, error) {
	if line == "" {
		return []string{""}, nil
	}
	cr := csv.NewReader(strings.NewReader(line))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr.Read()
}
