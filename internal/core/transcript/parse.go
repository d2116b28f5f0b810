package transcript

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/jszwec/csvutil"
)

// ParseError describes one record the parser could not decode
type ParseError struct {
	Line    int
	Message string
}

// Parse decodes raw CSV text into rows using header-based column mapping
// empty lines are skipped, bad records are collected instead of aborting
// header is returned even when some records fail so structural checks can run
func Parse(content string) (rows []Row, header []string, perrs []ParseError) {
	cr := csv.NewReader(strings.NewReader(content))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	dec, err := csvutil.NewDecoder(cr)
	if err != nil {
		if errors.Is(err, io.EOF) {
			// no header at all, empty input
			return nil, nil, nil
		}
		return nil, nil, []ParseError{{Line: 1, Message: err.Error()}}
	}
	header = dec.Header()

	for {
		var row Row
		err := dec.Decode(&row)
		if err == nil {
			rows = append(rows, row)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		perrs = append(perrs, ParseError{Line: errLine(err), Message: err.Error()})
		// csv reader errors are not recoverable mid stream, stop here
		var csvErr *csv.ParseError
		if !errors.As(err, &csvErr) {
			break
		}
	}
	return rows, header, perrs
}

func errLine(err error) int {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return csvErr.Line
	}
	return 0
}
