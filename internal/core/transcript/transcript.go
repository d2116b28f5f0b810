// Package transcript defines the row model of an interview transcription CSV
// and its header-based parser
package transcript

import (
	"strconv"
	"strings"
)

// Recognized values for the Rol column
const (
	RoleInterviewer = "I"
	RoleInterviewee = "E"
	RoleSystem      = "S"
)

// Row is one segment of a transcription CSV
// fields stay strings on purpose, validation interprets them
type Row struct {
	ID             string `csv:"ID"`
	Speaker        string `csv:"Hablante"`
	Timestamp      string `csv:"Timestamp"`
	Role           string `csv:"Rol"`
	OriginalText   string `csv:"Texto_Original"`
	NormalizedText string `csv:"Texto_Normalizado"`
	Confidence     string `csv:"Nivel_de_Confianza"`
}

// requiredColumns are the exact header names a transcript CSV must carry
var requiredColumns = []string{
	"ID",
	"Hablante",
	"Timestamp",
	"Rol",
	"Texto_Original",
	"Texto_Normalizado",
	"Nivel_de_Confianza",
}

// RequiredColumns returns a copy of the mandatory header names in order
func RequiredColumns() []string {
	out := make([]string, len(requiredColumns))
	copy(out, requiredColumns)
	return out
}

// MissingColumns reports which required names are absent from header
func MissingColumns(header []string) []string {
	seen := make(map[string]struct{}, len(header))
	for _, h := range header {
		seen[strings.TrimSpace(h)] = struct{}{}
	}
	var missing []string
	for _, want := range requiredColumns {
		if _, ok := seen[want]; !ok {
			missing = append(missing, want)
		}
	}
	return missing
}

// ParsedID returns the row id as an integer when it parses cleanly
func (r Row) ParsedID() (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(r.ID))
	if err != nil {
		return 0, false
	}
	return n, true
}

// MissingTimestamp reports whether the timestamp field counts as absent
// the convention is an empty cell or the literal "--"
func (r Row) MissingTimestamp() bool {
	ts := strings.TrimSpace(r.Timestamp)
	return ts == "" || ts == "--"
}
