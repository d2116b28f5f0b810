package validate

import (
	"sort"
	"strings"

	"transcriba/internal/core/rules"
	"transcriba/internal/core/transcript"
)

// Options carries the inputs of a validation call besides the CSV itself
type Options struct {
	// Rules is the permitted-expression set to validate against
	Rules rules.Set

	// Interviewee and Researcher enable the speaker consistency pass
	// when both are supplied
	Interviewee *Participant
	Researcher  *Participant
}

// normalizationPass is a seam so tests can inject a failing pass
var normalizationPass = checkNormalization

// Run parses content and executes every validation pass, returning the
// assembled report. It never panics: unexpected failures degrade to a
// single internal_error blocking finding
func Run(content string, opts Options) (report Report) {
	defer func() {
		if r := recover(); r != nil {
			report = Report{
				Valid: false,
				Errors: []Finding{{
					Type:    TypeInternalError,
					Message: "Error interno durante la validación",
				}},
				Stats: emptyStats(),
			}
		}
	}()

	rows, header, perrs := transcript.Parse(content)
	if len(perrs) > 0 {
		return Report{
			Valid: false,
			Errors: []Finding{{
				Type:    TypeParseError,
				Message: "El archivo CSV contiene errores de formato",
				Details: joinParseErrors(perrs),
			}},
			Stats: emptyStats(),
		}
	}

	report = Report{Stats: collectStats(rows)}

	if errs := checkStructure(header, rows); len(errs) > 0 {
		report.Errors = errs
		report.Valid = false
		return report
	}

	report.Errors = append(report.Errors, checkIDs(rows)...)

	confErrs, confWarns := checkConfidence(rows)
	report.Errors = append(report.Errors, confErrs...)
	report.Warnings = append(report.Warnings, confWarns...)

	report.Errors = append(report.Errors, checkEndMark(rows)...)

	notes := normalizationPass(rows, opts.Rules)

	speakerNotes, speakerWarns := checkSpeakers(rows, opts.Interviewee, opts.Researcher)
	notes = append(notes, speakerNotes...)
	report.Warnings = append(report.Warnings, speakerWarns...)

	report.Segments = mergeNotes(rows, notes)
	report.Valid = len(report.Errors) == 0
	return report
}

// mergeNotes folds per-pass notes into one SegmentIssue per row,
// serialized in row order
func mergeNotes(rows []transcript.Row, notes []segmentNote) []SegmentIssue {
	if len(notes) == 0 {
		return nil
	}
	byIndex := map[int]*SegmentIssue{}
	for _, n := range notes {
		issue, ok := byIndex[n.index]
		if !ok {
			issue = &SegmentIssue{ID: rows[n.index].ID, Row: rows[n.index]}
			byIndex[n.index] = issue
		}
		issue.Errors = append(issue.Errors, n.errors...)
		issue.Warnings = append(issue.Warnings, n.warnings...)
	}

	indexes := make([]int, 0, len(byIndex))
	for i := range byIndex {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	out := make([]SegmentIssue, 0, len(indexes))
	for _, i := range indexes {
		out = append(out, *byIndex[i])
	}
	return out
}

func joinParseErrors(perrs []transcript.ParseError) string {
	msgs := make([]string, 0, len(perrs))
	for _, pe := range perrs {
		msgs = append(msgs, pe.Message)
	}
	return strings.Join(msgs, "; ")
}

func emptyStats() Stats {
	return Stats{
		RolesDistribution: map[string]int{},
		ConfidenceLevels:  map[string]int{},
	}
}
