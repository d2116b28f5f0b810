package validate

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"transcriba/internal/core/rules"
	"transcriba/internal/core/transcript"
	pstrings "transcriba/internal/platform/strings"
)

// segmentNote is a per-row partial finding produced by a pass
// the orchestrator merges notes for the same row into one SegmentIssue
type segmentNote struct {
	index    int
	errors   []string
	warnings []string
}

// minNormalizedLen is the minimum character count of a normalized text
const minNormalizedLen = 10

// punctuationFloor is the length past which unpunctuated text is suspicious
const punctuationFloor = 50

// checkStructure gates the rest of the pipeline
func checkStructure(header []string, rs []transcript.Row) []Finding {
	if len(rs) == 0 {
		return []Finding{{
			Type:    TypeEmptyFile,
			Message: "El archivo está vacío o no contiene segmentos",
		}}
	}
	if missing := transcript.MissingColumns(header); len(missing) > 0 {
		return []Finding{{
			Type:    TypeMissingColumns,
			Message: "Faltan columnas requeridas en el archivo",
			Details: strings.Join(missing, ", "),
		}}
	}
	return nil
}

// checkIDs verifies the id sequence is numeric, contiguous and unique
func checkIDs(rs []transcript.Row) []Finding {
	seen := map[int]int{}
	var ids []int
	for _, r := range rs {
		n, ok := r.ParsedID()
		if !ok {
			continue
		}
		seen[n]++
		ids = append(ids, n)
	}
	if len(ids) == 0 {
		return []Finding{{
			Type:    TypeInvalidIDs,
			Message: "Ningún ID de segmento es un número válido",
		}}
	}

	var out []Finding

	sort.Ints(ids)
	min, max := ids[0], ids[len(ids)-1]
	var gaps []int
	for n := min; n <= max; n++ {
		if seen[n] == 0 {
			gaps = append(gaps, n)
		}
	}
	if len(gaps) > 0 {
		out = append(out, Finding{
			Type:    TypeIDGaps,
			Message: "La secuencia de IDs tiene saltos",
			Details: "IDs faltantes: " + pstrings.JoinInts(gaps),
		})
	}

	var dups []int
	for n := min; n <= max; n++ {
		if seen[n] > 1 {
			dups = append(dups, n)
		}
	}
	if len(dups) > 0 {
		out = append(out, Finding{
			Type:    TypeDuplicateIDs,
			Message: "Hay IDs de segmento duplicados",
			Details: "IDs duplicados: " + pstrings.JoinInts(dups),
		})
	}
	return out
}

// checkConfidence classifies the 1-5 confidence self-rating of every row
// non-numeric values error per row, low values block, level 3 only warns
func checkConfidence(rs []transcript.Row) (errs, warns []Finding) {
	var low, medium []string
	for _, r := range rs {
		raw := strings.TrimSpace(r.Confidence)
		level, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, Finding{
				Type:    TypeInvalidConfidence,
				Message: fmt.Sprintf("El segmento %s tiene un nivel de confianza no numérico", r.ID),
				Details: fmt.Sprintf("Valor: %q", r.Confidence),
			})
			continue
		}
		switch {
		case level <= 2:
			low = append(low, r.ID)
		case level == 3:
			medium = append(medium, r.ID)
		}
	}
	if len(low) > 0 {
		errs = append(errs, Finding{
			Type:    TypeLowConfidence,
			Message: "Hay segmentos con nivel de confianza bajo (2 o menos)",
			Details: "Segmentos: " + strings.Join(low, ", "),
		})
	}
	if len(medium) > 0 {
		warns = append(warns, Finding{
			Type:    TypeMediumConfidence,
			Message: "Hay segmentos con nivel de confianza medio (3)",
			Details: "Segmentos: " + strings.Join(medium, ", "),
		})
	}
	return errs, warns
}

// checkEndMark requires the last row to be a system closing marker
func checkEndMark(rs []transcript.Row) []Finding {
	if len(rs) == 0 {
		return nil
	}
	if rs[len(rs)-1].Role != transcript.RoleSystem {
		return []Finding{{
			Type:    TypeMissingEndMark,
			Message: "El último segmento no es una marca de cierre (Rol \"S\")",
		}}
	}
	return nil
}

// checkNormalization applies the normalized-text policies row by row
func checkNormalization(rs []transcript.Row, set rules.Set) []segmentNote {
	var notes []segmentNote
	for i, r := range rs {
		var note segmentNote
		note.index = i

		normalized := strings.TrimSpace(r.NormalizedText)
		system := r.Role == transcript.RoleSystem

		if utf8.RuneCountInString(normalized) < minNormalizedLen {
			selfValid := false
			if rule, ok := set.Match(normalized); ok && rule.SelfValid {
				selfValid = true
			}
			if !system && !selfValid {
				note.errors = append(note.errors, fmt.Sprintf(
					"El texto normalizado es demasiado corto (mínimo %d caracteres)", minNormalizedLen))
			}
		}

		if rule, ok := set.Match(r.OriginalText); ok && !rule.SelfValid && !system {
			suggestions := strings.Join(rule.Normalizations, ", ")
			if rules.EqualFold(normalized, strings.TrimSpace(r.OriginalText)) {
				note.errors = append(note.errors, fmt.Sprintf(
					"La expresión %q debe normalizarse. Sugerencias: %s", rule.Original, suggestions))
			} else if !containsAnyFold(normalized, rule.Normalizations) {
				note.warnings = append(note.warnings, fmt.Sprintf(
					"La normalización no coincide con las sugeridas para %q: %s", rule.Original, suggestions))
			}
		}

		if utf8.RuneCountInString(r.NormalizedText) > punctuationFloor &&
			!strings.ContainsAny(r.NormalizedText, ".!?") && !system {
			note.warnings = append(note.warnings, "Texto largo sin signos de puntuación")
		}

		if r.MissingTimestamp() && !system {
			note.warnings = append(note.warnings, "Falta el timestamp del segmento")
		}

		if len(note.errors) > 0 || len(note.warnings) > 0 {
			notes = append(notes, note)
		}
	}
	return notes
}

// checkSpeakers cross-checks speaker names against the expected participants
// it only runs when the caller supplies both identities
func checkSpeakers(rs []transcript.Row, interviewee, researcher *Participant) ([]segmentNote, []Finding) {
	if interviewee == nil || researcher == nil {
		return nil, nil
	}

	var notes []segmentNote
	var badInterviewee, badResearcher []string

	for i, r := range rs {
		switch r.Role {
		case transcript.RoleInterviewee:
			if !speakerMatches(r.Speaker, *interviewee) {
				notes = append(notes, segmentNote{index: i, warnings: []string{fmt.Sprintf(
					"El hablante %q no coincide con el entrevistado %q", r.Speaker, interviewee.FullName())}})
				badInterviewee = append(badInterviewee, r.ID)
			}
		case transcript.RoleInterviewer:
			if !speakerMatches(r.Speaker, *researcher) {
				notes = append(notes, segmentNote{index: i, warnings: []string{fmt.Sprintf(
					"El hablante %q no coincide con el investigador %q", r.Speaker, researcher.FullName())}})
				badResearcher = append(badResearcher, r.ID)
			}
		}
	}

	var warns []Finding
	if len(badInterviewee) > 0 {
		warns = append(warns, Finding{
			Type:    TypeInconsistentSubject,
			Message: "Hay segmentos cuyo hablante no coincide con el entrevistado",
			Details: "Segmentos: " + strings.Join(badInterviewee, ", "),
		})
	}
	if len(badResearcher) > 0 {
		warns = append(warns, Finding{
			Type:    TypeInconsistentAuthor,
			Message: "Hay segmentos cuyo hablante no coincide con el investigador",
			Details: "Segmentos: " + strings.Join(badResearcher, ", "),
		})
	}
	return notes, warns
}

// speakerMatches accepts a full-name match, a contains-both-names match,
// or a token equal to the bare first or last name
func speakerMatches(speaker string, p Participant) bool {
	s := rules.Fold(strings.TrimSpace(speaker))
	full := rules.Fold(p.FullName())
	first := rules.Fold(strings.TrimSpace(p.FirstName))
	last := rules.Fold(strings.TrimSpace(p.LastName))

	if s == full {
		return true
	}
	if first != "" && last != "" && strings.Contains(s, first) && strings.Contains(s, last) {
		return true
	}
	for _, tok := range strings.Fields(s) {
		if (first != "" && tok == first) || (last != "" && tok == last) {
			return true
		}
	}
	return false
}

// collectStats always runs, independent of the other passes
func collectStats(rs []transcript.Row) Stats {
	st := Stats{
		RolesDistribution: map[string]int{},
		ConfidenceLevels:  map[string]int{},
	}
	st.TotalSegments = len(rs)

	var sumOriginal, sumNormalized int
	for _, r := range rs {
		st.RolesDistribution[r.Role]++
		st.ConfidenceLevels[r.Confidence]++
		sumOriginal += utf8.RuneCountInString(r.OriginalText)
		sumNormalized += utf8.RuneCountInString(r.NormalizedText)
		if r.MissingTimestamp() {
			st.MissingTimestamps++
		}
	}
	if len(rs) > 0 {
		st.AverageOriginalLength = roundMean(sumOriginal, len(rs))
		st.AverageNormalizedLength = roundMean(sumNormalized, len(rs))
	}
	return st
}

func roundMean(sum, n int) int {
	return int(math.Round(float64(sum) / float64(n)))
}

func containsAnyFold(haystack string, needles []string) bool {
	for _, n := range needles {
		if rules.ContainsFold(haystack, n) {
			return true
		}
	}
	return false
}
