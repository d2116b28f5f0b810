// Command transcriba-check validates a transcript CSV offline using the
// embedded rule set. Exits 1 when the file has blocking errors
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"transcriba/internal/core/rules"
	"transcriba/internal/core/validate"
)

func main() {
	var (
		file        = flag.String("file", "", "path to the transcript CSV, or '-' for stdin")
		interviewee = flag.String("interviewee", "", "expected interviewee full name (enables speaker checks with -researcher)")
		researcher  = flag.String("researcher", "", "expected researcher full name (enables speaker checks with -interviewee)")
		asJSON      = flag.Bool("json", false, "emit the full report as JSON")
	)
	flag.Parse()

	if strings.TrimSpace(*file) == "" {
		_, _ = fmt.Fprintln(os.Stderr, "usage: transcriba-check -file transcript.csv [-interviewee \"Nombre Apellido\"] [-researcher \"Nombre Apellido\"] [-json]")
		os.Exit(2)
	}

	content, err := readInput(*file)
	must(err)

	report := validate.Run(string(content), validate.Options{
		Rules:       rules.Static(),
		Interviewee: parseParticipant(*interviewee),
		Researcher:  parseParticipant(*researcher),
	})

	if *asJSON {
		enc, err := json.MarshalIndent(report, "", "  ")
		must(err)
		fmt.Println(string(enc))
	} else {
		printHuman(report)
	}

	if !report.Valid {
		os.Exit(1)
	}
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return os.ReadFile("/dev/stdin")
	}
	return os.ReadFile(path)
}

// parseParticipant splits "First [Middle...] Last" into name parts.
// Everything after the first token joins the last name
func parseParticipant(s string) *validate.Participant {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	p := &validate.Participant{FirstName: fields[0]}
	if len(fields) > 1 {
		p.LastName = strings.Join(fields[1:], " ")
	}
	return p
}

func printHuman(r validate.Report) {
	if r.Valid {
		fmt.Println("VÁLIDO")
	} else {
		fmt.Println("INVÁLIDO")
	}

	for _, f := range r.Errors {
		fmt.Printf("  error   [%s] %s", f.Type, f.Message)
		if f.Details != "" {
			fmt.Printf(" (%s)", f.Details)
		}
		fmt.Println()
	}
	for _, f := range r.Warnings {
		fmt.Printf("  aviso   [%s] %s", f.Type, f.Message)
		if f.Details != "" {
			fmt.Printf(" (%s)", f.Details)
		}
		fmt.Println()
	}
	for _, s := range r.Segments {
		fmt.Printf("  segmento %s\n", s.ID)
		for _, e := range s.Errors {
			fmt.Printf("    error %s\n", e)
		}
		for _, w := range s.Warnings {
			fmt.Printf("    aviso %s\n", w)
		}
	}

	fmt.Printf("  segmentos: %d, timestamps ausentes: %d\n",
		r.Stats.TotalSegments, r.Stats.MissingTimestamps)
}

func must(err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
