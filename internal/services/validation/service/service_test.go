package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"transcriba/internal/platform/store"
	rulessvc "transcriba/internal/services/rules/service"
	"transcriba/internal/services/validation/domain"
)

const validCSV = `ID,Hablante,Timestamp,Rol,Texto_Original,Texto_Normalizado,Nivel_de_Confianza
1,Juan Pérez,00:00:01,E,texto de prueba,texto de prueba suficientemente largo,5
2,Sistema,00:00:05,S,Fin.,Fin.,5
`

type fakeCH struct {
	inserts []string
	err     error
}

func (f *fakeCH) Insert(_ context.Context, table string, _ any) error {
	f.inserts = append(f.inserts, table)
	return f.err
}

func (f *fakeCH) Query(_ context.Context, _ string, _ ...any) (store.Rows, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCH) Close() error { return nil }

func TestCheckValidTranscript(t *testing.T) {
	svc := New(rulessvc.NewStatic(), nil, zerolog.Nop())

	res, err := svc.Check(context.Background(), domain.CheckInput{CSVContent: validCSV})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !res.Report.Valid {
		t.Fatalf("expected a valid report, got %+v", res.Report.Errors)
	}
	if res.Language != domain.DefaultLanguage {
		t.Fatalf("language default not applied: %q", res.Language)
	}
	if res.RunID == "" || !strings.Contains(res.RunID, "-") {
		t.Fatalf("run id looks wrong: %q", res.RunID)
	}
}

func TestCheckInvalidTranscriptStillResolves(t *testing.T) {
	svc := New(rulessvc.NewStatic(), nil, zerolog.Nop())

	res, err := svc.Check(context.Background(), domain.CheckInput{CSVContent: "ID\n"})
	if err != nil {
		t.Fatalf("invalid content must not error the call: %v", err)
	}
	if res.Report.Valid {
		t.Fatalf("report should be invalid")
	}
}

func TestCheckLogsRun(t *testing.T) {
	ch := &fakeCH{}
	svc := New(rulessvc.NewStatic(), ch, zerolog.Nop())

	if _, err := svc.Check(context.Background(), domain.CheckInput{CSVContent: validCSV}); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(ch.inserts) != 1 || ch.inserts[0] != "validation_runs" {
		t.Fatalf("expected one validation_runs insert, got %v", ch.inserts)
	}
}

func TestCheckSurvivesRunLogFailure(t *testing.T) {
	ch := &fakeCH{err: errors.New("ch down")}
	svc := New(rulessvc.NewStatic(), ch, zerolog.Nop())

	res, err := svc.Check(context.Background(), domain.CheckInput{CSVContent: validCSV})
	if err != nil {
		t.Fatalf("run log failure must not fail the call: %v", err)
	}
	if !res.Report.Valid {
		t.Fatalf("report changed by run log failure")
	}
}

func TestCheckPassesParticipants(t *testing.T) {
	svc := New(rulessvc.NewStatic(), nil, zerolog.Nop())

	content := `ID,Hablante,Timestamp,Rol,Texto_Original,Texto_Normalizado,Nivel_de_Confianza
1,Otra Persona,00:00:01,E,texto de prueba,texto de prueba suficientemente largo,5
2,Sistema,00:00:05,S,Fin.,Fin.,5
`
	res, err := svc.Check(context.Background(), domain.CheckInput{
		CSVContent:  content,
		Interviewee: &domain.ParticipantInput{FirstName: "Juan", LastName: "Pérez"},
		Researcher:  &domain.ParticipantInput{FirstName: "María", LastName: "López"},
	})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	var found bool
	for _, w := range res.Report.Warnings {
		if w.Type == "inconsistent_entrevistado" {
			found = true
		}
	}
	if !found {
		t.Fatalf("speaker pass did not run: %+v", res.Report.Warnings)
	}
}
