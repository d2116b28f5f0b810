package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"transcriba/internal/core/rules"
	"transcriba/internal/services/rules/repo"
)

type fakeRepo struct {
	exprs    []repo.ExpressionRow
	norms    map[string][]string
	exprErr  error
	normsErr error
}

func (f *fakeRepo) ListExpressions(_ context.Context, _ string) ([]repo.ExpressionRow, error) {
	return f.exprs, f.exprErr
}

func (f *fakeRepo) ListNormalizations(_ context.Context, id string) ([]string, error) {
	if f.normsErr != nil {
		return nil, f.normsErr
	}
	return f.norms[id], nil
}

func TestRemoteRules(t *testing.T) {
	fr := &fakeRepo{
		exprs: []repo.ExpressionRow{
			{ID: "a", Original: "sí", SelfValid: false},
			{ID: "b", Original: "Fin.", SelfValid: true},
		},
		norms: map[string][]string{
			"a": {"Afirmación", "Confirma"},
		},
	}
	s := &Remote{Repo: fr}

	set, err := s.Rules(context.Background(), "es-ES")
	if err != nil {
		t.Fatalf("Rules: %v", err)
	}
	if set.Len() != 2 {
		t.Fatalf("expected 2 rules, got %d", set.Len())
	}
	rule, ok := set.Match("sí")
	if !ok || len(rule.Normalizations) != 2 {
		t.Fatalf("sí rule wrong: %+v ok=%v", rule, ok)
	}
	end, ok := set.Match("fin.")
	if !ok || !end.SelfValid || len(end.Normalizations) != 0 {
		t.Fatalf("Fin. rule wrong: %+v ok=%v", end, ok)
	}
}

func TestRemoteRulesPropagatesErrors(t *testing.T) {
	boom := errors.New("store down")

	s := &Remote{Repo: &fakeRepo{exprErr: boom}}
	if _, err := s.Rules(context.Background(), "es-ES"); !errors.Is(err, boom) {
		t.Fatalf("expected expression error, got %v", err)
	}

	s = &Remote{Repo: &fakeRepo{
		exprs:    []repo.ExpressionRow{{ID: "a", Original: "sí"}},
		normsErr: boom,
	}}
	if _, err := s.Rules(context.Background(), "es-ES"); !errors.Is(err, boom) {
		t.Fatalf("expected normalization error, got %v", err)
	}
}

type stubProvider struct {
	set rules.Set
	err error
}

func (s stubProvider) Rules(_ context.Context, _ string) (rules.Set, error) { return s.set, s.err }

func TestFallbackUsesPrimary(t *testing.T) {
	primary := rules.NewSet([]rules.Rule{{Original: "vale", Normalizations: []string{"De acuerdo"}}})
	f := Fallback{
		Primary:   stubProvider{set: primary},
		Secondary: NewStatic(),
		Log:       zerolog.Nop(),
	}
	set, err := f.Rules(context.Background(), "es-ES")
	if err != nil {
		t.Fatalf("Rules: %v", err)
	}
	if _, ok := set.Match("vale"); !ok {
		t.Fatalf("expected the primary set to win")
	}
}

func TestFallbackOnErrorMatchesStatic(t *testing.T) {
	f := Fallback{
		Primary:   stubProvider{err: errors.New("store unreachable")},
		Secondary: NewStatic(),
		Log:       zerolog.Nop(),
	}
	set, err := f.Rules(context.Background(), "es-ES")
	if err != nil {
		t.Fatalf("fallback must not surface the primary error, got %v", err)
	}
	if set.Len() != rules.Static().Len() {
		t.Fatalf("fallback set differs from the built-in defaults")
	}
	if _, ok := set.Match("sí"); !ok {
		t.Fatalf("defaults missing sí")
	}
}

func TestFallbackOnEmptyResult(t *testing.T) {
	f := Fallback{
		Primary:   stubProvider{set: rules.NewSet(nil)},
		Secondary: NewStatic(),
		Log:       zerolog.Nop(),
	}
	set, err := f.Rules(context.Background(), "es-ES")
	if err != nil {
		t.Fatalf("Rules: %v", err)
	}
	if set.Len() == 0 {
		t.Fatalf("empty primary should fall back to defaults")
	}
}
