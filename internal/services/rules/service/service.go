// Package service contains the rule provider implementations
package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"transcriba/internal/core/rules"
	"transcriba/internal/modkit/repokit"
	"transcriba/internal/platform/logger"
	"transcriba/internal/services/rules/domain"
	"transcriba/internal/services/rules/repo"
)

// Service defines the rule provider contract
type Service interface {
	domain.ProviderPort
}

// normalizationFetchLimit bounds the concurrent per-rule queries
const normalizationFetchLimit = 8

// Remote loads rules from the persistent store
type Remote struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// NewRemote constructs a store-backed provider
func NewRemote(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Remote {
	if db == nil {
		panic("rules.Remote requires a non nil TxRunner")
	}
	if binder == nil {
		panic("rules.Remote requires a non nil Repo binder")
	}
	return &Remote{Repo: binder.Bind(db), binder: binder, db: db}
}

// Rules fetches the expressions for language, then their normalization
// phrases as a bounded concurrent batch
func (s *Remote) Rules(ctx context.Context, language string) (rules.Set, error) {
	exprs, err := s.Repo.ListExpressions(ctx, language)
	if err != nil {
		return rules.Set{}, err
	}

	out := make([]rules.Rule, len(exprs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(normalizationFetchLimit)
	for i, e := range exprs {
		g.Go(func() error {
			norms, err := s.Repo.ListNormalizations(gctx, e.ID)
			if err != nil {
				return err
			}
			out[i] = rules.Rule{
				Original:       e.Original,
				Normalizations: norms,
				SelfValid:      e.SelfValid,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return rules.Set{}, err
	}
	return rules.NewSet(out), nil
}

// Static serves the embedded default rule set for any language
type Static struct{}

// NewStatic constructs the embedded provider
func NewStatic() Static { return Static{} }

// Rules returns the built-in defaults
func (Static) Rules(_ context.Context, _ string) (rules.Set, error) {
	return rules.Static(), nil
}

// Fallback tries a primary provider and degrades to a secondary on failure
// a single failed attempt triggers the fallback, there are no retries so
// validation never blocks on store availability
type Fallback struct {
	Primary   domain.ProviderPort
	Secondary domain.ProviderPort
	Log       logger.Logger
}

// Rules returns the primary rules, or the secondary set when the primary
// errors or comes back empty
func (f Fallback) Rules(ctx context.Context, language string) (rules.Set, error) {
	set, err := f.Primary.Rules(ctx, language)
	if err != nil {
		f.Log.Warn().Err(err).Str("language", language).Msg("rule fetch failed, using built-in defaults")
		return f.Secondary.Rules(ctx, language)
	}
	if set.Len() == 0 {
		f.Log.Debug().Str("language", language).Msg("no stored rules for language, using built-in defaults")
		return f.Secondary.Rules(ctx, language)
	}
	return set, nil
}
