// Package module wires the rule provider into the app using modkit
package module

import (
	"net/http"

	modkit "transcriba/internal/modkit"
	"transcriba/internal/modkit/httpkit"
	str "transcriba/internal/platform/strings"
	"transcriba/internal/services/rules/domain"
	rulesrepo "transcriba/internal/services/rules/repo"
	rulessvc "transcriba/internal/services/rules/service"
)

// Ports exposed by the rules module for cross-module wiring
type Ports struct {
	Provider domain.ProviderPort
}

// Module implements the rules module
// it mounts no routes, it only owns the provider port
type Module struct {
	deps  modkit.Deps
	name  string
	mws   []func(http.Handler) http.Handler
	ports Ports
}

// New constructs the rules module
// with a Postgres seam present the provider is store-backed with a
// static fallback, otherwise it serves the embedded defaults directly
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("rules")}, opts...)...)

	var provider domain.ProviderPort = rulessvc.NewStatic()
	if deps.PG != nil {
		provider = rulessvc.Fallback{
			Primary:   rulessvc.NewRemote(deps.PG, rulesrepo.NewPG()),
			Secondary: rulessvc.NewStatic(),
			Log:       deps.Log,
		}
	}

	return &Module{
		deps:  deps,
		name:  b.Name,
		mws:   b.Mw,
		ports: Ports{Provider: provider},
	}
}

// MountRoutes implements the modkit.Module interface, the rules module
// has no HTTP surface
func (m *Module) MountRoutes(httpkit.Router) {}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "rules") }

// Ports returns the provider port set
func (m *Module) Ports() any { return m.ports }
