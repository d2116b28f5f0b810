// Package module wires validation into the API using modkit
package module

import (
	"net/http"

	modkit "transcriba/internal/modkit"
	"transcriba/internal/modkit/httpkit"
	str "transcriba/internal/platform/strings"
	rulesdomain "transcriba/internal/services/rules/domain"
	rulessvc "transcriba/internal/services/rules/service"
	validationhttp "transcriba/internal/services/validation/http"
	validationsvc "transcriba/internal/services/validation/service"
)

// Ports exposed for cross-module wiring
// Checker lets other modules validate CSV content without HTTP
type Ports struct {
	Checker validationsvc.Service
}

// InPorts are the ports this module consumes from others
type InPorts struct {
	Rules rulesdomain.ProviderPort
}

// Module implements the validation module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports Ports

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc validationsvc.Service
}

// New constructs the validation module
// inject InPorts via modkit.WithPorts to share the rules provider,
// otherwise the module falls back to the embedded rule set
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("validation"),
		modkit.WithPrefix("/validation"),
	}, opts...)...)

	var provider rulesdomain.ProviderPort = rulessvc.NewStatic()
	if in, ok := b.Ports.(InPorts); ok && in.Rules != nil {
		provider = in.Rules
	}

	svc := validationsvc.New(provider, deps.CH, deps.Log)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Checker: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		validationhttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "validation") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns the module port set
func (m *Module) Ports() any { return m.ports }
