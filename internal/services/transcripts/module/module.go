// Package module wires transcripts into the API using modkit
package module

import (
	"net/http"

	modkit "transcriba/internal/modkit"
	"transcriba/internal/modkit/httpkit"
	str "transcriba/internal/platform/strings"
	transcriptshttp "transcriba/internal/services/transcripts/http"
	transcriptsrepo "transcriba/internal/services/transcripts/repo"
	transcriptssvc "transcriba/internal/services/transcripts/service"
	validationdomain "transcriba/internal/services/validation/domain"
)

// InPorts are the ports this module consumes from others
type InPorts struct {
	Checker validationdomain.ServicePort
}

// Module implements the transcripts module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws []func(http.Handler) http.Handler

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc transcriptssvc.Service
}

// New constructs the transcripts module
// the validation checker port is required, inject it via modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("transcripts"),
		modkit.WithPrefix("/transcripts"),
	}, opts...)...)

	in, ok := b.Ports.(InPorts)
	if !ok || in.Checker == nil {
		panic("transcripts module requires a validation checker port")
	}

	svc := transcriptssvc.New(deps.PG, transcriptsrepo.NewPG(), in.Checker, deps.Log)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		transcriptshttp.Register(r, m.svc)
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
func (m *Module) Name() string { return str.MustString(m.name, "transcripts") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns the module port set
func (m *Module) Ports() any { return nil }
