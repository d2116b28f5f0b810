// Package api provides the HTTP API for the application
package api

import (
	"transcriba/internal/platform/config"
	"transcriba/internal/platform/logger"
	phttp "transcriba/internal/platform/net/http"
	"transcriba/internal/platform/store"

	"transcriba/internal/modkit"
	"transcriba/internal/modkit/httpkit"
	"transcriba/internal/modkit/module"
	"transcriba/internal/modkit/swaggerkit"

	metamod "transcriba/internal/services/api/meta/module"
	rulesmod "transcriba/internal/services/rules/module"
	transcriptsmod "transcriba/internal/services/transcripts/module"
	validationmod "transcriba/internal/services/validation/module"
)

// Options are the API options
type Options struct {
	Config        config.Conf
	Store         *store.Store
	Logger        logger.Logger
	EnableSwagger bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Log: opt.Logger,
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	// rules owns the provider port, build it first
	rules := rulesmod.New(deps)
	provider := module.MustPortsOf[rulesmod.Ports](rules).Provider

	// validation consumes the provider and exposes the checker
	validation := validationmod.New(deps, modkit.WithPorts(validationmod.InPorts{
		Rules: provider,
	}))
	checker := module.MustPortsOf[validationmod.Ports](validation).Checker

	mods := []module.Module{
		metamod.New(deps),
		rules,
		validation,
	}

	// transcripts needs postgres, skip the module when the store runs without it
	if deps.PG != nil {
		mods = append(mods, transcriptsmod.New(deps, modkit.WithPorts(transcriptsmod.InPorts{
			Checker: checker,
		})))
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its prefix
			m.MountRoutes(api)
		}
	})
}
