// @title         Transcriba API
// @version       0.1.0
// @description   Transcript validation and storage endpoints

package main

import (
	"context"

	"transcriba/internal/modkit/repokit"
	"transcriba/internal/platform/config"
	"transcriba/internal/platform/logger"
	phttp "transcriba/internal/platform/net/http"
	"transcriba/internal/platform/store"

	"transcriba/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	// open the platform store; backends live under SERVICE_PG_* / SERVICE_CH_*
	st, err := store.Open(
		context.Background(),
		store.FromConfig(root.Prefix("SERVICE_")),
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// refuse to start if a configured backend is unreachable
	repokit.MustGuard(context.Background(), st)

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:        apiCfg,
			Store:         st,
			Logger:        *l,
			EnableSwagger: apiCfg.MayBool("SWAGGER", true),
		},
	)

	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
