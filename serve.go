package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/iplocator/iplocator/config"
	"github.com/iplocator/iplocator/locatorlib"
	"github.com/iplocator/iplocator/ranges"
	"github.com/iplocator/iplocator/table"
)

const shutdownTimeout = 10 * time.Second

func makeHTTPHandler(conf *config.Config, t *table.Table, logger locatorlib.Logger) http.Handler {
	handler := locatorlib.NewHTTPHandler(locatorlib.HTTPOptions{
		Locator:        locatorlib.NewLocator(t, logger),
		Logger:         logger,
		StaticDir:      conf.GetStaticDir(),
		RequestTimeout: conf.GetRequestTimeout(),
	})

	return withBasicAuth(handler, conf.GetBasicAuth())
}

func mainServe(conf *config.Config) error {
	t, err := table.Load(afero.NewOsFs(), conf.GetTablePath())
	if err != nil {
		return errors.Annotate(err, "cannot load table")
	}

	log.WithFields(log.Fields{
		"path": conf.GetTablePath(),
		"ipv4": t.Len(ranges.FamilyIPv4),
		"ipv6": t.Len(ranges.FamilyIPv6),
	}).Info("Table is loaded")

	ctx, cancel := makeRootContext()
	defer cancel()

	srv := &http.Server{
		Addr:    conf.GetListen(),
		Handler: makeHTTPHandler(conf, t, newLogger(os.Stderr)),
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		srv.Shutdown(shutdownCtx) // nolint: errcheck
	}()

	log.WithField("listen", conf.GetListen()).Info("Start serving")

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Annotate(err, "server has failed")
	}

	return nil
}
