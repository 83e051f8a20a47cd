package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/misteriaud/passeri"
	"github.com/misteriaud/passeri/implementer"
	"github.com/misteriaud/passeri/internal/logging"
	"github.com/misteriaud/passeri/server"
)

// Run parses args and serves the backend until the transport closes or the
// process is interrupted.
func Run(args []string) error {
	options := &Options{}
	if _, err := flags.ParseArgs(options, args); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	// stdout carries the protocol on stdio, so process logs always go to stderr
	return Serve(ctx, options, os.Stderr)
}

// Serve runs the backend described by options, logging to logs.
func Serve(ctx context.Context, options *Options, logs io.Writer) error {
	logger := logging.New(logs, options.LogLevel, options.LogFormat)
	serverOptions, err := options.ServerOptions(ctx)
	if err != nil {
		return err
	}
	memory := implementer.New(implementer.WithLatency(options.Latency))
	srv, err := passeri.NewServer(memory.NewImplementer, serverOptions, logger,
		server.WithCustomHTTPHandler(healthURI, health(memory)))
	if err != nil {
		return err
	}

	switch serverOptions.Transport.Type {
	case passeri.TransportStdio:
		logger.Info("serving on stdio")
		return srv.Stdio(ctx).ListenAndServe()
	case passeri.TransportSSE, passeri.TransportStreamable:
		endpoint := srv.HTTP(ctx, "")
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = endpoint.Shutdown(shutdownCtx)
		}()
		if err = endpoint.ListenAndServe(); errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
	return fmt.Errorf("unsupported transport: %v", serverOptions.Transport.Type)
}
