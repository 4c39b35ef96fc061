package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/option"

	"crosswarped.com/soup/internal/cli"
	"crosswarped.com/soup/internal/ctxlog"
	"crosswarped.com/soup/internal/httpapi"
	"crosswarped.com/soup/pkg/language"
	"crosswarped.com/soup/pkg/render"
	"crosswarped.com/soup/pkg/soup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Stdout, os.Args[1:]); err != nil {
		code := 1
		var exitErr *cli.ExitError
		var cfgErr *soup.ConfigurationError
		switch {
		case errors.As(err, &exitErr):
			code = exitErr.Code
		case errors.As(err, &cfgErr):
			code = 2
		}
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(code)
	}
}

// run prints one soup to outW, or serves the HTTP API when -serve is given.
func run(ctx context.Context, outW io.Writer, args []string) error {
	inv, shouldExit, err := cli.Parse(ctx, args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	logger := ctxlog.New(inv.LogLevel, inv.LogFormat, os.Stderr)
	ctx = ctxlog.WithLogger(ctx, logger)

	provider, closeProvider, err := newProvider(ctx, inv)
	if err != nil {
		return err
	}
	defer closeProvider()

	if inv.Serve != "" {
		return serve(ctx, inv, provider)
	}

	seed := inv.Config.Seed
	if !inv.Config.HasSeed {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	ctx, cancel := context.WithTimeout(ctx, inv.Timeout)
	defer cancel()

	s, err := soup.Build(ctx, inv.Config.Soup, provider, rng, logger)
	if err != nil {
		return err
	}
	logger.Debug("Soup ready.", "seed", seed, "words", s.Len())
	return render.NewPrinter(outW, inv.Config.Print).Print(s)
}

// newProvider returns the language data source and a function releasing it.
func newProvider(ctx context.Context, inv *cli.Invocation) (language.Provider, func(), error) {
	if !inv.Cloud {
		return language.Embedded(), func() {}, nil
	}
	if err := language.CheckTableRef(inv.BigQueryTable); err != nil {
		return nil, nil, &cli.ExitError{Code: 2, Message: err.Error()}
	}

	logger := ctxlog.FromContext(ctx)
	logger.Info("Loading words from cloud.", "table", inv.BigQueryTable)

	var opts []option.ClientOption
	if inv.Credentials != "" {
		opts = append(opts, option.WithCredentialsFile(inv.Credentials))
	}
	client, err := bigquery.NewClient(ctx, bigquery.DetectProjectID, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating BigQuery client: %w", err)
	}
	provider, err := language.NewBigQueryProvider(client, inv.BigQueryTable, language.Embedded())
	if err != nil {
		client.Close()
		return nil, nil, err
	}
	return provider, func() {
		if err := client.Close(); err != nil {
			logger.Warn("Failed to close BigQuery client.", "error", err)
		}
	}, nil
}

// serve runs the HTTP API until ctx is done.
func serve(ctx context.Context, inv *cli.Invocation, provider language.Provider) error {
	logger := ctxlog.FromContext(ctx)
	srv := &http.Server{
		Addr:              inv.Serve,
		Handler:           httpapi.NewRouter(httpapi.NewHandler(provider, inv.Config, logger)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Serving HTTP API.", "addr", inv.Serve)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("Shutting down HTTP API.")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
