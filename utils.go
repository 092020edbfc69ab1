package main

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"

	"github.com/9seconds/geoenrich/config"
	"github.com/9seconds/geoenrich/enricher"
	"github.com/9seconds/geoenrich/geolib"
)

const (
	maxEventSize    = 1024 * 1024
	shutdownTimeout = 5 * time.Second
)

type eventEnricher interface {
	Enrich(ctx context.Context, evt enricher.Event) (enricher.EnrichedEvent, bool)
}

type configOverrides struct {
	file   *os.File
	dbPath string
	shape  string
	listen string
}

func makeRootContext() (context.Context, context.CancelFunc) {
	rootCtx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)

	go func() {
		for range sigChan {
			cancel()
		}
	}()

	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	return rootCtx, cancel
}

func loadConfig(overrides configOverrides) (*config.Config, error) {
	conf := config.Default()

	if overrides.file != nil {
		defer overrides.file.Close()

		parsed, err := config.Decode(overrides.file)
		if err != nil {
			return nil, err
		}

		conf = parsed
	}

	if overrides.dbPath != "" {
		conf.DBPath = overrides.dbPath
	}

	if overrides.shape != "" {
		parsed, err := geolib.ParseShape(overrides.shape)
		if err != nil {
			return nil, err
		}

		conf.Shape = parsed
	}

	if overrides.listen != "" {
		conf.Listen = overrides.listen
	}

	if err := conf.Validate(); err != nil {
		return nil, errors.Annotate(err, "Invalid value")
	}

	return conf, nil
}

// processEvents handles events one by one: each event is enriched and
// emitted before the next line is read.
func processEvents(ctx context.Context, enr eventEnricher, reader io.Reader) error {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEventSize)

	lineNumber := 0

	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}

		lineNumber++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		evt := enricher.Event{}

		if err := json.Unmarshal([]byte(line), &evt); err != nil {
			log.WithFields(log.Fields{
				"line":  lineNumber,
				"error": err.Error(),
			}).Warn("Cannot parse event.")

			continue
		}

		enr.Enrich(ctx, evt)
	}

	return errors.Annotate(scanner.Err(), "cannot scan events")
}

func serveHTTP(ctx context.Context, cancel context.CancelFunc, listen string, handler http.Handler) {
	srv := &http.Server{
		Addr:    listen,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		srv.Shutdown(shutdownCtx) // nolint: errcheck
	}()

	log.WithFields(log.Fields{
		"listen": listen,
	}).Info("Start HTTP API.")

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithFields(log.Fields{
			"error": err.Error(),
		}).Error("HTTP API has stopped.")
		cancel()
	}
}
