package main

import (
	"os"

	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/9seconds/geoenrich/api"
	"github.com/9seconds/geoenrich/enricher"
	"github.com/9seconds/geoenrich/geolib"
	"github.com/9seconds/geoenrich/providers"
)

var version = "dev"

var (
	app = kingpin.New(
		"geoenrich",
		"Geolocation enrichment of honeypot session events")

	debug = app.Flag("debug", "Run in debug mode.").
		Short('d').
		Envar("GEOENRICH_DEBUG").
		Bool()
	configFile = app.Flag("config", "Path to the config.").
			Short('c').
			Envar("GEOENRICH_CONFIG").
			File()
	dbPath = app.Flag("db-path", "Directory with "+providers.DatabaseFileName+".").
		Envar("GEOENRICH_DB_PATH").
		String()
	shape = app.Flag("shape", "Shape of geoip payload.").
		Envar("GEOENRICH_SHAPE").
		Enum("minimal", "full")
	listen = app.Flag("listen", "host:port to serve HTTP API on.").
		Envar("GEOENRICH_LISTEN").
		String()
	eventsFile = app.Arg("events-path", "Path to JSON lines with events. Stdin is used by default.").
			File()
)

func init() {
	app.Version(version)
	log.SetFormatter(&log.TextFormatter{})
	log.SetOutput(os.Stderr)
	log.SetLevel(log.WarnLevel)
}

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	conf, err := loadConfig(configOverrides{
		file:   *configFile,
		dbPath: *dbPath,
		shape:  *shape,
		listen: *listen,
	})
	if err != nil {
		return errors.Annotate(err, "Cannot load config")
	}

	resolver, err := providers.NewMaxmindCity(conf.DBPath)
	if err != nil {
		return errors.Annotate(err, "Cannot open geolocation database")
	}

	defer func() {
		if err := resolver.Close(); err != nil {
			log.WithFields(log.Fields{
				"path":  resolver.Path(),
				"error": err.Error(),
			}).Warn("Cannot close database.")
		}
	}()

	filtered, err := providers.NewNetworkFilter(resolver, conf.SkipNetworks)
	if err != nil {
		return errors.Annotate(err, "Cannot initialize network filter")
	}

	cache, err := geolib.NewLookupCache(filtered, conf.Shape, geolib.LookupCacheOpts{
		Size:          conf.CacheSize,
		LookupTimeout: conf.LookupTimeout.Duration,
		Locale:        conf.Locale,
	})
	if err != nil {
		return errors.Annotate(err, "Cannot initialize cache")
	}

	enr := enricher.NewEnricher(cache, enricher.NewLogSink(os.Stdout), newLogger())

	log.WithFields(log.Fields{
		"database":   resolver.Path(),
		"shape":      cache.Shape().String(),
		"cache_size": conf.CacheSize,
	}).Info("Geoenrich is started.")

	rootCtx, cancel := makeRootContext()
	defer cancel()

	if conf.Listen != "" {
		router := api.MakeServer(api.Opts{
			Enricher:      enr,
			CacheStats:    cache.Stats(),
			EnricherStats: enr.Stats(),
			User:          conf.APIUser,
			Password:      conf.APIPassword,
		})

		go serveHTTP(rootCtx, cancel, conf.Listen, router)
	}

	input := os.Stdin
	if *eventsFile != nil {
		input = *eventsFile
		defer input.Close()
	}

	if err := processEvents(rootCtx, enr, input); err != nil {
		log.WithFields(log.Fields{
			"error": err.Error(),
		}).Error("Cannot read events.")
	}

	if conf.Listen != "" {
		<-rootCtx.Done()
	}

	log.WithFields(log.Fields{
		"cache":    cache.Stats().Snapshot(),
		"enricher": enr.Stats().Snapshot(),
	}).Info("Geoenrich is stopped.")

	return nil
}
