package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/application/events"
	"github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/application/irrigation"
	"github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/application/watchdog"
	"github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/application/webevents"
	"github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/infrastructure/archive"
	"github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/infrastructure/metrics"
	"github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/infrastructure/mqtt"
	"github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/infrastructure/repositories/database"
	r "github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/infrastructure/repositories/database/irrigation"
	"github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/infrastructure/router"
	"github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/presentation/api"
	mqttconsumer "github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/presentation/mqtt"
)

const serviceName string = "thopasichai"

type flagType int
type flagMap map[flagType]string

const (
	listenAddress flagType = iota
	servicePort
	policiesFile
	configurationFile
	seedFile
	sqlitePath
	timeZone
	watchdogInterval
)

func defaultFlags() flagMap {
	return flagMap{
		listenAddress: "0.0.0.0",
		servicePort:   "8080",

		policiesFile:      "/opt/thopasichai/config/authz.rego",
		configurationFile: "/opt/thopasichai/config/config.yaml",
		seedFile:          "",
		sqlitePath:        "",

		timeZone:         "UTC",
		watchdogInterval: "1h",
	}
}

func main() {
	serviceVersion := buildinfo.SourceVersion()

	ctx, logger, cleanup := o11y.Init(context.Background(), serviceName, serviceVersion)
	defer cleanup()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	flags := parseExternalConfig(logger, defaultFlags())

	repo, err := newRepository(ctx, flags)
	exitIf(err, logger, "could not create or connect to database")

	if flags[seedFile] != "" {
		err = seed(ctx, repo, flags[seedFile])
		exitIf(err, logger, "failed to seed sensors", "file", flags[seedFile])
	}

	m := metrics.New()

	we := webevents.New(logger)
	defer we.Shutdown()

	publishers := []events.Publisher{m, we}

	var messenger messaging.MsgContext
	if os.Getenv("RABBITMQ_HOST") != "" {
		messenger, err = messaging.Initialize(messaging.LoadConfiguration(serviceName, logger))
		exitIf(err, logger, "failed to init messenger")
		defer messenger.Close()

		publishers = append(publishers, messenger)
	}

	notifier, err := newNotifier(flags[configurationFile])
	exitIf(err, logger, "failed to load configuration", "file", flags[configurationFile])
	publishers = append(publishers, notifier)

	archiveCfg, err := archive.LoadConfigFromEnv()
	exitIf(err, logger, "invalid archive configuration")
	if archiveCfg != nil {
		a := archive.New(*archiveCfg)
		defer a.Close()

		publishers = append(publishers, a)
	}

	var subscriber mqttconsumer.Subscriber
	if mqttCfg := mqtt.LoadConfigFromEnv(serviceName); mqttCfg != nil {
		client, err := mqtt.Connect(ctx, *mqttCfg)
		exitIf(err, logger, "failed to connect to mqtt broker", "broker", mqttCfg.Broker)

		subscriber = client
		publishers = append(publishers, mqtt.NewCommander(client))
	}

	loc, err := time.LoadLocation(flags[timeZone])
	exitIf(err, logger, "unknown time zone", "tz", flags[timeZone])

	publisher := events.NewFanOut(publishers...)

	svc := irrigation.New(repo, publisher, irrigation.Config{Location: loc})

	interval, err := time.ParseDuration(flags[watchdogInterval])
	exitIf(err, logger, "invalid watchdog interval", "interval", flags[watchdogInterval])

	wd := watchdog.New(svc, publisher, watchdog.Config{Interval: interval})
	wd.Start(ctx)
	defer wd.Stop(ctx)

	if mode, err := svc.GetMode(ctx); err == nil {
		m.SetMode(mode.Mode)
	}

	if messenger != nil {
		svc.RegisterTopicMessageHandler(ctx, messenger)
	}

	if subscriber != nil {
		go func() {
			if err := mqttconsumer.Consume(ctx, subscriber, svc); err != nil {
				logger.Error().Err(err).Msg("mqtt consumer stopped")
			}
		}()
	}

	policies, err := openPolicies(flags[policiesFile])
	exitIf(err, logger, "unable to open opa policy file")

	handler, err := api.RegisterHandlers(ctx, router.New(serviceName), svc, api.Config{
		Policies: policies,
		Location: loc,
		Metrics:  m.Handler(),
		Events:   we,
	})
	exitIf(err, logger, "failed to register api handlers")

	err = serve(ctx, handler, flags[listenAddress]+":"+flags[servicePort])
	exitIf(err, logger, "failed to start request router")
}

func newRepository(ctx context.Context, flags flagMap) (r.IrrigationRepository, error) {
	cfg := database.LoadConfigFromEnv(ctx)

	if cfg.Host == "" {
		logger := logging.GetFromContext(ctx)
		logger.Info().Str("path", flags[sqlitePath]).Msg("no database host configured, using sqlite")

		return r.NewIrrigationRepository(database.NewSQLiteConnector(ctx, flags[sqlitePath]))
	}

	return r.NewIrrigationRepository(database.NewPostgreSQLConnector(ctx, cfg))
}

func seed(ctx context.Context, repo r.IrrigationRepository, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return repo.Seed(ctx, f)
}

// newNotifier loads the cloud events subscribers. A missing configuration file disables notifications.
func newNotifier(path string) (events.Publisher, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return events.New(nil)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := events.LoadConfiguration(f)
	if err != nil {
		return nil, err
	}

	return events.New(cfg)
}

// openPolicies returns nil, and leaves the operator routes open, when there is no policy file.
func openPolicies(path string) (io.Reader, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(b), nil
}

func serve(ctx context.Context, handler *chi.Mux, addr string) error {
	logger := logging.GetFromContext(ctx)

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		logger.Info().Msg("shutting down ...")
		server.Shutdown(shutdownCtx)
	}()

	logger.Info().Str("addr", addr).Msg("starting to listen for connections")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func parseExternalConfig(logger zerolog.Logger, flags flagMap) flagMap {
	// Allow environment variables to override certain defaults
	envOrDef := env.GetVariableOrDefault

	flags[listenAddress] = envOrDef(logger, "LISTEN_ADDRESS", flags[listenAddress])
	flags[servicePort] = envOrDef(logger, "SERVICE_PORT", flags[servicePort])
	flags[policiesFile] = envOrDef(logger, "POLICIES_FILE", flags[policiesFile])
	flags[configurationFile] = envOrDef(logger, "CONFIG_FILE", flags[configurationFile])
	flags[seedFile] = envOrDef(logger, "SEED_FILE", flags[seedFile])
	flags[sqlitePath] = envOrDef(logger, "SQLITE_PATH", flags[sqlitePath])
	flags[timeZone] = envOrDef(logger, "TZ", flags[timeZone])
	flags[watchdogInterval] = envOrDef(logger, "WATCHDOG_INTERVAL", flags[watchdogInterval])

	apply := func(f flagType) func(string) error {
		return func(value string) error {
			flags[f] = value
			return nil
		}
	}

	// Allow command line arguments to override defaults and environment variables
	flag.Func("policies", "an authorization policy file", apply(policiesFile))
	flag.Func("config", "notification configuration file", apply(configurationFile))
	flag.Func("seed", "csv file with sensors to create at startup", apply(seedFile))
	flag.Func("sqlite", "sqlite database file, in memory if empty", apply(sqlitePath))
	flag.Func("tz", "time zone for timestamps reported without one", apply(timeZone))
	flag.Parse()

	return flags
}

func exitIf(err error, logger zerolog.Logger, msg string, args ...string) {
	if err != nil {
		ctx := logger.With()
		for i := 0; i+1 < len(args); i += 2 {
			ctx = ctx.Str(args[i], args[i+1])
		}

		l := ctx.Logger()
		l.Error().Err(err).Msg(msg)
		time.Sleep(2 * time.Second)
		os.Exit(1)
	}
}
