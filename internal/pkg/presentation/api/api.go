package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"

	"github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/application/irrigation"
	"github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/presentation/api/auth"
)

var tracer = otel.Tracer("thopasichai/api")

type Config struct {
	// Policies enables authorization of the operator routes when set.
	Policies io.Reader
	// Location is used for dates given without a timezone. Defaults to UTC.
	Location *time.Location
	// Metrics is served on /metrics when set.
	Metrics http.Handler
	// Events streams domain events on /api/events when set.
	Events http.Handler
}

func RegisterHandlers(ctx context.Context, router *chi.Mux, svc irrigation.IrrigationService, cfg Config) (*chi.Mux, error) {

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	if cfg.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	log := logging.GetFromContext(ctx)

	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}

	authenticator := auth.NewPassthrough()

	if cfg.Policies != nil {
		var err error
		authenticator, err = auth.NewAuthenticator(ctx, cfg.Policies)
		if err != nil {
			return nil, fmt.Errorf("failed to create api authenticator: %w", err)
		}
	} else {
		log.Warn().Msg("no authorization policies configured, operator routes are open")
	}

	router.Route("/api", func(r chi.Router) {
		r.Route("/data", func(r chi.Router) {
			r.Get("/", queryReadingsHandler(log, svc, loc, false))
			r.Get("/filtered", queryReadingsHandler(log, svc, loc, true))
			r.Get("/latest", latestReadingHandler(log, svc))
			r.Post("/receive", receiveReadingHandler(log, svc))
		})

		r.Get("/motorsinfo", motorsInfoHandler(log, svc))

		if cfg.Events != nil {
			r.Method(http.MethodGet, "/events", cfg.Events)
		}

		r.Route("/motors", func(r chi.Router) {
			r.Get("/", getMotorsHandler(log, svc))
			r.Get("/{id}", getMotorHandler(log, svc))

			r.Group(func(r chi.Router) {
				r.Use(authenticator.RequireAccess(auth.ControlScope))
				r.Post("/bulk-control", bulkControlHandler(log, svc))
				r.Post("/{id}/control", controlMotorHandler(log, svc))
			})

			r.Group(func(r chi.Router) {
				r.Use(authenticator.RequireAccess(auth.AdminScope))
				r.Post("/", createMotorHandler(log, svc))
				r.Put("/{id}", updateMotorHandler(log, svc))
				r.Delete("/{id}", deleteMotorHandler(log, svc))
			})
		})

		r.Route("/mode", func(r chi.Router) {
			r.Get("/", getModeHandler(log, svc))

			r.Group(func(r chi.Router) {
				r.Use(authenticator.RequireAccess(auth.ControlScope))
				r.Post("/set", setModeHandler(log, svc))
				r.Delete("/", deleteModeHandler(log, svc))
			})
		})

		r.Route("/config/thresholds", func(r chi.Router) {
			r.Get("/", getThresholdsHandler(log, svc))
			r.With(authenticator.RequireAccess(auth.AdminScope)).Post("/set", setThresholdHandler(log, svc))
		})

		r.Route("/sensors", func(r chi.Router) {
			r.Get("/", getSensorsHandler(log, svc))
			r.Get("/{nodeid}", getSensorHandler(log, svc))

			r.Group(func(r chi.Router) {
				r.Use(authenticator.RequireAccess(auth.AdminScope))
				r.Post("/", createSensorHandler(log, svc))
				r.Delete("/{nodeid}", deleteSensorHandler(log, svc))
			})
		})

		r.Get("/status", systemStatusHandler(log, svc))
		r.Get("/stats/dashboard", dashboardHandler(log, svc))
		r.Get("/health", healthHandler(log, svc))
	})

	return router, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	b, err := json.Marshal(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}

func writeData(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, response{Success: true, Data: data, Message: message})
}

func writeFailure(w http.ResponseWriter, status int, message string, errs map[string]string) {
	writeJSON(w, status, response{Success: false, Message: message, Errors: errs})
}

// writeError maps errors returned by the irrigation service to a response.
func writeError(w http.ResponseWriter, logger zerolog.Logger, err error, message string) {
	var verr *irrigation.ValidationError

	switch {
	case errors.As(err, &verr):
		logger.Debug().Err(err).Msg(message)
		writeFailure(w, http.StatusBadRequest, message, verr.Map())
	case irrigation.IsPolicyError(err), errors.Is(err, irrigation.ErrModeCannotBeDeleted):
		logger.Info().Err(err).Msg(message)
		writeFailure(w, http.StatusBadRequest, message, map[string]string{"detail": err.Error()})
	case irrigation.IsNotFound(err):
		logger.Debug().Err(err).Msg(message)
		writeFailure(w, http.StatusNotFound, message, map[string]string{"detail": notFoundDetail(err)})
	case irrigation.IsConflict(err):
		logger.Info().Err(err).Msg(message)
		writeFailure(w, http.StatusConflict, message, map[string]string{"detail": err.Error()})
	default:
		logger.Error().Err(err).Msg(message)
		writeFailure(w, http.StatusInternalServerError, message, nil)
	}
}

func notFoundDetail(err error) string {
	switch {
	case errors.Is(err, irrigation.ErrMotorNotFound):
		return "Motor not found"
	case errors.Is(err, irrigation.ErrSensorNotFound):
		return "Sensor not found"
	default:
		return "No sensor data found"
	}
}

func decodeBody(r *http.Request, v any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}

	return json.Unmarshal(body, v)
}

func invalidBody(w http.ResponseWriter, logger zerolog.Logger, err error) {
	logger.Debug().Err(err).Msg("unable to decode request body")
	writeFailure(w, http.StatusBadRequest, "Invalid request body", map[string]string{"body": "invalid JSON"})
}

func motorIDParam(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 0)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", irrigation.ErrMotorNotFound, err.Error())
	}
	return uint(id), nil
}
