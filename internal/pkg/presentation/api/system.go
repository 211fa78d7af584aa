package api

import (
	"fmt"
	"net/http"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/application/irrigation"
)

func getModeHandler(log zerolog.Logger, svc irrigation.IrrigationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-mode")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		mode, err := svc.GetMode(ctx)
		if err != nil {
			writeError(w, requestLogger, err, "Failed to retrieve system mode")
			return
		}

		writeData(w, http.StatusOK, map[string]any{"system_mode": mode}, "System mode retrieved successfully")
	}
}

func setModeHandler(log zerolog.Logger, svc irrigation.IrrigationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "set-mode")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		var req setModeRequest
		if err = decodeBody(r, &req); err != nil {
			invalidBody(w, requestLogger, err)
			return
		}

		mode, err := svc.SetMode(ctx, req.Mode)
		if err != nil {
			writeError(w, requestLogger, err, "Failed to set system mode")
			return
		}

		writeData(w, http.StatusOK, map[string]any{"system_mode": mode}, fmt.Sprintf("System mode set to %s", mode.Mode))
	}
}

func deleteModeHandler(log zerolog.Logger, svc irrigation.IrrigationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "delete-mode")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		if err = svc.DeleteMode(ctx); err != nil {
			writeError(w, requestLogger, err, "System mode cannot be deleted")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func getThresholdsHandler(log zerolog.Logger, svc irrigation.IrrigationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-thresholds")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		if nodeID := r.URL.Query().Get("nodeid"); nodeID != "" {
			threshold, err := svc.GetThreshold(ctx, nodeID)
			if err != nil {
				writeError(w, requestLogger.With().Str("nodeid", nodeID).Logger(), err, "Failed to retrieve threshold")
				return
			}

			writeData(w, http.StatusOK, map[string]any{"threshold": threshold}, "Threshold retrieved successfully")
			return
		}

		thresholds, err := svc.GetThresholds(ctx)
		if err != nil {
			writeError(w, requestLogger, err, "Failed to retrieve thresholds")
			return
		}

		writeData(w, http.StatusOK, map[string]any{"thresholds": thresholds}, "Thresholds retrieved successfully")
	}
}

func setThresholdHandler(log zerolog.Logger, svc irrigation.IrrigationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "set-threshold")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		var req setThresholdRequest
		if err = decodeBody(r, &req); err != nil {
			invalidBody(w, requestLogger, err)
			return
		}

		threshold, err := svc.SetThreshold(ctx, req.NodeID, req.Threshold)
		if err != nil {
			writeError(w, requestLogger.With().Str("nodeid", req.NodeID).Logger(), err, "Failed to update threshold")
			return
		}

		writeData(w, http.StatusOK, map[string]any{"threshold": threshold}, fmt.Sprintf("Thresholds for %s updated successfully", threshold.NodeID))
	}
}

func getSensorsHandler(log zerolog.Logger, svc irrigation.IrrigationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-sensors")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		sensors, err := svc.GetSensors(ctx)
		if err != nil {
			writeError(w, requestLogger, err, "Failed to retrieve sensors")
			return
		}

		writeData(w, http.StatusOK, map[string]any{"sensors": sensors}, "Sensors retrieved successfully")
	}
}

func getSensorHandler(log zerolog.Logger, svc irrigation.IrrigationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-sensor")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		nodeID := chi.URLParam(r, "nodeid")

		sensor, err := svc.GetSensor(ctx, nodeID)
		if err != nil {
			writeError(w, requestLogger.With().Str("nodeid", nodeID).Logger(), err, "Failed to retrieve sensor")
			return
		}

		writeData(w, http.StatusOK, map[string]any{"sensor": sensor}, "Sensor retrieved successfully")
	}
}

func createSensorHandler(log zerolog.Logger, svc irrigation.IrrigationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "create-sensor")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		var req createSensorRequest
		if err = decodeBody(r, &req); err != nil {
			invalidBody(w, requestLogger, err)
			return
		}

		sensor, err := svc.CreateSensor(ctx, req.NodeID, req.Name)
		if err != nil {
			writeError(w, requestLogger.With().Str("nodeid", req.NodeID).Logger(), err, "Failed to create sensor")
			return
		}

		writeData(w, http.StatusCreated, map[string]any{"sensor": sensor}, "Sensor created successfully")
	}
}

func deleteSensorHandler(log zerolog.Logger, svc irrigation.IrrigationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "delete-sensor")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		nodeID := chi.URLParam(r, "nodeid")

		if err = svc.DeleteSensor(ctx, nodeID); err != nil {
			writeError(w, requestLogger.With().Str("nodeid", nodeID).Logger(), err, "Failed to delete sensor")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func systemStatusHandler(log zerolog.Logger, svc irrigation.IrrigationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "system-status")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		status, err := svc.SystemStatus(ctx)
		if err != nil {
			writeError(w, requestLogger, err, "Failed to retrieve system status")
			return
		}

		writeData(w, http.StatusOK, status, "System status retrieved successfully")
	}
}

func dashboardHandler(log zerolog.Logger, svc irrigation.IrrigationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "dashboard-stats")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		stats, err := svc.DashboardStats(ctx)
		if err != nil {
			writeError(w, requestLogger, err, "Failed to retrieve dashboard statistics")
			return
		}

		writeData(w, http.StatusOK, stats, "Dashboard statistics retrieved successfully")
	}
}

func healthHandler(log zerolog.Logger, svc irrigation.IrrigationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "health-check")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		health, err := svc.HealthCheck(ctx)
		if err != nil {
			writeError(w, requestLogger, err, "System health check failed")
			return
		}

		if health.Status != "healthy" {
			requestLogger.Warn().Str("database", health.Database).Str("error", health.Error).Msg("system is unhealthy")
			writeJSON(w, http.StatusServiceUnavailable, response{Success: false, Data: health, Message: "System health check failed"})
			return
		}

		writeData(w, http.StatusOK, health, "System is healthy")
	}
}
