package api

import (
	"fmt"
	"net/http"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/rs/zerolog"

	"github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/application/irrigation"
)

func getMotorsHandler(log zerolog.Logger, svc irrigation.IrrigationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-motors")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		motors, err := svc.GetMotors(ctx)
		if err != nil {
			writeError(w, requestLogger, err, "Failed to retrieve motors")
			return
		}

		writeData(w, http.StatusOK, map[string]any{"motors": motors}, "Motors retrieved successfully")
	}
}

func getMotorHandler(log zerolog.Logger, svc irrigation.IrrigationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-motor")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		id, err := motorIDParam(r)
		if err != nil {
			writeError(w, requestLogger, err, "Motor not found")
			return
		}

		motor, err := svc.GetMotor(ctx, id)
		if err != nil {
			writeError(w, requestLogger.With().Uint("motor_id", id).Logger(), err, "Failed to retrieve motor")
			return
		}

		writeData(w, http.StatusOK, map[string]any{"motor": motor}, "Motor retrieved successfully")
	}
}

func createMotorHandler(log zerolog.Logger, svc irrigation.IrrigationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "create-motor")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		var req createMotorRequest
		if err = decodeBody(r, &req); err != nil {
			invalidBody(w, requestLogger, err)
			return
		}

		motor, err := svc.CreateMotor(ctx, req.SensorNodeID, req.Name)
		if err != nil {
			writeError(w, requestLogger.With().Str("nodeid", req.SensorNodeID).Logger(), err, "Failed to create motor")
			return
		}

		writeData(w, http.StatusCreated, map[string]any{"motor": motor}, "Motor created successfully")
	}
}

func updateMotorHandler(log zerolog.Logger, svc irrigation.IrrigationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "update-motor")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		id, err := motorIDParam(r)
		if err != nil {
			writeError(w, requestLogger, err, "Motor not found")
			return
		}

		var req updateMotorRequest
		if err = decodeBody(r, &req); err != nil {
			invalidBody(w, requestLogger, err)
			return
		}

		motor, err := svc.UpdateMotor(ctx, id, req.Name, req.State)
		if err != nil {
			writeError(w, requestLogger.With().Uint("motor_id", id).Logger(), err, "Failed to update motor")
			return
		}

		writeData(w, http.StatusOK, map[string]any{"motor": motor}, "Motor updated successfully")
	}
}

func deleteMotorHandler(log zerolog.Logger, svc irrigation.IrrigationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "delete-motor")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		id, err := motorIDParam(r)
		if err != nil {
			writeError(w, requestLogger, err, "Motor not found")
			return
		}

		if err = svc.DeleteMotor(ctx, id); err != nil {
			writeError(w, requestLogger.With().Uint("motor_id", id).Logger(), err, "Failed to delete motor")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func controlMotorHandler(log zerolog.Logger, svc irrigation.IrrigationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "control-motor")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		id, err := motorIDParam(r)
		if err != nil {
			writeError(w, requestLogger, err, "Motor not found")
			return
		}

		var req controlMotorRequest
		if err = decodeBody(r, &req); err != nil {
			invalidBody(w, requestLogger, err)
			return
		}

		motor, err := svc.SetMotorState(ctx, id, req.State)
		if err != nil {
			writeError(w, requestLogger.With().Uint("motor_id", id).Logger(), err, "Failed to control motor")
			return
		}

		writeData(w, http.StatusOK, map[string]any{"motor": motor}, fmt.Sprintf("Motor turned %s", motor.State))
	}
}

func bulkControlHandler(log zerolog.Logger, svc irrigation.IrrigationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "bulk-control-motors")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		var req bulkControlRequest
		if err = decodeBody(r, &req); err != nil {
			invalidBody(w, requestLogger, err)
			return
		}

		result, err := svc.BulkSetMotorState(ctx, req.Motors)
		if err != nil {
			writeError(w, requestLogger, err, "Failed to control motors")
			return
		}

		writeData(w, http.StatusOK, result, fmt.Sprintf("%d motor(s) updated successfully", result.UpdatedCount))
	}
}

// motorsInfoHandler serves the node id to motor state map polled by actuator nodes. The
// response is not wrapped in the envelope.
func motorsInfoHandler(log zerolog.Logger, svc irrigation.IrrigationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "motors-info")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		states, err := svc.GetMotorStatesByNode(ctx)
		if err != nil {
			requestLogger.Error().Err(err).Msg("unable to fetch motor states")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve motor states"})
			return
		}

		writeJSON(w, http.StatusOK, states)
	}
}
