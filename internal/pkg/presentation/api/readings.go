package api

import (
	"errors"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/rs/zerolog"

	"github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/application/irrigation"
	"github.com/utsabfdahal/ProjectThopaSichai/pkg/types"
)

const (
	invalidPagination string = "Invalid pagination parameters"
	invalidDate       string = "Invalid date format. Use YYYY-MM-DD or ISO format"
)

func receiveReadingHandler(log zerolog.Logger, svc irrigation.IrrigationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "receive-reading")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		var reading types.IncomingReading
		if err = decodeBody(r, &reading); err != nil {
			requestLogger.Debug().Err(err).Msg("unable to decode reading")
			writeJSON(w, http.StatusBadRequest, ingestFailure{Status: "error", Errors: map[string]string{"body": "invalid JSON"}})
			return
		}

		if reading.SourceAddress == "" {
			reading.SourceAddress = remoteHost(r)
		}

		result, err := svc.IngestReading(ctx, reading)
		if err != nil {
			var verr *irrigation.ValidationError
			if errors.As(err, &verr) {
				requestLogger.Debug().Err(err).Msg("invalid reading")
				writeJSON(w, http.StatusBadRequest, ingestFailure{Status: "error", Errors: verr.Map()})
				return
			}

			requestLogger.Error().Err(err).Msg("unable to ingest reading")
			writeJSON(w, http.StatusInternalServerError, ingestFailure{Status: "error", Errors: map[string]string{"detail": "Failed to store sensor data"}})
			return
		}

		writeJSON(w, http.StatusCreated, result)
	}
}

func queryReadingsHandler(log zerolog.Logger, svc irrigation.IrrigationService, loc *time.Location, filtered bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "query-readings")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		params := r.URL.Query()

		query := irrigation.ReadingsQuery{}
		var ok bool
		if query.Page, query.PageSize, ok = paginationFrom(params); !ok {
			writeFailure(w, http.StatusBadRequest, invalidPagination, map[string]string{"pagination": invalidPagination})
			return
		}

		var filters *readingFilters

		if filtered {
			filters = &readingFilters{}

			if nodeID := params.Get("nodeid"); nodeID != "" {
				query.NodeID = nodeID
				filters.NodeID = &nodeID
			}

			if query.From, filters.StartDate, err = dateFrom(params, "start_date", loc); err != nil {
				writeFailure(w, http.StatusBadRequest, invalidDate, map[string]string{"start_date": invalidDate})
				return
			}

			if query.To, filters.EndDate, err = dateFrom(params, "end_date", loc); err != nil {
				writeFailure(w, http.StatusBadRequest, invalidDate, map[string]string{"end_date": invalidDate})
				return
			}
		}

		page, err := svc.QueryReadings(ctx, query)
		if err != nil {
			writeError(w, requestLogger, err, "Failed to retrieve sensor data")
			return
		}

		records := page.Results
		if records == nil {
			records = []types.Reading{}
		}

		writeData(w, http.StatusOK, readingsPage{
			Records: records,
			Pagination: pagination{
				Page:       page.Page,
				PageSize:   page.PageSize,
				TotalCount: page.Count,
				TotalPages: page.TotalPages,
			},
			Filters: filters,
		}, "Sensor data retrieved successfully")
	}
}

func latestReadingHandler(log zerolog.Logger, svc irrigation.IrrigationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "latest-reading")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		nodeID := r.URL.Query().Get("nodeid")

		checkMotor := true
		if v := r.URL.Query().Get("check_motor"); v != "" {
			if b, perr := strconv.ParseBool(v); perr == nil {
				checkMotor = b
			}
		}

		latest, err := svc.GetLatestReading(ctx, nodeID, checkMotor)
		if err != nil {
			if irrigation.IsNotFound(err) {
				writeFailure(w, http.StatusNotFound, "No sensor data found", nil)
				return
			}
			writeError(w, requestLogger.With().Str("nodeid", nodeID).Logger(), err, "Failed to retrieve latest sensor data")
			return
		}

		writeData(w, http.StatusOK, latest, "Latest sensor data retrieved successfully")
	}
}

func paginationFrom(params url.Values) (int, int, bool) {
	page, pageSize := 1, irrigation.DefaultPageSize

	if v := params.Get("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 1 {
			return 0, 0, false
		}
		page = p
	}

	if v := params.Get("page_size"); v != "" {
		s, err := strconv.Atoi(v)
		if err != nil || s < 1 || s > irrigation.MaxPageSize {
			return 0, 0, false
		}
		pageSize = s
	}

	return page, pageSize, true
}

// dateFrom parses an optional date parameter and returns it along with the raw value to echo back.
func dateFrom(params url.Values, name string, loc *time.Location) (*time.Time, *string, error) {
	v := params.Get(name)
	if v == "" {
		return nil, nil, nil
	}

	t, err := irrigation.ParseTimestamp(v, loc)
	if err != nil {
		return nil, nil, err
	}

	return &t, &v, nil
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
