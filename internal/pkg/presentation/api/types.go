package api

import (
	"github.com/utsabfdahal/ProjectThopaSichai/pkg/types"
)

// response is the envelope every api endpoint, except ingestion and motorsinfo, responds with.
type response struct {
	Success bool              `json:"success"`
	Data    any               `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}

type readingFilters struct {
	NodeID    *string `json:"nodeid"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

type readingsPage struct {
	Records    []types.Reading `json:"records"`
	Pagination pagination      `json:"pagination"`
	Filters    *readingFilters `json:"filters,omitempty"`
}

type ingestFailure struct {
	Status string            `json:"status"`
	Errors map[string]string `json:"errors"`
}

type createMotorRequest struct {
	Name         string `json:"name"`
	SensorNodeID string `json:"sensor_nodeid"`
}

type updateMotorRequest struct {
	Name  *string `json:"name"`
	State *string `json:"state"`
}

type controlMotorRequest struct {
	State string `json:"state"`
}

type bulkControlRequest struct {
	Motors []types.MotorCommand `json:"motors"`
}

type setModeRequest struct {
	Mode string `json:"mode"`
}

type setThresholdRequest struct {
	NodeID    string   `json:"nodeid"`
	Threshold *float64 `json:"threshold"`
}

type createSensorRequest struct {
	NodeID string `json:"nodeid"`
	Name   string `json:"name"`
}
