package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/matryer/is"

	"github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/application/irrigation"
	"github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/infrastructure/router"
	"github.com/utsabfdahal/ProjectThopaSichai/pkg/types"
)

func TestThatHealthEndpointReturnsNoContent(t *testing.T) {
	is, ts := testSetup(t, &irrigation.IrrigationServiceMock{}, nil)
	defer ts.Close()

	resp, _ := testRequest(is, ts, http.MethodGet, "/health", "")
	is.Equal(http.StatusNoContent, resp.StatusCode)
}

func TestReceiveReading(t *testing.T) {
	svc := &irrigation.IrrigationServiceMock{
		IngestReadingFunc: func(ctx context.Context, reading types.IncomingReading) (types.IngestResult, error) {
			return types.IngestResult{Status: "success", NodeID: reading.NodeID, MoistureValue: *reading.Value}, nil
		},
	}

	is, ts := testSetup(t, svc, nil)
	defer ts.Close()

	resp, body := testRequest(is, ts, http.MethodPost, "/api/data/receive", `{"nodeid":"field-01","value":25.5}`)
	is.Equal(http.StatusCreated, resp.StatusCode)

	result := types.IngestResult{}
	is.NoErr(json.Unmarshal([]byte(body), &result))
	is.Equal("success", result.Status)
	is.Equal(25.5, result.MoistureValue)

	is.Equal(1, len(svc.IngestReadingCalls()))
	is.Equal("127.0.0.1", svc.IngestReadingCalls()[0].Reading.SourceAddress)
}

func TestThatInvalidReadingIsBadRequest(t *testing.T) {
	svc := &irrigation.IrrigationServiceMock{
		IngestReadingFunc: func(ctx context.Context, reading types.IncomingReading) (types.IngestResult, error) {
			return types.IngestResult{}, &irrigation.ValidationError{Fields: []irrigation.FieldError{
				{Field: "value", Message: "Moisture value must be between 0 and 100"},
			}}
		},
	}

	is, ts := testSetup(t, svc, nil)
	defer ts.Close()

	resp, body := testRequest(is, ts, http.MethodPost, "/api/data/receive", `{"nodeid":"field-01","value":125}`)
	is.Equal(http.StatusBadRequest, resp.StatusCode)

	failure := ingestFailure{}
	is.NoErr(json.Unmarshal([]byte(body), &failure))
	is.Equal("error", failure.Status)
	is.Equal("Moisture value must be between 0 and 100", failure.Errors["value"])
}

func TestThatMalformedReadingIsBadRequest(t *testing.T) {
	is, ts := testSetup(t, &irrigation.IrrigationServiceMock{}, nil)
	defer ts.Close()

	resp, _ := testRequest(is, ts, http.MethodPost, "/api/data/receive", `{"nodeid":`)
	is.Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestQueryReadings(t *testing.T) {
	svc := &irrigation.IrrigationServiceMock{
		QueryReadingsFunc: func(ctx context.Context, query irrigation.ReadingsQuery) (types.Page[types.Reading], error) {
			return types.Page[types.Reading]{
				Count: 3, Page: query.Page, PageSize: query.PageSize, TotalPages: 2,
				Results: []types.Reading{{NodeID: "field-01", Value: 10}, {NodeID: "field-01", Value: 20}},
			}, nil
		},
	}

	is, ts := testSetup(t, svc, nil)
	defer ts.Close()

	resp, body := testRequest(is, ts, http.MethodGet, "/api/data?page=1&page_size=2", "")
	is.Equal(http.StatusOK, resp.StatusCode)

	var r struct {
		Success bool         `json:"success"`
		Data    readingsPage `json:"data"`
	}
	is.NoErr(json.Unmarshal([]byte(body), &r))
	is.True(r.Success)
	is.Equal(2, len(r.Data.Records))
	is.Equal(int64(3), r.Data.Pagination.TotalCount)
	is.Equal(2, r.Data.Pagination.TotalPages)
	is.True(r.Data.Filters == nil)

	is.Equal(2, svc.QueryReadingsCalls()[0].Query.PageSize)
}

func TestThatInvalidPaginationIsBadRequest(t *testing.T) {
	is, ts := testSetup(t, &irrigation.IrrigationServiceMock{}, nil)
	defer ts.Close()

	for _, q := range []string{"page=0", "page=abc", "page_size=1001", "page_size=-1"} {
		resp, body := testRequest(is, ts, http.MethodGet, "/api/data?"+q, "")
		is.Equal(http.StatusBadRequest, resp.StatusCode)
		is.True(strings.Contains(body, `"pagination":"Invalid pagination parameters"`))
	}
}

func TestFilteredReadings(t *testing.T) {
	svc := &irrigation.IrrigationServiceMock{
		QueryReadingsFunc: func(ctx context.Context, query irrigation.ReadingsQuery) (types.Page[types.Reading], error) {
			return types.Page[types.Reading]{Page: 1, PageSize: 100}, nil
		},
	}

	is, ts := testSetup(t, svc, nil)
	defer ts.Close()

	resp, body := testRequest(is, ts, http.MethodGet, "/api/data/filtered?nodeid=field-01&start_date=2024-03-01&end_date=2024-03-02T12:00:00Z", "")
	is.Equal(http.StatusOK, resp.StatusCode)
	is.True(strings.Contains(body, `"records":[]`))
	is.True(strings.Contains(body, `"start_date":"2024-03-01"`))

	query := svc.QueryReadingsCalls()[0].Query
	is.Equal("field-01", query.NodeID)
	is.True(query.From.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	is.True(query.To.Equal(time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)))
}

func TestThatInvalidDateIsBadRequest(t *testing.T) {
	is, ts := testSetup(t, &irrigation.IrrigationServiceMock{}, nil)
	defer ts.Close()

	resp, body := testRequest(is, ts, http.MethodGet, "/api/data/filtered?end_date=yesterday", "")
	is.Equal(http.StatusBadRequest, resp.StatusCode)
	is.True(strings.Contains(body, `"end_date":"Invalid date format. Use YYYY-MM-DD or ISO format"`))
}

func TestLatestReading(t *testing.T) {
	svc := &irrigation.IrrigationServiceMock{
		GetLatestReadingFunc: func(ctx context.Context, nodeID string, withRecommendation bool) (types.LatestReading, error) {
			if nodeID == "unknown" {
				return types.LatestReading{}, irrigation.ErrNoReadings
			}
			return types.LatestReading{Reading: types.Reading{NodeID: "field-01", Value: 10}}, nil
		},
	}

	is, ts := testSetup(t, svc, nil)
	defer ts.Close()

	resp, _ := testRequest(is, ts, http.MethodGet, "/api/data/latest?check_motor=false", "")
	is.Equal(http.StatusOK, resp.StatusCode)
	is.Equal(false, svc.GetLatestReadingCalls()[0].WithRecommendation)

	resp, _ = testRequest(is, ts, http.MethodGet, "/api/data/latest", "")
	is.Equal(http.StatusOK, resp.StatusCode)
	is.Equal(true, svc.GetLatestReadingCalls()[1].WithRecommendation)

	resp, body := testRequest(is, ts, http.MethodGet, "/api/data/latest?nodeid=unknown", "")
	is.Equal(http.StatusNotFound, resp.StatusCode)
	is.True(strings.Contains(body, "No sensor data found"))
}

func TestControlMotor(t *testing.T) {
	svc := &irrigation.IrrigationServiceMock{
		SetMotorStateFunc: func(ctx context.Context, id uint, state string) (types.Motor, error) {
			switch id {
			case 1:
				return types.Motor{ID: 1, State: types.MotorOn, IsOn: true}, nil
			case 2:
				return types.Motor{}, &irrigation.PolicyError{Err: irrigation.ErrManualControlNotAllowed}
			default:
				return types.Motor{}, fmt.Errorf("%w: id %d", irrigation.ErrMotorNotFound, id)
			}
		},
	}

	is, ts := testSetup(t, svc, nil)
	defer ts.Close()

	resp, body := testRequest(is, ts, http.MethodPost, "/api/motors/1/control", `{"state":"ON"}`)
	is.Equal(http.StatusOK, resp.StatusCode)
	is.True(strings.Contains(body, `"message":"Motor turned ON"`))

	resp, body = testRequest(is, ts, http.MethodPost, "/api/motors/2/control", `{"state":"ON"}`)
	is.Equal(http.StatusBadRequest, resp.StatusCode)
	is.True(strings.Contains(body, "Switch to MANUAL mode first."))

	resp, body = testRequest(is, ts, http.MethodPost, "/api/motors/3/control", `{"state":"ON"}`)
	is.Equal(http.StatusNotFound, resp.StatusCode)
	is.True(strings.Contains(body, `"detail":"Motor not found"`))

	resp, _ = testRequest(is, ts, http.MethodPost, "/api/motors/abc/control", `{"state":"ON"}`)
	is.Equal(http.StatusNotFound, resp.StatusCode)
	is.Equal(3, len(svc.SetMotorStateCalls()))
}

func TestBulkControl(t *testing.T) {
	svc := &irrigation.IrrigationServiceMock{
		BulkSetMotorStateFunc: func(ctx context.Context, commands []types.MotorCommand) (types.BulkControlResult, error) {
			return types.BulkControlResult{
				UpdatedMotors: []types.Motor{{ID: 1, State: types.MotorOff}},
				UpdatedCount:  1,
				Errors:        []types.BulkControlError{{ID: 9, Error: "Motor not found"}},
			}, nil
		},
	}

	is, ts := testSetup(t, svc, nil)
	defer ts.Close()

	resp, body := testRequest(is, ts, http.MethodPost, "/api/motors/bulk-control", `{"motors":[{"id":1,"state":"OFF"},{"id":9,"state":"ON"}]}`)
	is.Equal(http.StatusOK, resp.StatusCode)
	is.True(strings.Contains(body, `"message":"1 motor(s) updated successfully"`))
	is.Equal(2, len(svc.BulkSetMotorStateCalls()[0].Commands))
}

func TestMotorAdministration(t *testing.T) {
	svc := &irrigation.IrrigationServiceMock{
		CreateMotorFunc: func(ctx context.Context, nodeID string, name string) (types.Motor, error) {
			if nodeID == "field-01" {
				return types.Motor{}, irrigation.ErrMotorAlreadyExists
			}
			return types.Motor{ID: 5, SensorNodeID: nodeID, Name: name, State: types.MotorOff}, nil
		},
		UpdateMotorFunc: func(ctx context.Context, id uint, name *string, state *string) (types.Motor, error) {
			return types.Motor{ID: id, Name: *name}, nil
		},
		DeleteMotorFunc: func(ctx context.Context, id uint) error {
			return nil
		},
	}

	is, ts := testSetup(t, svc, nil)
	defer ts.Close()

	resp, body := testRequest(is, ts, http.MethodPost, "/api/motors", `{"name":"Pump","sensor_nodeid":"field-02"}`)
	is.Equal(http.StatusCreated, resp.StatusCode)
	is.True(strings.Contains(body, `"message":"Motor created successfully"`))

	resp, _ = testRequest(is, ts, http.MethodPost, "/api/motors", `{"name":"Pump","sensor_nodeid":"field-01"}`)
	is.Equal(http.StatusConflict, resp.StatusCode)

	resp, body = testRequest(is, ts, http.MethodPut, "/api/motors/5", `{"name":"Main pump"}`)
	is.Equal(http.StatusOK, resp.StatusCode)
	is.True(strings.Contains(body, `"name":"Main pump"`))
	is.True(svc.UpdateMotorCalls()[0].State == nil)

	resp, _ = testRequest(is, ts, http.MethodDelete, "/api/motors/5", "")
	is.Equal(http.StatusNoContent, resp.StatusCode)
	is.Equal(uint(5), svc.DeleteMotorCalls()[0].Id)
}

func TestMotorsInfo(t *testing.T) {
	svc := &irrigation.IrrigationServiceMock{
		GetMotorStatesByNodeFunc: func(ctx context.Context) (map[string]types.MotorState, error) {
			return map[string]types.MotorState{"field-01": types.MotorOn, "field-02": types.MotorOff}, nil
		},
	}

	is, ts := testSetup(t, svc, nil)
	defer ts.Close()

	resp, body := testRequest(is, ts, http.MethodGet, "/api/motorsinfo", "")
	is.Equal(http.StatusOK, resp.StatusCode)

	states := map[string]string{}
	is.NoErr(json.Unmarshal([]byte(body), &states))
	is.Equal("ON", states["field-01"])
	is.Equal("OFF", states["field-02"])
}

func TestMode(t *testing.T) {
	svc := &irrigation.IrrigationServiceMock{
		SetModeFunc: func(ctx context.Context, mode string) (types.SystemMode, error) {
			m, err := types.ParseMode(mode)
			if err != nil {
				return types.SystemMode{}, &irrigation.ValidationError{Fields: []irrigation.FieldError{{Field: "mode", Message: err.Error()}}}
			}
			return types.SystemMode{Mode: m}, nil
		},
		DeleteModeFunc: func(ctx context.Context) error {
			return irrigation.ErrModeCannotBeDeleted
		},
	}

	is, ts := testSetup(t, svc, nil)
	defer ts.Close()

	resp, body := testRequest(is, ts, http.MethodPost, "/api/mode/set", `{"mode":"MANUAL"}`)
	is.Equal(http.StatusOK, resp.StatusCode)
	is.True(strings.Contains(body, `"message":"System mode set to MANUAL"`))

	resp, body = testRequest(is, ts, http.MethodPost, "/api/mode/set", `{"mode":"SOMETIMES"}`)
	is.Equal(http.StatusBadRequest, resp.StatusCode)
	is.True(strings.Contains(body, `"mode":`))

	resp, _ = testRequest(is, ts, http.MethodDelete, "/api/mode", "")
	is.Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestThresholds(t *testing.T) {
	svc := &irrigation.IrrigationServiceMock{
		GetThresholdFunc: func(ctx context.Context, nodeID string) (types.Threshold, error) {
			return types.Threshold{NodeID: nodeID, Threshold: 30}, nil
		},
		GetThresholdsFunc: func(ctx context.Context) ([]types.Threshold, error) {
			return []types.Threshold{{NodeID: "field-01", Threshold: 30}, {NodeID: "field-02", Threshold: 45}}, nil
		},
		SetThresholdFunc: func(ctx context.Context, nodeID string, value *float64) (types.Threshold, error) {
			return types.Threshold{NodeID: nodeID, Threshold: *value}, nil
		},
	}

	is, ts := testSetup(t, svc, nil)
	defer ts.Close()

	_, body := testRequest(is, ts, http.MethodGet, "/api/config/thresholds?nodeid=field-01", "")
	is.True(strings.Contains(body, `"threshold":{"sensor_nodeid":"field-01"`))

	_, body = testRequest(is, ts, http.MethodGet, "/api/config/thresholds/", "")
	is.True(strings.Contains(body, `"thresholds":[`))

	resp, body := testRequest(is, ts, http.MethodPost, "/api/config/thresholds/set", `{"nodeid":"field-03","threshold":42}`)
	is.Equal(http.StatusOK, resp.StatusCode)
	is.True(strings.Contains(body, "Thresholds for field-03 updated successfully"))
	is.Equal(42.0, *svc.SetThresholdCalls()[0].Value)
}

func TestSensors(t *testing.T) {
	svc := &irrigation.IrrigationServiceMock{
		CreateSensorFunc: func(ctx context.Context, nodeID string, name string) (types.Sensor, error) {
			return types.Sensor{}, irrigation.ErrSensorAlreadyExists
		},
		GetSensorFunc: func(ctx context.Context, nodeID string) (types.Sensor, error) {
			return types.Sensor{}, irrigation.ErrSensorNotFound
		},
		DeleteSensorFunc: func(ctx context.Context, nodeID string) error {
			return nil
		},
	}

	is, ts := testSetup(t, svc, nil)
	defer ts.Close()

	resp, _ := testRequest(is, ts, http.MethodPost, "/api/sensors", `{"nodeid":"field-01"}`)
	is.Equal(http.StatusConflict, resp.StatusCode)

	resp, body := testRequest(is, ts, http.MethodGet, "/api/sensors/field-09", "")
	is.Equal(http.StatusNotFound, resp.StatusCode)
	is.True(strings.Contains(body, "Sensor not found"))

	resp, _ = testRequest(is, ts, http.MethodDelete, "/api/sensors/field-01", "")
	is.Equal(http.StatusNoContent, resp.StatusCode)
	is.Equal("field-01", svc.DeleteSensorCalls()[0].NodeID)
}

func TestThatUnhealthySystemIsServiceUnavailable(t *testing.T) {
	svc := &irrigation.IrrigationServiceMock{
		HealthCheckFunc: func(ctx context.Context) (types.Health, error) {
			return types.Health{Status: "unhealthy", Database: "disconnected", Error: "connection refused"}, nil
		},
	}

	is, ts := testSetup(t, svc, nil)
	defer ts.Close()

	resp, body := testRequest(is, ts, http.MethodGet, "/api/health", "")
	is.Equal(http.StatusServiceUnavailable, resp.StatusCode)
	is.True(strings.Contains(body, `"success":false`))
	is.True(strings.Contains(body, `"database":"disconnected"`))
}

func TestThatStoreErrorsAreInternalServerErrors(t *testing.T) {
	svc := &irrigation.IrrigationServiceMock{
		DashboardStatsFunc: func(ctx context.Context) (types.DashboardStats, error) {
			return types.DashboardStats{}, fmt.Errorf("%w: disk full", irrigation.ErrStore)
		},
	}

	is, ts := testSetup(t, svc, nil)
	defer ts.Close()

	resp, body := testRequest(is, ts, http.MethodGet, "/api/stats/dashboard", "")
	is.Equal(http.StatusInternalServerError, resp.StatusCode)
	is.True(!strings.Contains(body, "disk full"))
}

func TestThatOperatorRoutesRequireScopes(t *testing.T) {
	svc := &irrigation.IrrigationServiceMock{
		GetModeFunc: func(ctx context.Context) (types.SystemMode, error) {
			return types.SystemMode{Mode: types.ModeAutomatic}, nil
		},
		SetModeFunc: func(ctx context.Context, mode string) (types.SystemMode, error) {
			return types.SystemMode{Mode: types.ModeManual}, nil
		},
	}

	is, ts := testSetup(t, svc, strings.NewReader(testPolicy))
	defer ts.Close()

	resp, _ := testRequest(is, ts, http.MethodGet, "/api/mode", "")
	is.Equal(http.StatusOK, resp.StatusCode)

	resp, _ = testRequest(is, ts, http.MethodPost, "/api/mode/set", `{"mode":"MANUAL"}`)
	is.Equal(http.StatusUnauthorized, resp.StatusCode)

	resp, _ = testRequest(is, ts, http.MethodPost, "/api/mode/set", `{"mode":"MANUAL"}`, "irrigation.admin")
	is.Equal(http.StatusForbidden, resp.StatusCode)

	resp, _ = testRequest(is, ts, http.MethodPost, "/api/mode/set", `{"mode":"MANUAL"}`, "irrigation.control")
	is.Equal(http.StatusOK, resp.StatusCode)
	is.Equal(1, len(svc.SetModeCalls()))
}

func testSetup(t *testing.T, svc irrigation.IrrigationService, policies io.Reader) (*is.I, *httptest.Server) {
	is := is.New(t)

	r, err := RegisterHandlers(context.Background(), router.New("thopasichai-test"), svc, Config{Policies: policies})
	is.NoErr(err)

	return is, httptest.NewServer(r)
}

func testRequest(is *is.I, ts *httptest.Server, method, path, body string, scope ...string) (*http.Response, string) {
	req, _ := http.NewRequest(method, ts.URL+path, strings.NewReader(body))

	if len(scope) > 0 {
		_, token, err := jwtauth.New("HS256", []byte("secret"), nil).Encode(map[string]any{"scope": scope[0]})
		is.NoErr(err)
		req.Header.Add("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	is.NoErr(err)
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	return resp, string(respBody)
}

const testPolicy string = `package thopasichai.authz

import future.keywords.every
import future.keywords.if
import future.keywords.in

default allow := false

allow if {
	[_, payload, _] := io.jwt.decode(input.token)
	granted := split(payload.scope, " ")

	every required in input.scopes {
		required in granted
	}
}
`
