package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/utsabfdahal/ProjectThopaSichai/pkg/types"
)

func TestMotorStates(t *testing.T) {
	is := is.New(t)

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is.Equal("/api/motorsinfo", r.URL.Path)
		is.Equal(http.MethodGet, r.Method)
		w.Header().Add("Content-Type", "application/json")
		w.Write([]byte(`{"field-01":"ON","field-02":"OFF"}`))
	}))
	defer api.Close()

	ctx := context.Background()

	client, err := New(ctx, api.URL, "", "", "")
	is.NoErr(err)
	defer client.Close(ctx)

	state, err := client.MotorState(ctx, "field-01")
	is.NoErr(err)
	is.Equal(types.MotorOn, state)

	_, err = client.MotorState(ctx, "field-03")
	is.True(errors.Is(err, ErrNoMotor))
}

func TestSendReadingWithClientCredentials(t *testing.T) {
	is := is.New(t)

	oauth := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is.Equal("/token", r.URL.Path)
		w.Header().Add("Content-Type", "application/json")
		w.Write([]byte(TokenResponse))
	}))
	defer oauth.Close()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is.Equal("/api/data/receive", r.URL.Path)
		is.Equal("Bearer "+AccessToken, r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		is.True(strings.Contains(string(body), `"nodeid":"field-01"`))

		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"status":"success","nodeid":"field-01","moisture_value":21.5,"sensor_created":false}`))
	}))
	defer api.Close()

	ctx := context.Background()

	client, err := New(ctx, api.URL, oauth.URL+"/token", "client", "secret")
	is.NoErr(err)
	defer client.Close(ctx)

	value := 21.5
	result, err := client.SendReading(ctx, types.IncomingReading{NodeID: "field-01", Value: &value})
	is.NoErr(err)
	is.Equal("success", result.Status)
	is.Equal(21.5, result.MoistureValue)
}

func TestThatRejectedReadingIsAnError(t *testing.T) {
	is := is.New(t)

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status":"error","errors":{"value":"This field is required."}}`))
	}))
	defer api.Close()

	ctx := context.Background()

	client, err := New(ctx, api.URL, "", "", "")
	is.NoErr(err)

	_, err = client.SendReading(ctx, types.IncomingReading{NodeID: "field-01"})
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "400"))
}

const AccessToken string = "eyJhbGciOiJSUzI1NiIsInR5cCIgOiAiSldUIiwia2lkIiA6ICJIT2FwMVR0a3RLMk4"

const TokenResponse string = `{"access_token":"` + AccessToken + `","expires_in":300,"token_type":"Bearer","scope":"irrigation.control"}`
