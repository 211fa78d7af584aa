package archive

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/utsabfdahal/ProjectThopaSichai/pkg/types"
)

func TestThatReadingsAreWrittenAsPoints(t *testing.T) {
	is := is.New(t)
	server, bodies := testInfluxServer(is, http.StatusNoContent)
	defer server.Close()

	a := New(Config{URL: server.URL, Token: "token", Org: "farm", Bucket: "readings"})
	defer a.Close()

	err := a.PublishOnTopic(context.Background(), &types.ReadingReceived{
		ReadingID: "abc",
		NodeID:    "field-01",
		Value:     42.5,
		Timestamp: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	})
	is.NoErr(err)

	is.Equal(1, len(*bodies))
	is.True(strings.HasPrefix((*bodies)[0], "soil_moisture,nodeid=field-01,status=OPTIMAL value=42.5"))
}

func TestThatMotorChangesAreWrittenAsPoints(t *testing.T) {
	is := is.New(t)
	server, bodies := testInfluxServer(is, http.StatusNoContent)
	defer server.Close()

	a := New(Config{URL: server.URL, Token: "token", Org: "farm", Bucket: "readings"})
	defer a.Close()

	err := a.PublishOnTopic(context.Background(), &types.MotorStateChanged{
		MotorID: 3,
		NodeID:  "field-01",
		State:   types.MotorOn,
		Mode:    types.ModeManual,
	})
	is.NoErr(err)

	is.Equal(1, len(*bodies))
	is.True(strings.HasPrefix((*bodies)[0], "motor_state,mode=MANUAL,nodeid=field-01 "))
	is.True(strings.Contains((*bodies)[0], "on=1i"))
}

func TestThatOtherMessagesAreNotArchived(t *testing.T) {
	is := is.New(t)
	server, bodies := testInfluxServer(is, http.StatusNoContent)
	defer server.Close()

	a := New(Config{URL: server.URL, Token: "token", Org: "farm", Bucket: "readings"})
	defer a.Close()

	err := a.PublishOnTopic(context.Background(), &types.ModeChanged{Mode: types.ModeManual})
	is.NoErr(err)
	is.Equal(0, len(*bodies))
}

func TestThatWriteFailuresAreReturned(t *testing.T) {
	is := is.New(t)
	server, _ := testInfluxServer(is, http.StatusBadRequest)
	defer server.Close()

	a := New(Config{URL: server.URL, Token: "token", Org: "farm", Bucket: "readings"})
	defer a.Close()

	err := a.PublishOnTopic(context.Background(), &types.ReadingReceived{NodeID: "field-01", Value: 10})
	is.True(err != nil)
}

func TestLoadConfigFromEnv(t *testing.T) {
	is := is.New(t)

	t.Setenv("INFLUX_URL", "")
	cfg, err := LoadConfigFromEnv()
	is.NoErr(err)
	is.True(cfg == nil)

	t.Setenv("INFLUX_URL", "http://influx:8086")
	_, err = LoadConfigFromEnv()
	is.True(err != nil)

	t.Setenv("INFLUX_TOKEN", "t")
	t.Setenv("INFLUX_ORG", "o")
	t.Setenv("INFLUX_BUCKET", "b")
	cfg, err = LoadConfigFromEnv()
	is.NoErr(err)
	is.Equal("b", cfg.Bucket)
}

func testInfluxServer(is *is.I, status int) (*httptest.Server, *[]string) {
	bodies := []string{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is.Equal("/api/v2/write", r.URL.Path)
		is.Equal("farm", r.URL.Query().Get("org"))

		b, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(b))

		if status >= 400 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			w.Write([]byte(`{"code":"invalid","message":"bad point"}`))
			return
		}

		w.WriteHeader(status)
	}))

	return server, &bodies
}
