package webevents

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/utsabfdahal/ProjectThopaSichai/pkg/types"
)

func TestThatPublishedEventsAreStreamed(t *testing.T) {
	is := is.New(t)

	we := New(zerolog.Nop())
	defer we.Shutdown()

	server := httptest.NewServer(we)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// the client is registered asynchronously, so keep publishing until the event arrives
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(20 * time.Millisecond):
				we.PublishOnTopic(ctx, &types.ModeChanged{PreviousMode: types.ModeAutomatic, Mode: types.ModeManual})
			}
		}
	}()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/events", nil)
	resp, err := http.DefaultClient.Do(req)
	is.NoErr(err)
	defer resp.Body.Close()

	is.Equal("text/event-stream", resp.Header.Get("Content-Type"))

	event, data := "", ""

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "event: ") {
			event = strings.TrimPrefix(line, "event: ")
		}
		if strings.HasPrefix(line, "data: ") {
			data = strings.TrimPrefix(line, "data: ")
		}
		if line == "" && event != "" {
			break
		}
	}

	is.Equal("irrigation.modeChanged", event)
	is.True(strings.Contains(data, `"mode":"MANUAL"`))
}
