package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/utsabfdahal/ProjectThopaSichai/pkg/types"
)

var ErrNoMotor = errors.New("no motor registered for node")

var tracer = otel.Tracer("thopasichai-client")

// IrrigationClient is used by sensor and actuator nodes, or other services, that talk
// to the irrigation api over http.
type IrrigationClient interface {
	SendReading(ctx context.Context, reading types.IncomingReading) (*types.IngestResult, error)
	MotorStates(ctx context.Context) (map[string]types.MotorState, error)
	MotorState(ctx context.Context, nodeID string) (types.MotorState, error)
	Close(ctx context.Context)
}

type irrigationClient struct {
	url        string
	httpClient http.Client
}

// New creates a client for the api at url. Requests are authenticated with the client
// credentials flow when oauthTokenURL is set.
func New(ctx context.Context, url, oauthTokenURL, oauthClientID, oauthClientSecret string) (IrrigationClient, error) {
	transport := otelhttp.NewTransport(http.DefaultTransport)

	c := &irrigationClient{
		url:        strings.TrimSuffix(url, "/"),
		httpClient: http.Client{Transport: transport},
	}

	if oauthTokenURL == "" {
		return c, nil
	}

	oauthConfig := &clientcredentials.Config{
		ClientID:     oauthClientID,
		ClientSecret: oauthClientSecret,
		TokenURL:     oauthTokenURL,
	}

	tokenCtx := context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Transport: transport})

	token, err := oauthConfig.Token(tokenCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to get client credentials from %s: %w", oauthConfig.TokenURL, err)
	}

	if !token.Valid() {
		return nil, fmt.Errorf("an invalid token was returned from %s", oauthTokenURL)
	}

	c.httpClient = http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.ReuseTokenSource(token, oauthConfig.TokenSource(tokenCtx)),
			Base:   transport,
		},
	}

	return c, nil
}

func (c *irrigationClient) SendReading(ctx context.Context, reading types.IncomingReading) (*types.IngestResult, error) {
	var err error
	ctx, span := tracer.Start(ctx, "send-reading")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	b, err := json.Marshal(reading)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reading: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/api/data/receive", bytes.NewReader(b))
	if err != nil {
		err = fmt.Errorf("failed to create http request: %w", err)
		return nil, err
	}
	req.Header.Add("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed to send reading: %w", err)
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("failed to read response body: %w", err)
		return nil, err
	}

	if resp.StatusCode != http.StatusCreated {
		err = fmt.Errorf("reading rejected with status code %d: %s", resp.StatusCode, string(respBody))
		return nil, err
	}

	result := &types.IngestResult{}
	if err = json.Unmarshal(respBody, result); err != nil {
		err = fmt.Errorf("failed to unmarshal response body: %w", err)
		return nil, err
	}

	if result.MotorControlError != "" {
		log := logging.GetFromContext(ctx)
		log.Warn().Str("nodeid", reading.NodeID).Msgf("motor control failed: %s", result.MotorControlError)
	}

	return result, nil
}

func (c *irrigationClient) MotorStates(ctx context.Context) (map[string]types.MotorState, error) {
	var err error
	ctx, span := tracer.Start(ctx, "get-motor-states")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"/api/motorsinfo", nil)
	if err != nil {
		err = fmt.Errorf("failed to create http request: %w", err)
		return nil, err
	}
	req.Header.Add("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed to retrieve motor states: %w", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("request failed with status code %d", resp.StatusCode)
		return nil, err
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("failed to read response body: %w", err)
		return nil, err
	}

	states := map[string]types.MotorState{}
	if err = json.Unmarshal(respBody, &states); err != nil {
		err = fmt.Errorf("failed to unmarshal response body: %w", err)
		return nil, err
	}

	return states, nil
}

// MotorState returns the desired state of the motor attached to the node.
func (c *irrigationClient) MotorState(ctx context.Context, nodeID string) (types.MotorState, error) {
	states, err := c.MotorStates(ctx)
	if err != nil {
		return "", err
	}

	state, ok := states[nodeID]
	if !ok {
		return "", fmt.Errorf("%w %s", ErrNoMotor, nodeID)
	}

	return state, nil
}

func (c *irrigationClient) Close(ctx context.Context) {
	c.httpClient.CloseIdleConnections()
}
