// Package pawapay is the outbound HTTP client for the payment processor's
// REST API. It translates relay intents into authenticated calls against
// the standard transactional API or the widget (hosted-session) API and
// maps every failure to a GatewayError. It never retries and never touches
// local state.
package pawapay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/migishaone/xenovaPay/internal/config"
)

// Client calls the pawaPay APIs. The standard and widget endpoints live on
// separate hosts; each operation targets the base URL it belongs to instead
// of threading a flag through the call path.
type Client struct {
	apiBaseURL    string
	widgetBaseURL string
	token         string
	httpClient    *http.Client
}

func NewClient(cfg config.GatewayConfig) *Client {
	return &Client{
		apiBaseURL:    cfg.APIBaseURL,
		widgetBaseURL: cfg.WidgetBaseURL,
		token:         cfg.Token,
		httpClient: &http.Client{
			Timeout: cfg.ConnTimeout,
		},
	}
}

// PredictProvider guesses the provider for a phone number. The response is
// passed through to the browser untouched.
func (c *Client) PredictProvider(ctx context.Context, phoneNumber string) (json.RawMessage, error) {
	u := fmt.Sprintf("%s/v1/predict-correspondent", c.apiBaseURL)
	body := map[string]string{"msisdn": phoneNumber}
	return c.send(ctx, http.MethodPost, u, body)
}

// ActiveConfiguration looks up the active gateway configuration for a
// country, optionally filtered by operation type.
func (c *Client) ActiveConfiguration(ctx context.Context, country, operationType string) (json.RawMessage, error) {
	u := fmt.Sprintf("%s/active-conf?country=%s", c.apiBaseURL, url.QueryEscape(country))
	if operationType != "" {
		u += "&operationType=" + url.QueryEscape(operationType)
	}
	return c.send(ctx, http.MethodGet, u, nil)
}

func (c *Client) InitiateDeposit(ctx context.Context, req DepositRequest) (*TransactionResult, error) {
	u := fmt.Sprintf("%s/deposits", c.apiBaseURL)
	return c.sendTransaction(ctx, http.MethodPost, u, req)
}

func (c *Client) InitiatePayout(ctx context.Context, req PayoutRequest) (*TransactionResult, error) {
	u := fmt.Sprintf("%s/payouts", c.apiBaseURL)
	return c.sendTransaction(ctx, http.MethodPost, u, req)
}

// DepositStatus fetches the gateway's record of a deposit. The API answers
// with an array; the first element wins.
func (c *Client) DepositStatus(ctx context.Context, depositID string) (*TransactionResult, error) {
	u := fmt.Sprintf("%s/deposits/%s", c.apiBaseURL, url.PathEscape(depositID))
	return c.sendStatus(ctx, u)
}

func (c *Client) PayoutStatus(ctx context.Context, payoutID string) (*TransactionResult, error) {
	u := fmt.Sprintf("%s/payouts/%s", c.apiBaseURL, url.PathEscape(payoutID))
	return c.sendStatus(ctx, u)
}

// CreateWidgetSession opens a hosted-payment session and returns the page
// the browser should be redirected to.
func (c *Client) CreateWidgetSession(ctx context.Context, req WidgetSessionRequest) (*WidgetSession, error) {
	u := fmt.Sprintf("%s/v1/widget/sessions", c.widgetBaseURL)
	raw, err := c.send(ctx, http.MethodPost, u, req)
	if err != nil {
		return nil, err
	}
	var session WidgetSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, &GatewayError{Err: fmt.Errorf("error decoding widget session: %w", err)}
	}
	if session.RedirectURL == "" {
		return nil, &GatewayError{Err: fmt.Errorf("widget session response missing redirectUrl")}
	}
	session.Raw = raw
	return &session, nil
}

func (c *Client) sendTransaction(ctx context.Context, method, url string, reqBody any) (*TransactionResult, error) {
	raw, err := c.send(ctx, method, url, reqBody)
	if err != nil {
		return nil, err
	}
	var payload transactionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &GatewayError{Err: fmt.Errorf("error decoding response: %w", err)}
	}
	return &TransactionResult{
		Status:       payload.Status,
		Country:      payload.Country,
		ProviderTxID: payload.ProviderTxID,
		Raw:          raw,
	}, nil
}

func (c *Client) sendStatus(ctx context.Context, url string) (*TransactionResult, error) {
	raw, err := c.send(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	var payloads []transactionPayload
	if err := json.Unmarshal(raw, &payloads); err != nil {
		// some sandbox responses come back as a bare object
		var single transactionPayload
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil, &GatewayError{Err: fmt.Errorf("error decoding status response: %w", err)}
		}
		payloads = append(payloads, single)
	}
	if len(payloads) == 0 {
		return nil, &GatewayError{Err: fmt.Errorf("gateway has no record of transaction")}
	}
	p := payloads[0]
	return &TransactionResult{
		Status:       p.Status,
		Country:      p.Country,
		ProviderTxID: p.ProviderTxID,
		Raw:          raw,
	}, nil
}

func (c *Client) send(ctx context.Context, method, url string, reqBody any) (json.RawMessage, error) {
	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, &GatewayError{Err: fmt.Errorf("error marshalling json: %w", err)}
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, &GatewayError{Err: fmt.Errorf("error creating request: %w", err)}
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &GatewayError{Err: fmt.Errorf("error making request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &GatewayError{Err: fmt.Errorf("error reading response: %w", err)}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &GatewayError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	if !json.Valid(body) {
		return nil, &GatewayError{Err: fmt.Errorf("invalid json in response body")}
	}

	return json.RawMessage(body), nil
}
