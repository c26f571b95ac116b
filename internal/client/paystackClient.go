package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Kariaki58/Ciwaviv-sub000/internal/config"
)

type PaystackClient interface {
	InitializeTransaction(ctx context.Context, req *InitializeRequest) (*InitializeResponse, error)
	VerifyTransaction(ctx context.Context, reference string) (*VerifyResponse, error)
}

type InitializeRequest struct {
	Email string
	// AmountKobo is the charge in the gateway's minor unit (naira * 100).
	AmountKobo  int64
	Reference   string
	CallbackURL string
	Metadata    map[string]any
}

type InitializeResponse struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

type VerifyResponse struct {
	Success      bool
	StatusDetail string
	AmountKobo   int64
}

type paystackClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	secretKey  string
}

func NewPaystackClient(cfg *config.Paystack) PaystackClient {
	return &paystackClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL: cfg.BaseApiURL,
		secretKey:  cfg.SecretKey,
	}
}

type paystackEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type paystackInitData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type paystackVerifyData struct {
	Status         string `json:"status"` // "success", "failed", "abandoned"
	GatewayMessage string `json:"gateway_response"`
	Amount         int64  `json:"amount"`
}

func (c *paystackClientImpl) InitializeTransaction(ctx context.Context, initReq *InitializeRequest) (*InitializeResponse, error) {
	payload := map[string]any{
		"email":     initReq.Email,
		"amount":    initReq.AmountKobo,
		"reference": initReq.Reference,
	}
	if initReq.CallbackURL != "" {
		payload["callback_url"] = initReq.CallbackURL
	}
	if len(initReq.Metadata) > 0 {
		payload["metadata"] = initReq.Metadata
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal req payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/transaction/initialize",
		bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	env, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var data paystackInitData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("decode paystack response: %w", err)
	}

	return &InitializeResponse{
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
		Reference:        data.Reference,
	}, nil
}

func (c *paystackClientImpl) VerifyTransaction(ctx context.Context, reference string) (*VerifyResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseApiURL+"/transaction/verify/"+url.PathEscape(reference), nil)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	env, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var data paystackVerifyData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("decode paystack response: %w", err)
	}

	return &VerifyResponse{
		Success:      data.Status == "success",
		StatusDetail: data.GatewayMessage,
		AmountKobo:   data.Amount,
	}, nil
}

func (c *paystackClientImpl) do(req *http.Request) (*paystackEnvelope, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("paystack error %d: %s", resp.StatusCode, string(b))
	}

	var env paystackEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode paystack envelope: %w", err)
	}
	if !env.Status {
		return nil, fmt.Errorf("paystack request rejected: %s", env.Message)
	}

	return &env, nil
}
