package payments

//go:generate go run go.uber.org/mock/mockgen -source=./payments.go -destination=./mocks/payments_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sage/config"
	"sage/infras/otel"
	"sage/shared/constant"
	"sage/shared/failure"
	"time"

	"github.com/rs/zerolog/log"
)

// Hold is a funds authorization held by the payment provider. Money sits on
// the hold until it is captured into the platform account or refunded back
// to the payer.
type Hold struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// Transfer is a payout of captured funds to a payee destination account.
type Transfer struct {
	ID          string `json:"id"`
	Amount      int64  `json:"amount"`
	Destination string `json:"destination"`
	Status      string `json:"status"`
}

type AuthorizeRequest struct {
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Source      string `json:"source"`
	Reference   string `json:"reference"`
	Description string `json:"description,omitempty"`
}

// Gateway talks to the payment provider. Amounts are minor units of the
// configured currency.
type Gateway interface {
	AuthorizeHold(ctx context.Context, req AuthorizeRequest) (Hold, error)
	Capture(ctx context.Context, holdID string, amount int64) (Hold, error)
	Refund(ctx context.Context, holdID string, amount int64) error
	Transfer(ctx context.Context, destination string, amount int64, reference string) (Transfer, error)
	PayeeDestination(ctx context.Context, payeeID string) (string, error)
}

type gatewayImpl struct {
	config *config.Config
	client *http.Client
	otel   otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) Gateway {
	return &gatewayImpl{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.Payments.TimeoutSeconds) * time.Second,
		},
		otel: otl,
	}
}

func (g *gatewayImpl) AuthorizeHold(ctx context.Context, req AuthorizeRequest) (hold Hold, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelPaymentsScopeName, constant.OtelPaymentsScopeName+".AuthorizeHold")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.Currency == "" {
		req.Currency = g.config.Payments.Currency
	}

	err = g.do(ctx, http.MethodPost, "/v1/holds", req, &hold)
	if err != nil {
		return Hold{}, err
	}

	return hold, nil
}

func (g *gatewayImpl) Capture(ctx context.Context, holdID string, amount int64) (hold Hold, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelPaymentsScopeName, constant.OtelPaymentsScopeName+".Capture")
	defer scope.End()
	defer scope.TraceIfError(err)

	payload := map[string]any{"amount": amount}

	err = g.do(ctx, http.MethodPost, fmt.Sprintf("/v1/holds/%s/capture", holdID), payload, &hold)
	if err != nil {
		return Hold{}, err
	}

	return hold, nil
}

func (g *gatewayImpl) Refund(ctx context.Context, holdID string, amount int64) (err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelPaymentsScopeName, constant.OtelPaymentsScopeName+".Refund")
	defer scope.End()
	defer scope.TraceIfError(err)

	payload := map[string]any{"amount": amount}

	return g.do(ctx, http.MethodPost, fmt.Sprintf("/v1/holds/%s/refund", holdID), payload, nil)
}

func (g *gatewayImpl) Transfer(ctx context.Context, destination string, amount int64, reference string) (transfer Transfer, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelPaymentsScopeName, constant.OtelPaymentsScopeName+".Transfer")
	defer scope.End()
	defer scope.TraceIfError(err)

	payload := map[string]any{
		"amount":      amount,
		"currency":    g.config.Payments.Currency,
		"destination": destination,
		"reference":   reference,
	}

	err = g.do(ctx, http.MethodPost, "/v1/transfers", payload, &transfer)
	if err != nil {
		return Transfer{}, err
	}

	return transfer, nil
}

func (g *gatewayImpl) PayeeDestination(ctx context.Context, payeeID string) (destination string, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelPaymentsScopeName, constant.OtelPaymentsScopeName+".PayeeDestination")
	defer scope.End()
	defer scope.TraceIfError(err)

	var resp struct {
		Destination string `json:"destination"`
	}

	err = g.do(ctx, http.MethodGet, fmt.Sprintf("/v1/payees/%s/destination", payeeID), nil, &resp)
	if err != nil {
		return "", err
	}

	return resp.Destination, nil
}

func (g *gatewayImpl) do(ctx context.Context, method, path string, payload, result any) error {
	var body io.Reader

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payment request: %w", err)
		}

		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.config.Payments.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build payment request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderContentType, "application/json")
	req.SetBasicAuth(g.config.Payments.SecretKey, "")

	resp, err := g.client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("payment provider request failed")

		return failure.Unavailable("payment provider unreachable") //nolint:wrapcheck
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var provider struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}

		_ = json.NewDecoder(resp.Body).Decode(&provider)

		log.Error().
			Int("status", resp.StatusCode).
			Str("path", path).
			Str("code", provider.Code).
			Str("message", provider.Message).
			Msg("payment provider rejected request")

		if resp.StatusCode >= http.StatusInternalServerError {
			return failure.Unavailable("payment provider error") //nolint:wrapcheck
		}

		return failure.BadRequestFromString(fmt.Sprintf("payment provider rejected request: %s", provider.Message)) //nolint:wrapcheck
	}

	if result == nil {
		return nil
	}

	if err = json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode payment response: %w", err)
	}

	return nil
}
