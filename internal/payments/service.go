package payments

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

var ErrPayoutRejected = errors.New("payout rejected by gateway")

// Payer is the external payment capability. A payout failure is always
// observable so the proceeds ledger can roll back.
type Payer interface {
	PayOut(to string, amount uint64) error
}

type service struct {
	gatewayUrl string
	accessKey  string
	client     *retryablehttp.Client
}

func NewService(gatewayUrl, accessKey string, client *retryablehttp.Client) Payer {
	return service{gatewayUrl, accessKey, client}
}

type payoutRequest struct {
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
}

type payoutResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func (s service) PayOut(to string, amount uint64) error {
	zap.L().With(
		zap.String("to", to),
		zap.Uint64("amount", amount),
	).Info("Payments: payout request")

	body, err := json.Marshal(payoutRequest{To: to, Amount: amount})
	if err != nil {
		return err
	}

	uri := fmt.Sprintf("%s/payout", s.gatewayUrl)
	req, err := retryablehttp.NewRequest("POST", uri, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("AccessKey", s.accessKey)

	resp, err := s.client.Do(req)
	if err != nil {
		zap.L().With(zap.Error(err)).Warn("Payments: payout failure")
		return err
	}
	defer resp.Body.Close()

	var result payoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}

	if !result.Success {
		zap.L().With(zap.String("reason", result.Error)).Warn("Payments: payout rejected")
		return ErrPayoutRejected
	}

	return nil
}
