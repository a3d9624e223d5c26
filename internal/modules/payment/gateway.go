package payment

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"
)

// Gateway abstracts the external payment provider. The engine only needs a
// redirect target plus an external reference on initiation, and a parsed
// verification result from callbacks; the wire protocol lives behind this
// interface.
type Gateway interface {
	Name() string
	CreatePayment(ctx context.Context, bookingID int64, amount float64) (*GatewayResult, error)
	VerifyCallback(params url.Values) VerificationResult
}

type GatewayResult struct {
	PaymentURL  string
	ExternalRef string
}

// VerificationResult is the gateway's reported outcome for a callback.
type VerificationResult struct {
	Success     bool
	ExternalRef string
	ErrorDetail string
}

// FakeGateway accepts every initiation and trusts the callback's Status
// parameter. Used for local development and the test suite.
type FakeGateway struct{}

func (FakeGateway) Name() string { return "fake" }

func (FakeGateway) CreatePayment(ctx context.Context, bookingID int64, amount float64) (*GatewayResult, error) {
	ref := uuid.NewString()
	return &GatewayResult{
		PaymentURL:  fmt.Sprintf("https://gateway.test/pay/%d?ref=%s", bookingID, ref),
		ExternalRef: ref,
	}, nil
}

func (FakeGateway) VerifyCallback(params url.Values) VerificationResult {
	ref := params.Get("ref")
	if ref == "" {
		ref = params.Get("external_ref")
	}
	success := params.Get("status") == "OK"
	detail := ""
	if !success {
		detail = params.Get("message")
		if detail == "" {
			detail = "payment verification failed"
		}
	}
	return VerificationResult{Success: success, ExternalRef: ref, ErrorDetail: detail}
}
