package adapter

import (
	"context"
	"encoding/xml"
	"fmt"
	"math"
	"os"

	"go.uber.org/zap"
)

// paypalMatchTolerance is the maximum distance, in currency units, between the
// requested amount and a payment's total for it to count as a match.
const paypalMatchTolerance = 1.0

// PayPalRecord is one settlement record after flattening the nested response:
// the total lives several levels deep inside the payment's first transaction.
type PayPalRecord struct {
	ID    string
	State string
	Total float64
}

// PayPalRecordSource yields the provider's settlement records.
type PayPalRecordSource interface {
	Payments(ctx context.Context) ([]PayPalRecord, error)
}

// The wire format of the PayPal-style XML dump.
type paypalResponse struct {
	XMLName  xml.Name        `xml:"paypal_response"`
	Payments []paypalPayment `xml:"payments>payment"`
}

type paypalPayment struct {
	ID           string              `xml:"id"`
	State        string              `xml:"state"`
	Transactions []paypalTransaction `xml:"transactions>transaction"`
}

type paypalTransaction struct {
	Amount paypalAmount `xml:"amount"`
}

type paypalAmount struct {
	Total float64 `xml:"total"`
}

// FilePayPalSource reads payment records from an XML response dump.
type FilePayPalSource struct {
	path string
}

// NewFilePayPalSource creates a source backed by the given XML file.
func NewFilePayPalSource(path string) *FilePayPalSource {
	return &FilePayPalSource{path: path}
}

// Payments reads the XML file and flattens the nested payment structure.
func (s *FilePayPalSource) Payments(ctx context.Context) ([]PayPalRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read PayPal data file: %w", err)
	}

	var payload paypalResponse
	if err := xml.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse PayPal data file: %w", err)
	}

	records := make([]PayPalRecord, 0, len(payload.Payments))
	for _, p := range payload.Payments {
		record := PayPalRecord{ID: p.ID, State: p.State}
		if len(p.Transactions) > 0 {
			record.Total = p.Transactions[0].Amount.Total
		}
		records = append(records, record)
	}

	return records, nil
}

// PayPalAdapter normalizes the PayPal-style record format.
type PayPalAdapter struct {
	source PayPalRecordSource
	logger *zap.Logger
}

// NewPayPalAdapter creates an adapter over the given record source.
func NewPayPalAdapter(source PayPalRecordSource, logger *zap.Logger) *PayPalAdapter {
	return &PayPalAdapter{source: source, logger: logger}
}

// ProviderName returns "PayPal".
func (a *PayPalAdapter) ProviderName() string {
	return "PayPal"
}

// ProcessPayment scans the source for a payment whose total is within
// tolerance of the requested amount, falling back to the first record when
// nothing matches.
func (a *PayPalAdapter) ProcessPayment(ctx context.Context, amount float64) PaymentResult {
	a.logger.Info("processing PayPal payment",
		zap.Float64("requested_amount", amount),
	)

	payments, err := a.source.Payments(ctx)
	if err != nil {
		a.logger.Warn("PayPal record source unavailable", zap.Error(err))
		return sourceFailure(fmt.Sprintf("failed to access PayPal payment data: %v", err))
	}
	if len(payments) == 0 {
		a.logger.Warn("PayPal record source is empty")
		return sourceFailure("failed to access PayPal payment data: source is empty")
	}

	selected := payments[0]
	for _, p := range payments {
		if math.Abs(p.Total-amount) < paypalMatchTolerance {
			selected = p
			break
		}
	}

	a.logger.Info("PayPal payment selected",
		zap.String("payment_id", selected.ID),
		zap.String("state", selected.State),
		zap.Float64("total", selected.Total),
	)

	message := fmt.Sprintf("PayPal payment approved, amount %.2f", selected.Total)
	if selected.State != "approved" {
		message = fmt.Sprintf("PayPal payment failed: %s", selected.State)
	}

	return PaymentResult{
		Success:         selected.State == "approved",
		TransactionID:   selected.ID,
		Message:         message,
		ProcessedAmount: selected.Total,
	}
}
