package adapter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubStripeSource struct {
	charges []ChargeRecord
	err     error
}

func (s *stubStripeSource) Charges(context.Context) ([]ChargeRecord, error) {
	return s.charges, s.err
}

func sampleCharges() []ChargeRecord {
	return []ChargeRecord{
		{ChargeID: "ch_1", AmountCents: 1000, Status: "succeeded", Paid: true},
		{ChargeID: "ch_2", AmountCents: 2000, Status: "succeeded", Paid: true},
		{ChargeID: "ch_3", AmountCents: 3000, Status: "failed", Paid: false},
	}
}

func TestStripeAdapter_MatchesWithinTolerance(t *testing.T) {
	a := NewStripeAdapter(&stubStripeSource{charges: sampleCharges()}, zap.NewNop())

	result := a.ProcessPayment(context.Background(), 20.00)

	assert.True(t, result.Success)
	assert.Equal(t, "ch_2", result.TransactionID)
	assert.Equal(t, 20.00, result.ProcessedAmount)
	assert.Contains(t, result.Message, "processed successfully")
}

func TestStripeAdapter_FractionalCentsStillMatch(t *testing.T) {
	a := NewStripeAdapter(&stubStripeSource{charges: sampleCharges()}, zap.NewNop())

	// 19.995 is 1999.5 cents, 0.5 away from the 2000-cent charge.
	result := a.ProcessPayment(context.Background(), 19.995)

	assert.True(t, result.Success)
	assert.Equal(t, "ch_2", result.TransactionID)
	assert.Equal(t, 20.00, result.ProcessedAmount)
}

func TestStripeAdapter_NoMatchFallsBackToFirstRecord(t *testing.T) {
	a := NewStripeAdapter(&stubStripeSource{charges: sampleCharges()}, zap.NewNop())

	result := a.ProcessPayment(context.Background(), 50.00)

	assert.True(t, result.Success)
	assert.Equal(t, "ch_1", result.TransactionID)
	assert.Equal(t, 10.00, result.ProcessedAmount)
}

func TestStripeAdapter_FailedChargeYieldsFailure(t *testing.T) {
	a := NewStripeAdapter(&stubStripeSource{charges: sampleCharges()}, zap.NewNop())

	result := a.ProcessPayment(context.Background(), 30.00)

	assert.False(t, result.Success)
	assert.Equal(t, "ch_3", result.TransactionID)
	assert.Contains(t, result.Message, "failed")
	assert.Equal(t, 30.00, result.ProcessedAmount)
}

func TestStripeAdapter_SucceededButUnpaidYieldsFailure(t *testing.T) {
	charges := []ChargeRecord{
		{ChargeID: "ch_u", AmountCents: 1500, Status: "succeeded", Paid: false},
	}
	a := NewStripeAdapter(&stubStripeSource{charges: charges}, zap.NewNop())

	result := a.ProcessPayment(context.Background(), 15.00)

	assert.False(t, result.Success)
	assert.Equal(t, "ch_u", result.TransactionID)
}

func TestStripeAdapter_SourceError(t *testing.T) {
	a := NewStripeAdapter(&stubStripeSource{err: errors.New("disk on fire")}, zap.NewNop())

	result := a.ProcessPayment(context.Background(), 20.00)

	assert.False(t, result.Success)
	assert.Equal(t, SourceErrorTransactionID, result.TransactionID)
	assert.Contains(t, result.Message, "failed to access Stripe transaction data")
	assert.Equal(t, 0.0, result.ProcessedAmount)
}

func TestStripeAdapter_EmptySource(t *testing.T) {
	a := NewStripeAdapter(&stubStripeSource{}, zap.NewNop())

	result := a.ProcessPayment(context.Background(), 20.00)

	assert.False(t, result.Success)
	assert.Equal(t, SourceErrorTransactionID, result.TransactionID)
}

func TestFileStripeSource_ParsesResponseDump(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stripe.json")
	payload := `{
		"transactions": [
			{"charge_id": "ch_a", "amount_cents": 4500, "status": "succeeded", "paid": true},
			{"charge_id": "ch_b", "amount_cents": 900, "status": "failed", "paid": false}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	charges, err := NewFileStripeSource(path).Charges(context.Background())
	require.NoError(t, err)

	require.Len(t, charges, 2)
	assert.Equal(t, ChargeRecord{ChargeID: "ch_a", AmountCents: 4500, Status: "succeeded", Paid: true}, charges[0])
	assert.Equal(t, ChargeRecord{ChargeID: "ch_b", AmountCents: 900, Status: "failed", Paid: false}, charges[1])
}

func TestFileStripeSource_MissingFile(t *testing.T) {
	_, err := NewFileStripeSource(filepath.Join(t.TempDir(), "nope.json")).Charges(context.Background())
	assert.Error(t, err)
}

func TestFileStripeSource_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStripeSource(path).Charges(context.Background())
	assert.Error(t, err)
}
