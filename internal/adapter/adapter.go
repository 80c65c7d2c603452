// Package adapter normalizes the settlement record formats of external
// payment providers behind a single processing interface.
package adapter

import "context"

// SourceErrorTransactionID is the sentinel transaction ID reported when a
// provider's record source cannot be read, parsed, or holds no records. The
// literal value is what downstream consumers of historical data expect.
const SourceErrorTransactionID = "erro_arquivo"

// PaymentResult is the uniform outcome of a settlement lookup.
//
// ProcessedAmount is always the amount of the record the provider matched,
// not the amount originally requested; within tolerance the two may
// legitimately differ.
type PaymentResult struct {
	Success         bool    `json:"success"`
	TransactionID   string  `json:"transaction_id"`
	Message         string  `json:"message"`
	ProcessedAmount float64 `json:"processed_amount"`
}

// PaymentProcessor is the capability interface every provider adapter
// implements. Source failures are recovered into a failure PaymentResult and
// never escape the adapter boundary.
type PaymentProcessor interface {
	// ProcessPayment looks up the settlement record for the requested amount
	// in the provider's source. The call blocks until the read completes.
	ProcessPayment(ctx context.Context, amount float64) PaymentResult

	// ProviderName returns the human-readable provider name.
	ProviderName() string
}

// sourceFailure builds the uniform failure result for an unreadable source.
func sourceFailure(message string) PaymentResult {
	return PaymentResult{
		Success:         false,
		TransactionID:   SourceErrorTransactionID,
		Message:         message,
		ProcessedAmount: 0,
	}
}
