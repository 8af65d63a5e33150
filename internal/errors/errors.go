package gerr

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	BadMailRequest      = status.Error(codes.DataLoss, "bad mail request")
	MailApiLimitReached = status.Error(codes.ResourceExhausted, "mail api limit reached")

	Unauthorized = status.Error(codes.Unauthenticated, "unauthorized")
	RateLimited  = status.Error(codes.ResourceExhausted, "too many requests, please try again later")

	TransactionNotFound     = status.Error(codes.NotFound, "no transaction found")
	TransactionNotSuccesful = status.Error(codes.FailedPrecondition, "transaction not successful")
	TransactionFailed       = status.Error(codes.FailedPrecondition, "transaction has failed")
	TransactionConflict     = status.Error(codes.Aborted, "transaction was completed concurrently")
	CartNotFound            = status.Error(codes.NotFound, "cart not found")
	CartEmpty               = status.Error(codes.InvalidArgument, "cart is empty")
	CartPurchased           = status.Error(codes.FailedPrecondition, "cart has already been purchased")
	UnsupportedCurrency     = status.Error(codes.InvalidArgument, "unsupported currency")
	UnknownProvider         = status.Error(codes.NotFound, "unknown payment provider")

	ProviderNotConfigured = status.Error(codes.FailedPrecondition, "payment provider is not configured")
	ProviderUnavailable   = status.Error(codes.Unavailable, "payment provider unavailable")
	InvalidSignature      = status.Error(codes.InvalidArgument, "invalid signature")

	AnalyticsUnavailable = status.Error(codes.Internal, "failed to fetch analytics")
)

// Validation returns an InvalidArgument error carrying a message fit for display.
func Validation(msg string) error {
	return status.Error(codes.InvalidArgument, msg)
}

// ProviderRejected returns a FailedPrecondition error carrying the provider's
// reason, fit for display at checkout.
func ProviderRejected(provider, reason string) error {
	return status.Errorf(codes.FailedPrecondition, "%s: %s", provider, reason)
}

// Code extracts the status code of the first status error in the chain.
// Errors without one are reported as codes.Internal.
func Code(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	var se interface{ GRPCStatus() *status.Status }
	if errors.As(err, &se) {
		return se.GRPCStatus().Code()
	}
	return codes.Internal
}

// Message returns the status message of the first status error in the chain
// and a generic text for anything else.
func Message(err error) string {
	var se interface{ GRPCStatus() *status.Status }
	if errors.As(err, &se) {
		return se.GRPCStatus().Message()
	}
	return "internal error"
}
