package domain

const (
	MsgWelcomeKey         = "Welcome To Luco Pay"
	MsgPaymentRequested   = "Payment requested successfully"
	MsgTransactionFound   = "Transaction found"
	MsgMSISDNRequired     = "msisdn is required"
	MsgValidationFailed   = "Failed to validate mobile number"
	MsgInternalError      = "Internal Server Error"
	PrefixPaymentFailed   = "Payment processing failed"
	PrefixFetchTxFailed   = "Failed to fetch transaction"
	MsgFetchTxUnavailable = "Error fetching transaction: payment provider unavailable"
	MsgFetchTxMalformed   = "Error fetching transaction: unexpected response from payment provider"
)

// StatusUnknown is reported when the provider omits a transaction status.
const StatusUnknown = "unknown"
