package core

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden operation forbidden
	ErrOperationForbidden ErrorCode = 100001

	// ErrProfileNotFound identity lookup failed or fid unknown
	ErrProfileNotFound ErrorCode = 100100
	// ErrWalletNotVerified wallet absent from the fid's verified-address set
	ErrWalletNotVerified ErrorCode = 100101
	// ErrMessageExpired claim message timestamp outside the freshness window
	ErrMessageExpired ErrorCode = 100102
	// ErrInvalidSignature signature malformed or recovered signer mismatch
	ErrInvalidSignature ErrorCode = 100103
	// ErrNetworkMismatch wallet connected to the wrong chain
	ErrNetworkMismatch ErrorCode = 100104
	// ErrInsufficientBalance balance below mint price plus gas buffer
	ErrInsufficientBalance ErrorCode = 100105
	// ErrUserCancelled user declined the wallet prompt
	ErrUserCancelled ErrorCode = 100106
	// ErrDuplicateClaim storage uniqueness violation on fid
	ErrDuplicateClaim ErrorCode = 100107
	// ErrStorageUnavailable persistence layer unreachable
	ErrStorageUnavailable ErrorCode = 100108
	// ErrBuilderIDNotFound no record for this fid
	ErrBuilderIDNotFound ErrorCode = 100109
	// ErrInvalidAddress candidate wallet is not a hex ethereum address
	ErrInvalidAddress ErrorCode = 100110
)

var errorNames = map[ErrorCode]string{
	ErrUnknown:             "UNKNOWN",
	ErrOperationForbidden:  "OPERATION_FORBIDDEN",
	ErrProfileNotFound:     "PROFILE_NOT_FOUND",
	ErrWalletNotVerified:   "WALLET_NOT_VERIFIED",
	ErrMessageExpired:      "MESSAGE_EXPIRED",
	ErrInvalidSignature:    "INVALID_SIGNATURE",
	ErrNetworkMismatch:     "NETWORK_MISMATCH",
	ErrInsufficientBalance: "INSUFFICIENT_BALANCE",
	ErrUserCancelled:       "USER_CANCELLED",
	ErrDuplicateClaim:      "DUPLICATE_CLAIM",
	ErrStorageUnavailable:  "STORAGE_UNAVAILABLE",
	ErrBuilderIDNotFound:   "BUILDER_ID_NOT_FOUND",
	ErrInvalidAddress:      "INVALID_ADDRESS",
}

func (e ErrorCode) String() string {
	if name, ok := errorNames[e]; ok {
		return name
	}
	return errorNames[ErrUnknown]
}

func (e ErrorCode) Error() string {
	return e.String()
}
