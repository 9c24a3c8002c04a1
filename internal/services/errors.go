package services

import (
	"fmt"
	"strings"

	"launchpad-backend/internal/models"
)

// ValidationError carries every form violation found, not just the first one
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// UploadError wraps a failure to publish the logo
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("logo upload failed: %v", e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// PreflightError reports why the balance preflight refused the submission.
// Required and Available are formatted in human units for direct display.
type PreflightError struct {
	Insufficient bool
	Required     string
	Available    string
	FeeWei       string
	Detail       string
}

func (e *PreflightError) Error() string {
	if e.Insufficient {
		return fmt.Sprintf("insufficient balance: need %s, have %s", e.Required, e.Available)
	}
	return "preflight failed: " + e.Detail
}

// TransactionError reports a broadcast or on-chain execution failure
type TransactionError struct {
	TxHash string
	Reason string
	Err    error
}

func (e *TransactionError) Error() string {
	if e.TxHash != "" {
		return fmt.Sprintf("transaction %s failed: %s", e.TxHash, e.Reason)
	}
	return "transaction failed: " + e.Reason
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

// ConfirmationError means the transaction was mined but the result could not
// be verified (no receipt in time, or the expected event is missing)
type ConfirmationError struct {
	TxHash string
	Reason string
	Err    error
}

func (e *ConfirmationError) Error() string {
	return fmt.Sprintf("confirmation of %s failed: %s", e.TxHash, e.Reason)
}

func (e *ConfirmationError) Unwrap() error {
	return e.Err
}

// classifyTransactionFailure maps raw node errors onto user-facing reasons
func classifyTransactionFailure(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "out of gas"):
		return "execution ran out of gas"
	case strings.Contains(msg, "insufficient funds"):
		return "account balance cannot cover value plus gas"
	case strings.Contains(msg, "incorrect fee") || strings.Contains(msg, "invalid fee"):
		return "factory rejected the deployment fee"
	case strings.Contains(msg, "nonce too low"):
		return "nonce conflict with a pending transaction"
	default:
		return err.Error()
	}
}

// StageOf maps a pipeline error onto the stage where it occurred
func StageOf(err error) models.SubmissionStage {
	switch err.(type) {
	case *ValidationError:
		return models.StageValidating
	case *UploadError:
		return models.StageUploading
	case *PreflightError:
		return models.StagePreflight
	case *TransactionError:
		return models.StageSubmitting
	case *ConfirmationError:
		return models.StageConfirming
	default:
		return models.StageSubmitting
	}
}
