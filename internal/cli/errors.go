// Package cli implements the command-line interface.
package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	// Vault and note errors
	ErrVaultNotFound = "VAULT_NOT_FOUND"
	ErrNoteNotFound  = "NOTE_NOT_FOUND"
	ErrNoCurrentNote = "NO_CURRENT_NOTE"

	// Config errors
	ErrConfigInvalid = "CONFIG_INVALID"

	// Processing errors
	ErrMissingCredentials = "MISSING_CREDENTIALS"
	ErrNoIssueKeys        = "NO_ISSUE_KEYS_FOUND"
	ErrResolutionFailed   = "RESOLUTION_FAILED"

	// Journal errors
	ErrJournalError = "JOURNAL_ERROR"

	// File errors
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Input errors
	ErrInvalidInput = "INVALID_INPUT"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnPartialResolution = "PARTIAL_RESOLUTION_FAILURE"
	WarnNoIssueKeys       = "NO_ISSUE_KEYS_FOUND"
)
