package domain

import "errors"

var (
	// ErrMissingUserID indicates that the session was created without a user id.
	ErrMissingUserID = errors.New("missing user id")
	// ErrOperationInProgress indicates that a remote call is still outstanding.
	ErrOperationInProgress = errors.New("operation already in progress")
	// ErrSessionClosed indicates that the session was logged out.
	ErrSessionClosed = errors.New("session closed")
)

// Phase is the UI-facing state of an account session.
type Phase string

// Session phases. Pending marks an outstanding remote mutation and blocks
// resubmission until the call settles. LoggedOut is terminal.
const (
	PhaseAccountList      Phase = "ACCOUNT_LIST"
	PhaseAccountSelected  Phase = "ACCOUNT_SELECTED"
	PhaseFunctionSelected Phase = "FUNCTION_SELECTED"
	PhasePending          Phase = "PENDING"
	PhasePrompt           Phase = "POST_TRANSACTION_PROMPT"
	PhaseHistory          Phase = "HISTORY_VIEW"
	PhaseLoggedOut        Phase = "LOGGED_OUT"
)

// Function is the money operation picked on the account form.
type Function string

// Functions selectable once an account is chosen.
const (
	FunctionDeposit  Function = "deposit"
	FunctionWithdraw Function = "withdraw"
	FunctionTransfer Function = "transfer"
)
