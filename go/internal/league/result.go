package league

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by stores when a looked-up row does not exist.
var ErrNotFound = errors.New("not found")

// Rejection is a precondition violation: the request was well-formed but
// the league state does not allow it (wrong phase, not your turn, player
// already taken). Rejections roll the transaction back like any error,
// but the public API reports them as a failed Result instead of a 500.
type Rejection struct {
	Reason string
}

func (r *Rejection) Error() string {
	return r.Reason
}

// Reject builds a Rejection with a formatted reason.
func Reject(format string, args ...any) error {
	return &Rejection{Reason: fmt.Sprintf(format, args...)}
}

// Result is the outcome of a guarded mutation. OK is false exactly when
// the operation was rejected by a precondition; Reason then carries the
// user-facing explanation.
type Result struct {
	OK     bool `json:"success"`
	Reason string `json:"error,omitempty"`
}

// AsResult converts an engine error into a (Result, error) pair:
// rejections become a failed Result with a nil error, everything else
// passes through as a genuine failure.
func AsResult(err error) (Result, error) {
	if err == nil {
		return Result{OK: true}, nil
	}
	var rej *Rejection
	if errors.As(err, &rej) {
		return Result{OK: false, Reason: rej.Reason}, nil
	}
	return Result{}, err
}
