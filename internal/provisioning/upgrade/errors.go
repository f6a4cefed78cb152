package upgrade

import (
	"errors"
	"fmt"
	"strings"

	"github.com/imamik/parcelup/internal/parcel"
)

var (
	// ErrStageFailed is wrapped by StageError.
	ErrStageFailed = errors.New("parcel stage failed")

	// ErrStageTimeout is wrapped by StageTimeoutError.
	ErrStageTimeout = errors.New("parcel stage timed out")
)

// StageError reports errors the control plane attached to a parcel while it
// was moving to Stage.
type StageError struct {
	Product string
	Version string
	Stage   parcel.Stage
	Errors  []string
}

func (e *StageError) Error() string {
	return fmt.Sprintf("fetching parcel %s-%s while waiting for stage %s resulted in error: %s",
		e.Product, e.Version, e.Stage, strings.Join(e.Errors, "; "))
}

func (e *StageError) Unwrap() error {
	return ErrStageFailed
}

// StageTimeoutError reports a parcel that did not reach Stage within Budget
// polls.
type StageTimeoutError struct {
	Product string
	Version string
	Stage   parcel.Stage
	Budget  int
}

func (e *StageTimeoutError) Error() string {
	return fmt.Sprintf("parcel %s-%s did not reach stage %s in %d seconds",
		e.Product, e.Version, e.Stage, e.Budget)
}

func (e *StageTimeoutError) Unwrap() error {
	return ErrStageTimeout
}
