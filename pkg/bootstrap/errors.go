package bootstrap

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

var (
	// ErrUnreachable the database server could not be reached
	ErrUnreachable = errors.New("database server unreachable")
	// ErrDuplicate the user, collection or index already exists
	ErrDuplicate = errors.New("resource already exists")
	// ErrUnauthorized the session is not allowed to perform the operation
	ErrUnauthorized = errors.New("not authorized")
	// ErrInvalidConfig a configured value was rejected by the server
	ErrInvalidConfig = errors.New("invalid configuration")
)

// server error codes, see src/mongo/base/error_codes.yml
const (
	codeBadValue              = 2
	codeFailedToParse         = 9
	codeUnauthorized          = 13
	codeAuthenticationFailed  = 18
	codeNamespaceExists       = 48
	codeIndexOptionsConflict  = 85
	codeIndexKeySpecsConflict = 86
	codeDuplicateKey          = 11000
	codeUserAlreadyExists     = 51003
)

// StepError is returned when a bootstrap step fails
type StepError struct {
	Step string
	kind error
	err  error
}

func (e *StepError) Error() string {
	if e.kind == nil {
		return fmt.Sprintf("%s: %s", e.Step, e.err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Step, e.kind, e.err)
}

// Unwrap returns the underlying driver error
func (e *StepError) Unwrap() error {
	return e.err
}

// Is matches the failure kind
func (e *StepError) Is(target error) bool {
	return e.kind != nil && target == e.kind
}

// Unreachable marks err as a failure to reach the server
func Unreachable(err error) error {
	if err == nil {
		return nil
	}
	return &StepError{Step: StepConnect, kind: ErrUnreachable, err: err}
}

// Classify wraps err with the failed step and one of the Err* kinds when
// the cause is recognized
func Classify(step string, err error) error {
	if err == nil {
		return nil
	}
	return &StepError{Step: step, kind: kindOf(err), err: err}
}

func kindOf(err error) error {
	for _, kind := range []error{ErrUnreachable, ErrDuplicate, ErrUnauthorized, ErrInvalidConfig} {
		if errors.Is(err, kind) {
			return kind
		}
	}

	if errors.Is(err, mongo.ErrClientDisconnected) ||
		errors.Is(err, topology.ErrServerSelectionTimeout) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ErrUnreachable
	}

	// returned by every operation once the server went away
	var selErr topology.ServerSelectionError
	if errors.As(err, &selErr) {
		return ErrUnreachable
	}

	var cmdErr mongo.CommandError
	if !errors.As(err, &cmdErr) {
		return nil
	}

	switch cmdErr.Code {
	case codeUserAlreadyExists, codeDuplicateKey, codeNamespaceExists,
		codeIndexOptionsConflict, codeIndexKeySpecsConflict:
		return ErrDuplicate
	case codeUnauthorized, codeAuthenticationFailed:
		return ErrUnauthorized
	case codeBadValue, codeFailedToParse:
		return ErrInvalidConfig
	}

	if cmdErr.HasErrorLabel("NetworkError") {
		return ErrUnreachable
	}

	return nil
}
