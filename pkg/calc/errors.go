package calc

import (
	"github.com/pkg/errors"
)

const (
	// Undefined marks errors that did not originate in the evaluator.
	Undefined = EvaluationError(iota)
	// DecodeError means the payload could not be parsed into the fixed
	// instruction layout.
	DecodeError
	// UnknownOperation means the operation selector is outside the defined
	// set.
	UnknownOperation
	// DivisionByZero means Divide or Modulo was requested with a zero
	// right-hand operand.
	DivisionByZero
	// NegativeExponent means Power was requested with a negative exponent.
	NegativeExponent
	// ArithmeticOverflow means the true result of the operation does not fit
	// in a signed 64-bit integer. Evaluation traps on overflow instead of
	// wrapping.
	ArithmeticOverflow
)

// EvaluationError is the kind of a terminal evaluation failure. Every failure
// is detected at the point of decode or dispatch and returned to the caller
// as is; there is no retry and no partial result.
type EvaluationError uint

var evaluationErrorNames = [...]string{
	"Undefined",
	"DecodeError",
	"UnknownOperation",
	"DivisionByZero",
	"NegativeExponent",
	"ArithmeticOverflow",
}

func (e EvaluationError) String() string {
	if int(e) >= len(evaluationErrorNames) {
		return evaluationErrorNames[Undefined]
	}
	return evaluationErrorNames[e]
}

type evaluationError struct {
	errorType     EvaluationError
	originalError error
}

func (e evaluationError) Error() string {
	return e.originalError.Error()
}

func (e EvaluationError) New(msg string) error {
	return evaluationError{errorType: e, originalError: errors.New(msg)}
}

func (e EvaluationError) Errorf(msg string, args ...interface{}) error {
	return evaluationError{errorType: e, originalError: errors.Errorf(msg, args...)}
}

func (e EvaluationError) Wrap(err error, msg string) error {
	return e.Wrapf(err, msg)
}

func (e EvaluationError) Wrapf(err error, msg string, args ...interface{}) error {
	return evaluationError{errorType: e, originalError: errors.Wrapf(err, msg, args...)}
}

// GetEvaluationErrorType returns the kind of err. Errors produced outside the
// evaluator, including nil, are reported as Undefined. Wrapping an evaluation
// error with pkg/errors keeps the kind reachable.
func GetEvaluationErrorType(err error) EvaluationError {
	if ee, ok := err.(evaluationError); ok {
		return ee.errorType
	}
	if ee, ok := errors.Cause(err).(evaluationError); ok {
		return ee.errorType
	}
	return Undefined
}
