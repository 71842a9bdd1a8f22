// Package calc implements the byte calculator evaluator. It decodes the
// fixed-size instruction payload and dispatches the requested arithmetic
// operation over signed 64-bit integers, trapping on overflow.
package calc

import (
	"github.com/ccoveille/go-safecast"

	"github.com/bytecalc/gobytecalc/pkg/proto"
)

// Decode parses the fixed-size binary payload into an Instruction.
// The payload must be exactly proto.InstructionSize bytes long.
func Decode(data []byte) (proto.Instruction, error) {
	var i proto.Instruction
	if err := i.UnmarshalBinary(data); err != nil {
		return proto.Instruction{}, DecodeError.Wrap(err, "failed to decode instruction")
	}
	return i, nil
}

// Evaluate applies the instruction's operation to its operands and returns
// the result. Evaluation is pure and total over valid instructions; any
// failure is returned as an error carrying an EvaluationError kind.
func Evaluate(i proto.Instruction) (int64, error) {
	switch i.Operation {
	case proto.Add:
		r, ok := AddInt64(i.Left, i.Right)
		if !ok {
			return 0, ArithmeticOverflow.Errorf("add: result out of int64 range")
		}
		return r, nil
	case proto.Subtract:
		r, ok := SubInt64(i.Left, i.Right)
		if !ok {
			return 0, ArithmeticOverflow.Errorf("sub: result out of int64 range")
		}
		return r, nil
	case proto.Multiply:
		r, ok := MulInt64(i.Left, i.Right)
		if !ok {
			return 0, ArithmeticOverflow.Errorf("mul: result out of int64 range")
		}
		return r, nil
	case proto.Divide:
		if i.Right == 0 {
			return 0, DivisionByZero.New("div: division by zero")
		}
		r, ok := DivInt64(i.Left, i.Right)
		if !ok {
			return 0, ArithmeticOverflow.Errorf("div: result out of int64 range")
		}
		return r, nil
	case proto.Modulo:
		if i.Right == 0 {
			return 0, DivisionByZero.New("mod: division by zero")
		}
		r, ok := ModInt64(i.Left, i.Right)
		if !ok {
			return 0, ArithmeticOverflow.Errorf("mod: result out of int64 range")
		}
		return r, nil
	case proto.Power:
		if i.Right < 0 {
			return 0, NegativeExponent.Errorf("pow: negative exponent %d", i.Right)
		}
		e, err := safecast.ToUint32(i.Right)
		if err != nil {
			return 0, ArithmeticOverflow.Wrap(err, "pow: exponent out of range")
		}
		r, ok := PowInt64(i.Left, e)
		if !ok {
			return 0, ArithmeticOverflow.Errorf("pow: result out of int64 range")
		}
		return r, nil
	default:
		return 0, UnknownOperation.Errorf("unknown operation %d", byte(i.Operation))
	}
}

// EvaluateBytes decodes the payload and evaluates the resulting instruction
// in one step.
func EvaluateBytes(data []byte) (int64, error) {
	i, err := Decode(data)
	if err != nil {
		return 0, err
	}
	return Evaluate(i)
}
