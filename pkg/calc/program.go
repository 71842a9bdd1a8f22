package calc

import (
	"encoding/binary"
	"strconv"

	"github.com/pkg/errors"

	"github.com/bytecalc/gobytecalc/pkg/proto"
	"github.com/bytecalc/gobytecalc/pkg/runtime"
)

// ProgramLabel is the label the calculator program's well-known address is
// derived from.
const ProgramLabel = "bytecalc/calculator"

// ReturnDataSize is the length of the return data a successful invocation
// leaves behind, the result as a little-endian signed 64-bit integer.
const ReturnDataSize = 8

// DefaultAddress returns the well-known address the calculator program is
// conventionally registered at.
func DefaultAddress() proto.Address {
	return proto.NewAddressFromLabel(ProgramLabel)
}

var (
	traceNames   = [OperationsCount]string{"Addition", "Subtraction", "Multiplication", "Division", "Modulus", "Power"}
	traceSymbols = [OperationsCount]string{"+", "-", "*", "/", "%", "^"}
)

// OperationsCount mirrors the number of defined operations for the trace
// tables above.
const OperationsCount = proto.OperationsCount

// CalculatorProgram interprets calculator instruction payloads under the
// hosting runtime. The zero value is ready to use; the program keeps no
// state between invocations.
type CalculatorProgram struct{}

// ProcessInstruction decodes the invocation payload, evaluates it and leaves
// the result as return data. Trace lines mirror each step of the dispatch:
// the operation applied to its operands, any guard that rejected the call
// and the final result.
func (p CalculatorProgram) ProcessInstruction(ic *runtime.Invocation) error {
	i, err := Decode(ic.Data())
	if err != nil {
		return err
	}
	if i.Operation.Valid() {
		ic.Logf("%s: %d %s %d", traceNames[i.Operation], i.Left, traceSymbols[i.Operation], i.Right)
	}
	r, err := Evaluate(i)
	if err != nil {
		if line := failureTraceLine(i, GetEvaluationErrorType(err)); line != "" {
			ic.Log(line)
		}
		return err
	}
	ic.Logf("Result = %d", r)
	ic.SetReturnData(EncodeResult(r))
	return nil
}

func failureTraceLine(i proto.Instruction, kind EvaluationError) string {
	switch kind {
	case UnknownOperation:
		return "Unknown operation: " + strconv.Itoa(int(i.Operation))
	case DivisionByZero:
		if i.Operation == proto.Modulo {
			return "Modulus by zero is not allowed"
		}
		return "Division by zero is not allowed"
	case NegativeExponent:
		return "Negative exponent is not allowed"
	case ArithmeticOverflow:
		return "Arithmetic overflow"
	default:
		return ""
	}
}

// OperationInfo describes one row of the dispatch table.
type OperationInfo struct {
	Selector byte   `json:"selector"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
}

// Operations lists the defined operations in selector order.
func Operations() []OperationInfo {
	infos := make([]OperationInfo, OperationsCount)
	for i := range infos {
		op := proto.Operation(i)
		infos[i] = OperationInfo{Selector: byte(op), Name: op.String(), Symbol: traceSymbols[op]}
	}
	return infos
}

// EncodeResult renders an evaluation result as invocation return data.
func EncodeResult(r int64) []byte {
	data := make([]byte, ReturnDataSize)
	binary.LittleEndian.PutUint64(data, uint64(r))
	return data
}

// ResultFromReturnData parses the return data of a successful invocation
// back into the evaluation result.
func ResultFromReturnData(data []byte) (int64, error) {
	if l := len(data); l != ReturnDataSize {
		return 0, errors.Errorf("invalid data length for return data, expected %d, received %d", ReturnDataSize, l)
	}
	return int64(binary.LittleEndian.Uint64(data)), nil
}
