package proto

import (
	"encoding/binary"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// Operation is the one-byte selector of a calculator operation. The set of
// defined selectors is closed; anything above Power is invalid and rejected
// at evaluation time, not at decode time.
type Operation byte

const (
	Add Operation = iota
	Subtract
	Multiply
	Divide
	Modulo
	Power
)

const (
	operationSize = 1
	operandSize   = 8

	// InstructionSize is the exact length of an encoded instruction payload.
	InstructionSize = operationSize + 2*operandSize
)

var operationNames = [...]string{"add", "subtract", "multiply", "divide", "modulo", "power"}

// OperationsCount is the number of defined operations.
const OperationsCount = len(operationNames)

// Valid reports whether the selector maps to a defined operation.
func (op Operation) Valid() bool {
	return op <= Power
}

func (op Operation) String() string {
	if !op.Valid() {
		return "operation(" + strconv.Itoa(int(op)) + ")"
	}
	return operationNames[op]
}

// MarshalText renders the operation as its canonical name, so JSON carries
// "add" rather than 0.
func (op Operation) MarshalText() ([]byte, error) {
	if !op.Valid() {
		return nil, errors.Errorf("invalid operation %d", byte(op))
	}
	return []byte(operationNames[op]), nil
}

func (op *Operation) UnmarshalText(data []byte) error {
	s := string(data)
	for i, name := range operationNames {
		if s == name {
			*op = Operation(i)
			return nil
		}
	}
	return errors.Errorf("unknown operation '%s'", s)
}

// NewOperationFromString converts a canonical operation name to its selector.
func NewOperationFromString(s string) (Operation, error) {
	var op Operation
	if err := op.UnmarshalText([]byte(s)); err != nil {
		return 0, err
	}
	return op, nil
}

// Instruction is the decoded form of the fixed 17-byte calculator payload:
// a one-byte operation selector followed by two little-endian signed 64-bit
// operands. An Instruction lives only for the duration of one evaluation.
type Instruction struct {
	Operation Operation `json:"operation"`
	Left      int64     `json:"left"`
	Right     int64     `json:"right"`
}

func (i Instruction) binarySize() int {
	return InstructionSize
}

// MarshalBinary encodes the instruction into its fixed little-endian layout.
func (i Instruction) MarshalBinary() ([]byte, error) {
	buf := make([]byte, i.binarySize())
	buf[0] = byte(i.Operation)
	binary.LittleEndian.PutUint64(buf[operationSize:], uint64(i.Left))
	binary.LittleEndian.PutUint64(buf[operationSize+operandSize:], uint64(i.Right))
	return buf, nil
}

// UnmarshalBinary reads the instruction from data. Payloads that are not
// exactly InstructionSize bytes long are rejected, truncated and oversized
// ones alike.
func (i *Instruction) UnmarshalBinary(data []byte) error {
	if l := len(data); l != InstructionSize {
		return errors.Errorf("invalid data length for Instruction, expected %d, received %d", InstructionSize, l)
	}
	i.Operation = Operation(data[0])
	i.Left = int64(binary.LittleEndian.Uint64(data[operationSize:]))
	i.Right = int64(binary.LittleEndian.Uint64(data[operationSize+operandSize:]))
	return nil
}

// WriteTo writes the binary form of the instruction to w.
func (i Instruction) WriteTo(w io.Writer) (int64, error) {
	buf, err := i.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(buf)
	return int64(n), err
}
