package calc

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bytecalc/gobytecalc/pkg/proto"
	"github.com/bytecalc/gobytecalc/pkg/runtime"
)

func invoke(t *testing.T, i proto.Instruction) (runtime.InvocationResult, error) {
	r, err := runtime.NewRuntime()
	require.NoError(t, err)
	require.NoError(t, r.Register(DefaultAddress(), CalculatorProgram{}))
	data, err := i.MarshalBinary()
	require.NoError(t, err)
	return r.Invoke(context.Background(), DefaultAddress(), nil, data)
}

func TestProgramTraces(t *testing.T) {
	for i, tc := range []struct {
		instruction proto.Instruction
		logs        []string
	}{
		{proto.Instruction{Operation: proto.Add, Left: 10, Right: 5},
			[]string{"Addition: 10 + 5", "Result = 15"}},
		{proto.Instruction{Operation: proto.Subtract, Left: 20, Right: 8},
			[]string{"Subtraction: 20 - 8", "Result = 12"}},
		{proto.Instruction{Operation: proto.Multiply, Left: 6, Right: 7},
			[]string{"Multiplication: 6 * 7", "Result = 42"}},
		{proto.Instruction{Operation: proto.Divide, Left: 10, Right: 2},
			[]string{"Division: 10 / 2", "Result = 5"}},
		{proto.Instruction{Operation: proto.Modulo, Left: 10, Right: 3},
			[]string{"Modulus: 10 % 3", "Result = 1"}},
		{proto.Instruction{Operation: proto.Power, Left: 2, Right: 10},
			[]string{"Power: 2 ^ 10", "Result = 1024"}},
		{proto.Instruction{Operation: proto.Subtract, Left: 5, Right: 20},
			[]string{"Subtraction: 5 - 20", "Result = -15"}},
	} {
		res, err := invoke(t, tc.instruction)
		require.NoError(t, err, i)
		assert.Equal(t, tc.logs, res.Logs, i)
	}
}

func TestProgramFailureTraces(t *testing.T) {
	for i, tc := range []struct {
		instruction proto.Instruction
		error       EvaluationError
		logs        []string
	}{
		{proto.Instruction{Operation: proto.Divide, Left: 10, Right: 0}, DivisionByZero,
			[]string{"Division: 10 / 0", "Division by zero is not allowed"}},
		{proto.Instruction{Operation: proto.Modulo, Left: 10, Right: 0}, DivisionByZero,
			[]string{"Modulus: 10 % 0", "Modulus by zero is not allowed"}},
		{proto.Instruction{Operation: proto.Power, Left: 3, Right: -1}, NegativeExponent,
			[]string{"Power: 3 ^ -1", "Negative exponent is not allowed"}},
		{proto.Instruction{Operation: proto.Operation(9), Left: 1, Right: 1}, UnknownOperation,
			[]string{"Unknown operation: 9"}},
		{proto.Instruction{Operation: proto.Multiply, Left: math.MaxInt64, Right: 2}, ArithmeticOverflow,
			[]string{"Multiplication: 9223372036854775807 * 2", "Arithmetic overflow"}},
	} {
		res, err := invoke(t, tc.instruction)
		require.Error(t, err, i)
		assert.Equal(t, tc.error, GetEvaluationErrorType(err), i)
		assert.Equal(t, tc.logs, res.Logs, i)
		assert.Nil(t, res.ReturnData, i)
	}
}

func TestProgramReturnData(t *testing.T) {
	res, err := invoke(t, proto.Instruction{Operation: proto.Add, Left: 10, Right: 5})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0F, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, res.ReturnData)
	r, err := ResultFromReturnData(res.ReturnData)
	require.NoError(t, err)
	assert.Equal(t, int64(15), r)

	res, err = invoke(t, proto.Instruction{Operation: proto.Subtract, Left: 5, Right: 20})
	require.NoError(t, err)
	r, err = ResultFromReturnData(res.ReturnData)
	require.NoError(t, err)
	assert.Equal(t, int64(-15), r)
}

func TestProgramDecodeFailure(t *testing.T) {
	r, err := runtime.NewRuntime()
	require.NoError(t, err)
	require.NoError(t, r.Register(DefaultAddress(), CalculatorProgram{}))
	res, err := r.Invoke(context.Background(), DefaultAddress(), nil, []byte{1, 2, 3})
	require.Error(t, err)
	assert.Equal(t, DecodeError, GetEvaluationErrorType(err))
	assert.Empty(t, res.Logs)
	assert.Nil(t, res.ReturnData)
}

func TestResultFromReturnData(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 15, -15, 1024, math.MaxInt64, math.MinInt64} {
		r, err := ResultFromReturnData(EncodeResult(v))
		require.NoError(t, err)
		assert.Equal(t, v, r)
	}
	for _, data := range [][]byte{nil, {}, {1, 2, 3}, make([]byte, 9)} {
		_, err := ResultFromReturnData(data)
		assert.Error(t, err)
	}
}

func TestDefaultAddress(t *testing.T) {
	assert.Equal(t, proto.NewAddressFromLabel(ProgramLabel), DefaultAddress())
	assert.NotEqual(t, proto.Address{}, DefaultAddress())
}
