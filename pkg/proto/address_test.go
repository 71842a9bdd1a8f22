package proto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressStringRoundTrip(t *testing.T) {
	a := NewAddressFromLabel("bytecalc/test")
	s := a.String()
	require.NotEmpty(t, s)

	back, err := NewAddressFromString(s)
	require.NoError(t, err)
	assert.Equal(t, a, back)
}

func TestNewAddressFromStringInvalid(t *testing.T) {
	for _, s := range []string{
		"",
		"0OIl",
		"3N5GRqzDBhjVXnCn44baHcz2GoZy5qLxtTh",
	} {
		_, err := NewAddressFromString(s)
		assert.Error(t, err, "string '%s'", s)
	}
}

func TestNewAddressFromBytes(t *testing.T) {
	b := make([]byte, AddressSize)
	b[0] = 0x01
	b[AddressSize-1] = 0xff
	a, err := NewAddressFromBytes(b)
	require.NoError(t, err)
	assert.EqualValues(t, b, a[:])

	_, err = NewAddressFromBytes(b[:AddressSize-1])
	assert.Error(t, err)
	_, err = NewAddressFromBytes(append(b, 0x00))
	assert.Error(t, err)
}

func TestAddressFromLabelDeterministic(t *testing.T) {
	a1 := NewAddressFromLabel("bytecalc/calculator")
	a2 := NewAddressFromLabel("bytecalc/calculator")
	b := NewAddressFromLabel("bytecalc/other")
	assert.Equal(t, a1, a2)
	assert.NotEqual(t, a1, b)
}

func TestAddressJSONRoundTrip(t *testing.T) {
	a := NewAddressFromLabel("bytecalc/json")
	js, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, `"`+a.String()+`"`, string(js))

	var back Address
	require.NoError(t, json.Unmarshal(js, &back))
	assert.Equal(t, a, back)
}

func TestAddressUnmarshalJSONWrongSize(t *testing.T) {
	var a Address
	err := json.Unmarshal([]byte(`"3N5GRqzDBhjVXnCn44baHcz2GoZy5qLxtTh"`), &a)
	assert.Error(t, err)
}

func TestB58BytesJSON(t *testing.T) {
	b := B58Bytes([]byte{1, 2, 3})
	js, err := json.Marshal(b)
	require.NoError(t, err)

	var back B58Bytes
	require.NoError(t, json.Unmarshal(js, &back))
	assert.EqualValues(t, b, back)
}
