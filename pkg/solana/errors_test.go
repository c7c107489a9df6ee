package solana

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInstructionError(t *testing.T) {
	decode := func(s string) interface{} {
		var raw interface{}
		require.NoError(t, json.NewDecoder(bytes.NewBufferString(s)).Decode(&raw))
		return raw
	}

	e, err := ParseInstructionError(decode(`{"InstructionError":[2,{"Custom":3}]}`))
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, 2, e.Index)
	require.NotNil(t, e.CustomError())
	assert.Equal(t, CustomError(3), *e.CustomError())

	var ce CustomError
	assert.True(t, errors.As(e, &ce))
	assert.Equal(t, CustomError(3), ce)

	e, err = ParseInstructionError(decode(`{"InstructionError":[0,"InvalidArgument"]}`))
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, 0, e.Index)
	assert.Nil(t, e.CustomError())
	assert.EqualError(t, e.Err, "InvalidArgument")

	e, err = ParseInstructionError(decode(`"DuplicateSignature"`))
	assert.NoError(t, err)
	assert.Nil(t, e)

	_, err = ParseInstructionError(decode(`{"InstructionError":[0]}`))
	assert.Error(t, err)

	_, err = ParseInstructionError(decode(`{"InstructionError":[0,{"BorshIoError":"x"}]}`))
	assert.Error(t, err)
}

func TestParseJSONNumber(t *testing.T) {
	tc := []interface{}{
		"1",
		1.0,
		json.Number("1"),
	}
	for i, c := range tc {
		v, err := parseJSONNumber(c)
		assert.NoError(t, err)
		assert.Equal(t, 1, v, i)
	}

	_, err := parseJSONNumber(true)
	assert.Error(t, err)
}
