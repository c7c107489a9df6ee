package solana

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

const instructionErrorKey = "InstructionError"

// CustomError is the numerical error returned by a non-system program.
type CustomError int

func (c CustomError) Error() string {
	return fmt.Sprintf("custom program error: %x", int(c))
}

// InstructionError indicates an instruction returned an error in a transaction.
type InstructionError struct {
	Index int
	Err   error
}

func (i InstructionError) Error() string {
	return fmt.Sprintf("Error processing Instruction %d: %v", i.Index, i.Err)
}

func (i InstructionError) Unwrap() error {
	return i.Err
}

// CustomError returns the program-specific error code, if any.
func (i InstructionError) CustomError() *CustomError {
	ce, ok := i.Err.(CustomError)
	if ok {
		return &ce
	}

	return nil
}

// ParseInstructionError parses the JSON-decoded `err` field of a transaction
// status or simulation result. A nil InstructionError is returned when the
// failure is not attributed to an instruction.
//
// The two instruction error shapes are:
//
//	{"InstructionError":[2,{"Custom":3}]}
//	{"InstructionError":[0,"InvalidArgument"]}
func ParseInstructionError(raw interface{}) (*InstructionError, error) {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil, nil
	}

	v, ok := m[instructionErrorKey]
	if !ok {
		return nil, nil
	}

	tuple, ok := v.([]interface{})
	if !ok || len(tuple) != 2 {
		return nil, errors.Errorf("invalid instruction error tuple: %v", v)
	}

	index, err := parseJSONNumber(tuple[0])
	if err != nil {
		return nil, errors.Wrap(err, "invalid instruction index")
	}

	switch detail := tuple[1].(type) {
	case string:
		return &InstructionError{Index: index, Err: errors.New(detail)}, nil
	case map[string]interface{}:
		code, ok := detail["Custom"]
		if !ok {
			return nil, errors.Errorf("unsupported instruction error: %v", detail)
		}
		c, err := parseJSONNumber(code)
		if err != nil {
			return nil, errors.Wrap(err, "invalid custom error code")
		}
		return &InstructionError{Index: index, Err: CustomError(c)}, nil
	default:
		return nil, errors.Errorf("unsupported instruction error: %v", tuple[1])
	}
}

func parseJSONNumber(v interface{}) (int, error) {
	switch t := v.(type) {
	case json.Number:
		i, err := t.Int64()
		return int(i), err
	case float64:
		return int(t), nil
	case string:
		return strconv.Atoi(t)
	default:
		return 0, errors.Errorf("invalid number type: %T", v)
	}
}
