package cpu

import (
	"errors"
	"fmt"
)

// ErrUnimplementedOpcode is matched by every UnimplementedOpcodeError.
var ErrUnimplementedOpcode = errors.New("unimplemented opcode")

// UnimplementedOpcodeError is returned by Step when the fetched opcode
// has no instruction defined for it.
type UnimplementedOpcodeError struct {
	Opcode   uint8
	Prefixed bool // 0xCB prefixed
	PC       uint16
}

func (e *UnimplementedOpcodeError) Error() string {
	if e.Prefixed {
		return fmt.Sprintf("cpu: unimplemented opcode 0xCB 0x%02X at 0x%04X", e.Opcode, e.PC)
	}
	return fmt.Sprintf("cpu: unimplemented opcode 0x%02X at 0x%04X", e.Opcode, e.PC)
}

func (e *UnimplementedOpcodeError) Is(target error) bool {
	return target == ErrUnimplementedOpcode
}
