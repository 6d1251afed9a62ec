package chip8

import "fmt"

// StackOverflowError is returned when CALL nests deeper than the 16 slots
// the call stack provides.
type StackOverflowError struct {
	SP byte
}

func (e *StackOverflowError) Error() string {
	return fmt.Sprintf("chip8: call stack overflow at depth %d", e.SP)
}

// StackUnderflowError is returned when RET executes with an empty call
// stack.
type StackUnderflowError struct{}

func (e *StackUnderflowError) Error() string {
	return "chip8: RET with empty call stack"
}
