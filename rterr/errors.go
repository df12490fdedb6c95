package rterr

import (
	"fmt"
	"strings"
)

// ErrorType defines the category of the error.
type ErrorType string

const (
	// TypeStructural marks failures where a node's shape is not one the
	// rewriter recognizes (unexpected token, malformed options object,
	// unbound placeholder reference).
	TypeStructural ErrorType = "StructuralError"
	// TypeConsistency marks failures where individually well-formed pieces
	// disagree with each other (duplicate binding key, empty binding map,
	// alternate placeholder-set mismatch).
	TypeConsistency ErrorType = "ConsistencyError"
)

// RetargetError is the interface for all retarget-related errors.
type RetargetError interface {
	error
	Type() ErrorType
}

// BaseError provides common fields for retarget errors.
type BaseError struct {
	Msg     string
	ErrType ErrorType
}

func (e *BaseError) Error() string {
	return fmt.Sprintf("[%s] %s", e.ErrType, e.Msg)
}

func (e *BaseError) Type() ErrorType {
	return e.ErrType
}

// Malformed is a recoverable validation failure tied to a single node of
// the program tree. The node is carried opaquely so this package does not
// depend on the tree representation; callers that own the node type
// re-assert it when reporting.
type Malformed struct {
	BaseError
	Node any
}

func (e *Malformed) Error() string {
	return fmt.Sprintf("[%s] %s", e.ErrType, e.Msg)
}

// NewStructural creates a Malformed error of the structural category.
func NewStructural(node any, msg string) *Malformed {
	return &Malformed{
		BaseError: BaseError{
			Msg:     msg,
			ErrType: TypeStructural,
		},
		Node: node,
	}
}

// NewStructuralf creates a structural Malformed error with a formatted message.
func NewStructuralf(node any, format string, args ...any) *Malformed {
	return NewStructural(node, fmt.Sprintf(format, args...))
}

// NewConsistency creates a Malformed error of the consistency category.
func NewConsistency(node any, msg string) *Malformed {
	return &Malformed{
		BaseError: BaseError{
			Msg:     msg,
			ErrType: TypeConsistency,
		},
		Node: node,
	}
}

// MultiError collects multiple retarget errors.
type MultiError struct {
	Errors []error
}

func (m *MultiError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d error(s) occurred:\n", len(m.Errors)))
	for _, err := range m.Errors {
		sb.WriteString(fmt.Sprintf("- %v\n", err))
	}
	return sb.String()
}

func (m *MultiError) Type() ErrorType {
	if len(m.Errors) > 0 {
		if re, ok := m.Errors[0].(RetargetError); ok {
			return re.Type()
		}
	}
	return "MultiError"
}
