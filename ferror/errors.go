// Package ferror defines the error taxonomy shared by every fabrix package.
//
// Errors are plain values wrapped with fmt.Errorf("...: %w", err) so callers
// can use errors.Is / errors.As the usual way, instead of a bespoke error
// interface per package.
package ferror

import (
	"errors"
	"fmt"
)

// Sentinel errors. Compare with errors.Is.
var (
	ErrContentEmpty                 = errors.New("content is empty")
	ErrIndexNotFound                = errors.New("index not found")
	ErrValueNotFound                = errors.New("value not found")
	ErrNameNotFound                 = errors.New("name not found")
	ErrNameConflict                 = errors.New("name conflict")
	ErrDtypeMismatch                = errors.New("dtype mismatch")
	ErrConnectionAlreadyEstablished = errors.New("connection already established")
	ErrConnectionNotEstablished     = errors.New("connection not established")
	ErrTableAlreadyExists           = errors.New("table already exists")
)

// ParseError carries the source and target type names of a failed
// typed conversion (spec §7: Parse(from, to)).
type ParseError struct {
	From string
	To   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s as %s", e.From, e.To)
}

func NewParse(from, to string) error {
	return &ParseError{From: from, To: to}
}

// LengthMismatchError carries the two conflicting lengths.
type LengthMismatchError struct {
	A, B int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("length mismatch: %d != %d", e.A, e.B)
}

func NewLengthMismatch(a, b int) error {
	return &LengthMismatchError{A: a, B: b}
}

// OutOfBoundsError carries the offending index and the collection length.
type OutOfBoundsError struct {
	Index, Len int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("index %d out of bounds (len %d)", e.Index, e.Len)
}

func NewOutOfBounds(index, length int) error {
	return &OutOfBoundsError{Index: index, Len: length}
}

// InvalidArgumentError carries a static description of why an argument is invalid.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: %s", e.Reason)
}

func NewInvalidArgument(reason string) error {
	return &InvalidArgumentError{Reason: reason}
}

// InvalidTypeError carries a static description of an unexpected value type.
type InvalidTypeError struct {
	Reason string
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid type: %s", e.Reason)
}

func NewInvalidType(reason string) error {
	return &InvalidTypeError{Reason: reason}
}

// InvalidIndexError carries a free-form description of a malformed index spec.
type InvalidIndexError struct {
	Detail string
}

func (e *InvalidIndexError) Error() string {
	return fmt.Sprintf("invalid index: %s", e.Detail)
}

func NewInvalidIndex(detail string) error {
	return &InvalidIndexError{Detail: detail}
}

// MismatchedSqlRowError is returned when a dialect's row decoder cannot map
// a driver-reported column type name to a Value for the given column.
type MismatchedSqlRowError struct {
	Column string
}

func (e *MismatchedSqlRowError) Error() string {
	return fmt.Sprintf("mismatched sql row at column %q", e.Column)
}

func NewMismatchedSqlRow(column string) error {
	return &MismatchedSqlRowError{Column: column}
}

// Wrap attaches a short static context to an underlying error, e.g. from a
// wrapped driver (Sqlx/SeaQuery/Mongo/Xml/Zip/IO/SerdeJson analogues in the
// Rust source become plain Go error wrapping).
func Wrap(context string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}
