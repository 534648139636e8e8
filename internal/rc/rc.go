// Package rc defines the closed error-code enumeration used across the
// query execution core. Every sentinel error a statement can fail with is a
// *errors.Kind, mirroring the way go-mysql-server
// declares its own sentinel errors (see auth.ErrNotAuthorized).
package rc

import "gopkg.in/src-d/go-errors.v1"

// The closed set of error codes a statement can terminate with. RecordEof is
// deliberately absent: it is not an error, it is io.EOF, the normal
// termination signal threaded through every RowIter.Next.
var (
	ErrSchemaTableNotExist = errors.NewKind("table not found: %s")
	ErrSchemaFieldMissing  = errors.NewKind("field %q not found on table %q")
	ErrInvalidArgument     = errors.NewKind("invalid argument: %s")
	ErrUnsupported         = errors.NewKind("unsupported: %s")
	ErrInternal            = errors.NewKind("internal error: %s")
	ErrUnimplemented       = errors.NewKind("not implemented: %s")
	ErrGenericError        = errors.NewKind("%s")
)
