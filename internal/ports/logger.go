package ports

import "github.com/hoistlabs/hostgate/pkg/log"

// Logger re-exports the logging interface so internal packages depend on
// ports alone.
type Logger = log.Logger

// Field re-exports the structured log field type.
type Field = log.Field

// Field constructors, re-exported for convenience.
var (
	String   = log.String
	Int      = log.Int
	Bool     = log.Bool
	Duration = log.Duration
	Err      = log.Err
	Any      = log.Any
)
