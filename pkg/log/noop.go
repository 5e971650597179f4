package log

// Noop discards all log messages. It is the default when no logger is
// configured.
type Noop struct{}

func (Noop) Debug(msg string, fields ...Field) {}
func (Noop) Info(msg string, fields ...Field)  {}
func (Noop) Warn(msg string, fields ...Field)  {}
func (Noop) Error(msg string, fields ...Field) {}
func (n Noop) With(fields ...Field) Logger     { return n }
