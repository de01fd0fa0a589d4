package ports

// Notifier receives user-facing notifications from the engine: validation
// warnings, load failures, and save failures. Implementations decide how to
// surface them (status line, stderr). Calls are fire-and-forget.
type Notifier interface {
	Warn(msg string)
	Error(msg string)
}
