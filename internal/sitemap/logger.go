package sitemap

// Logger is the observability collaborator for the export pipeline. The
// endpoint contract never surfaces failures to callers, so degradations are
// only visible here.
type Logger interface {
	LogInfo(format string, v ...interface{})
	LogError(format string, v ...interface{})
	LogDebug(format string, v ...interface{})
}

type nopLogger struct{}

func (nopLogger) LogInfo(string, ...interface{})  {}
func (nopLogger) LogError(string, ...interface{}) {}
func (nopLogger) LogDebug(string, ...interface{}) {}

// NopLogger discards everything. Used when no collaborator is injected.
func NopLogger() Logger {
	return nopLogger{}
}
