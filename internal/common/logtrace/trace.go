package logtrace

import "os"

// IsTraceEnabled reports whether verbose route/request tracing was requested
// via the environment. Checked once per call; cheap enough not to cache.
func IsTraceEnabled() bool {
	return os.Getenv("FACILOPS_TRACE") == "1"
}
