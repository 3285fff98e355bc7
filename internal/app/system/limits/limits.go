// internal/app/system/limits/limits.go
package limits

// Request body size limits for various features.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxJSONBody is the maximum size for JSON request bodies.
	MaxJSONBody = 1 << 20 // 1 MB

	// MaxUploadBytes is the ceiling for a single uploaded file (journal
	// photos, avatars, school logos). Anything larger is rejected before
	// it is read into memory.
	MaxUploadBytes = 8 << 20 // 8 MB
)
