package domain

import "time"

// UsageLog is one billing-grade accounting row per successful edit.
// PixelsProcessed counts output pixels; BytesSaved is how much smaller the
// encoded output is than the source, floored at zero.
type UsageLog struct {
	UserID          string
	JobID           string
	PixelsProcessed int64
	BytesSaved      int64
	ComputeTimeMS   int64
	CreatedAt       time.Time
}
