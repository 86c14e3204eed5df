package probe

import "errors"

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
	PercentageMultiplier    = 100
	maxBodyBytes            = 16 << 20
)

// Sentinel errors.
var (
	ErrUnhealthy  = errors.New("service unhealthy")
	ErrBadPayload = errors.New("unexpected payload")
	ErrFailures   = errors.New("requests failed")
)
