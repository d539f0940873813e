package metrics

import "time"

// NoopMetrics is a no-operation implementation of Recorder
// All methods are empty and do nothing, providing zero overhead when metrics are disabled
type NoopMetrics struct{}

// Ensure NoopMetrics implements Recorder interface at compile time
var _ Recorder = (*NoopMetrics)(nil)

// NewNoopMetrics creates a new no-operation metrics recorder
func NewNoopMetrics() Recorder {
	return &NoopMetrics{}
}

func (n *NoopMetrics) RecordTokenIssued(tokenType string, generationTime time.Duration)      {}
func (n *NoopMetrics) RecordTokenValidation(result string)                                   {}
func (n *NoopMetrics) RecordAuthAttempt(method string, success bool, duration time.Duration) {}
func (n *NoopMetrics) RecordLogout()                                                         {}
func (n *NoopMetrics) RecordReviewSigned(operation, result string, duration time.Duration)   {}
func (n *NoopMetrics) SetReviewsCount(status string, count int)                              {}
func (n *NoopMetrics) RecordDatabaseQueryError(operation string)                             {}
