package security

import "go.uber.org/zap/zapcore"

// Severity represents the severity level of a security event.
// It is derived from EventType, never supplied by callers.
type Severity string

const (
	SeverityINFO Severity = "INFO"
	SeverityWARN Severity = "WARN"
	SeverityHIGH Severity = "HIGH"
)

// EventSeverityMap defines the fixed severity for each event type
var EventSeverityMap = map[EventType]Severity{
	EventSpamDetected:       SeverityINFO,
	EventValidationFailed:   SeverityINFO,
	EventRateLimitTriggered: SeverityWARN,
	EventRelayRejected:      SeverityWARN,
	EventRelayUnavailable:   SeverityHIGH,
	EventServerError:        SeverityHIGH,
}

// SeverityOf returns the severity for an event type, WARN when unmapped
func SeverityOf(event EventType) Severity {
	if s, ok := EventSeverityMap[event]; ok {
		return s
	}
	return SeverityWARN
}

func (s Severity) zapLevel() zapcore.Level {
	switch s {
	case SeverityINFO:
		return zapcore.InfoLevel
	case SeverityHIGH:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}
