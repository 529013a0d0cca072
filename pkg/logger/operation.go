package logger

import (
	"time"
)

// OperationLogger tracks one multi-step engine operation (load, diff,
// analyze) with consistent fields and timing.
type OperationLogger struct {
	operation string
	logger    Logger
	started   time.Time
}

// NewOperationLogger starts tracking an operation.
func NewOperationLogger(operation string, logger Logger) *OperationLogger {
	if logger == nil {
		logger = GetGlobalLogger()
	}
	ol := &OperationLogger{
		operation: operation,
		logger:    logger.WithField("operation", operation),
		started:   time.Now(),
	}
	ol.logger.Debug("operation started")
	return ol
}

// WithField adds a field to subsequent log lines.
func (ol *OperationLogger) WithField(key string, value interface{}) *OperationLogger {
	ol.logger = ol.logger.WithField(key, value)
	return ol
}

// Step logs the start of a named step within the operation.
func (ol *OperationLogger) Step(step string) {
	ol.logger.WithField("step", step).Debug("step started")
}

// Success logs completion with elapsed time.
func (ol *OperationLogger) Success(message string) {
	ol.logger.WithField("elapsed", time.Since(ol.started).String()).Info(message)
}

// Failure logs a failed operation with elapsed time.
func (ol *OperationLogger) Failure(err error, message string) {
	ol.logger.
		WithError(err).
		WithField("elapsed", time.Since(ol.started).String()).
		Error(message)
}
