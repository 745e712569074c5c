package temporal

import (
	"context"

	"go.temporal.io/sdk/log"

	"github.com/postiz/searchattrs/runtime/telemetry"
)

// sdkLogger adapts a telemetry.Logger to the Temporal SDK log.Logger so SDK
// diagnostics share the application log format.
type sdkLogger struct {
	ctx    context.Context
	logger telemetry.Logger
}

// NewSDKLogger returns a Temporal SDK logger writing through l. ctx carries
// the log settings (format, debug) used by context-aware loggers such as Clue.
func NewSDKLogger(ctx context.Context, l telemetry.Logger) log.Logger {
	return &sdkLogger{ctx: ctx, logger: l}
}

func (s *sdkLogger) Debug(msg string, keyvals ...any) {
	s.logger.Debug(s.ctx, msg, keyvals...)
}

func (s *sdkLogger) Info(msg string, keyvals ...any) {
	s.logger.Info(s.ctx, msg, keyvals...)
}

func (s *sdkLogger) Warn(msg string, keyvals ...any) {
	s.logger.Warn(s.ctx, msg, keyvals...)
}

func (s *sdkLogger) Error(msg string, keyvals ...any) {
	s.logger.Error(s.ctx, msg, keyvals...)
}
