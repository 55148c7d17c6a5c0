package logger

import "go.uber.org/fx"

// Module provides the application slog.Logger.
var Module = fx.Provide(New)
