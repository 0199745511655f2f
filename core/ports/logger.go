package ports

// Logger is the diagnostics channel pair of the build tool: Command is
// the command-echo stream, the rest is the warning/error/debug stream.
//
//go:generate go run go.uber.org/mock/mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(err error)

	// Command echoes a recipe's command line.
	Command(cmd string)

	// SetDebug raises or restores the diagnostics verbosity.
	SetDebug(on bool)
}
