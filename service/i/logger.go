package i

// Logger is the minimal leveled logger handed to services and adapters.
type Logger interface {
	Info(string)
	Warning(string)
	Error(string)
}
