package core

// Logger logs messages and reports errors.
// args may hold errors, maps of extra data and the request's Person.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// Person identifies the caller of a request in error reports.
type Person struct {
	ID       string
	Username string
	Email    string
}
