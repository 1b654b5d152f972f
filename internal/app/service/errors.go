package service

// ActionError is a failed user action carrying the message to show the user.
// Err holds the cause and matches domain sentinel errors with errors.Is.
type ActionError struct {
	Message string
	Err     error
}

func (e *ActionError) Error() string {
	return e.Message
}

func (e *ActionError) Unwrap() error {
	return e.Err
}
