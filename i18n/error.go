package i18n

// Error is a user facing error carrying a localized message
type Error struct {
	Key     string
	Message string
	kind    error
	cause   error
}

// Error returns localized message
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the error kind and the underlying cause
func (e *Error) Unwrap() []error {
	var ret []error
	if e.kind != nil {
		ret = append(ret, e.kind)
	}
	if e.cause != nil {
		ret = append(ret, e.cause)
	}
	return ret
}

// NewError creates a localized error for key; kind is a sentinel matched by errors.Is
func (p *Printer) NewError(key string, kind, cause error) *Error {
	return &Error{Key: key, Message: p.Text(key), kind: kind, cause: cause}
}
