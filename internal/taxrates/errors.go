package taxrates

import "fmt"

// ConfigurationError reports a rate table that cannot be served: a missing
// key, a value out of range, or an unreadable source. It is fatal at startup.
type ConfigurationError struct {
	Key    string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := "tax rate configuration"
	if e.Key != "" {
		msg += ": " + e.Key
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func missing(key string) *ConfigurationError {
	return &ConfigurationError{Key: key, Reason: "required constant is missing"}
}
