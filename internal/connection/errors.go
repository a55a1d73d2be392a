package connection

// ConfigError reports a source configuration the run cannot start with.
type ConfigError struct {
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

var ErrHostRequired = &ConfigError{Message: "a docker host must be defined"}
