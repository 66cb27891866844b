package cli

import "fmt"

// ConfigError reports a configuration the engine cannot start with. Source
// names the offending file or field path when known.
type ConfigError struct {
	Source  string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Source == "" {
		return "configuration invalid: " + e.Message
	}
	return fmt.Sprintf("configuration invalid (%s): %s", e.Source, e.Message)
}

// NewConfigError creates a ConfigError for the given source.
func NewConfigError(source, message string) *ConfigError {
	return &ConfigError{
		Source:  source,
		Message: message,
	}
}

// CommandError wraps a failure from one of the telepace subcommands so the
// failing command is named in the output.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("telepace %s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError wraps err with the name of the failing command.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}
