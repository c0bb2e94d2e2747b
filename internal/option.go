package internal

import "io"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config
	stdin  io.Reader
	stdout io.Writer
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithStdin overrides the input stream the interactive shell reads from.
func WithStdin(r io.Reader) Option {
	return func(a *application) {
		a.stdin = r
	}
}

// WithStdout overrides the output stream the interactive shell writes to.
func WithStdout(w io.Writer) Option {
	return func(a *application) {
		a.stdout = w
	}
}
