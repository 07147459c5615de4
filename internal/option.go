package internal

import "io"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config   *Config
	keywords []string // nil means prompt on input
	in       io.Reader
	out      io.Writer
	logOut   io.Writer
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithKeywords supplies the keyword list instead of prompting for it.
func WithKeywords(kws []string) Option {
	return func(a *application) {
		a.keywords = kws
	}
}

// WithInput sets the reader the keyword prompt reads from.
func WithInput(r io.Reader) Option {
	return func(a *application) {
		a.in = r
	}
}

// WithOutput sets the writer reports are printed to.
func WithOutput(w io.Writer) Option {
	return func(a *application) {
		a.out = w
	}
}

// WithLogOutput sets the writer structured logs go to.
func WithLogOutput(w io.Writer) Option {
	return func(a *application) {
		a.logOut = w
	}
}
