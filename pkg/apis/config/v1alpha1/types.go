package v1alpha1

// Config is the user configuration read from conf.json.
type Config struct {
	Executor Executor `json:"executor" mapstructure:"executor"`
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{Executor: ExecutorVim}
}

// Validate reports whether the configuration names a supported executor.
func (c *Config) Validate() error {
	_, err := ParseExecutor(string(c.Executor))

	return err
}
