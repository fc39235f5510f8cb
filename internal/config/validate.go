package config

func ValidateForRun(cfg *Config) error {
	if cfg.Gateway.BaseURL == "" {
		return ErrGatewayBaseURLMissing
	}
	return cfg.Timer.Validate()
}

func (c *TimerConfig) Validate() error {
	if c.MaxDuration <= 0 {
		return ErrInvalidMaxDuration
	}
	if c.TickInterval <= 0 {
		return ErrInvalidTickInterval
	}
	if len(c.CadenceTable) == 0 {
		return ErrInvalidCadenceTable
	}
	prev := 0
	for i, v := range c.CadenceTable {
		if v <= 0 {
			return ErrInvalidCadenceTable
		}
		if i > 0 && v >= prev {
			return ErrInvalidCadenceTable
		}
		prev = v
	}
	return nil
}
