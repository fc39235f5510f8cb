package config

import (
	"testing"
	"time"
)

func validTimerConfig() *TimerConfig {
	return &TimerConfig{
		MaxDuration:   24 * time.Hour,
		TickInterval:  50 * time.Millisecond,
		CadenceTable:  []int{3600, 1800, 600, 300, 60, 30, 10, 5},
		CommandPrefix: "!",
	}
}

func TestTimerConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*TimerConfig)
		wantErr error
	}{
		{
			name:    "defaults are valid",
			mutate:  func(*TimerConfig) {},
			wantErr: nil,
		},
		{
			name:    "zero max duration",
			mutate:  func(c *TimerConfig) { c.MaxDuration = 0 },
			wantErr: ErrInvalidMaxDuration,
		},
		{
			name:    "zero tick interval",
			mutate:  func(c *TimerConfig) { c.TickInterval = 0 },
			wantErr: ErrInvalidTickInterval,
		},
		{
			name:    "empty cadence table",
			mutate:  func(c *TimerConfig) { c.CadenceTable = nil },
			wantErr: ErrInvalidCadenceTable,
		},
		{
			name:    "non-positive cadence entry",
			mutate:  func(c *TimerConfig) { c.CadenceTable = []int{60, 0} },
			wantErr: ErrInvalidCadenceTable,
		},
		{
			name:    "ascending cadence table",
			mutate:  func(c *TimerConfig) { c.CadenceTable = []int{5, 10, 30} },
			wantErr: ErrInvalidCadenceTable,
		},
		{
			name:    "duplicate cadence entries",
			mutate:  func(c *TimerConfig) { c.CadenceTable = []int{60, 60} },
			wantErr: ErrInvalidCadenceTable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTimerConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err != tt.wantErr {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateForRun_RequiresGatewayURL(t *testing.T) {
	cfg := &Config{
		Gateway: &GatewayConfig{},
		Timer:   validTimerConfig(),
	}
	if err := ValidateForRun(cfg); err != ErrGatewayBaseURLMissing {
		t.Errorf("got %v, want %v", err, ErrGatewayBaseURLMissing)
	}

	cfg.Gateway.BaseURL = "http://localhost:9000"
	if err := ValidateForRun(cfg); err != nil {
		t.Errorf("got %v, want nil", err)
	}
}
