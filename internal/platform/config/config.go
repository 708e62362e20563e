package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// GPIO modes accepted by GPIO_MODE.
const (
	GPIOModeAuto    = "auto"
	GPIOModePinctrl = "pinctrl"
	GPIOModeMock    = "mock"
)

// UI shells accepted by KIOSK_UI.
const (
	UIHeadless = "headless"
	UITUI      = "tui"
)

// Backend captures the remote REST service the kiosk talks to.
type Backend struct {
	BaseURL string        `env:"API_BASE_URL"    envDefault:"http://localhost:4556/api/hardware"`
	Token   string        `env:"API_TOKEN"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"10s"`
}

// Scanner configures the terminal-facing push listener.
type Scanner struct {
	Port            int    `env:"ADMS_PORT"         envDefault:"8089"`
	TestScanSubject string `env:"TEST_SCAN_SUBJECT" envDefault:"67130500426"`
}

// Actuator configures the slot solenoids.
type Actuator struct {
	Mode           string        `env:"GPIO_MODE"       envDefault:"auto"`
	SlotMapFile    string        `env:"SLOT_MAP_FILE"`
	UnlockDuration time.Duration `env:"UNLOCK_DURATION" envDefault:"5s"`
}

// Kiosk captures process-level configuration.
type Kiosk struct {
	Backend  Backend
	Scanner  Scanner
	Actuator Actuator

	SuccessDisplay time.Duration `env:"SUCCESS_DISPLAY" envDefault:"10s"`
	AdminAddr      string        `env:"ADMIN_ADDR"      envDefault:":9090"`
	UI             string        `env:"KIOSK_UI"        envDefault:"headless"`
	LogLevel       string        `env:"LOG_LEVEL"       envDefault:"info"`
	LogFormat      string        `env:"LOG_FORMAT"      envDefault:"text"`
}

// FromEnv builds a Kiosk config from environment variables so main stays lean.
func FromEnv() (Kiosk, error) {
	var cfg Kiosk
	if err := env.Parse(&cfg); err != nil {
		return Kiosk{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects values the kiosk cannot run with.
func (c Kiosk) Validate() error {
	if c.Scanner.Port < 0 || c.Scanner.Port > 65535 {
		return fmt.Errorf("ADMS_PORT out of range: %d", c.Scanner.Port)
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("BACKEND_TIMEOUT must be positive")
	}
	if c.Actuator.UnlockDuration <= 0 {
		return fmt.Errorf("UNLOCK_DURATION must be positive")
	}
	if c.SuccessDisplay <= 0 {
		return fmt.Errorf("SUCCESS_DISPLAY must be positive")
	}
	switch strings.ToLower(c.Actuator.Mode) {
	case GPIOModeAuto, GPIOModePinctrl, GPIOModeMock:
	default:
		return fmt.Errorf("unknown GPIO_MODE %q", c.Actuator.Mode)
	}
	switch strings.ToLower(c.UI) {
	case UIHeadless, UITUI:
	default:
		return fmt.Errorf("unknown KIOSK_UI %q", c.UI)
	}
	return nil
}
