package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/Surachart01/KMS/internal/platform/config"
)

// applyFlags overlays command-line flags on the environment config. Only
// flags given explicitly win over the environment.
func applyFlags(cfg config.Kiosk, args []string) (config.Kiosk, error) {
	fs := pflag.NewFlagSet("kiosk", pflag.ContinueOnError)
	ui := fs.String("ui", cfg.UI, "kiosk shell: headless or tui")
	level := fs.String("log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	gpio := fs.String("gpio", cfg.Actuator.Mode, "GPIO mode: auto, pinctrl or mock")
	port := fs.Int("adms-port", cfg.Scanner.Port, "port the terminal pushes scans to")
	admin := fs.String("admin-addr", cfg.AdminAddr, "operator HTTP address, empty disables")

	if err := fs.Parse(args); err != nil {
		return config.Kiosk{}, fmt.Errorf("parse flags: %w", err)
	}

	if fs.Changed("ui") {
		cfg.UI = *ui
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = *level
	}
	if fs.Changed("gpio") {
		cfg.Actuator.Mode = *gpio
	}
	if fs.Changed("adms-port") {
		cfg.Scanner.Port = *port
	}
	if fs.Changed("admin-addr") {
		cfg.AdminAddr = *admin
	}
	return cfg, cfg.Validate()
}
