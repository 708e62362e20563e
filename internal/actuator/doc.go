// Package actuator drives the solenoid lines that hold each key slot shut.
//
// A Driver maps logical slot numbers to BCM GPIO lines. Unlock raises a line
// and returns immediately; a timer on the injected clock drops it again after
// the requested duration. Output is pluggable: Pinctrl shells out to the
// Raspberry Pi 5 pinctrl tool, Mock only logs and records levels.
package actuator
