package actuator

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// maxBCMLine is the highest user GPIO on the Raspberry Pi header.
const maxBCMLine = 27

// DefaultSlotMap is the factory wiring: slot number to BCM line.
func DefaultSlotMap() map[int]int {
	return map[int]int{1: 17, 2: 27, 3: 22, 4: 23, 5: 24, 6: 25}
}

type slotMapFile struct {
	Slots map[int]int `yaml:"slots"`
}

// LoadSlotMap reads a YAML file of the form
//
//	slots:
//	  1: 17
//	  2: 27
//
// An empty path returns DefaultSlotMap.
func LoadSlotMap(path string) (map[int]int, error) {
	if path == "" {
		return DefaultSlotMap(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read slot map: %w", err)
	}
	return ParseSlotMap(raw)
}

func ParseSlotMap(raw []byte) (map[int]int, error) {
	var file slotMapFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse slot map: %w", err)
	}
	if len(file.Slots) == 0 {
		return nil, fmt.Errorf("slot map has no slots")
	}
	seen := make(map[int]int, len(file.Slots))
	for slot, pin := range file.Slots {
		if slot <= 0 {
			return nil, fmt.Errorf("slot %d: slot numbers start at 1", slot)
		}
		if pin < 0 || pin > maxBCMLine {
			return nil, fmt.Errorf("slot %d: line %d out of range", slot, pin)
		}
		if other, dup := seen[pin]; dup {
			return nil, fmt.Errorf("line %d assigned to slots %d and %d", pin, other, slot)
		}
		seen[pin] = slot
	}
	return file.Slots, nil
}
