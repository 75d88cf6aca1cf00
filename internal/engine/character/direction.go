package character

import (
	gomath "math"
)

// CompassSector maps a heading to one of eight 45° sectors, 0 being +Y and
// increasing counter-clockwise. lastSector (-1 if none) adds hysteresis so a
// heading hovering on a boundary does not flicker between sectors.
func CompassSector(yaw float32, lastSector int) int {
	angle := yaw
	// Normalize to 0-2π
	for angle < 0 {
		angle += 2 * gomath.Pi
	}
	for angle >= 2*gomath.Pi {
		angle -= 2 * gomath.Pi
	}

	sector := int((angle + SectorSize/2) / SectorSize)
	if sector >= 8 {
		sector = 0
	}

	if lastSector >= 0 && lastSector < 8 {
		diff := angle - float32(lastSector)*SectorSize
		// Normalize to -π to π
		for diff > gomath.Pi {
			diff -= 2 * gomath.Pi
		}
		for diff < -gomath.Pi {
			diff += 2 * gomath.Pi
		}
		if diff > -(SectorSize/2+HysteresisAngle) && diff < SectorSize/2+HysteresisAngle {
			sector = lastSector
		}
	}
	return sector
}

// SectorNames labels compass sectors for logs. +Y is north, +X is east.
var SectorNames = [8]string{"N", "NW", "W", "SW", "S", "SE", "E", "NE"}

// HysteresisAngle is the dead zone angle (~11°) to prevent flickering at boundaries.
const HysteresisAngle = float32(gomath.Pi / 16)

// SectorSize is the angular size of each direction sector (45°).
const SectorSize = float32(gomath.Pi / 4)
