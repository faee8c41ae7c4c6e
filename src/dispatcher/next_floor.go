package dispatcher

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"nextstop/src/types"
)

var ErrInvalidDispatchState = errors.New("invalid dispatch state")

// NextFloor parses the pressed buttons and returns the next floor to stop at.
// See NextStop.
func NextFloor(currentFloor int, dir types.MotorDirection, buttonsPressed []string) (int, error) {
	btns, err := ParseButtonCommands(buttonsPressed)
	if err != nil {
		return currentFloor, err
	}
	return NextStop(currentFloor, dir, btns)
}

// NextStop returns the next floor the elevator stops at.
//  1. With no buttons pressed the elevator is not moving, and stays at currentFloor.
//  2. Only calls ahead of the elevator are considered. Calls at or behind currentFloor wait for a later sweep.
//  3. If a call ahead goes in the travel direction, stop at the nearest one.
//  4. Otherwise travel to the furthest call ahead, where the elevator turns around.
//
// If no call lies ahead, moving in dir is unjustified and ErrInvalidDispatchState is returned.
func NextStop(currentFloor int, dir types.MotorDirection, btns []types.ButtonEvent) (int, error) {
	if len(btns) == 0 {
		return currentFloor, nil
	}

	var sameDir, afterTurnaround []int
	for _, btn := range btns {
		call := Resolve(btn, currentFloor, dir)
		if !IsApproaching(call.Floor, currentFloor, dir) {
			continue
		}
		if call.Dir == dir {
			sameDir = append(sameDir, call.Floor)
		} else {
			afterTurnaround = append(afterTurnaround, call.Floor)
		}
	}

	switch {
	case len(sameDir) > 0:
		next := slices.Min(sameDir)
		if dir == types.MD_Down {
			next = slices.Max(sameDir)
		}
		slog.Debug("Next stop in travel direction", "floor", currentFloor, "dir", dir, "next", next)
		return next, nil
	case len(afterTurnaround) > 0:
		next := slices.Max(afterTurnaround)
		if dir == types.MD_Down {
			next = slices.Min(afterTurnaround)
		}
		slog.Debug("Next stop is turnaround", "floor", currentFloor, "dir", dir, "next", next)
		return next, nil
	}
	return currentFloor, fmt.Errorf("%w: cannot be moving %s with buttons %s",
		ErrInvalidDispatchState, dir, formatButtons(btns))
}

func formatButtons(btns []types.ButtonEvent) []string {
	out := make([]string, len(btns))
	for i, btn := range btns {
		out[i] = FormatButton(btn)
	}
	return out
}
