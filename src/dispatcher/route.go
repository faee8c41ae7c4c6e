package dispatcher

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/tiendc/go-deepcopy"

	"nextstop/src/config"
	"nextstop/src/types"
)

// Route simulates serving every pressed button and returns the floors stopped
// at, in order. It works on a copy, btns is left untouched.
//   - at each stop, cab calls and hall calls in the travel direction are cleared
//   - when nothing lies ahead, the direction is reversed and hall calls at the floor in the new direction are cleared
//   - calls at the starting floor count as passed, and are served on the way back
func Route(currentFloor int, dir types.MotorDirection, btns []types.ButtonEvent) ([]int, error) {
	var pending []types.ButtonEvent
	if err := deepcopy.Copy(&pending, &btns); err != nil {
		return nil, fmt.Errorf("copy buttons: %w", err)
	}

	var stops []int
	stopHere := func(floor int) {
		if len(stops) == 0 || stops[len(stops)-1] != floor {
			stops = append(stops, floor)
		}
	}

	floor := currentFloor
	for len(pending) > 0 {
		if len(stops) > 0 {
			pending, _ = clearAtFloor(pending, floor, dir)
			if len(pending) == 0 {
				break
			}
		}

		if !callsAhead(pending, floor, dir) {
			dir = OppositeDirection(dir)
			var served bool
			if pending, served = clearAtFloor(pending, floor, dir); served {
				stopHere(floor)
			}
			if len(pending) == 0 {
				break
			}
			if !callsAhead(pending, floor, dir) {
				// Everything left is at this floor
				slog.Debug("Serving remaining calls at current floor", "floor", floor, "calls", formatButtons(pending))
				stopHere(floor)
				break
			}
		}

		next, err := NextStop(floor, dir, pending)
		if err != nil {
			return stops, err
		}
		stops = append(stops, next)
		floor = next
	}
	slog.Debug("Planned route", "from", currentFloor, "stops", stops)
	return stops, nil
}

// EstimateDuration is the time to visit stops in order, starting at currentFloor.
func EstimateDuration(currentFloor int, stops []int) time.Duration {
	var duration time.Duration
	for _, stop := range stops {
		duration += time.Duration(stop-currentFloor).Abs() * config.TravelDuration
		duration += config.DoorOpenDuration
		currentFloor = stop
	}
	return duration
}

func callsAhead(btns []types.ButtonEvent, floor int, dir types.MotorDirection) bool {
	for _, btn := range btns {
		if IsApproaching(btn.Floor, floor, dir) {
			return true
		}
	}
	return false
}

// clearAtFloor removes the calls at floor that are served when leaving in dir,
// and reports whether any were removed.
func clearAtFloor(btns []types.ButtonEvent, floor int, dir types.MotorDirection) ([]types.ButtonEvent, bool) {
	kept := btns[:0]
	for _, btn := range btns {
		served := btn.Floor == floor &&
			(btn.Button == types.BT_Cab ||
				(btn.Button == types.BT_HallUp && dir == types.MD_Up) ||
				(btn.Button == types.BT_HallDown && dir == types.MD_Down))
		if !served {
			kept = append(kept, btn)
		}
	}
	return kept, len(kept) < len(btns)
}
