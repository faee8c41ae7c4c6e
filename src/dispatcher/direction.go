package dispatcher

import "nextstop/src/types"

func OppositeDirection(dir types.MotorDirection) types.MotorDirection {
	if dir == types.MD_Up {
		return types.MD_Down
	}
	return types.MD_Up
}

// IsApproaching reports whether travelling in dir from currentFloor passes targetFloor.
// The current floor itself is never approached.
func IsApproaching(targetFloor, currentFloor int, dir types.MotorDirection) bool {
	return (currentFloor < targetFloor && dir == types.MD_Up) ||
		(targetFloor < currentFloor && dir == types.MD_Down)
}
