package dispatcher

import (
	"errors"
	"fmt"
	"strconv"

	"nextstop/src/types"
)

var ErrMalformedCommand = errors.New("malformed button command")

// ParseButtonCommand parses "<floor><mode>" where mode is U (hall up),
// D (hall down) or I (inside the cab), e.g. "5U" or "9I".
func ParseButtonCommand(command string) (types.ButtonEvent, error) {
	if len(command) < 2 {
		return types.ButtonEvent{}, fmt.Errorf("%w: %q", ErrMalformedCommand, command)
	}

	var btn types.ButtonType
	switch command[len(command)-1] {
	case 'U':
		btn = types.BT_HallUp
	case 'D':
		btn = types.BT_HallDown
	case 'I':
		btn = types.BT_Cab
	default:
		return types.ButtonEvent{}, fmt.Errorf("%w: %q has no U, D or I suffix", ErrMalformedCommand, command)
	}

	floor, err := strconv.Atoi(command[:len(command)-1])
	if err != nil {
		return types.ButtonEvent{}, fmt.Errorf("%w: %q has no integer floor", ErrMalformedCommand, command)
	}
	return types.ButtonEvent{Floor: floor, Button: btn}, nil
}

// ParseButtonCommands parses every command, failing on the first bad one.
func ParseButtonCommands(commands []string) ([]types.ButtonEvent, error) {
	btns := make([]types.ButtonEvent, 0, len(commands))
	for _, command := range commands {
		btn, err := ParseButtonCommand(command)
		if err != nil {
			return nil, err
		}
		btns = append(btns, btn)
	}
	return btns, nil
}

// Resolve gives a button a direction. Hall buttons keep their own. A cab call
// extends the current trip if the elevator is heading towards it, otherwise it
// is served after turning around.
func Resolve(btn types.ButtonEvent, currentFloor int, dir types.MotorDirection) types.ResolvedCall {
	switch btn.Button {
	case types.BT_HallUp:
		return types.ResolvedCall{Floor: btn.Floor, Dir: types.MD_Up}
	case types.BT_HallDown:
		return types.ResolvedCall{Floor: btn.Floor, Dir: types.MD_Down}
	}
	if IsApproaching(btn.Floor, currentFloor, dir) {
		return types.ResolvedCall{Floor: btn.Floor, Dir: dir}
	}
	return types.ResolvedCall{Floor: btn.Floor, Dir: OppositeDirection(dir)}
}

// ResolveButtonCommand parses a command and resolves it against the current motion.
func ResolveButtonCommand(command string, currentFloor int, dir types.MotorDirection) (types.ResolvedCall, error) {
	btn, err := ParseButtonCommand(command)
	if err != nil {
		return types.ResolvedCall{}, err
	}
	return Resolve(btn, currentFloor, dir), nil
}

// FormatButton is the inverse of ParseButtonCommand.
func FormatButton(btn types.ButtonEvent) string {
	switch btn.Button {
	case types.BT_HallUp:
		return fmt.Sprintf("%dU", btn.Floor)
	case types.BT_HallDown:
		return fmt.Sprintf("%dD", btn.Floor)
	case types.BT_Cab:
		return fmt.Sprintf("%dI", btn.Floor)
	}
	return "Unknown"
}
