package types

type MotorDirection int

const (
	MD_Up   MotorDirection = 1
	MD_Down MotorDirection = -1
)

func (d MotorDirection) String() string {
	switch d {
	case MD_Up:
		return "up"
	case MD_Down:
		return "down"
	}
	return "unknown"
}

type ButtonType int

const (
	BT_HallUp ButtonType = iota
	BT_HallDown
	BT_Cab
)

// ButtonEvent is a parsed button command. Hall buttons carry their direction
// in Button, cab buttons get one only when resolved against the current motion.
type ButtonEvent struct {
	Floor  int
	Button ButtonType
}

// ResolvedCall is a button after cab calls have been given a direction.
type ResolvedCall struct {
	Floor int
	Dir   MotorDirection
}
