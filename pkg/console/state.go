package console

// State is the controller's position in the menu loop.
type State int

const (
	MenuWait State = iota
	Generating
	Scanning
	Exited
)

func (s State) String() string {
	switch s {
	case MenuWait:
		return "menu_wait"
	case Generating:
		return "generating"
	case Scanning:
		return "scanning"
	case Exited:
		return "exited"
	default:
		return "unknown"
	}
}
