package typing

import "fmt"

// Mode is the sequencer's position in its type/pause/delete cycle.
type Mode int

const (
	Idle Mode = iota
	Typing
	Pausing
	Deleting
	Done
)

var modeNames = [...]string{
	Idle:     "idle",
	Typing:   "typing",
	Pausing:  "pausing",
	Deleting: "deleting",
	Done:     "done",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// MarshalText renders the mode by name so frames read well as JSON.
func (m Mode) MarshalText() ([]byte, error) {
	if m < 0 || int(m) >= len(modeNames) {
		return nil, fmt.Errorf("typing: unknown mode %d", int(m))
	}
	return []byte(modeNames[m]), nil
}

// UnmarshalText parses a mode name.
func (m *Mode) UnmarshalText(b []byte) error {
	for i, name := range modeNames {
		if name == string(b) {
			*m = Mode(i)
			return nil
		}
	}
	return fmt.Errorf("typing: unknown mode %q", string(b))
}
