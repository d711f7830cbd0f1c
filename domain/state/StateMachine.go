package state

type Category uint

const (
	InBacklog Category = iota
	InProcess
	Done
	Rejected
)

type State struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Order    int      `json:"order"`
}

type Transition struct {
	Name string `json:"name"`
	From string `json:"from"`
	To   string `json:"to"`
}

// stateless object, just used for state computing
type StateMachine struct {
	States      []State      `json:"states"`
	Transitions []Transition `json:"transitions"`
}

func NewStateMachine(states []State, transitions []Transition) *StateMachine {
	return &StateMachine{States: states, Transitions: transitions}
}

func (sm *StateMachine) FindState(name string) (State, bool) {
	for _, s := range sm.States {
		if s.Name == name {
			return s, true
		}
	}
	return State{}, false
}

func (sm *StateMachine) AvailableTransitions(fromState string, toState string) []Transition {
	r := []Transition{}
	for _, transition := range sm.Transitions {
		if (fromState == "" || fromState == transition.From) && (toState == "" || toState == transition.To) {
			r = append(r, transition)
		}
	}
	return r
}

// Terminal reports whether no transition leaves the named state.
func (sm *StateMachine) Terminal(stateName string) bool {
	return len(sm.AvailableTransitions(stateName, "")) == 0
}
