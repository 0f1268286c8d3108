package tracker

// PersistFunc stores a change before it becomes visible. next is the state
// that will be current if it returns nil.
type PersistFunc func(next *State, c Change, settled []Settlement) error

// Session is the day editor: the current snapshot, the selected date and
// its working state. It is not safe for concurrent use.
type Session struct {
	engine   *Engine
	state    *State
	selected string
	mode     Mode

	Working Working
}

func NewSession(engine *Engine, state *State) *Session {
	return &Session{engine: engine, state: state}
}

func (s *Session) Engine() *Engine    { return s.engine }
func (s *Session) State() *State      { return s.state }
func (s *Session) Selected() string   { return s.selected }
func (s *Session) Mode() Mode         { return s.mode }
func (s *Session) Reset(state *State) { s.state = state; s.Clear() }

// Select opens date, deriving its mode and seeding the working state.
func (s *Session) Select(date string) Mode {
	s.selected = date
	s.mode = DeriveMode(s.state, date)
	s.Working = Seed(s.state, date)
	return s.mode
}

// Edit switches a viewed date into edit mode.
func (s *Session) Edit() error {
	if s.mode != ModeView {
		return ErrNotViewing
	}
	s.mode = ModeEdit
	return nil
}

func (s *Session) Clear() {
	s.selected = ""
	s.mode = ""
	s.Working = Working{}
}

func (s *Session) SaveGoal() (Change, error) {
	return s.engine.SaveGoal(s.state, s.selected, s.Working.Goal)
}

func (s *Session) Complete(outcome bool) (Change, error) {
	return s.engine.Complete(s.state, s.selected, outcome, s.Working)
}

func (s *Session) DeleteGoal(confirmed bool) (Change, error) {
	return s.engine.DeleteGoal(s.state, s.selected, confirmed)
}

func (s *Session) DeleteRecord(confirmed bool) (Change, error) {
	return s.engine.DeleteRecord(s.state, s.selected, confirmed)
}

// Commit applies c, hands the result to persist and only then makes it the
// current state and clears the selection. On error nothing changes.
func (s *Session) Commit(c Change, persist PersistFunc) ([]Settlement, error) {
	next, settled := s.state.Apply(c)
	if persist != nil {
		if err := persist(next, c, settled); err != nil {
			return nil, err
		}
	}
	s.state = next
	s.Clear()
	return settled, nil
}
