package stash

// Align is a set of text alignment flags: one horizontal and one vertical.
type Align uint8

// Horizontal alignment.
const (
	AlignLeft Align = 1 << iota
	AlignCenter
	AlignRight
	// Vertical alignment.
	AlignTop
	AlignMiddle
	AlignBottom
	AlignBaseline
)

const maxStates = 20

// State is the current text style.
type State struct {
	Font    int
	Align   Align
	Size    float32
	Blur    float32
	Spacing float32
}

func defaultState() State {
	return State{Font: 0, Align: AlignLeft | AlignBaseline, Size: 12}
}

func (s *Stash) state() *State { return &s.states[s.nstates-1] }

// State returns a copy of the current text style.
func (s *Stash) State() State { return *s.state() }

// PushState saves the current style; the new top starts as a copy.
func (s *Stash) PushState() error {
	if s.nstates >= maxStates {
		return ErrStateOverflow
	}
	s.states[s.nstates] = s.states[s.nstates-1]
	s.nstates++
	return nil
}

// PopState restores the style saved by the matching PushState.
func (s *Stash) PopState() error {
	if s.nstates <= 1 {
		return ErrStateUnderflow
	}
	s.nstates--
	return nil
}

// ClearState resets the current style to the defaults.
func (s *Stash) ClearState() { *s.state() = defaultState() }

// SetFont selects the font used by subsequent text calls.
func (s *Stash) SetFont(handle int) { s.state().Font = handle }

// SetSize sets the font size in pixels.
func (s *Stash) SetSize(size float32) { s.state().Size = size }

// SetBlur sets the blur radius; values above MaxBlur are clamped.
func (s *Stash) SetBlur(blur float32) { s.state().Blur = blur }

// SetSpacing sets extra letter spacing in pixels.
func (s *Stash) SetSpacing(spacing float32) { s.state().Spacing = spacing }

// SetAlign sets the alignment flags.
func (s *Stash) SetAlign(align Align) { s.state().Align = align }
