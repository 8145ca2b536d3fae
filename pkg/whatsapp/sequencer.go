package whatsapp

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/entrhq/wasend/pkg/browser"
	"github.com/entrhq/wasend/pkg/keyboard"
)

// State is a point in the send sequence.
type State int

const (
	StateIdle State = iota
	StateNavigated
	StateMenuOpened
	StateAttached
	StatePathPasted
	StateCaptionWritten
	StateSubmitted
	StateSettled
)

var stateNames = [...]string{
	StateIdle:           "idle",
	StateNavigated:      "navigated",
	StateMenuOpened:     "menu_opened",
	StateAttached:       "attached",
	StatePathPasted:     "path_pasted",
	StateCaptionWritten: "caption_written",
	StateSubmitted:      "submitted",
	StateSettled:        "settled",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// settleExtra is added to the step delay after submitting.
const settleExtra = 2 * time.Second

// step is one transition of the sequence.
type step struct {
	name    string
	reaches State
	run     func() error
}

// sequencer performs one send. A new sequencer starts at StateIdle for
// every send.
type sequencer struct {
	page      Page
	selectors Selectors
	keyboard  keyboard.Injector
	logger    Logger
	sleep     func(time.Duration)
	stepDelay time.Duration
	loginWait time.Duration

	state State
	trace []State
}

func (s *sequencer) run(steps []step) error {
	s.state = StateIdle
	s.trace = append(s.trace[:0], StateIdle)

	for _, st := range steps {
		s.logger.Debugf("step %s (from %s)", st.name, s.state)
		if err := st.run(); err != nil {
			s.logger.Errorf("step %s failed after %s: %v", st.name, s.state, err)
			return &StepError{State: s.state, Step: st.name, Err: err}
		}
		s.state = st.reaches
		s.trace = append(s.trace, st.reaches)
	}
	return nil
}

func (s *sequencer) navigateStep(target string) step {
	return step{name: "navigate", reaches: StateNavigated, run: func() error {
		if err := s.page.Navigate(target); err != nil {
			return err
		}
		return s.loginGate()
	}}
}

// loginGate waits once for an out-of-band QR scan when the login screen is
// shown, then checks again.
func (s *sequencer) loginGate() error {
	present, err := s.loginRequired()
	if err != nil || !present {
		return err
	}

	s.logger.Warnf("login required, waiting %s for QR code scan", s.loginWait)
	s.sleep(s.loginWait)

	present, err = s.loginRequired()
	if err != nil {
		return err
	}
	if present {
		return ErrFailedLogin
	}
	s.logger.Infof("login completed")
	return nil
}

func (s *sequencer) loginRequired() (bool, error) {
	els, err := s.page.FindByClass(s.selectors[SelectorLoginMarker].Class)
	if err != nil {
		return false, fmt.Errorf("login check failed: %w", err)
	}
	return len(els) > 0, nil
}

func (s *sequencer) lookup(name string) (browser.Element, error) {
	sel := s.selectors[name]
	els, err := s.page.FindByClass(sel.Class)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", name, err)
	}
	if sel.Index >= len(els) {
		return nil, fmt.Errorf("%w: %s (%d of %d matches)", ErrElementNotFound, name, sel.Index+1, len(els))
	}
	return els[sel.Index], nil
}

func (s *sequencer) clickStep(name string, reaches State) step {
	return step{name: "click " + name, reaches: reaches, run: func() error {
		el, err := s.lookup(name)
		if err != nil {
			return err
		}
		return el.Click()
	}}
}

func (s *sequencer) fillStep(name, text string, reaches State) step {
	return step{name: "fill " + name, reaches: reaches, run: func() error {
		el, err := s.lookup(name)
		if err != nil {
			return err
		}
		return el.Fill(text)
	}}
}

// pasteStep types the absolute path into the native file dialog and
// confirms it.
func (s *sequencer) pasteStep(path string) step {
	return step{name: "paste path", reaches: StatePathPasted, run: func() error {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("resolve path: %w", err)
		}
		s.sleep(s.stepDelay)
		if err := s.keyboard.Type(abs); err != nil {
			return err
		}
		s.sleep(s.stepDelay)
		return s.keyboard.Press(keyboard.KeyEnter)
	}}
}

func (s *sequencer) settleStep() step {
	return step{name: "settle", reaches: StateSettled, run: func() error {
		s.sleep(s.stepDelay + settleExtra)
		return nil
	}}
}

func (s *sequencer) textPlan(target, message string) []step {
	return []step{
		s.navigateStep(target),
		s.fillStep(SelectorTextBox, message, StateNavigated),
		s.clickStep(SelectorSendText, StateSubmitted),
		s.settleStep(),
	}
}

func (s *sequencer) imagePlan(target, path, caption string) []step {
	steps := []step{
		s.navigateStep(target),
		s.clickStep(SelectorAttachMenu, StateMenuOpened),
		s.clickStep(SelectorAttachMedia, StateAttached),
		s.pasteStep(path),
	}
	if caption != "" {
		steps = append(steps, s.fillStep(SelectorCaptionBox, caption, StateCaptionWritten))
	}
	return append(steps,
		s.clickStep(SelectorSendFile, StateSubmitted),
		s.settleStep(),
	)
}

func (s *sequencer) audioPlan(target, path string) []step {
	return []step{
		s.navigateStep(target),
		s.clickStep(SelectorAttachMenu, StateMenuOpened),
		s.clickStep(SelectorAttachDocument, StateAttached),
		s.pasteStep(path),
		s.clickStep(SelectorSendFile, StateSubmitted),
		s.settleStep(),
	}
}
