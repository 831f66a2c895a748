package view

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// flashDelay matches the transient success indicator timing of the web UI.
const flashDelay = 1500 * time.Millisecond

// Surface is the terminal stand-in for the page DOM: a registry of named
// sections of which exactly the active one is visible. Every mutation
// repaints the visible subtree to the writer.
//
// Lookups are existence-checked: Section returns nil for an unknown id and
// callers skip the write, so a stale in-flight fetch that completes after
// navigation never crashes anything.
type Surface struct {
	mu       sync.Mutex
	out      io.Writer
	title    string
	header   string
	sections map[string]*Section
	order    []string
}

// Section is one contiguous UI region: rendered content, an inline error
// line, a transient success flash, and the input fields of its form.
type Section struct {
	id      string
	surface *Surface

	visible bool
	content string
	errText string
	flash   string
	busy    bool

	fields     map[string]string
	flashTimer *time.Timer
}

func NewSurface(out io.Writer) *Surface {
	if out == nil {
		out = io.Discard
	}
	return &Surface{
		out:      out,
		sections: make(map[string]*Section),
	}
}

// Register creates (or returns) the section for id.
func (s *Surface) Register(id string) *Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sec, ok := s.sections[id]; ok {
		return sec
	}
	sec := &Section{id: id, surface: s, fields: make(map[string]string)}
	s.sections[id] = sec
	s.order = append(s.order, id)
	return sec
}

// Section returns the region for id, nil when it does not exist.
func (s *Surface) Section(id string) *Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sections[id]
}

// ShowOnly hides every section, then shows the one matching id. An unknown
// id leaves everything hidden rather than failing, which tolerates
// partially-migrated views.
func (s *Surface) ShowOnly(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sec := range s.sections {
		sec.visible = false
	}
	if sec, ok := s.sections[id]; ok {
		sec.visible = true
	}
	s.repaintLocked()
}

func (s *Surface) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title = title
	s.repaintLocked()
}

// SetHeader sets the sidebar user line ("doc1 / doctor").
func (s *Surface) SetHeader(header string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.header = header
	s.repaintLocked()
}

func (s *Surface) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title
}

// VisibleSections lists the ids currently shown, in registration order.
func (s *Surface) VisibleSections() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var visible []string
	for _, id := range s.order {
		if s.sections[id].visible {
			visible = append(visible, id)
		}
	}
	return visible
}

func (s *Surface) repaintLocked() {
	fmt.Fprint(s.out, "\n")
	if s.header != "" {
		fmt.Fprintf(s.out, "[%s]\n", s.header)
	}
	if s.title != "" {
		fmt.Fprintf(s.out, "== %s ==\n", s.title)
	}
	for _, id := range s.order {
		sec := s.sections[id]
		if !sec.visible {
			continue
		}
		if sec.flash != "" {
			fmt.Fprintf(s.out, "* %s\n", sec.flash)
		}
		if sec.errText != "" {
			fmt.Fprintf(s.out, "! %s\n", sec.errText)
		}
		if sec.content != "" {
			fmt.Fprintln(s.out, sec.content)
		}
	}
}

// SetContent replaces the section body and clears any previous error.
func (sec *Section) SetContent(content string) {
	sec.surface.mu.Lock()
	defer sec.surface.mu.Unlock()
	sec.content = content
	sec.errText = ""
	sec.surface.repaintLocked()
}

func (sec *Section) Content() string {
	sec.surface.mu.Lock()
	defer sec.surface.mu.Unlock()
	return sec.content
}

// SetError shows an inline error for the section, leaving content alone.
func (sec *Section) SetError(msg string) {
	sec.surface.mu.Lock()
	defer sec.surface.mu.Unlock()
	sec.errText = msg
	sec.surface.repaintLocked()
}

func (sec *Section) ErrorText() string {
	sec.surface.mu.Lock()
	defer sec.surface.mu.Unlock()
	return sec.errText
}

// Flash shows a transient success indicator that clears itself after the
// fixed delay.
func (sec *Section) Flash(msg string) {
	sec.surface.mu.Lock()
	defer sec.surface.mu.Unlock()
	sec.flash = msg
	sec.errText = ""
	if sec.flashTimer != nil {
		sec.flashTimer.Stop()
	}
	sec.flashTimer = time.AfterFunc(flashDelay, func() {
		sec.surface.mu.Lock()
		defer sec.surface.mu.Unlock()
		sec.flash = ""
		sec.surface.repaintLocked()
	})
	sec.surface.repaintLocked()
}

func (sec *Section) FlashText() string {
	sec.surface.mu.Lock()
	defer sec.surface.mu.Unlock()
	return sec.flash
}

func (sec *Section) Visible() bool {
	sec.surface.mu.Lock()
	defer sec.surface.mu.Unlock()
	return sec.visible
}

// SetField records a form input value for the section.
func (sec *Section) SetField(name, value string) {
	sec.surface.mu.Lock()
	defer sec.surface.mu.Unlock()
	sec.fields[name] = value
}

func (sec *Section) Field(name string) string {
	sec.surface.mu.Lock()
	defer sec.surface.mu.Unlock()
	return sec.fields[name]
}

// ResetFields clears the named inputs after a successful submit. With no
// arguments every field is cleared.
func (sec *Section) ResetFields(names ...string) {
	sec.surface.mu.Lock()
	defer sec.surface.mu.Unlock()
	if len(names) == 0 {
		for name := range sec.fields {
			delete(sec.fields, name)
		}
		return
	}
	for _, name := range names {
		delete(sec.fields, name)
	}
}

// SetBusy disables/enables the section's submit control (uploads in flight).
func (sec *Section) SetBusy(busy bool) {
	sec.surface.mu.Lock()
	defer sec.surface.mu.Unlock()
	sec.busy = busy
}

func (sec *Section) Busy() bool {
	sec.surface.mu.Lock()
	defer sec.surface.mu.Unlock()
	return sec.busy
}
