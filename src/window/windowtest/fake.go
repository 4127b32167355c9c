// Package windowtest provides an in-memory window.System for tests.
package windowtest

import (
	"errors"

	"host-overlay/src/window"
)

// System is a scriptable window.System. Windows are registered by target;
// the Fail* fields make individual styling steps fail.
type System struct {
	Windows map[window.Target]window.Handle
	Styles  map[window.Handle]uint32
	Gone    map[window.Handle]bool

	FailStyleRead   bool
	FailStyleWrite  bool
	FailAlpha       bool
	FailExtendFrame bool
	FailTopmost     bool

	Alpha           map[window.Handle]uint8
	Margins         map[window.Handle]window.Margins
	Topmost         map[window.Handle]bool
	FindCalls       []window.Target
	StyleWriteCalls int
}

// New returns a System with the given windows present, each with style 0x100.
func New(wins map[window.Target]window.Handle) *System {
	s := &System{
		Windows: map[window.Target]window.Handle{},
		Styles:  map[window.Handle]uint32{},
		Gone:    map[window.Handle]bool{},
		Alpha:   map[window.Handle]uint8{},
		Margins: map[window.Handle]window.Margins{},
		Topmost: map[window.Handle]bool{},
	}
	for t, h := range wins {
		s.Windows[t] = h
		s.Styles[h] = 0x100
	}
	return s
}

func (s *System) FindWindow(class, title string) window.Handle {
	t := window.Target{Class: class, Title: title}
	s.FindCalls = append(s.FindCalls, t)
	return s.Windows[t]
}

func (s *System) IsWindow(h window.Handle) bool {
	if s.Gone[h] {
		return false
	}
	for _, w := range s.Windows {
		if w == h {
			return true
		}
	}
	return false
}

func (s *System) ExStyle(h window.Handle) uint32 {
	if s.FailStyleRead {
		return 0
	}
	return s.Styles[h]
}

func (s *System) SetExStyle(h window.Handle, style uint32) uint32 {
	s.StyleWriteCalls++
	if s.FailStyleWrite {
		return 0
	}
	prev := s.Styles[h]
	s.Styles[h] = style
	return prev
}

func (s *System) SetLayeredAlpha(h window.Handle, alpha uint8) error {
	if s.FailAlpha {
		return errors.New("access denied")
	}
	s.Alpha[h] = alpha
	return nil
}

func (s *System) ExtendFrame(h window.Handle, m window.Margins) error {
	if s.FailExtendFrame {
		return errors.New("composition disabled")
	}
	s.Margins[h] = m
	return nil
}

func (s *System) SetTopmost(h window.Handle) error {
	if s.FailTopmost {
		return errors.New("access denied")
	}
	s.Topmost[h] = true
	return nil
}
