// Package hotkey watches global keyboard events for a key combination.
package hotkey

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"
	gohook "github.com/robotn/gohook"

	"host-overlay/src/logutil"
)

var (
	ErrEmptyCombo = errors.New("hotkey: empty key combination")
	ErrUnknownKey = errors.New("hotkey: unknown key")
	ErrHookFailed = errors.New("hotkey: keyboard hook unavailable")
)

// Binding is a parsed key combination. Each key matches any of its
// virtual key codes, so "ctrl" matches both left and right control.
type Binding struct {
	combo string
	keys  []key
}

type key struct {
	name     string
	rawcodes []uint16
}

func (b Binding) String() string { return b.combo }

// Parse turns "Ctrl+Alt+Q" style text into a Binding.
func Parse(combo string) (Binding, error) {
	names := parseHotkey(combo)
	if len(names) == 0 {
		return Binding{}, ErrEmptyCombo
	}
	b := Binding{combo: combo}
	for _, name := range names {
		codes := keyNameToRawcodes(name)
		if codes == nil {
			return Binding{}, errors.Wrapf(ErrUnknownKey, "%q in %q", name, combo)
		}
		b.keys = append(b.keys, key{name: name, rawcodes: codes})
	}
	return b, nil
}

// matcher tracks which keys of a binding are held down.
type matcher struct {
	mu      sync.Mutex
	binding Binding
	pressed []bool
}

func newMatcher(b Binding) *matcher {
	return &matcher{binding: b, pressed: make([]bool, len(b.keys))}
}

// feed records one key event and reports whether it completed the combination.
// A completed combination resets all keys.
func (m *matcher) feed(kind uint8, rawcode uint16) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	down := kind == gohook.KeyDown || kind == gohook.KeyHold
	if !down && kind != gohook.KeyUp {
		return false
	}
	for i, k := range m.binding.keys {
		for _, rc := range k.rawcodes {
			if rc == rawcode {
				m.pressed[i] = down
				break
			}
		}
	}
	if !down {
		return false
	}
	for _, p := range m.pressed {
		if !p {
			return false
		}
	}
	for i := range m.pressed {
		m.pressed[i] = false
	}
	return true
}

// Listen installs a global keyboard hook and calls callback each time the
// combination is pressed, until ctx is done. It returns once the hook runs.
func Listen(ctx context.Context, combo string, callback func()) error {
	b, err := Parse(combo)
	if err != nil {
		return err
	}
	log := logutil.Logger()

	events := gohook.Start()
	if events == nil {
		return ErrHookFailed
	}
	log.Debug("hotkey listener started", "combo", b.String())

	m := newMatcher(b)
	go func() {
		<-ctx.Done()
		gohook.End()
	}()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("hotkey listener panicked", "panic", r)
			}
		}()
		for ev := range events {
			if m.feed(ev.Kind, ev.Rawcode) {
				log.Info("hotkey pressed", "combo", b.String())
				if callback != nil {
					callback()
				}
			}
		}
		log.Debug("hotkey listener stopped", "combo", b.String())
	}()
	return nil
}

// parseHotkey splits a combination into normalized key names.
func parseHotkey(combo string) []string {
	var keys []string
	for _, part := range strings.Split(strings.ToLower(combo), "+") {
		part = strings.TrimSpace(part)
		switch part {
		case "":
			continue
		case "control":
			part = "ctrl"
		case "win", "super":
			part = "cmd"
		}
		keys = append(keys, part)
	}
	return keys
}

var namedKeys = map[string][]uint16{
	"ctrl":  {162, 163}, // VK_LCONTROL, VK_RCONTROL
	"alt":   {164, 165}, // VK_LMENU, VK_RMENU
	"shift": {160, 161}, // VK_LSHIFT, VK_RSHIFT
	"cmd":   {91, 92},   // VK_LWIN, VK_RWIN

	"space":     {32},
	"enter":     {13},
	"return":    {13},
	"esc":       {27},
	"escape":    {27},
	"tab":       {9},
	"backspace": {8},
	"delete":    {46},
	"del":       {46},
	"insert":    {45},
	"ins":       {45},
	"home":      {36},
	"end":       {35},
	"pageup":    {33},
	"pgup":      {33},
	"pagedown":  {34},
	"pgdn":      {34},
	"left":      {37},
	"up":        {38},
	"right":     {39},
	"down":      {40},
	"pause":     {19},
}

// keyNameToRawcodes maps a normalized key name to Windows virtual key codes.
func keyNameToRawcodes(name string) []uint16 {
	name = strings.ToLower(strings.TrimSpace(name))
	if codes, ok := namedKeys[name]; ok {
		return codes
	}
	if len(name) == 1 {
		c := name[0]
		switch {
		case c >= 'a' && c <= 'z':
			return []uint16{uint16(c-'a') + 'A'}
		case c >= '0' && c <= '9':
			return []uint16{uint16(c)}
		}
	}
	if len(name) >= 2 && name[0] == 'f' {
		n := 0
		for _, c := range name[1:] {
			if c < '0' || c > '9' {
				return nil
			}
			n = n*10 + int(c-'0')
		}
		if n >= 1 && n <= 24 {
			return []uint16{uint16(111 + n)} // VK_F1 is 112
		}
	}
	return nil
}
