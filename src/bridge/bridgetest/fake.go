// Package bridgetest provides a recording bridge.GL for tests.
package bridgetest

import (
	"errors"

	"host-overlay/src/bridge"
)

// GL records calls into *Trace and keeps the last uploaded frame.
type GL struct {
	Trace *[]string

	FailInit    bool
	NoVersion   bool
	FailStaging bool
	FailUpload  bool
	FailBlit    bool

	Bound      uint32
	MaxTexture int

	LastUpload []byte
	LastBlit   struct {
		Dst   uint32
		FlipY bool
	}
	Flushes int
	Live    map[bridge.Staging]bool
	next    uint32
}

// New returns a GL whose current framebuffer is fbo.
func New(fbo uint32) *GL {
	return &GL{
		Trace:      new([]string),
		Bound:      fbo,
		MaxTexture: 16384,
		Live:       map[bridge.Staging]bool{},
	}
}

// Calls returns how many calls were recorded.
func (g *GL) Calls() int { return len(*g.Trace) }

func (g *GL) record(call string) { *g.Trace = append(*g.Trace, call) }

func (g *GL) Init() error {
	g.record("gl.Init")
	if g.FailInit {
		return errors.New("opengl32.dll entry points missing")
	}
	return nil
}

func (g *GL) Version() string {
	g.record("glGetString(VERSION)")
	if g.NoVersion {
		return ""
	}
	return "4.6.0 fake"
}

func (g *GL) MaxTextureSize() int {
	g.record("glGetIntegerv(MAX_TEXTURE_SIZE)")
	return g.MaxTexture
}

func (g *GL) FramebufferBinding() uint32 {
	g.record("glGetIntegerv(FRAMEBUFFER_BINDING)")
	return g.Bound
}

func (g *GL) CreateStaging(width, height int) (bridge.Staging, error) {
	g.record("CreateStaging")
	if g.FailStaging {
		return bridge.Staging{}, errors.New("out of memory")
	}
	g.next++
	s := bridge.Staging{Texture: g.next, Framebuffer: 100 + g.next}
	g.Live[s] = true
	return s, nil
}

func (g *GL) Upload(s bridge.Staging, width, height int, pixels []byte) error {
	g.record("glTexSubImage2D")
	if g.FailUpload {
		return errors.New("GL_INVALID_OPERATION")
	}
	g.LastUpload = append(g.LastUpload[:0], pixels...)
	return nil
}

func (g *GL) Blit(s bridge.Staging, dst uint32, width, height int, flipY bool) error {
	g.record("glBlitFramebuffer")
	if g.FailBlit {
		return errors.New("GL_INVALID_FRAMEBUFFER_OPERATION")
	}
	g.LastBlit.Dst = dst
	g.LastBlit.FlipY = flipY
	return nil
}

func (g *GL) Flush() {
	g.record("glFlush")
	g.Flushes++
}

func (g *GL) DeleteStaging(s bridge.Staging) {
	g.record("DeleteStaging")
	delete(g.Live, s)
}
