//go:build windows

package bridge

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/pkg/errors"
)

type nativeGL struct{}

// Native returns the OpenGL implementation backed by go-gl.
func Native() (GL, error) {
	return nativeGL{}, nil
}

func (nativeGL) Init() error { return gl.Init() }

func (nativeGL) Version() string {
	p := gl.GetString(gl.VERSION)
	if p == nil {
		return ""
	}
	return gl.GoStr(p)
}

func (nativeGL) MaxTextureSize() int {
	var n int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &n)
	return int(n)
}

func (nativeGL) FramebufferBinding() uint32 {
	var id int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &id)
	return uint32(id)
}

func (nativeGL) CreateStaging(width, height int) (Staging, error) {
	var s Staging
	gl.GenTextures(1, &s.Texture)
	gl.BindTexture(gl.TEXTURE_2D, s.Texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	var prev int32
	gl.GetIntegerv(gl.READ_FRAMEBUFFER_BINDING, &prev)
	gl.GenFramebuffers(1, &s.Framebuffer)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, s.Framebuffer)
	gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, s.Texture, 0)
	status := gl.CheckFramebufferStatus(gl.READ_FRAMEBUFFER)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, uint32(prev))

	if status != gl.FRAMEBUFFER_COMPLETE {
		nativeGL{}.DeleteStaging(s)
		return Staging{}, errors.Errorf("staging framebuffer incomplete: %#x", status)
	}
	if err := glError("create staging"); err != nil {
		nativeGL{}.DeleteStaging(s)
		return Staging{}, err
	}
	return s, nil
}

func (nativeGL) Upload(s Staging, width, height int, pixels []byte) error {
	if len(pixels) < width*height*4 {
		return errors.Errorf("pixel buffer holds %d bytes, need %d", len(pixels), width*height*4)
	}
	gl.BindTexture(gl.TEXTURE_2D, s.Texture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return glError("upload")
}

func (nativeGL) Blit(s Staging, dst uint32, width, height int, flipY bool) error {
	w, h := int32(width), int32(height)
	dy0, dy1 := int32(0), h
	if flipY {
		dy0, dy1 = h, 0
	}
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, s.Framebuffer)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, dst)
	gl.BlitFramebuffer(0, 0, w, h, 0, dy0, w, dy1, gl.COLOR_BUFFER_BIT, gl.NEAREST)
	gl.BindFramebuffer(gl.FRAMEBUFFER, dst)
	return glError("blit")
}

func (nativeGL) Flush() { gl.Flush() }

func (nativeGL) DeleteStaging(s Staging) {
	if s.Framebuffer != 0 {
		gl.DeleteFramebuffers(1, &s.Framebuffer)
	}
	if s.Texture != 0 {
		gl.DeleteTextures(1, &s.Texture)
	}
}

func glError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return errors.Errorf("%s: GL error %#x", op, code)
	}
	return nil
}
