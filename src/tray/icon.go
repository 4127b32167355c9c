package tray

import (
	"bytes"
	"encoding/binary"

	"github.com/gogpu/gg"
	"github.com/pkg/errors"
)

const iconSize = 32

// Icon renders the tray icon and returns it as a single-image ICO holding
// a PNG, which the Windows shell accepts for notification icons.
func Icon() ([]byte, error) {
	dc := gg.NewContext(iconSize, iconSize)
	dc.SetRGBA(0, 0, 0, 0.6)
	dc.DrawRoundedRectangle(1, 1, iconSize-2, iconSize-2, 6)
	if err := dc.Fill(); err != nil {
		return nil, errors.Wrap(err, "tray: icon background")
	}
	dc.SetRGB(0, 1, 0.2)
	dc.SetLineWidth(2.5)
	dc.DrawRoundedRectangle(6, 8, 20, 14, 3)
	if err := dc.Stroke(); err != nil {
		return nil, errors.Wrap(err, "tray: icon frame")
	}
	dc.SetRGB(1, 0.2, 0)
	dc.DrawCircle(16, 15, 3.5)
	if err := dc.Fill(); err != nil {
		return nil, errors.Wrap(err, "tray: icon dot")
	}

	var png bytes.Buffer
	if err := dc.EncodePNG(&png); err != nil {
		return nil, errors.Wrap(err, "tray: encoding icon")
	}
	return wrapICO(png.Bytes(), iconSize), nil
}

// wrapICO prefixes png with an ICONDIR and one ICONDIRENTRY.
func wrapICO(png []byte, size int) []byte {
	const headerLen = 6 + 16
	var buf bytes.Buffer
	buf.Grow(headerLen + len(png))
	w := func(v any) { _ = binary.Write(&buf, binary.LittleEndian, v) }

	w(uint16(0)) // reserved
	w(uint16(1)) // type: icon
	w(uint16(1)) // image count

	dim := uint8(size)
	if size >= 256 {
		dim = 0
	}
	w(dim)              // width
	w(dim)              // height
	w(uint8(0))         // palette size
	w(uint8(0))         // reserved
	w(uint16(1))        // color planes
	w(uint16(32))       // bits per pixel
	w(uint32(len(png))) // image size
	w(uint32(headerLen))

	buf.Write(png)
	return buf.Bytes()
}
