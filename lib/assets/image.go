package assets

import (
	"github.com/sargunv/fastfile-tools/internal/byteio"
	"github.com/sargunv/fastfile-tools/lib/core"
)

// Image is a texture asset: either inline raw pixel data or a streaming
// reference resolved outside the zone.
type Image struct {
	span
	Name          string
	Width         uint16
	Height        uint16
	Depth         uint16
	TextureFormat uint8
	Streaming     bool
	RawData       []byte // nil when Streaming
}

// ParseImage reads name, width:u16, height:u16, depth:u16,
// texture_format:u8, a streaming flag, and (if not streaming) a byte run
// sized from width/height/depth.
func ParseImage(buf []byte, order byteio.Order, nameOffset int) (Image, error) {
	name, offset, err := byteio.CString(buf, nameOffset)
	if err != nil {
		return Image{}, core.Wrap(core.ZoneCorrupt, "image: reading name", err)
	}

	width, err := order.U16(buf, offset)
	if err != nil {
		return Image{}, core.Wrap(core.ZoneCorrupt, "image: reading width", err)
	}
	offset += 2
	height, err := order.U16(buf, offset)
	if err != nil {
		return Image{}, core.Wrap(core.ZoneCorrupt, "image: reading height", err)
	}
	offset += 2
	depth, err := order.U16(buf, offset)
	if err != nil {
		return Image{}, core.Wrap(core.ZoneCorrupt, "image: reading depth", err)
	}
	offset += 2
	format, err := byteio.U8(buf, offset)
	if err != nil {
		return Image{}, core.Wrap(core.ZoneCorrupt, "image: reading texture format", err)
	}
	offset++
	streamFlag, err := byteio.U8(buf, offset)
	if err != nil {
		return Image{}, core.Wrap(core.ZoneCorrupt, "image: reading streaming flag", err)
	}
	offset++

	img := Image{
		Name:          name,
		Width:         width,
		Height:        height,
		Depth:         depth,
		TextureFormat: format,
		Streaming:     streamFlag != 0,
	}

	if !img.Streaming {
		size := int(width) * int(height) * maxInt(int(depth), 1)
		data, err := byteio.Slice(buf, offset, size)
		if err != nil {
			return Image{}, core.Wrap(core.ZoneCorrupt, "image: reading raw data", err)
		}
		img.RawData = append([]byte(nil), data...)
		offset += size
	}
	img.span = span{StartOffset: nameOffset, EndOffset: offset}
	return img, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
