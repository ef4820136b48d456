package assets

import (
	"math"

	"github.com/sargunv/fastfile-tools/internal/byteio"
	"github.com/sargunv/fastfile-tools/lib/core"
)

// XAnim is a named animation clip.
type XAnim struct {
	span
	Name       string
	FrameCount uint16
	Framerate  float32
	Duration   float32
	BoneCount  uint8
	Looping    bool
	HasDelta   bool
}

// ParseXAnim reads frame_count:u16, framerate:f32, bone_count:u8, and flag
// bits for looping and delta, then derives duration = frame_count /
// framerate.
func ParseXAnim(buf []byte, order byteio.Order, nameOffset int) (XAnim, error) {
	name, offset, err := byteio.CString(buf, nameOffset)
	if err != nil {
		return XAnim{}, core.Wrap(core.ZoneCorrupt, "xanim: reading name", err)
	}

	frameCount, err := order.U16(buf, offset)
	if err != nil {
		return XAnim{}, core.Wrap(core.ZoneCorrupt, "xanim: reading frame count", err)
	}
	offset += 2

	rawRate, err := order.U32(buf, offset)
	if err != nil {
		return XAnim{}, core.Wrap(core.ZoneCorrupt, "xanim: reading framerate", err)
	}
	framerate := math.Float32frombits(rawRate)
	offset += 4

	boneCount, err := byteio.U8(buf, offset)
	if err != nil {
		return XAnim{}, core.Wrap(core.ZoneCorrupt, "xanim: reading bone count", err)
	}
	offset++

	flags, err := byteio.U8(buf, offset)
	if err != nil {
		return XAnim{}, core.Wrap(core.ZoneCorrupt, "xanim: reading flags", err)
	}
	offset++

	var duration float32
	if framerate != 0 {
		duration = float32(frameCount) / framerate
	}

	return XAnim{
		span:       span{StartOffset: nameOffset, EndOffset: offset},
		Name:       name,
		FrameCount: frameCount,
		Framerate:  framerate,
		Duration:   duration,
		BoneCount:  boneCount,
		Looping:    flags&0x01 != 0,
		HasDelta:   flags&0x02 != 0,
	}, nil
}
