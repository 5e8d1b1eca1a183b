// Package remote exchanges fixed-format command/telemetry frames with a
// remote controller over a serial link: an inbound RemoteFrame carrying
// commanded velocities and switch state, and an outbound telemetry frame
// mirroring the same layout back to the controller.
package remote

import "encoding/binary"

// NBCommands is the number of (x,y) command pairs carried in a RemoteFrame,
// matching the controller's fixed joystick/button layout.
const NBCommands = 4

// Switch bits within RemoteFrame.Switches, as consumed by the UI
// collaborator. The confidence gate does not read them; it looks only at
// VX, VY and VZ.
const (
	SwitchLess = 1 << 4
	SwitchMore = 1 << 5
	SwitchOK   = 1 << 7
)

// frameSize is the wire size in bytes of a RemoteFrame payload: NBCommands
// (x,y) i16 pairs, four i16 scalars (z, vx, vy, vz), and one switch byte.
const frameSize = NBCommands*2*2 + 4*2 + 1

// Preambles identify which of the two mirrored frame layouts is on the
// wire: '$' 'S' ' ' ' ' for the inbound command frame, '$' 'R' ' ' ' ' for
// the outbound telemetry frame.
var (
	inboundPreamble  = [4]byte{'$', 'S', ' ', ' '}
	outboundPreamble = [4]byte{'$', 'R', ' ', ' '}
)

// RemoteFrame is the fixed-size command/telemetry payload exchanged with
// the remote controller, updated in place on each valid receive.
type RemoteFrame struct {
	XY       [NBCommands][2]int16
	Z        int16
	VX       int16
	VY       int16
	VZ       int16
	Switches uint8
}

// MarshalBinary encodes f into its wire representation, little-endian,
// matching the original firmware's native byte order.
func (f RemoteFrame) MarshalBinary() []byte {
	buf := make([]byte, frameSize)
	off := 0
	for _, xy := range f.XY {
		binary.LittleEndian.PutUint16(buf[off:], uint16(xy[0]))
		binary.LittleEndian.PutUint16(buf[off+2:], uint16(xy[1]))
		off += 4
	}
	binary.LittleEndian.PutUint16(buf[off:], uint16(f.Z))
	off += 2
	binary.LittleEndian.PutUint16(buf[off:], uint16(f.VX))
	off += 2
	binary.LittleEndian.PutUint16(buf[off:], uint16(f.VY))
	off += 2
	binary.LittleEndian.PutUint16(buf[off:], uint16(f.VZ))
	off += 2
	buf[off] = f.Switches
	return buf
}

// unmarshalBinary decodes buf (exactly frameSize bytes) into f.
func (f *RemoteFrame) unmarshalBinary(buf []byte) {
	off := 0
	for i := range f.XY {
		f.XY[i][0] = int16(binary.LittleEndian.Uint16(buf[off:]))
		f.XY[i][1] = int16(binary.LittleEndian.Uint16(buf[off+2:]))
		off += 4
	}
	f.Z = int16(binary.LittleEndian.Uint16(buf[off:]))
	off += 2
	f.VX = int16(binary.LittleEndian.Uint16(buf[off:]))
	off += 2
	f.VY = int16(binary.LittleEndian.Uint16(buf[off:]))
	off += 2
	f.VZ = int16(binary.LittleEndian.Uint16(buf[off:]))
	off += 2
	f.Switches = buf[off]
}

// Moving reports whether any commanded velocity component is non-zero, the
// exact condition the confidence gate resets on.
func (f RemoteFrame) Moving() bool {
	return f.VX != 0 || f.VY != 0 || f.VZ != 0
}
