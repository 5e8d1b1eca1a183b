// Package render defines the Renderer external collaborator: it turns one
// tick's scan, map, and pose into a raw BGR frame for the stdout byte
// stream. No implementation in this package draws an actual overlay;
// image composition is the collaborator's job, out of scope for the core.
package render

import "github.com/banshee-data/lineslam/internal/slam"

// Renderer produces one width*height*3 BGR frame per tick.
type Renderer interface {
	RenderFrame(scan []slam.Point, robotLines, mapLines []slam.Segment, pose slam.Pose, confidence bool) []byte
}

// BlankRenderer emits a solid-color frame of the configured size on every
// call, satisfying the stdout frame-stream contract without compositing
// anything from the scan, map, or pose it's handed.
type BlankRenderer struct {
	Width, Height int
	// Fill is the BGR triple repeated across every pixel.
	Fill [3]byte
}

// RenderFrame ignores its arguments and returns a solid Fill-colored frame.
func (r BlankRenderer) RenderFrame(_ []slam.Point, _, _ []slam.Segment, _ slam.Pose, _ bool) []byte {
	frame := make([]byte, r.Width*r.Height*3)
	for i := 0; i < len(frame); i += 3 {
		frame[i] = r.Fill[0]
		frame[i+1] = r.Fill[1]
		frame[i+2] = r.Fill[2]
	}
	return frame
}
