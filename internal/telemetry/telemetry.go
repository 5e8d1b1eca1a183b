// Package telemetry exposes read-only debug endpoints over the running
// SLAM core's state, for operators inspecting a robot over the network
// without disturbing its control loop.
package telemetry

import (
	"encoding/json"
	"fmt"
	"net/http"

	"tailscale.com/tsweb"

	"github.com/banshee-data/lineslam/internal/slam"
)

// StateProvider is the minimal read-only view of the running core that
// Reporter needs. The main loop's Engine satisfies this directly.
type StateProvider interface {
	CurrentPose() slam.Pose
	CurrentMap() []slam.Segment
	CurrentConfidence() bool
}

// Reporter attaches debug HTTP routes reflecting a StateProvider's state.
type Reporter struct {
	state StateProvider
}

// New returns a Reporter over state.
func New(state StateProvider) *Reporter {
	return &Reporter{state: state}
}

// mapView is the JSON shape served by /debug/map.
type mapView struct {
	Pose       slam.Pose      `json:"pose"`
	Confidence bool           `json:"confidence"`
	Segments   []slam.Segment `json:"segments"`
}

// AttachRoutes registers the status and map debug endpoints on mux.
func (r *Reporter) AttachRoutes(mux *http.ServeMux) {
	debug := tsweb.Debugger(mux)

	debug.HandleFunc("status", "current pose and confidence", func(w http.ResponseWriter, req *http.Request) {
		pose := r.state.CurrentPose()
		fmt.Fprintf(w, "pose: x=%d y=%d theta=%d\nconfidence: %t\nsegments: %d\n",
			pose.Position.X, pose.Position.Y, pose.Theta,
			r.state.CurrentConfidence(), len(r.state.CurrentMap()))
	})

	debug.HandleFunc("map", "current map as JSON", func(w http.ResponseWriter, req *http.Request) {
		view := mapView{
			Pose:       r.state.CurrentPose(),
			Confidence: r.state.CurrentConfidence(),
			Segments:   r.state.CurrentMap(),
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(view); err != nil {
			http.Error(w, "failed to encode map", http.StatusInternalServerError)
		}
	})
}
