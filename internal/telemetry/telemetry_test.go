package telemetry

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/lineslam/internal/slam"
)

type stubState struct {
	pose       slam.Pose
	segments   []slam.Segment
	confidence bool
}

func (s stubState) CurrentPose() slam.Pose     { return s.pose }
func (s stubState) CurrentMap() []slam.Segment { return s.segments }
func (s stubState) CurrentConfidence() bool    { return s.confidence }

func TestAttachRoutesStatus(t *testing.T) {
	state := stubState{
		pose:       slam.Pose{Position: slam.Point{X: 10, Y: 20}, Theta: 5},
		segments:   []slam.Segment{{A: slam.Point{X: 0, Y: 0}, B: slam.Point{X: 1, Y: 1}}},
		confidence: true,
	}
	mux := http.NewServeMux()
	New(state).AttachRoutes(mux)

	req := httptest.NewRequest(http.MethodGet, "/debug/status", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "x=10 y=20")
	assert.Contains(t, rec.Body.String(), "confidence: true")
}

func TestAttachRoutesMap(t *testing.T) {
	state := stubState{
		segments: []slam.Segment{{A: slam.Point{X: 0, Y: 0}, B: slam.Point{X: 100, Y: 0}}},
	}
	mux := http.NewServeMux()
	New(state).AttachRoutes(mux)

	req := httptest.NewRequest(http.MethodGet, "/debug/map", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"segments"`)
}
