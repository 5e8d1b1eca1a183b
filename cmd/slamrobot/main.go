// Command slamrobot runs the line-segment SLAM core against a live serial
// remote link and LIDAR scan source, writing raw BGR frames to stdout one
// per tick and exchanging command/telemetry frames with a remote
// controller.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/lineslam/internal/imu"
	"github.com/banshee-data/lineslam/internal/remote"
	"github.com/banshee-data/lineslam/internal/render"
	"github.com/banshee-data/lineslam/internal/runstate"
	"github.com/banshee-data/lineslam/internal/scansource"
	"github.com/banshee-data/lineslam/internal/slam"
	"github.com/banshee-data/lineslam/internal/store"
	"github.com/banshee-data/lineslam/internal/telemetry"
)

const (
	defaultWidth  = 640
	defaultHeight = 480
	defaultFPS    = 20
)

var (
	remotePortFlag  = flag.String("remote-port", "/dev/ttyUSB0", "serial device for the remote control link")
	scanPortFlag    = flag.String("scan-port", "/dev/ttyUSB1", "serial device for the LIDAR scan source")
	adminListenFlag = flag.String("admin-listen", ":8082", "HTTP listen address for debug telemetry routes")
	snapshotDBFlag  = flag.String("snapshot-db", "", "optional SQLite file to persist map snapshots to")
	runIDFlag       = flag.String("run-id", "", "run identifier under which snapshots are saved (default: a generated UUID)")
	imuPortFlag     = flag.String("imu-port", "", "optional serial device for an absolute-yaw IMU")
)

func main() {
	flag.Parse()
	remotePort := *remotePortFlag
	scanPort := *scanPortFlag
	adminListen := *adminListenFlag
	snapshotDB := *snapshotDBFlag
	runID := *runIDFlag
	if runID == "" {
		runID = uuid.NewString()
	}

	width, height, fps, err := parseDimensions(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "slamrobot: %v\n", err)
		os.Exit(1)
	}

	link, err := remote.Open(remotePort, 115200)
	if err != nil {
		fmt.Fprintf(os.Stderr, "slamrobot: opening remote link: %v\n", err)
		os.Exit(1)
	}
	defer link.Close()

	source, err := scansource.Open(scanPort, 115200)
	if err != nil {
		fmt.Fprintf(os.Stderr, "slamrobot: opening scan source: %v\n", err)
		os.Exit(1)
	}
	defer source.Close()

	var snapshots *store.Store
	if snapshotDB != "" {
		snapshots, err = store.Open(snapshotDB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "slamrobot: opening snapshot db: %v\n", err)
			os.Exit(1)
		}
		defer snapshots.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	run := runstate.New()
	run.WatchContext(ctx)

	cfg := slam.DefaultConfig()
	engine := slam.NewEngine(cfg)
	yaw := imu.NewReader()
	renderer := render.BlankRenderer{Width: width, Height: height}

	var wg sync.WaitGroup

	if *imuPortFlag != "" {
		sensor, err := imu.OpenSerialSensor(*imuPortFlag, 115200)
		if err != nil {
			log.Printf("imu: %v; continuing without absolute yaw", err)
		} else {
			defer sensor.Close()
			wg.Add(1)
			go func() {
				defer wg.Done()
				yaw.Poll(ctx, sensor, 10*time.Millisecond)
			}()
		}
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		mux := http.NewServeMux()
		telemetry.New(engine).AttachRoutes(mux)
		srv := &http.Server{Addr: adminListen, Handler: mux}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("admin server error: %v", err)
		}
	}()

	tick := time.Second / time.Duration(fps)
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for run.Running() {
		<-ticker.C

		frame, matched, err := link.ReadFrame()
		if err != nil {
			log.Printf("remote: read frame: %v", err)
			continue
		}

		scan, err := source.NextRevolution(ctx)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			log.Printf("scansource: next revolution: %v", err)
			continue
		}

		observed := engine.ObserveScan(scan)

		var vx, vy, vz int32
		if matched {
			vx, vy, vz = int32(frame.VX), int32(frame.VY), int32(frame.VZ)
		}

		currentYaw, haveYaw := yaw.Yaw()
		useIMU := haveYaw
		var yawPtr *slam.Angle16
		if useIMU {
			yawPtr = &currentYaw
		}
		engine.IntegrateOdometry(vx, vy, vz, yawPtr)
		engine.UpdateFromScan(observed, vx, vy, vz, useIMU)

		if matched {
			if err := link.WriteTelemetry(frame); err != nil {
				log.Printf("remote: write telemetry: %v", err)
			}
		}

		if snapshots != nil {
			if err := snapshots.SaveSnapshot(runID, time.Now().UnixNano(), engine.CurrentPose(), engine.CurrentMap()); err != nil {
				log.Printf("store: save snapshot: %v", err)
			}
		}

		img := renderer.RenderFrame(nil, observed, engine.CurrentMap(), engine.CurrentPose(), engine.CurrentConfidence())
		if _, err := os.Stdout.Write(img); err != nil {
			log.Printf("stdout: write frame: %v", err)
		}
	}

	wg.Wait()
}

// parseDimensions implements spec.md 6's CLI contract: either no
// arguments (defaults) or exactly three integers width height fps.
func parseDimensions(args []string) (width, height, fps int, err error) {
	if len(args) == 0 {
		return defaultWidth, defaultHeight, defaultFPS, nil
	}
	if len(args) != 3 {
		return 0, 0, 0, fmt.Errorf("expected 0 or 3 arguments (width height fps), got %d", len(args))
	}
	width, err = strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid width %q: %w", args[0], err)
	}
	height, err = strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid height %q: %w", args[1], err)
	}
	fps, err = strconv.Atoi(args[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid fps %q: %w", args[2], err)
	}
	if width <= 0 || height <= 0 || fps <= 0 {
		return 0, 0, 0, fmt.Errorf("width, height, and fps must be positive, got %d %d %d", width, height, fps)
	}
	return width, height, fps, nil
}
