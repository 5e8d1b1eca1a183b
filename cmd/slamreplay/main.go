//go:build pcap
// +build pcap

// Command slamreplay drives the SLAM core against a captured PCAP file
// instead of a live serial LIDAR, for offline regression runs against
// recorded sensor traffic.
package main

import (
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/banshee-data/lineslam/internal/scansource/replay"
	"github.com/banshee-data/lineslam/internal/slam"
)

var (
	pcapFile = flag.String("pcap", "", "path to the PCAP capture to replay")
	udpPort  = flag.Int("udp-port", 2369, "UDP port the captured LIDAR traffic was sent to")
)

// udpPolarParser decodes a UDP payload as a flat sequence of 6-byte polar
// points (int16 angle16 theta, int32 millimetre distance, little-endian),
// the same point encoding internal/scansource's serial wire format uses.
type udpPolarParser struct{}

const pointWireSize = 6

func (udpPolarParser) ParsePacket(payload []byte) ([]slam.PolarPoint, error) {
	if len(payload)%pointWireSize != 0 {
		return nil, fmt.Errorf("payload length %d not a multiple of %d", len(payload), pointWireSize)
	}
	n := len(payload) / pointWireSize
	points := make([]slam.PolarPoint, n)
	for i := range points {
		off := i * pointWireSize
		points[i] = slam.PolarPoint{
			Theta:    slam.Angle16(int16(binary.LittleEndian.Uint16(payload[off:]))),
			Distance: int32(binary.LittleEndian.Uint32(payload[off+2:])),
		}
	}
	return points, nil
}

func main() {
	flag.Parse()
	if *pcapFile == "" {
		fmt.Fprintln(os.Stderr, "slamreplay: -pcap is required")
		os.Exit(1)
	}

	src, err := replay.Open(*pcapFile, *udpPort, udpPolarParser{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "slamreplay: %v\n", err)
		os.Exit(1)
	}
	defer src.Close()

	cfg := slam.DefaultConfig()
	engine := slam.NewEngine(cfg)

	ctx := context.Background()
	revolutions := 0
	for {
		scan, err := src.NextRevolution(ctx)
		if err != nil {
			log.Printf("replay finished after %d revolutions: %v", revolutions, err)
			break
		}
		observed := engine.ObserveScan(scan)
		engine.UpdateFromScan(observed, 0, 0, 0, false)
		revolutions++
	}

	pose := engine.CurrentPose()
	fmt.Printf("revolutions=%d final_pose=(%d,%d,%d) confidence=%t segments=%d\n",
		revolutions, pose.Position.X, pose.Position.Y, pose.Theta,
		engine.CurrentConfidence(), len(engine.CurrentMap()))
}
