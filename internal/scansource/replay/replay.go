//go:build pcap
// +build pcap

// Package replay offers an offline Source backed by a captured PCAP file,
// for running the SLAM core against recorded sensor traffic instead of a
// live serial link. Built only with the pcap tag since it links libpcap.
package replay

import (
	"context"
	"fmt"
	"log"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"

	"github.com/banshee-data/lineslam/internal/slam"
)

// PacketParser turns one UDP payload into zero or more polar returns,
// tagged with the raw azimuth each arrived at.
type PacketParser interface {
	ParsePacket(payload []byte) ([]slam.PolarPoint, error)
}

// Source replays revolutions assembled from a PCAP capture. A revolution
// is closed out whenever the incoming azimuth wraps backwards past the
// previous point's, mirroring how the live sensor's motor index pulse
// marks a rotation boundary.
type Source struct {
	handle  *pcap.Handle
	packets <-chan gopacket.Packet
	udpPort int
	parser  PacketParser

	pending  []slam.PolarPoint
	lastTheta slam.Angle16
	haveLast  bool
}

// Open starts reading pcapFile, filtering to UDP traffic on udpPort.
func Open(pcapFile string, udpPort int, parser PacketParser) (*Source, error) {
	handle, err := pcap.OpenOffline(pcapFile)
	if err != nil {
		return nil, fmt.Errorf("replay: opening pcap file %s: %w", pcapFile, err)
	}
	filter := fmt.Sprintf("udp port %d", udpPort)
	if err := handle.SetBPFFilter(filter); err != nil {
		handle.Close()
		return nil, fmt.Errorf("replay: setting BPF filter %q: %w", filter, err)
	}
	src := gopacket.NewPacketSource(handle, handle.LinkType())
	return &Source{handle: handle, packets: src.Packets(), udpPort: udpPort, parser: parser}, nil
}

// NextRevolution assembles and returns the next complete revolution,
// reading packets until an azimuth wrap closes out the pending buffer or
// the capture is exhausted.
func (s *Source) NextRevolution(ctx context.Context) ([]slam.PolarPoint, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case packet, ok := <-s.packets:
			if !ok || packet == nil {
				if len(s.pending) > 0 {
					return s.flush(), nil
				}
				return nil, fmt.Errorf("replay: capture exhausted")
			}
			udpLayer := packet.Layer(layers.LayerTypeUDP)
			if udpLayer == nil {
				continue
			}
			udp, ok := udpLayer.(*layers.UDP)
			if !ok || len(udp.Payload) == 0 {
				continue
			}
			points, err := s.parser.ParsePacket(udp.Payload)
			if err != nil {
				log.Printf("replay: parsing packet: %v", err)
				continue
			}
			if rev, closed := s.absorb(points); closed {
				return rev, nil
			}
		}
	}
}

// absorb appends points to the pending revolution, splitting it out at the
// first point whose azimuth is lower than the previous point's. Points after
// the split start the next pending revolution.
func (s *Source) absorb(points []slam.PolarPoint) ([]slam.PolarPoint, bool) {
	var rev []slam.PolarPoint
	closed := false
	for _, p := range points {
		if !closed && s.haveLast && p.Theta < s.lastTheta {
			rev = s.flush()
			closed = true
		}
		s.pending = append(s.pending, p)
		s.lastTheta = p.Theta
		s.haveLast = true
	}
	return rev, closed
}

func (s *Source) flush() []slam.PolarPoint {
	rev := s.pending
	s.pending = nil
	s.haveLast = false
	return rev
}

// Close releases the underlying pcap handle.
func (s *Source) Close() error {
	s.handle.Close()
	return nil
}
