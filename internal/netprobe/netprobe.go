// Package netprobe measures internet-link throughput against the best
// available speedtest server and, optionally, ICMP latency to a fixed host.
package netprobe

import (
	"context"
	"errors"
	"time"

	ping "github.com/prometheus-community/pro-bing"
	"github.com/showwin/speedtest-go/speedtest"

	applog "github.com/silasgubi/painel/internal/log"
	"github.com/silasgubi/painel/internal/model"
)

// Result is a successful throughput measurement in integer Mbps.
type Result struct {
	DownloadMbps int
	UploadMbps   int
}

// measureThroughput runs a full speedtest cycle: fetch the server list, pick
// the best server, then download and upload tests. It is a package variable
// so tests can substitute a deterministic implementation.
var measureThroughput = func(ctx context.Context) (Result, error) {
	client := speedtest.New()

	servers, err := client.FetchServerListContext(ctx)
	if err != nil {
		return Result{}, err
	}
	targets, err := servers.FindServer(nil)
	if err != nil {
		return Result{}, err
	}
	if len(targets) == 0 {
		return Result{}, errors.New("netprobe: no speedtest server available")
	}
	srv := targets[0]

	if err := srv.PingTestContext(ctx, nil); err != nil {
		return Result{}, err
	}
	if err := srv.DownloadTestContext(ctx); err != nil {
		return Result{}, err
	}
	if err := srv.UploadTestContext(ctx); err != nil {
		return Result{}, err
	}

	return Result{
		DownloadMbps: int(srv.DLSpeed.Mbps()),
		UploadMbps:   int(srv.ULSpeed.Mbps()),
	}, nil
}

// pingLatency measures average round-trip time to host. Package variable for
// the same reason as measureThroughput.
var pingLatency = func(ctx context.Context, host string) (time.Duration, error) {
	p, err := ping.NewPinger(host)
	if err != nil {
		return 0, err
	}
	p.Count = 3
	p.Timeout = 5 * time.Second
	p.SetPrivileged(true)

	if err := p.RunWithContext(ctx); err != nil {
		return 0, err
	}
	stats := p.Statistics()
	if stats.PacketsRecv == 0 {
		return 0, errors.New("netprobe: no ping replies")
	}
	return stats.AvgRtt, nil
}

// Prober runs the link measurement for one snapshot.
type Prober struct {
	pingHost string
}

// NewProber creates a Prober. pingHost may be empty to skip the latency run.
func NewProber(pingHost string) *Prober {
	return &Prober{pingHost: pingHost}
}

// Probe returns the network status for the panel. Any throughput failure
// maps to the offline status; a latency failure only leaves LatencyMs at
// zero on an otherwise measured link.
func (p *Prober) Probe(ctx context.Context) model.NetworkStatus {
	log := applog.WithComponent("netprobe")

	res, err := measureThroughput(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("throughput measurement failed")
		return model.NetworkStatus{Kind: model.NetworkOffline}
	}

	status := model.NetworkStatus{
		Kind:         model.NetworkMeasured,
		DownloadMbps: res.DownloadMbps,
		UploadMbps:   res.UploadMbps,
	}

	if p.pingHost != "" {
		rtt, err := pingLatency(ctx, p.pingHost)
		if err != nil {
			log.Warn().Err(err).Str("host", p.pingHost).Msg("latency probe failed")
		} else {
			status.LatencyMs = int(rtt.Milliseconds())
		}
	}

	log.Info().
		Int("down_mbps", status.DownloadMbps).
		Int("up_mbps", status.UploadMbps).
		Int("latency_ms", status.LatencyMs).
		Msg("link measured")
	return status
}
