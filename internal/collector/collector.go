package collector

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"
)

// Collector gathers a Report from the local host.
type Collector struct {
	log      *log.Helper
	version  string
	interval time.Duration
	gpu      GPUCapability
	now      func() time.Time
}

// Option configures a Collector.
type Option func(*Collector)

// WithVersion sets the tool version stamped into every report.
func WithVersion(v string) Option {
	return func(c *Collector) { c.version = v }
}

// WithSampleInterval sets the CPU usage sampling window.
func WithSampleInterval(d time.Duration) Option {
	return func(c *Collector) { c.interval = d }
}

// WithGPU sets the GPU capability detected at startup.
func WithGPU(capability GPUCapability) Option {
	return func(c *Collector) { c.gpu = capability }
}

// New creates a Collector. Without WithGPU the GPU group reports the
// capability as unavailable.
func New(logger log.Logger, opts ...Option) *Collector {
	c := &Collector{
		log:      log.NewHelper(log.With(logger, "module", "collector")),
		interval: DefaultSampleInterval,
		gpu:      Unavailable(),
		now:      time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Collect queries every fact group. Groups are independent: a failure is
// recorded in that group's Result and collection carries on.
func (c *Collector) Collect(ctx context.Context) *Report {
	rep := &Report{
		Timestamp: c.now(),
		Version:   c.version,
	}

	rep.OS = GetOSInfo(ctx)
	c.warn("os", rep.OS.Err())

	rep.CPU = GetCPUInfo(ctx, c.interval)
	c.warn("cpu", rep.CPU.Err())

	rep.Memory = GetMemoryInfo(ctx)
	c.warn("memory", rep.Memory.Err())

	rep.Disk = GetDiskInfo(ctx)
	c.warn("disk", rep.Disk.Err())
	if parts, err := rep.Disk.Value(); err == nil {
		for _, p := range parts {
			if p.Err != nil {
				c.log.Warnf("disk %s: %v", p.Device, p.Err)
			}
		}
	}

	if _, ok := c.gpu.Query(); !ok {
		c.log.Debug("no GPU telemetry tool found; skipping device query")
	}
	rep.GPU = GetGPUInfo(ctx, c.gpu)
	c.warn("gpu", rep.GPU.Err())

	return rep
}

func (c *Collector) warn(group string, err error) {
	if err != nil {
		c.log.Warnf("%s: %v", group, err)
	}
}
