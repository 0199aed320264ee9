package kernel

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/GriffinCanCode/SlimeOS/internal/domain/app"
	"github.com/GriffinCanCode/SlimeOS/internal/drivers/framebuffer"
	"github.com/GriffinCanCode/SlimeOS/internal/drivers/keymatrix"
	"github.com/GriffinCanCode/SlimeOS/internal/hal"
	"github.com/GriffinCanCode/SlimeOS/internal/infrastructure/config"
	"github.com/GriffinCanCode/SlimeOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/SlimeOS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/SlimeOS/internal/shared/clock"
	"github.com/GriffinCanCode/SlimeOS/internal/shared/types"
)

const (
	testWidth  = 64
	testHeight = 64
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// recordingDisplay logs the order of drawing operations
type recordingDisplay struct {
	*framebuffer.Display

	mu  sync.Mutex
	ops []string
}

func newRecordingDisplay() *recordingDisplay {
	return &recordingDisplay{Display: framebuffer.New(testWidth, testHeight)}
}

func (d *recordingDisplay) record(op string) {
	d.mu.Lock()
	d.ops = append(d.ops, op)
	d.mu.Unlock()
}

func (d *recordingDisplay) Ops() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.ops))
	copy(out, d.ops)
	return out
}

func (d *recordingDisplay) Reset() {
	d.record("reset")
	d.Display.Reset()
}

func (d *recordingDisplay) FillRect(x, y, w, h int, c types.Color) {
	d.record("rect")
	d.Display.FillRect(x, y, w, h, c)
}

func (d *recordingDisplay) Text(str string, x, y, scale int, c types.Color) {
	d.record("text:" + str)
	d.Display.Text(str, x, y, scale, c)
}

func (d *recordingDisplay) Update() error {
	d.record("update")
	return d.Display.Update()
}

// testProfile counts driver construction
type testProfile struct {
	caps       hal.Capabilities
	display    hal.Display
	input      hal.Input
	matrix     *keymatrix.Matrix
	displayErr error
	inputErr   error

	mu       sync.Mutex
	displays int
	inputs   int
}

func newTestProfile() *testProfile {
	matrix := keymatrix.New()
	return &testProfile{
		caps: hal.Capabilities{
			HasDisplay: true,
			HasInput:   true,
			Width:      testWidth,
			Height:     testHeight,
		},
		display: newRecordingDisplay(),
		input:   matrix,
		matrix:  matrix,
	}
}

func (p *testProfile) Name() string                   { return "test" }
func (p *testProfile) Capabilities() hal.Capabilities { return p.caps }

func (p *testProfile) CreateDisplay() (hal.Display, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.displays++
	if p.displayErr != nil {
		return nil, p.displayErr
	}
	return p.display, nil
}

func (p *testProfile) CreateInput() (hal.Input, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inputs++
	if p.inputErr != nil {
		return nil, p.inputErr
	}
	return p.input, nil
}

func (p *testProfile) recorder() *recordingDisplay {
	return p.display.(*recordingDisplay)
}

// fakeHeap is a deterministic heap whose reclaim halves the live size
type fakeHeap struct {
	mu        sync.Mutex
	allocated uint64
	reserved  uint64
	reclaims  int
}

func (h *fakeHeap) probe() HeapSample {
	h.mu.Lock()
	defer h.mu.Unlock()
	return HeapSample{Allocated: h.allocated, Reserved: h.reserved}
}

func (h *fakeHeap) reclaim() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.allocated /= 2
	h.reclaims++
}

func (h *fakeHeap) grow(n uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.allocated += n
}

func (h *fakeHeap) Reclaims() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.reclaims
}

// stepFunc adapts a function to app.Instance
type stepFunc func(ctx context.Context, snap app.Snapshot) (app.Signal, error)

func (f stepFunc) Step(ctx context.Context, snap app.Snapshot) (app.Signal, error) {
	return f(ctx, snap)
}

// hookedApp records its lifecycle calls
type hookedApp struct {
	step    stepFunc
	enters  int
	exits   []app.ExitReason
	cleanup int
}

func (a *hookedApp) Step(ctx context.Context, snap app.Snapshot) (app.Signal, error) {
	return a.step(ctx, snap)
}

func (a *hookedApp) OnEnter()                     { a.enters++ }
func (a *hookedApp) OnExit(reason app.ExitReason) { a.exits = append(a.exits, reason) }
func (a *hookedApp) OnCleanup()                   { a.cleanup++ }

type harness struct {
	kernel  *Kernel
	profile *testProfile
	clock   *clock.Fake
	heap    *fakeHeap
	metrics *monitoring.Metrics
	logger  *logging.Logger
}

func testConfig() config.Config {
	cfg := *config.Default()
	cfg.Kernel.TargetFPS = 0
	cfg.Settings.Path = ""
	return cfg
}

func newHarness(t *testing.T, cfg config.Config, profile *testProfile, opts ...Option) *harness {
	t.Helper()
	h := &harness{
		profile: profile,
		clock:   clock.NewFake(epoch),
		heap:    &fakeHeap{allocated: 40 << 10, reserved: 128 << 10},
		metrics: monitoring.NewMetrics(prometheus.NewRegistry()),
		logger:  logging.NewBuffered(logging.DefaultBufferSize),
	}
	h.rebuild(cfg, opts...)
	return h
}

// rebuild replaces the kernel, keeping the harness clock, heap, and metrics
func (h *harness) rebuild(cfg config.Config, opts ...Option) {
	all := append([]Option{
		WithLogger(h.logger),
		WithMetrics(h.metrics),
		WithClock(h.clock),
		WithMemory(h.heap.probe, h.heap.reclaim),
	}, opts...)
	h.kernel = New(cfg, h.profile, all...)
}

func boot(t *testing.T, h *harness, ctx context.Context, def app.Descriptor) error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- h.kernel.Boot(ctx, def) }()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("Boot did not return")
		return nil
	}
}
