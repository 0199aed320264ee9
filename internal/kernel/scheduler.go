package kernel

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/SlimeOS/internal/domain/app"
	"github.com/GriffinCanCode/SlimeOS/internal/hal"
	"github.com/GriffinCanCode/SlimeOS/internal/shared/keycode"
)

// Boot runs apps until ctx is cancelled, starting with defaultApp and
// returning to it after every exit or fault. It returns ctx.Err() on
// shutdown and a *DriverInitError when a driver cannot be built.
func (k *Kernel) Boot(ctx context.Context, defaultApp app.Descriptor) error {
	if err := defaultApp.Validate(); err != nil {
		return fmt.Errorf("default app: %w", err)
	}

	k.mu.Lock()
	if k.booted {
		k.mu.Unlock()
		return ErrAlreadyBooted
	}
	k.booted = true
	k.mu.Unlock()

	if err := k.watchdog.Configure(k.cfg.Watchdog.Timeout); err != nil {
		k.setState(StateHalted)
		return err
	}
	defer func() {
		if err := k.watchdog.Stop(); err != nil {
			k.logger.Warn("Failed to disarm watchdog", zap.Error(err))
		}
	}()

	k.logger.Info("Kernel booting",
		zap.String("device", k.profile.Name()),
		zap.String("default_app", defaultApp.ID),
		zap.Duration("watchdog", k.cfg.Watchdog.Timeout),
		zap.Int("target_fps", k.cfg.Kernel.TargetFPS))

	target := defaultApp
	for {
		next, err := k.run(ctx, target, defaultApp)
		if err != nil {
			k.setState(StateHalted)
			if die := asDriverInit(err); die != nil {
				k.logger.Error("Driver initialization failed", zap.Error(die))
			} else {
				k.logger.Info("Kernel stopped", zap.Error(err))
			}
			return err
		}
		target = next
	}
}

// run executes one instance of desc from construction to teardown and
// returns the descriptor to run next
func (k *Kernel) run(ctx context.Context, desc, fallback app.Descriptor) (app.Descriptor, error) {
	k.setState(StateStarting)
	sess := k.newSession(desc)

	k.screen.Reset()
	k.clearInput()

	var inst app.Instance
	fault, fatal := capture(func() { inst = desc.New(sess) })
	if fatal != nil {
		return app.Descriptor{}, fatal
	}
	if fault == nil && inst == nil {
		fault = errors.New("factory returned no instance")
	}
	if fault != nil {
		k.fault(sess, 0, fault)
		return fallback, k.teardown(sess, nil, "crash")
	}

	k.setCurrent(sess)
	k.setState(StateRunning)
	k.metrics.RecordAppStart(desc.ID)
	sess.logger.Info("App started", zap.String("name", desc.DisplayName()))

	if e, ok := inst.(app.Enterer); ok {
		if err := k.hook(sess, "enter", e.OnEnter); err != nil {
			return app.Descriptor{}, err
		}
	}

	next, reason, err := k.loop(ctx, sess, inst, fallback)
	if err != nil {
		if asDriverInit(err) == nil {
			_ = k.teardown(sess, inst, reason)
		}
		return app.Descriptor{}, err
	}
	return next, k.teardown(sess, inst, reason)
}

// loop steps inst until it exits, launches, faults, or ctx ends. It returns
// the next descriptor and the switch reason.
func (k *Kernel) loop(ctx context.Context, sess *session, inst app.Instance, fallback app.Descriptor) (app.Descriptor, string, error) {
	for step := uint64(0); ; step++ {
		if err := k.waitFrame(ctx); err != nil {
			k.exit(sess, inst, app.ExitInterrupt)
			return app.Descriptor{}, string(app.ExitInterrupt), err
		}

		k.watchdog.Feed()

		snap, err := k.snapshot(sess, step)
		if err != nil {
			return app.Descriptor{}, "", err
		}

		start := k.clock.Now()
		var sig app.Signal
		var stepErr error
		fault, fatal := capture(func() { sig, stepErr = inst.Step(ctx, snap) })
		elapsed := k.clock.Now().Sub(start)
		sess.stats.Observe(elapsed)
		k.metrics.RecordStep(sess.desc.ID, elapsed)

		if fatal != nil {
			return app.Descriptor{}, "", fatal
		}
		if fault == nil && stepErr != nil {
			if die := asDriverInit(stepErr); die != nil {
				return app.Descriptor{}, "", die
			}
			fault = stepErr
		}
		if fault != nil {
			k.fault(sess, step, fault)
			return fallback, "crash", nil
		}

		switch sig.Kind {
		case app.SignalContinue:
			continue
		case app.SignalExit:
			if err := k.exit(sess, inst, app.ExitNormal); err != nil {
				return app.Descriptor{}, "", err
			}
			return fallback, string(app.ExitNormal), nil
		case app.SignalLaunch:
			if err := sig.Target.Validate(); err != nil {
				k.fault(sess, step, fmt.Errorf("launch: %w", err))
				return fallback, "crash", nil
			}
			if err := k.exit(sess, inst, app.ExitLaunch); err != nil {
				return app.Descriptor{}, "", err
			}
			sess.logger.Info("Launching app", zap.String("target", sig.Target.ID))
			return sig.Target, string(app.ExitLaunch), nil
		default:
			k.fault(sess, step, fmt.Errorf("unknown signal %d", sig.Kind))
			return fallback, "crash", nil
		}
	}
}

// waitFrame paces steps to the target frame rate
func (k *Kernel) waitFrame(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if k.limiter == nil {
		return nil
	}
	now := k.clock.Now()
	if delay := k.limiter.ReserveN(now, 1).DelayFrom(now); delay > 0 {
		k.clock.Sleep(delay)
	}
	return ctx.Err()
}

func (k *Kernel) snapshot(sess *session, step uint64) (app.Snapshot, error) {
	snap := app.Snapshot{
		InstanceID: sess.id.String(),
		Step:       step,
		FreeBytes:  k.loader.Memory().Free,
		Pressed:    app.KeySet{},
	}
	if !k.profile.Capabilities().HasInput {
		return snap, nil
	}
	in, err := k.loader.Input()
	if err != nil {
		return snap, err
	}
	if pl, ok := in.(hal.PressedLister); ok {
		snap.Pressed = app.NewKeySet(pl.Pressed()...)
		return snap, nil
	}
	for code, down := range in.Keys(keycode.All()) {
		if down {
			snap.Pressed[code] = struct{}{}
		}
	}
	return snap, nil
}

// fault leaves no instance current, shows the crash screen, and counts it
func (k *Kernel) fault(sess *session, step uint64, err error) {
	f := &AppFault{
		AppID:      sess.desc.ID,
		AppName:    sess.desc.DisplayName(),
		InstanceID: sess.id.String(),
		Step:       step,
		Err:        err,
	}
	k.setCurrent(nil)
	k.setState(StateFaulted)
	k.metrics.RecordFault(f.AppID)

	fields := []zap.Field{zap.String("app", f.AppID), zap.Uint64("step", step), zap.Error(err)}
	var pe *PanicError
	if errors.As(err, &pe) {
		fields = append(fields, zap.Bool("is_runtime", pe.IsRuntime()), zap.ByteString("stack", pe.Stack))
	}
	k.logger.Error("App crashed", fields...)

	k.crash.Handle(f.AppName, f.Description())
}

// exit runs OnExit; a panic there is logged and ignored
func (k *Kernel) exit(sess *session, inst app.Instance, reason app.ExitReason) error {
	e, ok := inst.(app.Exiter)
	if !ok {
		return nil
	}
	return k.hook(sess, "exit", func() { e.OnExit(reason) })
}

// teardown always runs OnCleanup, retires the facade, and reclaims memory
func (k *Kernel) teardown(sess *session, inst app.Instance, reason string) error {
	k.setState(StateSwitching)

	var fatal error
	if c, ok := inst.(app.Cleaner); ok {
		fatal = k.hook(sess, "cleanup", c.OnCleanup)
	}

	sum := sess.stats.Summary()
	sess.logger.Info("App stopped",
		zap.String("reason", reason),
		zap.Uint64("steps", sum.Count),
		zap.Float64("step_mean_s", sum.Mean),
		zap.Float64("step_p95_s", sum.P95))

	sess.retire()
	k.setCurrent(nil)
	k.metrics.RecordSwitch(reason)

	mem := k.loader.Reclaim()
	k.metrics.RecordReclaim(mem.Free, mem.Allocated)
	return fatal
}

// hook runs a lifecycle callback. Faults are swallowed; only a driver
// failure comes back.
func (k *Kernel) hook(sess *session, name string, fn func()) error {
	fault, fatal := capture(fn)
	if fatal != nil {
		return fatal
	}
	if fault != nil {
		sess.logger.Warn("Lifecycle hook failed", zap.String("hook", name), zap.Error(fault))
	}
	return nil
}

func (k *Kernel) clearInput() {
	if !k.loader.InputLoaded() {
		return
	}
	in, err := k.loader.Input()
	if err != nil {
		return
	}
	if c, ok := in.(hal.StateClearer); ok {
		c.ClearState()
	}
}

// capture runs fn and converts a panic into a fault, except a driver
// failure, which is returned as fatal
func capture(fn func()) (fault error, fatal error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if err, ok := r.(error); ok {
			if die := asDriverInit(err); die != nil {
				fatal = die
				return
			}
		}
		fault = &PanicError{Value: r, Stack: debug.Stack()}
	}()
	fn()
	return nil, nil
}
