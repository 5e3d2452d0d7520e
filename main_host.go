//go:build !tinygo

package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sync/errgroup"

	"fibercore/arch"
	"fibercore/fiber"
	"fibercore/internal/buildinfo"
	"fibercore/platform"
)

func main() {
	var tickMs int
	var eventHz int
	var verbose bool
	flag.IntVar(&tickMs, "tick-ms", int(fiber.FIBER_TICK_PERIOD_MS), "Simulated timer tick period, in milliseconds.")
	flag.IntVar(&eventHz, "event-hz", 4, "Simulated event-bus rate, in events per second.")
	flag.BoolVar(&verbose, "v", false, "Verbose logging.")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := platform.NewStderrLogger()
	logger.WriteLineString("fibercore " + buildinfo.Short() + " starting")
	if err := run(ctx, logger, tickMs, eventHz, verbose); err != nil && err != context.Canceled {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger platform.Logger, tickMs, eventHz int, verbose bool) error {
	engine := arch.NewHostEngine()
	idle := platform.NewHostIdle(nil)
	sched := fiber.Init(idle, engine, logger)

	demoFibers(sched, logger, verbose)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		t := time.NewTicker(time.Duration(tickMs) * time.Millisecond)
		defer t.Stop()
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-t.C:
				sched.Tick()
			}
		}
	})

	g.Go(func() error {
		interval := time.Second / time.Duration(maxInt(eventHz, 1))
		t := time.NewTicker(interval)
		defer t.Stop()
		src := rand.New(rand.NewSource(1))
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-t.C:
				sched.Dispatch(fiber.Event{
					Source: uint16(src.Intn(4) + 1),
					Value:  uint16(src.Intn(100)),
				})
			}
		}
	})

	// The goroutine that called fiber.Init above is the scheduler's main
	// fiber; it must be the one that keeps calling Schedule, the same way
	// the loop in an embedded main() never returns. Handing that loop to
	// a different goroutine would leave main's saved context with no one
	// ever parked on it again.
	for gctx.Err() == nil {
		sched.Schedule()
	}

	return g.Wait()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// demoFibers wires up a handful of fibers exercising Sleep, WaitForEvent,
// and ForkOnBlock against the simulated timer and event-bus ISRs above.
func demoFibers(sched *fiber.Scheduler, logger platform.Logger, verbose bool) {
	sched.CreateFiber(func() {
		for i := 0; i < 3; i++ {
			sched.Sleep(500)
			if verbose {
				logger.WriteLineString("heartbeat fiber woke from sleep")
			}
		}
	}, func() {
		logger.WriteLineString("heartbeat fiber finished")
	})

	sched.CreateFiber(func() {
		sched.WaitForEvent(2, fiber.ValueAny)
		logger.WriteLineString("watcher fiber observed id=2 event")
	}, func() {
		logger.WriteLineString("watcher fiber finished")
	})

	sched.ForkOnBlock(func() {
		sched.WaitForEvent(fiber.IDAny, 50)
		logger.WriteLineString("fork-on-block handler resumed after blocking wait")
	})
}
