package kernel

import (
	"runtime"
	"runtime/debug"

	"github.com/GriffinCanCode/SlimeOS/internal/domain/app"
)

// HeapSample is one reading of the heap
type HeapSample struct {
	// Allocated is the live heap in bytes
	Allocated uint64
	// Reserved is the heap obtained from the OS in bytes
	Reserved uint64
}

// MemoryProbe reads the current heap
type MemoryProbe func() HeapSample

// Reclaimer forces an immediate collection
type Reclaimer func()

// RuntimeProbe reads the Go runtime's heap statistics
func RuntimeProbe() HeapSample {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return HeapSample{Allocated: ms.HeapAlloc, Reserved: ms.HeapSys}
}

// RuntimeReclaim collects garbage and returns freed spans to the OS
func RuntimeReclaim() {
	runtime.GC()
	debug.FreeOSMemory()
}

// memoryInfo turns a sample into the estimate apps see. Total is the
// device budget when one is declared, otherwise the reserved heap. Free is
// never negative.
func memoryInfo(s HeapSample, budget uint64) app.MemoryInfo {
	total := budget
	if total == 0 {
		total = s.Reserved
	}
	var free uint64
	if total > s.Allocated {
		free = total - s.Allocated
	}
	var pct float64
	if total > 0 {
		pct = float64(s.Allocated) / float64(total) * 100
		if pct > 100 {
			pct = 100
		}
	}
	return app.MemoryInfo{
		Free:        free,
		Allocated:   s.Allocated,
		Total:       total,
		PercentUsed: pct,
	}
}
