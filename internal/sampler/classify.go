package sampler

// Classify labels a process I/O-bound when its block-I/O delay exceeds its
// own user+system ticks. Equality is CPU-bound.
func Classify(t ProcTicks) Bound {
	if t.IOWait > t.Own() {
		return IOBound
	}
	return CPUBound
}
