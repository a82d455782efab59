package monitor

// trend keeps the most recent system CPU readings for the header sparkline.
// It is only touched from Update.
type trend struct {
	cpu *ringBuffer
}

func newTrend(size int) *trend {
	if size <= 0 {
		size = trendSize
	}
	return &trend{cpu: newRingBuffer(size)}
}

func (t *trend) push(cpuPercent float64) {
	t.cpu.push(cpuPercent)
}

// last returns up to count readings, oldest first.
func (t *trend) last(count int) []float64 {
	return t.cpu.getLast(count)
}

// ringBuffer is a fixed-size circular buffer for float64 values.
type ringBuffer struct {
	data  []float64
	head  int
	count int
	size  int
}

// newRingBuffer creates a new ring buffer with the specified capacity.
func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{
		data: make([]float64, size),
		size: size,
	}
}

// push adds a value to the ring buffer.
func (r *ringBuffer) push(value float64) {
	r.data[r.head] = value
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// getLast returns the last count values in chronological order (oldest first).
func (r *ringBuffer) getLast(count int) []float64 {
	if count <= 0 || r.count == 0 {
		return nil
	}

	if count > r.count {
		count = r.count
	}

	result := make([]float64, count)

	// head is the next write position, so the newest value is at head-1.
	start := (r.head - count + r.size) % r.size

	for i := 0; i < count; i++ {
		result[i] = r.data[(start+i)%r.size]
	}

	return result
}
