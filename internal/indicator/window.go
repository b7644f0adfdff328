package indicator

import "math"

// window is a fixed-size circular buffer of the most recent values.
type window struct {
	buf   []float64
	idx   int
	count int
}

func newWindow(size int) *window {
	return &window{
		buf: make([]float64, size),
	}
}

func (w *window) push(v float64) {
	w.buf[w.idx] = v
	w.idx = (w.idx + 1) % len(w.buf)

	if w.count < len(w.buf) {
		w.count++
	}
}

func (w *window) full() bool {
	return w.count == len(w.buf)
}

// each visits the buffered values oldest first.
func (w *window) each(fn func(v float64)) {
	start := 0
	if w.full() {
		start = w.idx
	}

	for i := 0; i < w.count; i++ {
		fn(w.buf[(start+i)%len(w.buf)])
	}
}

func (w *window) mean() float64 {
	sum := 0.0
	w.each(func(v float64) { sum += v })

	return sum / float64(w.count)
}

// stddev is the population standard deviation (denominator = window size).
func (w *window) stddev() float64 {
	mean := w.mean()
	sq := 0.0
	w.each(func(v float64) {
		d := v - mean
		sq += d * d
	})

	return math.Sqrt(sq / float64(w.count))
}

func (w *window) min() float64 {
	m := math.Inf(1)
	w.each(func(v float64) { m = math.Min(m, v) })

	return m
}

func (w *window) max() float64 {
	m := math.Inf(-1)
	w.each(func(v float64) { m = math.Max(m, v) })

	return m
}
