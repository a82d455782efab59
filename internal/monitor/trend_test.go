package monitor

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestRingBuffer(t *testing.T) {
	rb := newRingBuffer(3)
	assert.Nil(t, rb.getLast(3))

	rb.push(1)
	rb.push(2)
	assert.Equal(t, []float64{1, 2}, rb.getLast(5))

	rb.push(3)
	rb.push(4)
	assert.Equal(t, []float64{2, 3, 4}, rb.getLast(3))
	assert.Equal(t, []float64{3, 4}, rb.getLast(2))
	assert.Nil(t, rb.getLast(0))
}

func TestTrend(t *testing.T) {
	tr := newTrend(0)
	for i := range trendSize + 5 {
		tr.push(float64(i))
	}

	got := tr.last(trendSize)
	assert.Len(t, got, trendSize)
	assert.Equal(t, 5.0, got[0])
	assert.Equal(t, float64(trendSize+4), got[trendSize-1])
}

func TestRenderSparkline(t *testing.T) {
	tests := []struct {
		name  string
		data  []float64
		width int
		want  string
	}{
		{name: "empty", data: nil, width: 10, want: ""},
		{name: "zero width", data: []float64{50}, width: 0, want: ""},
		{name: "extremes", data: []float64{0, 100}, width: 10, want: "▁█"},
		{name: "over 100 clamps", data: []float64{250}, width: 5, want: "█"},
		{name: "downsample keeps peaks", data: []float64{0, 100, 0, 0}, width: 2, want: "█▁"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderSparkline(tt.data, tt.width, ColorGraph)
			assert.Contains(t, got, tt.want)
			if tt.want != "" {
				assert.Equal(t, utf8.RuneCountInString(tt.want), countBlocks(got))
			}
		})
	}
}

func countBlocks(s string) int {
	n := 0
	for _, r := range s {
		for _, b := range sparklineBlocks {
			if r == b {
				n++
				break
			}
		}
	}
	return n
}

func TestResampleData(t *testing.T) {
	assert.Nil(t, resampleData(nil, 4))
	assert.Equal(t, []float64{1, 2}, resampleData([]float64{1, 2}, 4))
	assert.Equal(t, []float64{5, 9}, resampleData([]float64{1, 5, 9, 3}, 2))
}

func TestNormalizeValue(t *testing.T) {
	assert.Equal(t, 0.0, normalizeValue(-5, 0, 100))
	assert.Equal(t, 0.5, normalizeValue(50, 0, 100))
	assert.Equal(t, 1.0, normalizeValue(150, 0, 100))
	assert.Equal(t, 0.0, normalizeValue(5, 10, 10))
}
