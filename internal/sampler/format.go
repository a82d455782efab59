package sampler

import "fmt"

// FormatCPUTime renders ticks as minutes:seconds.hundredths, e.g. "3:07.25".
func FormatCPUTime(ticks uint64, hz int64) string {
	if hz <= 0 {
		return "0:00.00"
	}
	whole := ticks / uint64(hz)
	minutes := whole / 60
	seconds := float64(whole%60) + float64(ticks%uint64(hz))/float64(hz)
	return fmt.Sprintf("%d:%05.2f", minutes, seconds)
}

// MemoryUsedPercent returns (total-free)/total as a percentage, 0 for an
// empty or inconsistent reading.
func MemoryUsedPercent(totalKB, freeKB uint64) float64 {
	if totalKB == 0 || freeKB > totalKB {
		return 0
	}
	return float64(totalKB-freeKB) / float64(totalKB) * 100
}

// KBToMB converts kibibytes to mebibytes.
func KBToMB(kb uint64) float64 {
	return float64(kb) / 1024
}
