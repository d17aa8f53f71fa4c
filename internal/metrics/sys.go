package metrics

import (
	"fmt"
	"os"
	"runtime"
)

// SysHealth represents real-time process metrics.
type SysHealth struct {
	AllocMB    uint64
	SysMB      uint64
	NumGC      uint32
	Goroutines int
	DBSize     string
}

// GetSysHealth collects real-time health data. dbPath points at the SQLite
// file holding all persisted state.
func GetSysHealth(dbPath string) SysHealth {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return SysHealth{
		AllocMB:    m.Alloc / 1024 / 1024,
		SysMB:      m.Sys / 1024 / 1024,
		NumGC:      m.NumGC,
		Goroutines: runtime.NumGoroutine(),
		DBSize:     databaseSize(dbPath),
	}
}

func databaseSize(dbPath string) string {
	info, err := os.Stat(dbPath)
	if err != nil {
		return "unknown"
	}
	return humanBytes(info.Size())
}

func humanBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
