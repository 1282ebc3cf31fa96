package metrics

import (
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
)

// ProcessStats снимает показатели процесса для строки статистики
type ProcessStats struct {
	StartTime time.Time
	proc      *process.Process
}

// NewProcessStats создает новый экземпляр для текущего процесса
func NewProcessStats() (*ProcessStats, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть процесс: %w", err)
	}
	return &ProcessStats{StartTime: time.Now(), proc: proc}, nil
}

// Uptime возвращает время работы в виде строки
func (ps *ProcessStats) Uptime() string {
	return FormatUptime(time.Since(ps.StartTime))
}

// FormatUptime форматирует длительность как "1д 2ч 3м 4с", опуская старшие нули
func FormatUptime(uptime time.Duration) string {
	days := int(uptime.Hours()) / 24
	hours := int(uptime.Hours()) % 24
	minutes := int(uptime.Minutes()) % 60
	seconds := int(uptime.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dд %dч %dм %dс", days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%dч %dм %dс", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dм %dс", minutes, seconds)
	default:
		return fmt.Sprintf("%dс", seconds)
	}
}

// MemoryMB возвращает RSS процесса в MB
func (ps *ProcessStats) MemoryMB() (float64, error) {
	info, err := ps.proc.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return float64(info.RSS) / 1024 / 1024, nil
}

// CPUPercent возвращает использование CPU процессом в процентах
func (ps *ProcessStats) CPUPercent() (float64, error) {
	cpuPercent, err := ps.proc.CPUPercent()
	if err != nil {
		// Если не удалось получить метрику процесса, попробуем системную
		cpuPercents, err := cpu.Percent(100*time.Millisecond, false)
		if err != nil || len(cpuPercents) == 0 {
			return 0, err
		}
		return cpuPercents[0], nil
	}
	return cpuPercent, nil
}
