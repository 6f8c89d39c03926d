package version

import (
	"fmt"
	"time"
)

// Заполняется линкером через -ldflags, см. tools/buildstamp.
var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
	BuildCI     string
)

// releaseEpoch — день нулевой сборки проекта. BuildID считается
// как число суток от этой даты.
var releaseEpoch = time.Date(
	2025, time.December, 4,
	0, 0, 0, 0,
	time.UTC,
)

// VersionInfo describes the build metadata in structured form.
type VersionInfo struct {
	BuildID    int
	BuildDate  string
	Commit     string
	Branch     string
	CI         string
	Calculated bool
	Error      string
}

// BuildIDFor считает номер сборки для произвольной даты. Вынесено
// отдельно, чтобы tools/buildstamp и тесты не трогали глобальный
// BuildDate.
func BuildIDFor(date string) (int, error) {
	if date == "" {
		return 0, fmt.Errorf("build date is empty")
	}

	t, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid build date %q: %w", date, err)
	}

	if t.Before(releaseEpoch) {
		return 0, fmt.Errorf("build date %s is before epoch", date)
	}

	// Считаем в часах: обе даты в UTC, переходы на летнее время не мешают.
	days := int(t.Sub(releaseEpoch).Hours() / 24)
	return days, nil
}

func CalculateBuildID() (int, error) {
	return BuildIDFor(BuildDate)
}

// Info returns structured version information.
// Safe to call at any time.
func Info() VersionInfo {
	id, err := CalculateBuildID()

	info := VersionInfo{
		BuildDate: BuildDate,
		Commit:    BuildCommit,
		Branch:    BuildBranch,
		CI:        BuildCI,
	}

	if err != nil {
		info.Error = err.Error()
		return info
	}

	info.BuildID = id
	info.Calculated = true
	return info
}

// String returns a human-readable build string.
func String() string {
	info := Info()

	if !info.Calculated {
		return fmt.Sprintf("Build unknown (%s)", info.Error)
	}

	return fmt.Sprintf(
		"Build %d (%s) commit[%s] branch[%s] ci[%s]",
		info.BuildID,
		info.BuildDate,
		coalesce(info.Commit, "unknown"),
		coalesce(info.Branch, "unknown"),
		coalesce(info.CI, "local"),
	)
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
