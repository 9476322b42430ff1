package models

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

const IncompleteDataMessage = "Some data files are missing or corrupted."

type LoadResult struct {
	Series []UserSeries
	// Incomplete is set when at least one day file could not be used.
	Incomplete bool
	// Warnings combines the per-day errors, nil when every file loaded.
	Warnings error
}

// Alert converts the load outcome into the banner shown on start.
func (r *LoadResult) Alert() Alert {
	if !r.Incomplete {
		return Alert{}
	}
	return Alert{Message: IncompleteDataMessage, Visible: true}
}

func DayFile(dataDir string, day int) string {
	return filepath.Join(dataDir, fmt.Sprintf("day%d.json", day))
}

// LoadSeries reads day1.json..day<window>.json from dataDir and merges them
// into one series per user, sorted by user id.
func LoadSeries(dataDir string, window int) (*LoadResult, error) {
	if window < 1 {
		return nil, fmt.Errorf("invalid window size %d", window)
	}

	result := &LoadResult{}
	byUser := make(map[string]*UserSeries)

	for day := 1; day <= window; day++ {
		records, err := readDay(DayFile(dataDir, day))
		if err != nil {
			logrus.Warnf("day %d skipped: %v", day, err)
			result.Incomplete = true
			result.Warnings = multierr.Append(result.Warnings, fmt.Errorf("day %d: %w", day, err))
			continue
		}

		for _, rec := range records {
			series, ok := byUser[rec.User]
			if !ok {
				series = newUserSeries(rec.User, window)
				byUser[rec.User] = series
			}
			series.set(day-1, rec)
		}
	}

	result.Series = make([]UserSeries, 0, len(byUser))
	for _, series := range byUser {
		result.Series = append(result.Series, *series)
	}
	names := newNameCollator()
	slices.SortStableFunc(result.Series, func(a, b UserSeries) int {
		return names.CompareString(a.User, b.User)
	})

	return result, nil
}

func readDay(path string) ([]DailyRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read day file: %w", err)
	}

	var records []DailyRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse day file %s: %w", path, err)
	}
	return records, nil
}

// LoadSaved reads a record written by ViewModel.SaveSelected.
func LoadSaved(path string) (*UserSeries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read saved file: %w", err)
	}

	var series UserSeries
	if err := json.Unmarshal(data, &series); err != nil {
		return nil, fmt.Errorf("failed to unmarshal saved data: %w", err)
	}
	return &series, nil
}
