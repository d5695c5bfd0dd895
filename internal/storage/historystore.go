// Package storage provides the file-backed stores Daybook persists through:
// the answer history database and the report files on disk.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/daybook-sh/daybook/pkg/models"
)

// HistoryFile is the top-level structure of the history database file.
type HistoryFile struct {
	Version string                     `json:"version"`
	Reports map[string][]models.Answer `json:"reports"`
}

// HistoryStore manages the append-only answer log, keyed per report type.
// Writes always go through Upsert, which replaces any records sharing a
// (reportDate, reportNumber) key before inserting, so regenerating a day's
// report never duplicates its own answers.
type HistoryStore interface {
	Load() error
	Save() error

	Upsert(reportType models.ReportType, answers []models.Answer) error

	AllAnswers(reportType models.ReportType, itemID string) ([]models.Answer, error)
	AnswerOn(reportType models.ReportType, itemID, date string) (*models.Answer, error)
	CountTrue(reportType models.ReportType, itemID, since string) (int, error)
	HasReport(reportType models.ReportType, date string) (bool, error)

	// AnswersInRange returns answers for the given items with
	// start <= reportDate <= end, in chronological order.
	AnswersInRange(reportType models.ReportType, itemIDs []string, start, end string) ([]models.Answer, error)

	// LastNReports returns answers for the given items from the n most
	// recent distinct report dates, newest first.
	LastNReports(reportType models.ReportType, itemIDs []string, n int) ([]models.Answer, error)

	// ReportDates returns every distinct report date, sorted ascending.
	ReportDates(reportType models.ReportType) ([]string, error)
}

type fileHistoryStore struct {
	path string
	data HistoryFile
}

// NewHistoryStore creates a HistoryStore backed by a JSON file at the given
// path. The on-disk shape is {"version": ..., "reports": {type: [answers]}}.
func NewHistoryStore(path string) HistoryStore {
	return &fileHistoryStore{
		path: path,
		data: HistoryFile{
			Version: "1.0",
			Reports: make(map[string][]models.Answer),
		},
	}
}

// Load reads the database from disk. A missing file leaves the store empty,
// ready for first use.
func (s *fileHistoryStore) Load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading history database: %w", err)
	}

	var data HistoryFile
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("parsing history database %s: %w", s.path, err)
	}
	if data.Reports == nil {
		data.Reports = make(map[string][]models.Answer)
	}
	if data.Version == "" {
		data.Version = "1.0"
	}
	s.data = data
	return nil
}

// Save writes the database to disk, creating parent directories as needed.
func (s *fileHistoryStore) Save() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating database directory: %w", err)
		}
	}

	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling history database: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("writing history database: %w", err)
	}
	return nil
}

// Upsert removes existing answers sharing a (reportDate, reportNumber) key
// with the incoming batch, then appends the batch.
func (s *fileHistoryStore) Upsert(reportType models.ReportType, answers []models.Answer) error {
	if len(answers) == 0 {
		return nil
	}

	keys := make(map[string]struct{}, len(answers))
	for _, a := range answers {
		keys[a.ReportDate+"-"+a.ReportNumber] = struct{}{}
	}

	existing := s.data.Reports[string(reportType)]
	kept := existing[:0:0]
	for _, a := range existing {
		if _, replaced := keys[a.ReportDate+"-"+a.ReportNumber]; !replaced {
			kept = append(kept, a)
		}
	}

	s.data.Reports[string(reportType)] = append(kept, answers...)
	return nil
}

func (s *fileHistoryStore) AllAnswers(reportType models.ReportType, itemID string) ([]models.Answer, error) {
	var out []models.Answer
	for _, a := range s.data.Reports[string(reportType)] {
		if a.ItemID == itemID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ReportDate < out[j].ReportDate })
	return out, nil
}

func (s *fileHistoryStore) AnswerOn(reportType models.ReportType, itemID, date string) (*models.Answer, error) {
	for _, a := range s.data.Reports[string(reportType)] {
		if a.ItemID == itemID && a.ReportDate == date {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

func (s *fileHistoryStore) CountTrue(reportType models.ReportType, itemID, since string) (int, error) {
	count := 0
	for _, a := range s.data.Reports[string(reportType)] {
		if a.ItemID == itemID && a.ReportDate >= since && a.IsTrue() {
			count++
		}
	}
	return count, nil
}

func (s *fileHistoryStore) HasReport(reportType models.ReportType, date string) (bool, error) {
	for _, a := range s.data.Reports[string(reportType)] {
		if a.ReportDate == date {
			return true, nil
		}
	}
	return false, nil
}

func (s *fileHistoryStore) AnswersInRange(reportType models.ReportType, itemIDs []string, start, end string) ([]models.Answer, error) {
	wanted := toSet(itemIDs)
	var out []models.Answer
	for _, a := range s.data.Reports[string(reportType)] {
		if _, ok := wanted[a.ItemID]; ok && a.ReportDate >= start && a.ReportDate <= end {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ReportDate < out[j].ReportDate })
	return out, nil
}

func (s *fileHistoryStore) LastNReports(reportType models.ReportType, itemIDs []string, n int) ([]models.Answer, error) {
	wanted := toSet(itemIDs)

	var matched []models.Answer
	dateSet := make(map[string]struct{})
	for _, a := range s.data.Reports[string(reportType)] {
		if _, ok := wanted[a.ItemID]; ok {
			matched = append(matched, a)
			dateSet[a.ReportDate] = struct{}{}
		}
	}

	dates := make([]string, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	if len(dates) > n {
		dates = dates[:n]
	}
	recent := toSet(dates)

	var out []models.Answer
	for _, a := range matched {
		if _, ok := recent[a.ReportDate]; ok {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ReportDate > out[j].ReportDate })
	return out, nil
}

func (s *fileHistoryStore) ReportDates(reportType models.ReportType) ([]string, error) {
	dateSet := make(map[string]struct{})
	for _, a := range s.data.Reports[string(reportType)] {
		dateSet[a.ReportDate] = struct{}{}
	}
	dates := make([]string, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates, nil
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
