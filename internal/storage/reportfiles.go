package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/daybook-sh/daybook/pkg/models"
)

// reportFilePattern matches report filenames: YYYYMMDD-NNNNN-<type>.pjf.md
var reportFilePattern = regexp.MustCompile(`^(\d{8})-(\d{5})-(.+)\.pjf\.md$`)

// ReportFileInfo describes one report file on disk.
type ReportFileInfo struct {
	Path         string
	ReportType   models.ReportType
	ReportDate   string // YYYY-MM-DD
	ReportNumber string // zero-padded, e.g. "00003"
}

// ReportFileManager reads and writes report markdown files under the journal
// directory, one folder per report tier.
type ReportFileManager interface {
	// Write saves report content and returns the file's info. The report
	// number is the next in the tier's sequence.
	Write(reportType models.ReportType, date string, content string) (*ReportFileInfo, error)
	// Newest returns the most recent report file for the tier, or nil when
	// none exist.
	Newest(reportType models.ReportType) (*ReportFileInfo, error)
	// Read returns the content of a report file.
	Read(info *ReportFileInfo) (string, error)
	// List returns every report file for the tier, oldest first.
	List(reportType models.ReportType) ([]ReportFileInfo, error)
}

type fileReportManager struct {
	journalDir string
}

// NewReportFileManager creates a ReportFileManager rooted at journalDir.
func NewReportFileManager(journalDir string) ReportFileManager {
	return &fileReportManager{journalDir: journalDir}
}

func (m *fileReportManager) folder(reportType models.ReportType) string {
	def, ok := models.ReportDefinitions[reportType]
	if !ok {
		return filepath.Join(m.journalDir, string(reportType))
	}
	return filepath.Join(m.journalDir, def.Folder)
}

func (m *fileReportManager) Write(reportType models.ReportType, date string, content string) (*ReportFileInfo, error) {
	folder := m.folder(reportType)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return nil, fmt.Errorf("creating report folder: %w", err)
	}

	number, err := m.nextNumber(reportType)
	if err != nil {
		return nil, err
	}

	compact := strings.ReplaceAll(date, "-", "")
	name := fmt.Sprintf("%s-%s-%s.pjf.md", compact, number, reportType)
	path := filepath.Join(folder, name)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("writing report file: %w", err)
	}

	return &ReportFileInfo{
		Path:         path,
		ReportType:   reportType,
		ReportDate:   date,
		ReportNumber: number,
	}, nil
}

func (m *fileReportManager) Newest(reportType models.ReportType) (*ReportFileInfo, error) {
	infos, err := m.List(reportType)
	if err != nil {
		return nil, err
	}
	if len(infos) == 0 {
		return nil, nil
	}
	newest := infos[len(infos)-1]
	return &newest, nil
}

func (m *fileReportManager) Read(info *ReportFileInfo) (string, error) {
	raw, err := os.ReadFile(info.Path)
	if err != nil {
		return "", fmt.Errorf("reading report file %s: %w", info.Path, err)
	}
	return string(raw), nil
}

func (m *fileReportManager) List(reportType models.ReportType) ([]ReportFileInfo, error) {
	folder := m.folder(reportType)
	entries, err := os.ReadDir(folder)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing report folder %s: %w", folder, err)
	}

	var infos []ReportFileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match := reportFilePattern.FindStringSubmatch(entry.Name())
		if match == nil || match[3] != string(reportType) {
			continue
		}
		compact := match[1]
		infos = append(infos, ReportFileInfo{
			Path:         filepath.Join(folder, entry.Name()),
			ReportType:   reportType,
			ReportDate:   compact[:4] + "-" + compact[4:6] + "-" + compact[6:8],
			ReportNumber: match[2],
		})
	}

	// Filenames sort chronologically: date first, then sequence number.
	sort.Slice(infos, func(i, j int) bool {
		return filepath.Base(infos[i].Path) < filepath.Base(infos[j].Path)
	})
	return infos, nil
}

// nextNumber returns the next zero-padded sequence number for the tier.
func (m *fileReportManager) nextNumber(reportType models.ReportType) (string, error) {
	infos, err := m.List(reportType)
	if err != nil {
		return "", err
	}

	maxSeen := 0
	for _, info := range infos {
		n, err := strconv.Atoi(info.ReportNumber)
		if err != nil {
			continue
		}
		if n > maxSeen {
			maxSeen = n
		}
	}
	return fmt.Sprintf("%05d", maxSeen+1), nil
}
