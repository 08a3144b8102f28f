// ABOUTME: Full-collection export and import for daylog data.
// ABOUTME: Supports JSON and YAML snapshots of every record.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/daylog/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is written into every snapshot.
const ExportVersion = "1.0"

// ExportData represents the full export format for daylog data.
type ExportData struct {
	Version    string          `json:"version" yaml:"version"`
	ExportedAt time.Time       `json:"exported_at" yaml:"exported_at"`
	Tool       string          `json:"tool" yaml:"tool"`
	Records    []models.Record `json:"records" yaml:"records"`
}

// NewExportData wraps records in a snapshot stamped with at.
func NewExportData(records []models.Record, at time.Time) *ExportData {
	if records == nil {
		records = []models.Record{}
	}
	return &ExportData{
		Version:    ExportVersion,
		ExportedAt: at,
		Tool:       "daylog",
		Records:    records,
	}
}

// GetAllData snapshots everything in the store.
func (s *Store) GetAllData() *ExportData {
	return NewExportData(s.ListAll(), s.now())
}

// ExportJSON exports all data as indented JSON.
func (s *Store) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(s.GetAllData(), "", "  ")
}

// ExportYAML exports all data as YAML.
func (s *Store) ExportYAML() ([]byte, error) {
	return yaml.Marshal(s.GetAllData())
}

// ParseExport decodes a JSON or YAML snapshot.
func ParseExport(data []byte) (*ExportData, error) {
	var export ExportData
	if err := json.Unmarshal(data, &export); err == nil {
		return &export, nil
	}
	// YAML is a superset of JSON, so this also reports JSON syntax errors
	if err := yaml.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("unmarshal export: %w", err)
	}
	return &export, nil
}

// ImportData appends the snapshot's records, re-basing colliding ids.
func (s *Store) ImportData(data *ExportData) int {
	return s.Import(data.Records)
}
