package storage

import (
	"encoding/json"
	"os"

	"github.com/san-kum/edyn/internal/physics"
)

// ExportData is the flat JSON form of a stored run.
type ExportData struct {
	Meta         RunMetadata       `json:"meta"`
	Trajectories [][]physics.State `json:"trajectories"`
}

// ExportJSON writes a stored run's metadata and trajectories to path as
// indented JSON.
func (s *Store) ExportJSON(runID, path string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	trajectories, err := s.LoadTrajectories(runID)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Meta: *meta, Trajectories: trajectories})
}
