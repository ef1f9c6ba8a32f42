package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/edyn/internal/engine"
	"github.com/san-kum/edyn/internal/physics"
)

// Store persists simulation runs under a base directory, one subdirectory
// per run holding metadata.json and trajectories.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata records enough of a run's setup to replay diagnostics on its
// stored trajectories.
type RunMetadata struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Dt         float64   `json:"dt"`
	Duration   float64   `json:"duration"`
	Integrator string    `json:"integrator"`
	Ex         float64   `json:"ex"`
	Ey         float64   `json:"ey"`
	Bz         float64   `json:"bz"`
	Masses     []float64 `json:"masses"`
	Charges    []float64 `json:"charges"`
}

// Save writes a run directory and returns its generated id. Trajectory rows
// use shortest round-trip float formatting; electron-scale values would
// vanish under fixed decimals.
func (s *Store) Save(meta RunMetadata, result *engine.Result) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trajectories.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	n := len(result.FinalStates)
	header := []string{"time"}
	for i := 0; i < n; i++ {
		header = append(header,
			fmt.Sprintf("p%d_x", i), fmt.Sprintf("p%d_y", i),
			fmt.Sprintf("p%d_vx", i), fmt.Sprintf("p%d_vy", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	writeRow := func(states []physics.State) error {
		row := make([]string, 0, 1+4*n)
		row = append(row, formatFloat(states[0].Time))
		for _, st := range states {
			row = append(row,
				formatFloat(st.Position.X), formatFloat(st.Position.Y),
				formatFloat(st.Velocity.X), formatFloat(st.Velocity.Y))
		}
		return w.Write(row)
	}

	if len(result.Trajectories) == 0 {
		// Recording was off: the final states are the only samples.
		if err := writeRow(result.FinalStates); err != nil {
			return "", err
		}
		return runID, nil
	}

	samples := len(result.Trajectories[0])
	rowStates := make([]physics.State, n)
	for k := 0; k < samples; k++ {
		for i := 0; i < n; i++ {
			rowStates[i] = result.Trajectories[i][k]
		}
		if err := writeRow(rowStates); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrajectories reads a run's samples back into per-particle
// trajectories, index-aligned with the stored particle order.
func (s *Store) LoadTrajectories(runID string) ([][]physics.State, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectories.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return [][]physics.State{}, nil
	}

	cols := len(records[0])
	if (cols-1)%4 != 0 {
		return nil, fmt.Errorf("storage: malformed trajectory header in run %s", runID)
	}
	n := (cols - 1) / 4

	trajectories := make([][]physics.State, n)
	for i := range trajectories {
		trajectories[i] = make([]physics.State, 0, len(records)-1)
	}

	for _, record := range records[1:] {
		if len(record) != cols {
			return nil, fmt.Errorf("storage: malformed trajectory row in run %s", runID)
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			vals := [4]float64{}
			for j := range vals {
				v, err := strconv.ParseFloat(record[1+i*4+j], 64)
				if err != nil {
					return nil, err
				}
				vals[j] = v
			}
			trajectories[i] = append(trajectories[i], physics.State{
				Time:     t,
				Position: physics.Vector2{X: vals[0], Y: vals[1]},
				Velocity: physics.Vector2{X: vals[2], Y: vals[3]},
			})
		}
	}

	return trajectories, nil
}
