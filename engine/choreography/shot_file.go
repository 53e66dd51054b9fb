package choreography

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// ShotRecord is the on-disk form of a shot. Rotation is authored as XYZ Euler angles in radians.
type ShotRecord struct {
	Name     string     `yaml:"name"`
	Position [3]float32 `yaml:"position,flow"`
	Rotation [3]float32 `yaml:"rotation,flow"`
	Channels `yaml:",inline"`
}

// ShotFile is a YAML document holding an ordered shot sequence.
type ShotFile struct {
	Version string       `yaml:"version"`
	Shots   []ShotRecord `yaml:"shots"`
}

// Records converts shots to their on-disk form.
func Records(shots []Shot) []ShotRecord {
	out := make([]ShotRecord, len(shots))
	for i, s := range shots {
		out[i] = ShotRecord{
			Name:     s.Name,
			Position: s.Position,
			Rotation: s.Rotation,
			Channels: s.Channels,
		}
	}
	return out
}

// FromRecords resolves on-disk records into shots.
//
// Parameters:
//   - records: the authored shot records
//
// Returns:
//   - []Shot: the resolved shots
//   - error: ErrNoShots if records is empty
func FromRecords(records []ShotRecord) ([]Shot, error) {
	if len(records) == 0 {
		return nil, ErrNoShots
	}
	shots := make([]Shot, len(records))
	for i, r := range records {
		shots[i] = NewShot(r.Name, mgl32.Vec3(r.Position), mgl32.Vec3(r.Rotation), r.Channels)
	}
	return shots, nil
}

// WriteShots writes a shot sequence to a YAML file.
//
// Parameters:
//   - shots: the shots to write
//   - path: destination file path
//
// Returns:
//   - error: error if marshalling or writing fails
func WriteShots(shots []Shot, path string) error {
	data, err := yaml.Marshal(&ShotFile{Version: "1", Shots: Records(shots)})
	if err != nil {
		return fmt.Errorf("marshal shots: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ReadShots reads a shot sequence from a YAML file.
//
// Parameters:
//   - path: source file path
//
// Returns:
//   - []Shot: the resolved shots
//   - error: error if the file cannot be read or parsed, or ErrNoShots if it is empty
func ReadShots(path string) ([]Shot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file ShotFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse shots %s: %w", path, err)
	}
	shots, err := FromRecords(file.Shots)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return shots, nil
}
