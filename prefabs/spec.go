package prefabs

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/dreamless/obj"
)

var ErrBadStats = errors.New("prefabs: bad walker stats")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// PlayerSpec tunes the girl's movement in each world.
type PlayerSpec struct {
	Name     string          `yaml:"name"`
	Physical obj.WalkerStats `yaml:"physical"`
	Dream    obj.WalkerStats `yaml:"dream"`
}

type MinionSpec struct {
	Name   string          `yaml:"name"`
	Walker obj.WalkerStats `yaml:"walker"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	if err := errors.Join(
		validateStats("physical", spec.Physical),
		validateStats("dream", spec.Dream),
	); err != nil {
		return nil, fmt.Errorf("prefabs: player.yaml: %w", err)
	}
	return &spec, nil
}

func LoadMinionSpec() (*MinionSpec, error) {
	spec, err := LoadSpec[MinionSpec]("minion.yaml")
	if err != nil {
		return nil, err
	}
	if err := validateStats("walker", spec.Walker); err != nil {
		return nil, fmt.Errorf("prefabs: minion.yaml: %w", err)
	}
	return &spec, nil
}

// LoadStats assembles the walker tuning for every entity kind.
func LoadStats() (obj.Stats, error) {
	player, err := LoadPlayerSpec()
	if err != nil {
		return obj.Stats{}, err
	}
	minion, err := LoadMinionSpec()
	if err != nil {
		return obj.Stats{}, err
	}
	return obj.Stats{
		PlayerPhysical: player.Physical,
		PlayerDream:    player.Dream,
		Minion:         minion.Walker,
	}, nil
}

// StatsModTime returns the newest modification time of the walker stat
// files on disk, or the zero time when none are overridden.
func StatsModTime() time.Time {
	var newest time.Time
	for _, name := range []string{"player.yaml", "minion.yaml"} {
		if mod, ok := ModTime(name); ok && mod.After(newest) {
			newest = mod
		}
	}
	return newest
}

func validateStats(name string, s obj.WalkerStats) error {
	var errs []error
	check := func(field string, v float32) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s.%s must be positive, got %v", ErrBadStats, name, field, v))
		}
	}
	check("accel_ground", s.AccelGround)
	check("speed_ground", s.SpeedGround)
	check("accel_air", s.AccelAir)
	check("speed_air", s.SpeedAir)
	check("jump_gravity", s.JumpGravity)
	if s.JumpTime < 0 {
		errs = append(errs, fmt.Errorf("%w: %s.jump_time is negative", ErrBadStats, name))
	}
	if s.StepTime < 0 {
		errs = append(errs, fmt.Errorf("%w: %s.step_time is negative", ErrBadStats, name))
	}
	return errors.Join(errs...)
}
