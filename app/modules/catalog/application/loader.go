package catalogservice

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fairway-labs/looper/app/modules/scoring/engine/rules"
	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

// LoadDir reads every YAML spec in a directory, compiles its rule
// expressions, and returns the specs sorted by key. Any malformed expression
// fails the whole load; catalog authoring errors must never reach scoring.
func LoadDir(dir string) ([]*sharedtypes.GameSpec, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog directory %s: %w", dir, err)
	}

	var specs []*sharedtypes.GameSpec
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		spec, err := LoadSpecFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}

	sort.Slice(specs, func(i, j int) bool { return specs[i].Key < specs[j].Key })
	return specs, nil
}

// LoadSpecFile reads and compiles a single YAML spec file.
func LoadSpecFile(path string) (*sharedtypes.GameSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec file %s: %w", path, err)
	}

	var spec sharedtypes.GameSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse spec file %s: %w", path, err)
	}
	if spec.Key == "" {
		return nil, fmt.Errorf("spec file %s has no key", path)
	}
	if err := CompileSpec(&spec); err != nil {
		return nil, fmt.Errorf("spec %s: %w", spec.Key, err)
	}
	return &spec, nil
}

// CompileSpec attaches compiled expression trees to every option carrying a
// logic or availability expression. Called once at load; scoring reads only
// the compiled forms.
func CompileSpec(spec *sharedtypes.GameSpec) error {
	for _, opt := range spec.Options {
		if opt == nil {
			continue
		}
		if opt.Logic != "" {
			node, err := rules.Compile(opt.Logic)
			if err != nil {
				return fmt.Errorf("option %q logic: %w", opt.Name, err)
			}
			opt.CompiledLogic = node
		}
		if opt.Availability != "" {
			node, err := rules.Compile(opt.Availability)
			if err != nil {
				return fmt.Errorf("option %q availability: %w", opt.Name, err)
			}
			opt.CompiledAvailability = node
		}
	}
	return nil
}

// CompileGame compiles every spec linked into a game snapshot. Snapshots are
// stored as JSON, which drops the compiled trees, so this runs after each
// repository load.
func CompileGame(game *sharedtypes.Game) error {
	for _, spec := range game.Specs {
		if spec == nil {
			continue
		}
		if err := CompileSpec(spec); err != nil {
			return fmt.Errorf("game %s: %w", game.ID, err)
		}
	}
	return nil
}
