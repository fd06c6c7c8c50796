package rules

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/skirmishlabs/combat-api/internal/errors"
)

type classesFile struct {
	Classes []ClassDef `yaml:"classes"`
}

type skillsFile struct {
	Skills []SkillDef `yaml:"skills"`
}

type itemsFile struct {
	Items []ItemDef `yaml:"items"`
}

type stagesFile struct {
	Tuning *Tuning    `yaml:"tuning"`
	Stages []StageDef `yaml:"stages"`
}

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path) // #nosec G304 -- path comes from the operator's --data-dir flag
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", path)
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse "+path)
	}
	return nil
}

// Load reads classes.yaml, skills.yaml, items.yaml, and stages.yaml from
// dir and returns a validated registry.
func Load(dir string) (*Registry, error) {
	var cf classesFile
	if err := loadYAML(filepath.Join(dir, "classes.yaml"), &cf); err != nil {
		return nil, err
	}
	var sf skillsFile
	if err := loadYAML(filepath.Join(dir, "skills.yaml"), &sf); err != nil {
		return nil, err
	}
	var itf itemsFile
	if err := loadYAML(filepath.Join(dir, "items.yaml"), &itf); err != nil {
		return nil, err
	}
	var stf stagesFile
	if err := loadYAML(filepath.Join(dir, "stages.yaml"), &stf); err != nil {
		return nil, err
	}

	tuning := DefaultTuning()
	if stf.Tuning != nil {
		tuning = *stf.Tuning
	}

	return NewRegistry(cf.Classes, sf.Skills, itf.Items, stf.Stages, tuning)
}
