package rules

import (
	"github.com/skirmishlabs/combat-api/internal/errors"
)

// Registry is the resolved, immutable rules data for the whole process.
// Lookups return NotFound; nothing in the registry mutates after Load.
type Registry struct {
	classes map[string]ClassDef
	skills  map[string]SkillDef
	items   map[string]ItemDef
	stages  map[string]StageDef
	tuning  Tuning
}

// Class returns the class definition for the given ID.
func (r *Registry) Class(id string) (ClassDef, error) {
	def, ok := r.classes[id]
	if !ok {
		return ClassDef{}, errors.NotFoundf("class %q is not defined", id).
			WithMeta("class_id", id)
	}
	return def, nil
}

// Skill returns the skill definition for the given ID.
func (r *Registry) Skill(id string) (SkillDef, error) {
	def, ok := r.skills[id]
	if !ok {
		return SkillDef{}, errors.NotFoundf("skill %q is not defined", id).
			WithMeta("skill_id", id)
	}
	return def, nil
}

// Item returns the item definition for the given ID.
func (r *Registry) Item(id string) (ItemDef, error) {
	def, ok := r.items[id]
	if !ok {
		return ItemDef{}, errors.NotFoundf("item %q is not defined", id).
			WithMeta("item_id", id)
	}
	return def, nil
}

// Stage returns the stage definition for the given ID.
func (r *Registry) Stage(id string) (StageDef, error) {
	def, ok := r.stages[id]
	if !ok {
		return StageDef{}, errors.NotFoundf("stage %q is not defined", id).
			WithMeta("stage_id", id)
	}
	return def, nil
}

// Tuning returns the combat tuning constants.
func (r *Registry) Tuning() Tuning {
	return r.tuning
}

// NewRegistry builds a registry from already-parsed definitions. Used by
// tests; production code goes through Load.
func NewRegistry(classes []ClassDef, skills []SkillDef, items []ItemDef, stages []StageDef, tuning Tuning) (*Registry, error) {
	r := &Registry{
		classes: make(map[string]ClassDef, len(classes)),
		skills:  make(map[string]SkillDef, len(skills)),
		items:   make(map[string]ItemDef, len(items)),
		stages:  make(map[string]StageDef, len(stages)),
		tuning:  tuning,
	}

	for _, c := range classes {
		if c.ID == "" {
			return nil, errors.InvalidArgument("class definition with empty id")
		}
		if _, dup := r.classes[c.ID]; dup {
			return nil, errors.AlreadyExists("duplicate class id: " + c.ID)
		}
		if err := validateClass(c); err != nil {
			return nil, err
		}
		r.classes[c.ID] = c
	}
	for _, sk := range skills {
		if sk.ID == "" {
			return nil, errors.InvalidArgument("skill definition with empty id")
		}
		if _, dup := r.skills[sk.ID]; dup {
			return nil, errors.AlreadyExists("duplicate skill id: " + sk.ID)
		}
		if err := validateSkill(sk); err != nil {
			return nil, err
		}
		r.skills[sk.ID] = sk
	}
	for _, it := range items {
		if it.ID == "" {
			return nil, errors.InvalidArgument("item definition with empty id")
		}
		if _, dup := r.items[it.ID]; dup {
			return nil, errors.AlreadyExists("duplicate item id: " + it.ID)
		}
		r.items[it.ID] = it
	}
	for _, st := range stages {
		if st.ID == "" {
			return nil, errors.InvalidArgument("stage definition with empty id")
		}
		if _, dup := r.stages[st.ID]; dup {
			return nil, errors.AlreadyExists("duplicate stage id: " + st.ID)
		}
		for _, e := range st.Enemies {
			if _, ok := r.classes[e.Class]; !ok {
				return nil, errors.InvalidArgumentf("stage %q references undefined class %q", st.ID, e.Class)
			}
			for _, skillID := range e.SkillIDs {
				if _, ok := r.skills[skillID]; !ok {
					return nil, errors.InvalidArgumentf("stage %q references undefined skill %q", st.ID, skillID)
				}
			}
		}
		r.stages[st.ID] = st
	}

	return r, nil
}

func validateClass(c ClassDef) error {
	for _, key := range RequiredStatKeys {
		if _, ok := c.Base[key]; !ok {
			return errors.InvalidClassDataf("class %q base stats missing %q", c.ID, key).
				WithMeta("class_id", c.ID).
				WithMeta("stat", key)
		}
		if _, ok := c.Growth[key]; !ok {
			return errors.InvalidClassDataf("class %q growth rates missing %q", c.ID, key).
				WithMeta("class_id", c.ID).
				WithMeta("stat", key)
		}
	}
	return nil
}

func validateSkill(sk SkillDef) error {
	switch sk.Kind {
	case SkillDamage, SkillHeal, SkillBuff, SkillDebuff:
	default:
		return errors.InvalidArgumentf("skill %q has unknown kind %q", sk.ID, sk.Kind)
	}
	if sk.Range < 0 || sk.Area < 0 || sk.ManaCost < 0 {
		return errors.InvalidArgumentf("skill %q has negative range, area, or mana cost", sk.ID)
	}
	if (sk.Kind == SkillBuff || sk.Kind == SkillDebuff) && sk.Duration <= 0 {
		return errors.InvalidArgumentf("skill %q needs a positive duration", sk.ID)
	}
	return nil
}
