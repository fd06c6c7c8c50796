package combat

import (
	"github.com/skirmishlabs/combat-api/internal/errors"
	"github.com/skirmishlabs/combat-api/internal/rules"
)

// resolveMove validates and applies a move. Moving does not end the turn;
// the character may still act afterward.
func (b *Battle) resolveMove(actor *Character, action Action) error {
	if actor.HasMoved {
		return errors.IllegalMove(actor.ID + " has already moved this turn")
	}
	if action.To == nil {
		return errors.InvalidArgument("move requires a destination")
	}

	to := *action.To
	reachable := ValidMoves(b.board, &b.terrain, actor, b.tuning)
	if !reachable[to] {
		return errors.IllegalMovef("%s cannot reach %s", actor.ID, to).
			WithMeta("actor_id", actor.ID)
	}

	from := *actor.Position
	if err := b.board.Move(actor, to); err != nil {
		return err
	}
	actor.HasMoved = true

	b.emit(Intent{
		Type:      IntentMove,
		ActorID:   actor.ID,
		From:      &from,
		To:        &to,
		AnimState: AnimMoving,
	})
	b.publish(TopicMove, actor, nil, map[string]any{
		"from": from.String(),
		"to":   to.String(),
	})
	return nil
}

// resolveAttack validates and applies a basic attack.
func (b *Battle) resolveAttack(actor *Character, action Action) error {
	if actor.HasActed {
		return errors.FailedPrecondition(actor.ID + " has already acted this turn")
	}

	target, err := b.findTarget(ValidAttackTargets(b.board, b.chars, actor, b.tuning), action.TargetID)
	if err != nil {
		return err
	}

	hit, err := b.rollDamage(actor, target, true, 0, "")
	if err != nil {
		return err
	}
	b.applyDamage(actor, target, hit, Intent{
		Type:      IntentAttack,
		ActorID:   actor.ID,
		TargetID:  target.ID,
		AnimState: AnimAttacking,
	})

	actor.HasActed = true
	b.publish(TopicAttack, actor, target, map[string]any{
		"outcome": string(hit.outcome),
		"damage":  hit.damage,
	})
	return nil
}

// resolveSkill validates and applies a skill cast. The mana gate is
// checked before target legality; an affordable cast deducts mana even
// when every target evades.
func (b *Battle) resolveSkill(actor *Character, action Action) error {
	if actor.HasActed {
		return errors.FailedPrecondition(actor.ID + " has already acted this turn")
	}

	skill, err := b.equippedSkill(actor, action.SkillID)
	if err != nil {
		return err
	}
	if actor.Stats.Mana < skill.ManaCost {
		return errors.InsufficientManaf("%s needs %d mana, has %d", skill.ID, skill.ManaCost, actor.Stats.Mana).
			WithMeta("skill_id", skill.ID)
	}

	switch skill.Kind {
	case rules.SkillDamage:
		return b.castDamageSkill(actor, skill, action)
	case rules.SkillHeal:
		return b.castHealSkill(actor, skill, action)
	case rules.SkillBuff, rules.SkillDebuff:
		return b.castModifierSkill(actor, skill, action)
	default:
		return errors.Internalf("skill %s has unresolvable kind %q", skill.ID, skill.Kind)
	}
}

func (b *Battle) castDamageSkill(actor *Character, skill rules.SkillDef, action Action) error {
	center, err := b.skillCenter(actor, skill, action)
	if err != nil {
		return err
	}

	affected := charactersInArea(b.chars, center, skill.Area, opposing(actor.Team))
	if len(affected) == 0 {
		return errors.IllegalTarget("no targets in the skill's area")
	}

	// Commit point: everything below mutates.
	actor.Stats.Mana -= skill.ManaCost

	for _, target := range affected {
		hit, err := b.rollDamage(actor, target, skill.Physical, skill.Power, skill.Element)
		if err != nil {
			return err
		}
		b.applyDamage(actor, target, hit, Intent{
			Type:      IntentSkill,
			ActorID:   actor.ID,
			TargetID:  target.ID,
			SkillID:   skill.ID,
			AnimState: AnimCasting,
		})
		b.publish(TopicSkill, actor, target, map[string]any{
			"skill_id": skill.ID,
			"outcome":  string(hit.outcome),
			"damage":   hit.damage,
		})
	}

	actor.HasActed = true
	return nil
}

func (b *Battle) castHealSkill(actor *Character, skill rules.SkillDef, action Action) error {
	target, err := b.findTarget(ValidSkillTargets(b.board, b.chars, actor, skill), action.TargetID)
	if err != nil {
		return err
	}

	actor.Stats.Mana -= skill.ManaCost

	amount := skill.Power + actor.EffectiveStats().Mag/2
	healed := clampMax(target.Stats.HP+amount, target.Stats.MaxHP) - target.Stats.HP
	target.Stats.HP += healed

	actor.HasActed = true
	b.emit(Intent{
		Type:      IntentSkill,
		ActorID:   actor.ID,
		TargetID:  target.ID,
		SkillID:   skill.ID,
		Healing:   healed,
		AnimState: AnimCasting,
	})
	b.publish(TopicSkill, actor, target, map[string]any{
		"skill_id": skill.ID,
		"healing":  healed,
	})
	return nil
}

func (b *Battle) castModifierSkill(actor *Character, skill rules.SkillDef, action Action) error {
	target, err := b.findTarget(ValidSkillTargets(b.board, b.chars, actor, skill), action.TargetID)
	if err != nil {
		return err
	}

	actor.Stats.Mana -= skill.ManaCost

	for stat, delta := range skill.Modifiers {
		target.Modifiers = append(target.Modifiers, StatModifier{
			SkillID:   skill.ID,
			Stat:      stat,
			Delta:     delta,
			TurnsLeft: skill.Duration,
		})
	}

	actor.HasActed = true
	b.emit(Intent{
		Type:      IntentSkill,
		ActorID:   actor.ID,
		TargetID:  target.ID,
		SkillID:   skill.ID,
		AnimState: AnimCasting,
	})
	b.publish(TopicSkill, actor, target, map[string]any{"skill_id": skill.ID})
	return nil
}

// resolveItem applies a consumable to a living ally and decrements the
// external inventory.
func (b *Battle) resolveItem(actor *Character, action Action) error {
	if actor.HasActed {
		return errors.FailedPrecondition(actor.ID + " has already acted this turn")
	}

	item, err := b.reg.Item(action.ItemID)
	if err != nil {
		return err
	}
	if item.Kind != rules.ItemConsumable {
		return errors.InvalidArgumentf("item %s cannot be used in battle", item.ID)
	}
	if b.items.Count(item.ID) <= 0 {
		return errors.FailedPrecondition("no " + item.ID + " left in inventory")
	}

	target, ok := b.chars[action.TargetID]
	if !ok || target.Team != actor.Team || !target.Alive() {
		return errors.IllegalTarget("items target a living ally")
	}

	if err := b.items.Consume(item.ID); err != nil {
		return err
	}

	healed := 0
	switch item.Effect {
	case rules.EffectHeal:
		healed = clampMax(target.Stats.HP+item.Amount, target.Stats.MaxHP) - target.Stats.HP
		target.Stats.HP += healed
	case rules.EffectRestoreMana:
		restored := clampMax(target.Stats.Mana+item.Amount, target.Stats.MaxMana) - target.Stats.Mana
		target.Stats.Mana += restored
	case rules.EffectCleanse:
		target.ClearDebuffs()
	default:
		return errors.Internalf("item %s has unresolvable effect %q", item.ID, item.Effect)
	}

	actor.HasActed = true
	b.emit(Intent{
		Type:     IntentItem,
		ActorID:  actor.ID,
		TargetID: target.ID,
		ItemID:   item.ID,
		Healing:  healed,
	})
	b.publish(TopicItem, actor, target, map[string]any{"item_id": item.ID})
	return nil
}

// resolveWait ends the character's turn: both flags are set so the
// character cannot move or act again this round.
func (b *Battle) resolveWait(actor *Character) error {
	if actor.HasActed {
		return errors.FailedPrecondition(actor.ID + " has already acted this turn")
	}

	actor.HasActed = true
	actor.HasMoved = true
	b.emit(Intent{Type: IntentWait, ActorID: actor.ID})
	return nil
}

// damageRoll is the outcome of one offensive roll against one target.
type damageRoll struct {
	outcome Outcome
	damage  int
}

// rollDamage computes damage for one attacker-target pair. Physical
// attacks pit atk against def, magical ones mag against res; the target's
// terrain cell adjusts its defense and evasion first. The crit die is
// always rolled before the evasion die so the RNG draw sequence is
// replayable.
func (b *Battle) rollDamage(attacker, target *Character, physical bool, power int, element string) (damageRoll, error) {
	atkStats := attacker.EffectiveStats()
	cell := b.terrain.At(*target.Position)
	defStats := ApplyTerrainModifiers(target.EffectiveStats(), cell)

	offense, defense := atkStats.Atk, defStats.Def
	if !physical {
		offense, defense = atkStats.Mag, defStats.Res
	}
	damage := clampMin(offense+power-defense, 1)

	if element != "" {
		if pct, ok := cell.ElementMods[element]; ok {
			damage = clampMin(damage*(100+pct)/100, 1)
		}
	}

	critDie, err := b.roller.Roll(100)
	if err != nil {
		return damageRoll{}, errors.Wrap(err, "crit roll failed")
	}
	evaDie, err := b.roller.Roll(100)
	if err != nil {
		return damageRoll{}, errors.Wrap(err, "evasion roll failed")
	}

	if evaDie <= defStats.Eva {
		return damageRoll{outcome: OutcomeMiss}, nil
	}

	outcome := OutcomeHit
	if critDie <= atkStats.Crit {
		outcome = OutcomeCrit
		damage *= 2
	}
	return damageRoll{outcome: outcome, damage: damage}, nil
}

// applyDamage mutates the target's HP, emits the offensive intent, and on
// a kill appends the defeat intent. Board removal waits for the next
// scheduling point.
func (b *Battle) applyDamage(actor, target *Character, hit damageRoll, intent Intent) {
	intent.Outcome = hit.outcome
	intent.Damage = hit.damage

	if hit.outcome == OutcomeMiss {
		intent.Damage = 0
		intent.TargetAnim = AnimEvaded
		b.emit(intent)
		return
	}

	intent.TargetAnim = AnimHit
	target.Stats.HP = clampMin(target.Stats.HP-hit.damage, 0)
	if !target.Alive() {
		intent.Outcome = OutcomeDefeat
		intent.TargetAnim = AnimDefeated
		target.AnimState = AnimDefeated
	}
	b.emit(intent)

	if !target.Alive() {
		b.emit(Intent{Type: IntentDefeat, ActorID: target.ID, AnimState: AnimDefeated})
		b.publish(TopicDefeat, actor, target, map[string]any{"target_id": target.ID})
	}
}

// equippedSkill resolves a skill the actor actually brought into battle.
func (b *Battle) equippedSkill(actor *Character, skillID string) (rules.SkillDef, error) {
	if skillID == "" {
		return rules.SkillDef{}, errors.InvalidArgument("skill id is required")
	}
	equipped := false
	for _, id := range actor.SkillIDs {
		if id == skillID {
			equipped = true
			break
		}
	}
	if !equipped {
		return rules.SkillDef{}, errors.IllegalTargetf("%s does not have %s equipped", actor.ID, skillID)
	}
	return b.reg.Skill(skillID)
}

// skillCenter resolves where an offensive skill lands: either a legal
// character target's cell or an explicit in-range cell.
func (b *Battle) skillCenter(actor *Character, skill rules.SkillDef, action Action) (Position, error) {
	if action.TargetID != "" {
		target, err := b.findTarget(ValidSkillTargets(b.board, b.chars, actor, skill), action.TargetID)
		if err != nil {
			return Position{}, err
		}
		return *target.Position, nil
	}
	if action.TargetPos != nil {
		p := *action.TargetPos
		if !p.InBounds() {
			return Position{}, errors.IllegalTargetf("cell %s is off the board", p)
		}
		if actor.Position.Manhattan(p) > skill.Range {
			return Position{}, errors.IllegalTargetf("cell %s is out of range for %s", p, skill.ID)
		}
		return p, nil
	}
	return Position{}, errors.InvalidArgument("skill requires a target")
}

// findTarget checks that the requested target is in the legal set.
func (b *Battle) findTarget(legal []*Character, targetID string) (*Character, error) {
	if targetID == "" {
		return nil, errors.InvalidArgument("target id is required")
	}
	for _, c := range legal {
		if c.ID == targetID {
			return c, nil
		}
	}
	return nil, errors.IllegalTarget("target " + targetID + " is not legal for this action").
		WithMeta("target_id", targetID)
}

func clampMax(v, ceil int) int {
	if v > ceil {
		return ceil
	}
	return v
}
