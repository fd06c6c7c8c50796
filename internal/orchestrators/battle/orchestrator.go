// Package battle implements the battle orchestrator: it turns stage and
// squad definitions into running combat engine sessions, applies player
// actions, drives enemy turns, and persists the verdict.
package battle

//go:generate mockgen -destination=mock/mock_service.go -package=battlemock github.com/skirmishlabs/combat-api/internal/orchestrators/battle Service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/skirmishlabs/combat-api/internal/combat"
	"github.com/skirmishlabs/combat-api/internal/errors"
	"github.com/skirmishlabs/combat-api/internal/pkg/clock"
	"github.com/skirmishlabs/combat-api/internal/pkg/idgen"
	"github.com/skirmishlabs/combat-api/internal/repositories/battles"
	"github.com/skirmishlabs/combat-api/internal/rules"
)

// MaxSquadSize caps how many characters a player may field.
const MaxSquadSize = 8

// Service defines the interface for battle operations
type Service interface {
	// CreateBattle builds a battle from a stage and a player squad
	CreateBattle(ctx context.Context, input *CreateBattleInput) (*CreateBattleOutput, error)

	// SubmitAction applies one player action and drives enemy turns until
	// the next player turn or the end of the battle
	SubmitAction(ctx context.Context, input *SubmitActionInput) (*SubmitActionOutput, error)

	// GetBattle returns a snapshot of an active or finished battle
	GetBattle(ctx context.Context, input *GetBattleInput) (*GetBattleOutput, error)

	// ListEvents reads the ordered animation-intent stream
	ListEvents(ctx context.Context, input *ListEventsInput) (*ListEventsOutput, error)

	// ForfeitBattle concedes an active battle to the enemy team
	ForfeitBattle(ctx context.Context, input *ForfeitBattleInput) (*ForfeitBattleOutput, error)
}

// Config holds the dependencies for the battle orchestrator
type Config struct {
	BattleRepo  battles.Repository
	Rules       *rules.Registry
	IDGenerator idgen.Generator
	Clock       clock.Clock

	// Optional: battles mirror their intents onto this bus
	EventBus events.EventBus
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.BattleRepo == nil {
		vb.RequiredField("BattleRepo")
	}
	if c.Rules == nil {
		vb.RequiredField("Rules")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type orchestrator struct {
	repo  battles.Repository
	rules *rules.Registry
	idGen idgen.Generator
	clock clock.Clock
	bus   events.EventBus

	// The engine is single-threaded; one lock serializes every session
	// mutation. Battles are short-lived and boards are 8x8, so contention
	// is not a concern at this scale.
	mu       sync.Mutex
	sessions map[string]*session
}

// session is one active battle plus the bookkeeping needed to persist it.
type session struct {
	battle    *combat.Battle
	seed      int64
	createdAt time.Time
}

// NewOrchestrator creates a new battle orchestrator with the provided
// dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		repo:     cfg.BattleRepo,
		rules:    cfg.Rules,
		idGen:    cfg.IDGenerator,
		clock:    cfg.Clock,
		bus:      cfg.EventBus,
		sessions: make(map[string]*session),
	}, nil
}

// CreateBattle builds a battle from a stage and a player squad
func (o *orchestrator) CreateBattle(ctx context.Context, input *CreateBattleInput) (*CreateBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if len(input.Squad) == 0 {
		return nil, errors.InvalidArgument("squad cannot be empty")
	}
	if len(input.Squad) > MaxSquadSize {
		return nil, errors.InvalidArgumentf("squad exceeds %d characters", MaxSquadSize)
	}

	stage, err := o.rules.Stage(input.StageID)
	if err != nil {
		return nil, err
	}

	battleID := o.idGen.Generate()

	players, err := o.buildSquad(input.Squad)
	if err != nil {
		return nil, err
	}
	enemies, err := o.buildEnemies(stage)
	if err != nil {
		return nil, err
	}

	inventory, err := o.buildInventory(input.Items)
	if err != nil {
		return nil, err
	}

	seed := o.clock.Now().UnixNano()
	if input.Seed != nil {
		seed = *input.Seed
	}

	b, err := combat.New(&combat.Config{
		ID:        battleID,
		StageID:   stage.ID,
		Terrain:   combat.GenerateTerrainMap(stage.ID, stage.Boss),
		Players:   players,
		Enemies:   enemies,
		Rules:     o.rules,
		Roller:    combat.NewSeededRoller(seed),
		Bus:       o.bus,
		Inventory: inventory,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize battle")
	}

	sess := &session{battle: b, seed: seed, createdAt: o.clock.Now()}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.sessions[battleID] = sess

	// Faster enemies may own the opening turns.
	if err := o.driveEnemies(ctx, sess); err != nil {
		delete(o.sessions, battleID)
		return nil, err
	}

	slog.Info("battle created",
		"battle_id", battleID,
		"stage_id", stage.ID,
		"squad_size", len(players),
		"enemy_count", len(enemies),
		"seed", seed,
	)

	return &CreateBattleOutput{
		State:   o.snapshot(sess),
		Intents: b.Intents(0),
	}, nil
}

// SubmitAction applies one player action and drives enemy turns until the
// next player turn or the end of the battle
func (o *orchestrator) SubmitAction(ctx context.Context, input *SubmitActionInput) (*SubmitActionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.BattleID == "" {
		return nil, errors.InvalidArgument("battle ID is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	sess, ok := o.sessions[input.BattleID]
	if !ok {
		return nil, errors.NotFound("no active battle: " + input.BattleID)
	}
	b := sess.battle

	actor, err := b.Character(input.Action.ActorID)
	if err != nil {
		return nil, err
	}
	if actor.Team != combat.TeamPlayer {
		return nil, errors.FailedPrecondition("only player characters accept submitted actions")
	}

	sinceSeq := len(b.Intents(0))
	if err := b.Submit(input.Action); err != nil {
		return nil, err
	}

	if err := o.driveEnemies(ctx, sess); err != nil {
		return nil, err
	}

	return &SubmitActionOutput{
		State:   o.snapshot(sess),
		Intents: b.Intents(sinceSeq),
	}, nil
}

// GetBattle returns a snapshot of an active or finished battle
func (o *orchestrator) GetBattle(ctx context.Context, input *GetBattleInput) (*GetBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.BattleID == "" {
		return nil, errors.InvalidArgument("battle ID is required")
	}

	o.mu.Lock()
	sess, ok := o.sessions[input.BattleID]
	if ok {
		state := o.snapshot(sess)
		o.mu.Unlock()
		return &GetBattleOutput{State: state}, nil
	}
	o.mu.Unlock()

	out, err := o.repo.Get(ctx, battles.GetInput{ID: input.BattleID})
	if err != nil {
		return nil, err
	}
	return &GetBattleOutput{State: stateFromRecord(out.Record)}, nil
}

// ListEvents reads the ordered animation-intent stream
func (o *orchestrator) ListEvents(ctx context.Context, input *ListEventsInput) (*ListEventsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.BattleID == "" {
		return nil, errors.InvalidArgument("battle ID is required")
	}
	sinceSeq := input.SinceSeq
	if sinceSeq < 0 {
		sinceSeq = 0
	}

	o.mu.Lock()
	sess, ok := o.sessions[input.BattleID]
	if ok {
		intents := sess.battle.Intents(sinceSeq)
		o.mu.Unlock()
		return &ListEventsOutput{Intents: intents, NextSeq: sinceSeq + len(intents)}, nil
	}
	o.mu.Unlock()

	out, err := o.repo.Get(ctx, battles.GetInput{ID: input.BattleID})
	if err != nil {
		return nil, err
	}

	intents := out.Record.Intents
	if sinceSeq >= len(intents) {
		intents = nil
	} else {
		intents = intents[sinceSeq:]
	}
	return &ListEventsOutput{Intents: intents, NextSeq: sinceSeq + len(intents)}, nil
}

// ForfeitBattle concedes an active battle to the enemy team
func (o *orchestrator) ForfeitBattle(ctx context.Context, input *ForfeitBattleInput) (*ForfeitBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.BattleID == "" {
		return nil, errors.InvalidArgument("battle ID is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	sess, ok := o.sessions[input.BattleID]
	if !ok {
		return nil, errors.NotFound("no active battle: " + input.BattleID)
	}

	if err := sess.battle.Forfeit(); err != nil {
		return nil, err
	}
	if err := o.persist(ctx, sess); err != nil {
		return nil, err
	}

	slog.Info("battle forfeited", "battle_id", input.BattleID)
	return &ForfeitBattleOutput{State: o.snapshot(sess)}, nil
}

// driveEnemies plays enemy turns until a player's turn comes up or the
// battle ends, then persists the verdict if there is one. Callers hold the
// session lock.
func (o *orchestrator) driveEnemies(ctx context.Context, sess *session) error {
	b := sess.battle
	for b.Phase() == combat.PhaseCharacterTurn {
		current := b.Current()
		if current == nil || current.Team != combat.TeamEnemy {
			break
		}
		if err := b.PlayEnemyTurn(); err != nil {
			return errors.Wrap(err, "enemy turn failed")
		}
	}

	if b.Phase() == combat.PhaseBattleOver {
		return o.persist(ctx, sess)
	}
	return nil
}

// persist writes the finished battle's record and retires the session.
// Callers hold the session lock.
func (o *orchestrator) persist(ctx context.Context, sess *session) error {
	b := sess.battle
	result, ok := b.Result()
	if !ok {
		return errors.Internal("persist called before the battle was decided")
	}

	record := &battles.BattleRecord{
		ID:                 b.ID(),
		StageID:            b.StageID(),
		Seed:               sess.seed,
		Winner:             string(result.Winner),
		SurvivingPlayerIDs: result.SurvivingPlayerIDs,
		TurnsElapsed:       result.TurnsElapsed,
		Intents:            b.Intents(0),
		CreatedAt:          sess.createdAt,
		CompletedAt:        o.clock.Now(),
	}
	if _, err := o.repo.Save(ctx, battles.SaveInput{Record: record}); err != nil {
		return errors.Wrap(err, "failed to persist battle record")
	}

	delete(o.sessions, b.ID())
	slog.Info("battle decided",
		"battle_id", b.ID(),
		"winner", record.Winner,
		"turns", record.TurnsElapsed,
	)
	return nil
}

// buildSquad constructs the player characters from their specs.
func (o *orchestrator) buildSquad(specs []CharacterSpec) ([]*combat.Character, error) {
	squad := make([]*combat.Character, 0, len(specs))
	for i, spec := range specs {
		class, err := o.rules.Class(spec.ClassID)
		if err != nil {
			return nil, err
		}

		equipment := make([]rules.ItemDef, 0, len(spec.EquipmentIDs))
		for _, itemID := range spec.EquipmentIDs {
			item, err := o.rules.Item(itemID)
			if err != nil {
				return nil, err
			}
			if item.Kind != rules.ItemEquipment {
				return nil, errors.InvalidArgumentf("item %s is not equipment", itemID)
			}
			equipment = append(equipment, item)
		}

		id := spec.ID
		if id == "" {
			id = o.idGen.Generate()
		}
		name := spec.Name
		if name == "" {
			name = class.Name
		}
		level := spec.Level
		if level <= 0 {
			level = 1
		}

		c, err := combat.NewCharacter(id, name, combat.TeamPlayer, class, level, equipment, spec.SkillIDs, false)
		if err != nil {
			return nil, errors.Wrapf(err, "squad member %d", i)
		}
		squad = append(squad, c)
	}
	return squad, nil
}

// buildEnemies constructs the enemy squad from the stage definition.
func (o *orchestrator) buildEnemies(stage rules.StageDef) ([]*combat.Character, error) {
	enemies := make([]*combat.Character, 0, len(stage.Enemies))
	for i, unit := range stage.Enemies {
		class, err := o.rules.Class(unit.Class)
		if err != nil {
			return nil, errors.Wrapf(err, "stage %s enemy %d", stage.ID, i)
		}

		name := unit.Name
		if name == "" {
			name = class.Name
		}
		level := unit.Level
		if level <= 0 {
			level = 1
		}

		c, err := combat.NewCharacter(o.idGen.Generate(), name, combat.TeamEnemy, class, level, nil, unit.SkillIDs, unit.IsBoss)
		if err != nil {
			return nil, errors.Wrapf(err, "stage %s enemy %d", stage.ID, i)
		}
		enemies = append(enemies, c)
	}
	return enemies, nil
}

// buildInventory validates the consumables carried into battle.
func (o *orchestrator) buildInventory(items map[string]int) (combat.Inventory, error) {
	for itemID, count := range items {
		item, err := o.rules.Item(itemID)
		if err != nil {
			return nil, err
		}
		if item.Kind != rules.ItemConsumable {
			return nil, errors.InvalidArgumentf("item %s cannot be carried as a consumable", itemID)
		}
		if count < 0 {
			return nil, errors.InvalidArgumentf("item %s has negative count", itemID)
		}
	}
	return combat.NewCountedInventory(items), nil
}

// snapshot builds the read-only battle state served to host layers.
func (o *orchestrator) snapshot(sess *session) *BattleState {
	b := sess.battle

	terrain := make([][]string, combat.BoardSize)
	for row := 0; row < combat.BoardSize; row++ {
		terrain[row] = make([]string, combat.BoardSize)
		for col := 0; col < combat.BoardSize; col++ {
			terrain[row][col] = string(b.Terrain()[row][col])
			if terrain[row][col] == "" {
				terrain[row][col] = string(combat.TerrainGrassland)
			}
		}
	}

	roster := b.Characters()
	chars := make([]CharacterState, 0, len(roster))
	for _, c := range roster {
		var pos *combat.Position
		if c.Position != nil {
			p := *c.Position
			pos = &p
		}
		chars = append(chars, CharacterState{
			ID:        c.ID,
			Name:      c.Name,
			Class:     c.Class,
			Team:      c.Team,
			Level:     c.Level,
			IsBoss:    c.IsBoss,
			Position:  pos,
			Stats:     c.Stats,
			SkillIDs:  c.SkillIDs,
			Modifiers: append([]combat.StatModifier(nil), c.Modifiers...),
			HasMoved:  c.HasMoved,
			HasActed:  c.HasActed,
			AnimState: c.AnimState,
		})
	}

	state := &BattleState{
		ID:         b.ID(),
		StageID:    b.StageID(),
		Phase:      b.Phase(),
		Round:      b.Round(),
		Terrain:    terrain,
		TurnOrder:  b.TurnOrder(),
		Characters: chars,
		CreatedAt:  sess.createdAt,
	}
	if current := b.Current(); current != nil {
		state.CurrentCharacterID = current.ID
	}
	if result, ok := b.Result(); ok {
		state.Result = result
	}
	return state
}

// stateFromRecord rebuilds the verdict view of a finished battle.
func stateFromRecord(record *battles.BattleRecord) *BattleState {
	return &BattleState{
		ID:      record.ID,
		StageID: record.StageID,
		Phase:   combat.PhaseBattleOver,
		Round:   record.TurnsElapsed,
		Result: &combat.Result{
			Winner:             combat.Winner(record.Winner),
			SurvivingPlayerIDs: record.SurvivingPlayerIDs,
			TurnsElapsed:       record.TurnsElapsed,
		},
		CreatedAt: record.CreatedAt,
	}
}
