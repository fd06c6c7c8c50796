// Package combat implements the turn-based tactical combat engine: an 8x8
// grid battle between a player squad and an enemy squad, with initiative
// scheduling, terrain-aware movement and targeting, a damage and skill
// effect engine, and a greedy enemy AI. The engine is an in-process
// library: it consumes already-resolved rules data, mutates its own state
// synchronously, and reports what happened through an ordered stream of
// animation intents. It never touches storage, network, or rendering.
package combat

import (
	"context"
	"sort"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/skirmishlabs/combat-api/internal/errors"
	"github.com/skirmishlabs/combat-api/internal/rules"
)

// Phase is the battle state machine phase.
type Phase string

// Phases
const (
	PhaseInitializing  Phase = "initializing"
	PhaseCharacterTurn Phase = "character_turn"
	PhaseBattleOver    Phase = "battle_over"
)

// Winner identifies how the battle ended.
type Winner string

// Winners
const (
	WinnerPlayer Winner = "player"
	WinnerEnemy  Winner = "enemy"
	WinnerDraw   Winner = "draw"
)

// Result is the single immutable artifact handed back to the surrounding
// application once the battle is over.
type Result struct {
	Winner             Winner   `json:"winner"`
	SurvivingPlayerIDs []string `json:"surviving_player_ids"`
	TurnsElapsed       int      `json:"turns_elapsed"`
}

// Config assembles a battle. Characters are constructed by the caller
// (NewCharacter) and handed over unplaced; the battle owns them from here.
type Config struct {
	ID        string
	StageID   string
	Terrain   TerrainMap
	Players   []*Character
	Enemies   []*Character
	Rules     *rules.Registry
	Roller    dice.Roller
	Bus       events.EventBus // optional
	Inventory Inventory       // optional, nil means empty
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.ID == "" {
		vb.RequiredField("ID")
	}
	if len(c.Players) == 0 {
		vb.RequiredField("Players")
	}
	if len(c.Enemies) == 0 {
		vb.RequiredField("Enemies")
	}
	if c.Rules == nil {
		vb.RequiredField("Rules")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

// Battle owns all combat state. It is single-threaded and turn-serial by
// construction: exactly one character acts at a time, every action
// resolves synchronously and completely, and enemy turns run in the
// caller's stack.
type Battle struct {
	id      string
	stageID string
	terrain TerrainMap
	board   *Board
	reg     *rules.Registry
	tuning  rules.Tuning
	roller  dice.Roller
	bus     events.EventBus
	items   Inventory

	roster []*Character
	chars  map[string]*Character

	phase      Phase
	round      int
	order      []string
	orderIdx   int
	roundLimit int

	seq     int
	intents []Intent
	result  *Result
}

// deployRows spreads a squad from the board's center outward.
var deployRows = [BoardSize]int{3, 4, 2, 5, 1, 6, 0, 7}

// New builds and initializes a battle: characters are placed, the first
// round's turn order is computed, and the battle is ready for its first
// action.
func New(cfg *Config) (*Battle, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	b := &Battle{
		id:         cfg.ID,
		stageID:    cfg.StageID,
		terrain:    cfg.Terrain,
		board:      NewBoard(),
		reg:        cfg.Rules,
		tuning:     cfg.Rules.Tuning(),
		roller:     cfg.Roller,
		bus:        cfg.Bus,
		items:      cfg.Inventory,
		chars:      make(map[string]*Character),
		phase:      PhaseInitializing,
		roundLimit: cfg.Rules.Tuning().RoundLimit,
	}
	if b.items == nil {
		b.items = NewCountedInventory(nil)
	}

	// Validate equipped skills up front so a missing definition is a
	// construction-time error, never a silent in-battle fallback.
	for _, c := range append(append([]*Character{}, cfg.Players...), cfg.Enemies...) {
		for _, skillID := range c.SkillIDs {
			if _, err := b.reg.Skill(skillID); err != nil {
				return nil, errors.Wrapf(err, "character %s equips unknown skill", c.ID)
			}
		}
	}

	if len(cfg.Players) > BoardSize*2 || len(cfg.Enemies) > BoardSize*2 {
		return nil, errors.InvalidArgument("squad does not fit its deployment zone")
	}

	if err := b.deploy(cfg.Players, 0, 1); err != nil {
		return nil, err
	}
	if err := b.deploy(cfg.Enemies, BoardSize-1, BoardSize-2); err != nil {
		return nil, err
	}

	b.emit(Intent{Type: IntentBattleStart})
	b.beginRound()
	return b, nil
}

func (b *Battle) deploy(squad []*Character, primaryCol, overflowCol int) error {
	for i, c := range squad {
		if c.ID == "" {
			return errors.InvalidArgument("character with empty id")
		}
		if _, dup := b.chars[c.ID]; dup {
			return errors.AlreadyExists("duplicate character id: " + c.ID)
		}

		col := primaryCol
		rowIdx := i
		if rowIdx >= BoardSize {
			col = overflowCol
			rowIdx -= BoardSize
		}
		if err := b.board.Place(c, Position{Row: deployRows[rowIdx], Col: col}); err != nil {
			return err
		}

		b.chars[c.ID] = c
		b.roster = append(b.roster, c)
	}
	return nil
}

// ID returns the battle's unique identifier.
func (b *Battle) ID() string { return b.id }

// StageID returns the stage this battle was created from.
func (b *Battle) StageID() string { return b.stageID }

// Phase returns the current state machine phase.
func (b *Battle) Phase() Phase { return b.phase }

// Round returns the current round number, starting at 1.
func (b *Battle) Round() int { return b.round }

// Terrain returns the battle's immutable terrain map.
func (b *Battle) Terrain() *TerrainMap { return &b.terrain }

// Board returns the battle's board.
func (b *Battle) Board() *Board { return b.board }

// Characters returns the full roster in deployment order, defeated
// characters included (their records are retained for reporting).
func (b *Battle) Characters() []*Character {
	out := make([]*Character, len(b.roster))
	copy(out, b.roster)
	return out
}

// Character returns a roster member by ID.
func (b *Battle) Character(id string) (*Character, error) {
	c, ok := b.chars[id]
	if !ok {
		return nil, errors.NotFound("character not found: " + id)
	}
	return c, nil
}

// TurnOrder returns the current round's remaining initiative sequence.
func (b *Battle) TurnOrder() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// Current returns the character whose turn it is, or nil once the battle
// is over.
func (b *Battle) Current() *Character {
	if b.phase != PhaseCharacterTurn || b.orderIdx >= len(b.order) {
		return nil
	}
	return b.chars[b.order[b.orderIdx]]
}

// Result returns the battle result once the battle is over.
func (b *Battle) Result() (*Result, bool) {
	if b.result == nil {
		return nil, false
	}
	r := *b.result
	return &r, true
}

// Intents returns the animation-intent stream starting at the given
// sequence number.
func (b *Battle) Intents(sinceSeq int) []Intent {
	if sinceSeq < 0 {
		sinceSeq = 0
	}
	if sinceSeq >= len(b.intents) {
		return nil
	}
	out := make([]Intent, len(b.intents)-sinceSeq)
	copy(out, b.intents[sinceSeq:])
	return out
}

// Submit validates and applies one action for the character whose turn it
// is. Illegal actions are rejected without mutating any state. A Move does
// not end the turn; every other action does.
func (b *Battle) Submit(action Action) error {
	if b.phase == PhaseBattleOver {
		return errors.BattleOver("battle " + b.id + " is already decided")
	}
	if b.phase != PhaseCharacterTurn {
		return errors.FailedPrecondition("battle is not accepting actions")
	}

	actor, ok := b.chars[action.ActorID]
	if !ok {
		return errors.NotFound("character not found: " + action.ActorID)
	}
	current := b.Current()
	if current == nil || current.ID != actor.ID {
		return errors.FailedPrecondition("it is not " + actor.ID + "'s turn")
	}
	if !actor.Alive() {
		// A defeated character scheduled for a turn is a scheduling bug;
		// fail the action safely rather than corrupt state.
		return errors.Internal("turn dispatched for defeated character " + actor.ID)
	}

	var err error
	switch action.Kind {
	case ActionMove:
		err = b.resolveMove(actor, action)
	case ActionAttack:
		err = b.resolveAttack(actor, action)
	case ActionSkill:
		err = b.resolveSkill(actor, action)
	case ActionItem:
		err = b.resolveItem(actor, action)
	case ActionWait:
		err = b.resolveWait(actor)
	default:
		err = errors.InvalidArgumentf("unknown action kind %q", action.Kind)
	}
	if err != nil {
		return err
	}

	if actor.HasActed {
		b.finishTurn()
	}
	return nil
}

// Forfeit concedes the battle on behalf of the player squad. The enemy
// team wins immediately.
func (b *Battle) Forfeit() error {
	if b.phase == PhaseBattleOver {
		return errors.BattleOver("battle " + b.id + " is already decided")
	}
	b.finish(WinnerEnemy)
	return nil
}

// beginRound recomputes the turn order over living characters, resets
// per-round flags, and starts the first turn. Reaching the configured
// round ceiling forces a draw before another round starts, so a drawn
// result reports exactly RoundLimit turns elapsed.
func (b *Battle) beginRound() {
	if b.roundLimit > 0 && b.round >= b.roundLimit {
		b.finish(WinnerDraw)
		return
	}
	b.round++

	for _, c := range b.roster {
		if c.Alive() {
			c.HasMoved = false
			c.HasActed = false
		}
	}

	b.order = ComputeTurnOrder(b.roster)
	b.orderIdx = 0
	b.phase = PhaseCharacterTurn
	b.emit(Intent{Type: IntentRoundStart})

	if len(b.order) == 0 {
		// Both squads wiped simultaneously is unreachable through normal
		// resolution, but fail closed.
		b.finish(WinnerDraw)
		return
	}
	b.startTurn()
}

func (b *Battle) startTurn() {
	current := b.chars[b.order[b.orderIdx]]
	current.TickModifiers()
	b.emit(Intent{Type: IntentTurnStart, ActorID: current.ID})
}

// finishTurn is the scheduling point: newly defeated characters leave the
// board here (not mid-action), victory is checked, and the scheduler
// advances to the next living character or the next round.
func (b *Battle) finishTurn() {
	for _, c := range b.roster {
		if !c.Alive() && c.Position != nil && b.board.At(*c.Position) == c.ID {
			b.board.Remove(c)
		}
	}

	if winner, over := b.checkVictory(); over {
		b.finish(winner)
		return
	}

	for {
		b.orderIdx++
		if b.orderIdx >= len(b.order) {
			b.beginRound()
			return
		}
		if next := b.chars[b.order[b.orderIdx]]; next.Alive() {
			b.startTurn()
			return
		}
	}
}

func (b *Battle) checkVictory() (Winner, bool) {
	playersAlive, enemiesAlive := 0, 0
	for _, c := range b.roster {
		if !c.Alive() {
			continue
		}
		if c.Team == TeamPlayer {
			playersAlive++
		} else {
			enemiesAlive++
		}
	}
	switch {
	case enemiesAlive == 0:
		return WinnerPlayer, true
	case playersAlive == 0:
		return WinnerEnemy, true
	default:
		return "", false
	}
}

func (b *Battle) finish(winner Winner) {
	b.phase = PhaseBattleOver

	var survivors []string
	for _, c := range b.roster {
		if c.Team == TeamPlayer && c.Alive() {
			survivors = append(survivors, c.ID)
		}
	}
	sort.Strings(survivors)

	b.result = &Result{
		Winner:             winner,
		SurvivingPlayerIDs: survivors,
		TurnsElapsed:       b.round,
	}
	b.emit(Intent{Type: IntentBattleOver, Winner: string(winner)})
	b.publish(TopicBattleOver, nil, nil, map[string]any{"winner": string(winner)})
}

// emit appends one entry to the intent stream, stamping sequence and
// round.
func (b *Battle) emit(intent Intent) {
	intent.Seq = b.seq
	intent.Round = b.round
	b.seq++
	b.intents = append(b.intents, intent)
}

// publish mirrors an intent onto the event bus, if one was provided.
func (b *Battle) publish(topic string, source, target *Character, data map[string]any) {
	if b.bus == nil {
		return
	}
	evt := events.NewGameEvent(topic, entityOrNil(source), entityOrNil(target))
	for k, v := range data {
		evt.Context().Set(k, v)
	}
	// Subscriber failures must never affect simulation state.
	_ = b.bus.Publish(context.Background(), evt)
}

// entityOrNil avoids handing the event bus a non-nil interface wrapping a
// nil pointer.
func entityOrNil(c *Character) core.Entity {
	if c == nil {
		return nil
	}
	return c
}
