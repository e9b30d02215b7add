package exploration

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/questline/questline/internal/entities"
	apperrors "github.com/questline/questline/internal/errors"
	"github.com/questline/questline/internal/notify"
	"github.com/questline/questline/internal/repositories/explorations"
	progressrepo "github.com/questline/questline/internal/repositories/progress"
	"github.com/questline/questline/internal/services/catalog"
	"github.com/questline/questline/internal/services/combat"
	"github.com/questline/questline/internal/services/drop"
	"github.com/questline/questline/internal/services/event"
	"github.com/questline/questline/internal/services/reward"
)

// service implements the Service interface
type service struct {
	explorationRepo explorations.Repository
	progressRepo    progressrepo.Repository
	catalogService  catalog.Service
	combatService   combat.Service
	eventService    event.Service
	dropService     drop.Service
	notifier        notify.Notifier
	timeProvider    TimeProvider

	// one mutex per player so at most one mutation per session is in
	// flight; the repository's versioned save is the second line
	locks sync.Map
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	ExplorationRepository explorations.Repository // Required
	ProgressRepository    progressrepo.Repository // Required
	CatalogService        catalog.Service         // Required
	CombatService         combat.Service          // Required
	EventService          event.Service           // Required
	DropService           drop.Service            // Required
	Notifier              notify.Notifier         // Optional
	TimeProvider          TimeProvider            // Optional
}

// NewService creates a new exploration service
func NewService(cfg *ServiceConfig) Service {
	if cfg.ExplorationRepository == nil {
		panic("exploration repository is required")
	}
	if cfg.ProgressRepository == nil {
		panic("progress repository is required")
	}
	if cfg.CatalogService == nil {
		panic("catalog service is required")
	}
	if cfg.CombatService == nil {
		panic("combat service is required")
	}
	if cfg.EventService == nil {
		panic("event service is required")
	}
	if cfg.DropService == nil {
		panic("drop service is required")
	}

	svc := &service{
		explorationRepo: cfg.ExplorationRepository,
		progressRepo:    cfg.ProgressRepository,
		catalogService:  cfg.CatalogService,
		combatService:   cfg.CombatService,
		eventService:    cfg.EventService,
		dropService:     cfg.DropService,
		notifier:        cfg.Notifier,
		timeProvider:    cfg.TimeProvider,
	}

	if svc.notifier == nil {
		svc.notifier = notify.NewNoopNotifier()
	}
	if svc.timeProvider == nil {
		svc.timeProvider = realTimeProvider{}
	}

	return svc
}

func (s *service) lockFor(playerID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(playerID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Enter starts a session in the named dungeon
func (s *service) Enter(ctx context.Context, playerID, dungeonSlug string) (*EnterResult, error) {
	if strings.TrimSpace(playerID) == "" {
		return nil, apperrors.InvalidArgument("player ID is required")
	}

	mu := s.lockFor(playerID)
	mu.Lock()
	defer mu.Unlock()

	record, err := s.loadProgress(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if !record.HasClass() {
		return nil, apperrors.FailedPrecondition("class selection must be completed before exploring").
			WithMeta("player_id", playerID)
	}

	dungeon, err := s.catalogService.GetDungeon(ctx, dungeonSlug)
	if err != nil {
		return nil, err
	}

	// A stale session for the same player is overwritten, not resumed
	if err := s.explorationRepo.Delete(ctx, playerID); err != nil {
		return nil, apperrors.Wrap(err, "failed to clear stale exploration state")
	}

	stats := record.EffectiveStats()
	state := &entities.ExplorationState{
		PlayerID:    playerID,
		DungeonSlug: dungeon.Slug,
		FloorIndex:  1,
		CurrentHP:   stats.MaxHP,
		StartTime:   s.timeProvider.Now(),
	}

	if err := s.explorationRepo.Save(ctx, state); err != nil {
		return nil, apperrors.Wrap(err, "failed to save exploration state")
	}

	return &EnterResult{
		DungeonSlug: dungeon.Slug,
		DungeonName: dungeon.Name,
		MaxFloor:    dungeon.MaxFloor(),
		FloorIndex:  state.FloorIndex,
		CurrentHP:   state.CurrentHP,
		Stats:       stats,
	}, nil
}

// Explore runs one step of the state machine
func (s *service) Explore(ctx context.Context, playerID string) (*StepOutcome, error) {
	mu := s.lockFor(playerID)
	mu.Lock()
	defer mu.Unlock()

	state, err := s.loadSession(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if state.Status.InShop {
		return nil, apperrors.FailedPrecondition("a shop visit is in progress; continue or leave first")
	}
	if state.Status.InCombat {
		return nil, apperrors.FailedPrecondition("combat is in progress; resolve the fight first")
	}

	return s.exploreStep(ctx, state)
}

// Fight resolves pending combat
func (s *service) Fight(ctx context.Context, playerID string) (*StepOutcome, error) {
	mu := s.lockFor(playerID)
	mu.Lock()
	defer mu.Unlock()

	state, err := s.loadSession(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if !state.Status.InCombat {
		return nil, apperrors.FailedPrecondition("no combat is pending")
	}

	record, dungeon, floor, retry, err := s.resolveFloor(ctx, state)
	if err != nil {
		return nil, err
	}
	if retry != nil {
		return retry, nil
	}

	roster, names := s.pendingRoster(dungeon, floor, state)
	return s.runCombat(ctx, state, record, dungeon, floor, roster, names, nil)
}

// Continue resumes after a shop pause
func (s *service) Continue(ctx context.Context, playerID string) (*StepOutcome, error) {
	mu := s.lockFor(playerID)
	mu.Lock()
	defer mu.Unlock()

	state, err := s.loadSession(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if !state.Status.InShop && !state.Status.InCombat && state.ShopCombatMarker == nil {
		// nothing interrupted; behave like a normal explore step
		return s.exploreStep(ctx, state)
	}

	// Post-shop combat preparation: finish any events the pause left
	// pending, then re-derive the floor's roster — events already run
	// before the pause never run again
	record, dungeon, floor, retry, err := s.resolveFloor(ctx, state)
	if err != nil {
		return nil, err
	}
	if retry != nil {
		return retry, nil
	}

	state.Status.InShop = false

	extras, paused, err := s.runEvents(ctx, state, record, floor, s.pendingEvents(floor, state.ActiveEvents))
	if err != nil {
		return nil, err
	}
	if paused != nil {
		// another shop event: pause again
		return paused, nil
	}

	roster, names := s.buildRoster(dungeon, floor)

	state.Status.InCombat = true
	state.ActiveMonsters = rosterIDs(roster)
	state.ShopCombatMarker = &entities.ShopCombatMarker{
		FloorIndex:   state.FloorIndex,
		MonsterCount: len(roster),
	}

	if err := s.explorationRepo.Save(ctx, state); err != nil {
		return nil, apperrors.Wrap(err, "failed to save exploration state")
	}

	return &StepOutcome{
		Result:    ResultCombat,
		Monsters:  names,
		NextFloor: state.FloorIndex,
		CurrentHP: state.CurrentHP,
		Logs:      append(extras.logs, fmt.Sprintf("%d monsters bar the way forward", len(roster))),
	}, nil
}

// Summarize finalizes whatever session exists
func (s *service) Summarize(ctx context.Context, playerID string) (*Summary, error) {
	mu := s.lockFor(playerID)
	mu.Lock()
	defer mu.Unlock()

	record, err := s.loadProgress(ctx, playerID)
	if err != nil {
		return nil, err
	}

	state, err := s.explorationRepo.Get(ctx, playerID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load exploration state")
	}

	if state == nil {
		// Nothing to finalize; report current standings without mutating
		// anything
		return &Summary{
			Finalized:      false,
			Level:          record.DungeonLevel,
			ExploredFloors: record.ExploredFloorList(),
		}, nil
	}

	s.sanitize(state)

	levelUp, err := reward.Settle(record)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to settle reward ledger")
	}
	record.MarkExplored(state.FloorIndex)

	if err := s.progressRepo.Save(ctx, record); err != nil {
		return nil, apperrors.Wrap(err, "failed to save player progress")
	}
	if err := s.explorationRepo.Delete(ctx, playerID); err != nil {
		return nil, apperrors.Wrap(err, "failed to clear exploration state")
	}

	return &Summary{
		Finalized:        true,
		TotalExp:         state.RunExp,
		TotalGold:        state.RunGold,
		Level:            record.DungeonLevel,
		LevelUp:          levelUp.Leveled(),
		StatPointsGained: levelUp.StatPointsGained,
		ExploredFloors:   record.ExploredFloorList(),
	}, nil
}

// loadProgress fetches the durable record, mapping its absence to the
// needs-class precondition
func (s *service) loadProgress(ctx context.Context, playerID string) (*entities.PlayerProgress, error) {
	record, err := s.progressRepo.Get(ctx, playerID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		return nil, apperrors.Wrap(err, "failed to load player progress")
	}
	return record, nil
}

// loadSession fetches and sanitizes the live session
func (s *service) loadSession(ctx context.Context, playerID string) (*entities.ExplorationState, error) {
	state, err := s.explorationRepo.Get(ctx, playerID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load exploration state")
	}
	if state == nil {
		return nil, apperrors.FailedPrecondition("no active exploration session").
			WithMeta("player_id", playerID)
	}

	s.sanitize(state)
	return state, nil
}

func (s *service) sanitize(state *entities.ExplorationState) {
	if repairs := state.Sanitize(); len(repairs) > 0 {
		log.Printf("repaired exploration state for %s: %s", state.PlayerID, strings.Join(repairs, ", "))
	}
}

// resolveFloor loads progress, dungeon, and the current floor. A missing
// floor snaps the session back to the first floor and yields a retry
// outcome instead of an error.
func (s *service) resolveFloor(ctx context.Context, state *entities.ExplorationState) (*entities.PlayerProgress, *entities.Dungeon, *entities.Floor, *StepOutcome, error) {
	record, err := s.loadProgress(ctx, state.PlayerID)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	dungeon, err := s.catalogService.GetDungeon(ctx, state.DungeonSlug)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	floor := dungeon.FloorByIndex(state.FloorIndex)
	if floor == nil {
		// Self-heal an inconsistent session rather than erroring
		first := dungeon.FirstFloorIndex()
		log.Printf("session for %s points at missing floor %d of %s, snapping to %d",
			state.PlayerID, state.FloorIndex, dungeon.Slug, first)

		state.FloorIndex = first
		state.Status = entities.ExplorationStatus{}
		state.ShopCombatMarker = nil
		state.ActiveMonsters = nil
		state.ActiveEvents = nil

		if err := s.explorationRepo.Save(ctx, state); err != nil {
			return nil, nil, nil, nil, apperrors.Wrap(err, "failed to save exploration state")
		}

		return nil, nil, nil, &StepOutcome{
			Result:    ResultRetry,
			NextFloor: state.FloorIndex,
			CurrentHP: state.CurrentHP,
			Logs:      []string{"the passage has shifted; you find yourself back at the entrance"},
		}, nil
	}

	return record, dungeon, floor, nil, nil
}

// exploreStep runs events then combat for the current floor. Callers hold
// the player lock.
func (s *service) exploreStep(ctx context.Context, state *entities.ExplorationState) (*StepOutcome, error) {
	record, dungeon, floor, retry, err := s.resolveFloor(ctx, state)
	if err != nil {
		return nil, err
	}
	if retry != nil {
		return retry, nil
	}

	// A marker for this floor means a shop pause interrupted the step:
	// run only the events that were still pending, never the ones whose
	// deltas are already banked
	if state.ShopCombatMarker != nil && state.ShopCombatMarker.FloorIndex == state.FloorIndex {
		extras, paused, err := s.runEvents(ctx, state, record, floor, s.pendingEvents(floor, state.ActiveEvents))
		if err != nil {
			return nil, err
		}
		if paused != nil {
			return paused, nil
		}

		roster, names := s.pendingRoster(dungeon, floor, state)
		return s.runCombat(ctx, state, record, dungeon, floor, roster, names, extras)
	}

	extras, paused, err := s.runEvents(ctx, state, record, floor, floor.Events)
	if err != nil {
		return nil, err
	}
	if paused != nil {
		return paused, nil
	}

	roster, names := s.buildRoster(dungeon, floor)
	return s.runCombat(ctx, state, record, dungeon, floor, roster, names, extras)
}

type combatExtras struct {
	logs  []string
	drops []string
}

// runEvents resolves floor events in order, folding their effects into the
// session. A shop event stops the run: the remaining event IDs are recorded
// on the state so resume picks up exactly where the pause happened, and the
// returned StepOutcome reports the pause.
func (s *service) runEvents(ctx context.Context, state *entities.ExplorationState, record *entities.PlayerProgress, floor *entities.Floor, events []entities.FloorEvent) (*combatExtras, *StepOutcome, error) {
	stats := s.effectiveStats(record, state)
	extras := &combatExtras{}

	for i := range events {
		floorEvent := &events[i]

		outcome, err := s.eventService.Resolve(ctx, floorEvent, state.CurrentHP, stats.MaxHP)
		if err != nil {
			// Event failures are independently recoverable; the step goes on
			log.Printf("error processing event %s for %s: %v", floorEvent.ID, state.PlayerID, err)
			extras.logs = append(extras.logs, "error processing event")
			continue
		}

		state.CurrentHP = outcome.HP
		state.ClampHP(stats.MaxHP)
		state.PendingExp += outcome.ExpDelta
		state.PendingGold += outcome.GoldDelta
		state.RunBoosts = state.RunBoosts.Add(outcome.StatDeltas).Clamp()
		stats = s.effectiveStats(record, state)

		if outcome.Log != "" {
			extras.logs = append(extras.logs, outcome.Log)
		}
		for _, d := range outcome.Drops {
			extras.drops = append(extras.drops, d.ItemID)
		}

		if outcome.Pause {
			state.Status.InShop = true
			state.ShopCombatMarker = &entities.ShopCombatMarker{
				FloorIndex:   state.FloorIndex,
				MonsterCount: floor.MonsterCount(),
			}
			state.ActiveEvents = nil
			for j := i + 1; j < len(events); j++ {
				state.ActiveEvents = append(state.ActiveEvents, events[j].ID)
			}
			if err := s.explorationRepo.Save(ctx, state); err != nil {
				return nil, nil, apperrors.Wrap(err, "failed to save exploration state")
			}
			return nil, &StepOutcome{
				Result:    ResultShop,
				Logs:      extras.logs,
				Drops:     extras.drops,
				NextFloor: state.FloorIndex,
				CurrentHP: state.CurrentHP,
			}, nil
		}
	}

	state.ActiveEvents = nil
	return extras, nil, nil
}

// pendingEvents maps stored event IDs back to the floor's definitions,
// preserving order and dropping IDs the catalog no longer has
func (s *service) pendingEvents(floor *entities.Floor, ids []string) []entities.FloorEvent {
	var pending []entities.FloorEvent
	for _, id := range ids {
		for i := range floor.Events {
			if floor.Events[i].ID == id {
				pending = append(pending, floor.Events[i])
				break
			}
		}
	}
	return pending
}

// runCombat executes the roster and settles the floor on victory
func (s *service) runCombat(ctx context.Context, state *entities.ExplorationState, record *entities.PlayerProgress, dungeon *entities.Dungeon, floor *entities.Floor, roster []*entities.Monster, names []string, extras *combatExtras) (*StepOutcome, error) {
	stats := s.effectiveStats(record, state)

	outcome := &StepOutcome{Monsters: names}
	if extras != nil {
		outcome.Logs = extras.logs
		outcome.Drops = extras.drops
	}

	result, err := s.combatService.Execute(ctx, roster, stats, state.CurrentHP)
	if err != nil {
		return nil, apperrors.Wrap(err, "combat resolution failed")
	}
	outcome.Logs = append(outcome.Logs, result.Logs...)

	if !result.Survived {
		// No partial floor credit; the session is gone
		if err := s.explorationRepo.Delete(ctx, state.PlayerID); err != nil {
			return nil, apperrors.Wrap(err, "failed to clear exploration state after defeat")
		}
		outcome.Result = ResultDefeat
		outcome.CurrentHP = 0
		return outcome, nil
	}

	state.CurrentHP = result.RemainingHP
	state.ClampHP(stats.MaxHP)

	// every defeated monster rolls its drop table
	for _, monster := range roster {
		if len(monster.DropTable) == 0 {
			continue
		}
		drops, err := s.dropService.RollDrops(ctx, monster.DropTable)
		if err != nil {
			return nil, apperrors.Wrapf(err, "failed to roll drops for monster '%s'", monster.ID)
		}
		for _, d := range drops {
			outcome.Drops = append(outcome.Drops, d.ItemID)
		}
	}

	clearedFloor := state.FloorIndex
	monsterCount := len(roster)
	if state.ShopCombatMarker != nil && state.ShopCombatMarker.FloorIndex == clearedFloor {
		monsterCount = state.ShopCombatMarker.MonsterCount
	}

	stepExp := 10 + clearedFloor*2 + monsterCount*3
	gainedExp := result.GainedExp + stepExp + state.PendingExp
	goldGain := result.GoldGain + state.PendingGold
	state.PendingExp = 0
	state.PendingGold = 0

	levelUp, err := reward.Apply(record, gainedExp)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to apply reward ledger")
	}
	record.Gold += goldGain
	record.MarkExplored(clearedFloor)

	state.RunExp += gainedExp
	state.RunGold += goldGain
	state.FloorIndex++
	state.Status.InCombat = false
	state.Status.InShop = false
	state.ActiveMonsters = nil
	state.ActiveEvents = nil
	state.ShopCombatMarker = nil

	outcome.GainedExp = gainedExp
	outcome.GoldGain = goldGain
	outcome.NextFloor = state.FloorIndex
	outcome.CurrentHP = state.CurrentHP
	outcome.LevelUp = levelUp.Leveled()
	outcome.NewLevel = record.DungeonLevel
	outcome.StatPointsGained = levelUp.StatPointsGained

	if levelUp.Leveled() {
		s.notifier.Send(state.PlayerID, notify.Event{
			Type:    "level_up",
			Payload: map[string]any{"level": record.DungeonLevel, "stat_points": levelUp.StatPointsGained},
		})
	}

	if state.FloorIndex > dungeon.MaxFloor() {
		// Dungeon completed: finalize and clear the session
		if err := s.progressRepo.Save(ctx, record); err != nil {
			return nil, apperrors.Wrap(err, "failed to save player progress")
		}
		if err := s.explorationRepo.Delete(ctx, state.PlayerID); err != nil {
			return nil, apperrors.Wrap(err, "failed to clear exploration state")
		}

		s.notifier.Send(state.PlayerID, notify.Event{
			Type:    "dungeon_completed",
			Payload: map[string]any{"dungeon": dungeon.Slug, "total_exp": state.RunExp},
		})

		outcome.Result = ResultCompleted
		outcome.GainedExp = state.RunExp
		outcome.GoldGain = state.RunGold
		return outcome, nil
	}

	if next := dungeon.FloorByIndex(state.FloorIndex); next != nil && next.Checkpoint {
		// Checkpoint is a save point, not a stop
		record.CheckpointFloor = state.FloorIndex
		state.Status.AtCheckpoint = true
		outcome.AtCheckpoint = true

		s.notifier.Send(state.PlayerID, notify.Event{
			Type:    "checkpoint",
			Payload: map[string]any{"floor": state.FloorIndex},
		})
	} else {
		state.Status.AtCheckpoint = false
	}

	if err := s.progressRepo.Save(ctx, record); err != nil {
		return nil, apperrors.Wrap(err, "failed to save player progress")
	}
	if err := s.explorationRepo.Save(ctx, state); err != nil {
		return nil, apperrors.Wrap(err, "failed to save exploration state")
	}

	if extras == nil {
		outcome.Result = ResultVictory
	} else {
		outcome.Result = ResultContinue
	}
	return outcome, nil
}

func (s *service) effectiveStats(record *entities.PlayerProgress, state *entities.ExplorationState) entities.CombatStats {
	return record.EffectiveStats().Add(state.RunBoosts).Clamp()
}

// buildRoster expands a floor's spawn list into concrete monsters; the
// boss, if any, always comes last
func (s *service) buildRoster(dungeon *entities.Dungeon, floor *entities.Floor) ([]*entities.Monster, []string) {
	var roster []*entities.Monster
	var names []string

	for _, spawn := range floor.Monsters {
		monster := dungeon.MonsterByID(spawn.MonsterID)
		if monster == nil {
			log.Printf("floor %d of %s references unknown monster %s", floor.Index, dungeon.Slug, spawn.MonsterID)
			continue
		}

		count := spawn.Count
		if count < 1 {
			count = 1
		}
		for i := 0; i < count; i++ {
			roster = append(roster, monster)
			names = append(names, monster.Name)
		}
	}

	if floor.Boss != nil {
		roster = append(roster, floor.Boss)
		names = append(names, floor.Boss.Name)
	}

	return roster, names
}

// pendingRoster rebuilds the roster a paused fight was prepared with,
// falling back to the floor definition when the stored IDs are unusable
func (s *service) pendingRoster(dungeon *entities.Dungeon, floor *entities.Floor, state *entities.ExplorationState) ([]*entities.Monster, []string) {
	if len(state.ActiveMonsters) == 0 {
		return s.buildRoster(dungeon, floor)
	}

	var roster []*entities.Monster
	var names []string
	for _, id := range state.ActiveMonsters {
		monster := dungeon.MonsterByID(id)
		if monster == nil && floor.Boss != nil && floor.Boss.ID == id {
			monster = floor.Boss
		}
		if monster == nil {
			log.Printf("pending roster for %s references unknown monster %s", state.PlayerID, id)
			continue
		}
		roster = append(roster, monster)
		names = append(names, monster.Name)
	}

	if len(roster) == 0 {
		return s.buildRoster(dungeon, floor)
	}
	return roster, names
}

func rosterIDs(roster []*entities.Monster) []string {
	ids := make([]string, 0, len(roster))
	for _, monster := range roster {
		ids = append(ids, monster.ID)
	}
	return ids
}
