package combat

//go:generate mockgen -destination=mock/mock_service.go -package=mockcombat -source=service.go

import (
	"context"
	"fmt"

	"github.com/questline/questline/internal/dice"
	"github.com/questline/questline/internal/entities"
	apperrors "github.com/questline/questline/internal/errors"
)

// Result is the outcome of one full combat encounter
type Result struct {
	Survived    bool
	RemainingHP int
	Logs        []string
	GainedExp   int
	GoldGain    int
}

// Service resolves turn-based combat between a player and a monster roster
type Service interface {
	// Execute fights the roster sequentially, one full sub-battle per
	// monster. Defeat anywhere forfeits all rewards for the whole
	// encounter. An empty roster trivially succeeds with HP unchanged.
	Execute(ctx context.Context, monsters []*entities.Monster, playerStats entities.CombatStats, currentHP int) (*Result, error)
}

// service implements the Service interface
type service struct {
	roller dice.Roller
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Roller dice.Roller // Optional, defaults to a random roller
}

// NewService creates a new combat service
func NewService(cfg *ServiceConfig) Service {
	svc := &service{}

	if cfg != nil && cfg.Roller != nil {
		svc.roller = cfg.Roller
	} else {
		svc.roller = dice.NewRandomRoller()
	}

	return svc
}

// Execute fights the roster sequentially
func (s *service) Execute(ctx context.Context, monsters []*entities.Monster, playerStats entities.CombatStats, currentHP int) (*Result, error) {
	if currentHP < 0 {
		return nil, apperrors.InvalidArgument("current HP cannot be negative")
	}

	result := &Result{
		Survived:    true,
		RemainingHP: currentHP,
	}

	for _, monster := range monsters {
		if monster == nil {
			continue
		}

		hpAfter, logs, err := s.fightOne(monster, playerStats, result.RemainingHP)
		result.Logs = append(result.Logs, logs...)
		if err != nil {
			return nil, err
		}

		if hpAfter <= 0 {
			// Defeat forfeits everything accrued so far, not just the
			// current monster's share
			result.Survived = false
			result.RemainingHP = 0
			result.GainedExp = 0
			result.GoldGain = 0
			result.Logs = append(result.Logs, fmt.Sprintf("defeated by %s", monster.Name))
			return result, nil
		}

		result.RemainingHP = hpAfter
		result.GainedExp += monster.ExpDrop
		result.GoldGain += monster.GoldDrop
		result.Logs = append(result.Logs, fmt.Sprintf("%s falls (+%d exp, +%d gold)", monster.Name, monster.ExpDrop, monster.GoldDrop))
	}

	return result, nil
}

// fightOne resolves a single sub-battle turn by turn. Ties on speed favor
// the player.
func (s *service) fightOne(monster *entities.Monster, playerStats entities.CombatStats, playerHP int) (int, []string, error) {
	var logs []string

	monsterHP := monster.Stats.MaxHP
	playerTurn := playerStats.Speed >= monster.Stats.Speed
	if playerTurn {
		logs = append(logs, fmt.Sprintf("%s appears, you act first", monster.Name))
	} else {
		logs = append(logs, fmt.Sprintf("%s appears and acts first", monster.Name))
	}

	for playerHP > 0 && monsterHP > 0 {
		if playerTurn {
			damage, log, err := s.playerAttack(monster, playerStats)
			if err != nil {
				return playerHP, logs, err
			}
			monsterHP -= damage
			logs = append(logs, log)
		} else {
			damage, log, err := s.monsterAttack(monster, playerStats)
			if err != nil {
				return playerHP, logs, err
			}
			playerHP -= damage
			logs = append(logs, log)
		}
		playerTurn = !playerTurn
	}

	return playerHP, logs, nil
}

// playerAttack computes one player hit. The player's damage ignores
// monster-side defense and evasion in the current model.
func (s *service) playerAttack(monster *entities.Monster, playerStats entities.CombatStats) (int, string, error) {
	damage := playerStats.Attack * 4 / 5

	roll, err := s.roller.Percent()
	if err != nil {
		return 0, "", err
	}
	if roll < playerStats.CritRate {
		damage = damage * 3 / 2
		return damage, fmt.Sprintf("critical hit on %s for %d damage", monster.Name, damage), nil
	}

	return damage, fmt.Sprintf("you hit %s for %d damage", monster.Name, damage), nil
}

// monsterAttack computes one monster hit against the player
func (s *service) monsterAttack(monster *entities.Monster, playerStats entities.CombatStats) (int, string, error) {
	evadeRoll, err := s.roller.Percent()
	if err != nil {
		return 0, "", err
	}
	if evadeRoll < playerStats.Evasion {
		return 0, fmt.Sprintf("you evade %s's attack", monster.Name), nil
	}

	var damage int
	var action string

	if skill := monster.HighestPriorityAttack(); skill != nil {
		// Skill damage rounds, base damage floors
		damage = (skill.EffectValue*9 + 5) / 10
		action = fmt.Sprintf("%s uses %s", monster.Name, skill.Name)
	} else {
		damage = monster.Stats.Attack * 3 / 5
		action = fmt.Sprintf("%s attacks", monster.Name)

		critRoll, err := s.roller.Percent()
		if err != nil {
			return 0, "", err
		}
		if critRoll < monster.Stats.CritRate {
			damage = damage * 3 / 2
			action = fmt.Sprintf("%s lands a critical hit", monster.Name)
		}
	}

	damage -= playerStats.Defense * 3 / 10
	if damage < 1 {
		damage = 1
	}

	return damage, fmt.Sprintf("%s, you take %d damage", action, damage), nil
}
