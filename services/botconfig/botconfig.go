package botconfig

import (
	"fmt"
	"log"
	"time"

	"github.com/aaroniusdersiebte/DBM/core"
	"github.com/aaroniusdersiebte/DBM/models"
	"github.com/aaroniusdersiebte/DBM/store"
	"github.com/aaroniusdersiebte/DBM/utils"
)

// Delay actions are clamped at config time; the executor trusts the
// stored value.
const (
	minDelaySeconds = 1
	maxDelaySeconds = 3600
)

type BotConfigService struct {
	repo *store.BotConfigRepository
}

func NewBotConfigService(repo *store.BotConfigRepository) *BotConfigService {
	return &BotConfigService{repo: repo}
}

func (s *BotConfigService) LoadConfig() *models.BotConfig {
	return s.repo.Load()
}

func (s *BotConfigService) SaveConfig(config *models.BotConfig) error {
	if err := s.repo.Save(config); err != nil {
		return fmt.Errorf("failed to save bot config: %w", err)
	}
	log.Printf("✅ Bot configuration saved")
	return nil
}

func (s *BotConfigService) AddTrigger(trigger models.Trigger) (*models.Trigger, error) {
	config := s.repo.Load()

	trigger.ID = core.NewID(core.IDPrefixTrigger)
	trigger.CreatedAt = time.Now()
	config.Triggers = append(config.Triggers, trigger)

	if err := s.repo.Save(config); err != nil {
		return nil, fmt.Errorf("failed to add trigger: %w", err)
	}
	log.Printf("✅ Trigger created: %s (%s)", trigger.Name, trigger.Type)
	return &trigger, nil
}

func (s *BotConfigService) UpdateTrigger(id string, trigger models.Trigger) (*models.Trigger, error) {
	config := s.repo.Load()

	for i := range config.Triggers {
		if config.Triggers[i].ID == id {
			trigger.ID = id
			trigger.CreatedAt = config.Triggers[i].CreatedAt
			config.Triggers[i] = trigger
			if err := s.repo.Save(config); err != nil {
				return nil, fmt.Errorf("failed to update trigger: %w", err)
			}
			log.Printf("✅ Trigger updated: %s (%s)", trigger.Name, trigger.Type)
			return &trigger, nil
		}
	}
	return nil, fmt.Errorf("trigger %s: %w", id, core.ErrNotFound)
}

func (s *BotConfigService) DeleteTrigger(id string) error {
	config := s.repo.Load()

	for i := range config.Triggers {
		if config.Triggers[i].ID == id {
			config.Triggers = append(config.Triggers[:i], config.Triggers[i+1:]...)
			if err := s.repo.Save(config); err != nil {
				return fmt.Errorf("failed to delete trigger: %w", err)
			}
			log.Printf("✅ Trigger deleted: %s", id)
			return nil
		}
	}
	return fmt.Errorf("trigger %s: %w", id, core.ErrNotFound)
}

func (s *BotConfigService) AddAction(action models.Action) (*models.Action, error) {
	if err := validateRoleID(&action); err != nil {
		return nil, err
	}

	config := s.repo.Load()

	action.ID = core.NewID(core.IDPrefixAction)
	action.CreatedAt = time.Now()
	clampDelay(&action)
	config.Actions = append(config.Actions, action)

	if err := s.repo.Save(config); err != nil {
		return nil, fmt.Errorf("failed to add action: %w", err)
	}
	log.Printf("✅ Action created: %s (%s)", action.Name, action.Type)
	return &action, nil
}

func (s *BotConfigService) UpdateAction(id string, action models.Action) (*models.Action, error) {
	if err := validateRoleID(&action); err != nil {
		return nil, err
	}

	config := s.repo.Load()

	for i := range config.Actions {
		if config.Actions[i].ID == id {
			action.ID = id
			action.CreatedAt = config.Actions[i].CreatedAt
			clampDelay(&action)
			config.Actions[i] = action
			if err := s.repo.Save(config); err != nil {
				return nil, fmt.Errorf("failed to update action: %w", err)
			}
			log.Printf("✅ Action updated: %s (%s)", action.Name, action.Type)
			return &action, nil
		}
	}
	return nil, fmt.Errorf("action %s: %w", id, core.ErrNotFound)
}

// DeleteAction removes the action document only. Triggers referencing the
// id keep their dangling reference; the executor reports it at runtime.
func (s *BotConfigService) DeleteAction(id string) error {
	config := s.repo.Load()

	for i := range config.Actions {
		if config.Actions[i].ID == id {
			config.Actions = append(config.Actions[:i], config.Actions[i+1:]...)
			if err := s.repo.Save(config); err != nil {
				return fmt.Errorf("failed to delete action: %w", err)
			}
			log.Printf("✅ Action deleted: %s", id)
			return nil
		}
	}
	return fmt.Errorf("action %s: %w", id, core.ErrNotFound)
}

// validateRoleID rejects role actions whose roleId cannot be a Discord
// snowflake. An empty roleId is allowed; the executor reports it as a
// failed outcome at dispatch time.
func validateRoleID(action *models.Action) error {
	if action.Type != models.ActionTypeAddRole && action.Type != models.ActionTypeRemoveRole {
		return nil
	}
	if action.RoleID != "" && !utils.IsSnowflake(action.RoleID) {
		return fmt.Errorf("roleId %q is not a Discord role id", action.RoleID)
	}
	return nil
}

func clampDelay(action *models.Action) {
	if action.Type != models.ActionTypeDelay {
		return
	}
	if action.Seconds < minDelaySeconds {
		action.Seconds = minDelaySeconds
	}
	if action.Seconds > maxDelaySeconds {
		action.Seconds = maxDelaySeconds
	}
}
