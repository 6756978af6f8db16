// Package agentconfig wires the closed task-strategy set and checks
// the credential environment before a run starts.
package agentconfig

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/lisanmuaddib/airdrop-go/pkg/browser"
	"github.com/lisanmuaddib/airdrop-go/pkg/llm"
	"github.com/lisanmuaddib/airdrop-go/pkg/selectors"
	"github.com/lisanmuaddib/airdrop-go/pkg/tasks"
)

type StrategyConfig struct {
	Session   *browser.Session
	Selectors *selectors.Table
	Advisor   *llm.Advisor
	Logger    *logrus.Logger
}

// ConfigureStrategies sets up the strategy for each supported task
// type. Task types without an entry are counted as failures by the
// agent; new types are added here, never registered at runtime.
func ConfigureStrategies(config StrategyConfig) (map[tasks.TaskType]tasks.Strategy, error) {
	if config.Session == nil {
		return nil, fmt.Errorf("browser session is required")
	}
	if config.Selectors == nil {
		return nil, fmt.Errorf("selector table is required")
	}
	if config.Advisor == nil {
		return nil, fmt.Errorf("advisor is required")
	}
	if config.Logger == nil {
		config.Logger = logrus.New()
	}

	return map[tasks.TaskType]tasks.Strategy{
		tasks.TaskTelegram: tasks.NewTelegramTask(config.Session, config.Selectors, config.Logger, config.Advisor),
		tasks.TaskVisit:    tasks.NewLinkTask(config.Session, config.Selectors, config.Logger),
	}, nil
}
