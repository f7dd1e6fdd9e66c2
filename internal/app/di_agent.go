package app

import (
	"fmt"

	agentHTTP "github.com/allisson/fieldguard/internal/agent/http"
	agentRepository "github.com/allisson/fieldguard/internal/agent/repository"
	agentUseCase "github.com/allisson/fieldguard/internal/agent/usecase"
	"github.com/allisson/fieldguard/internal/database"
)

// AgentRepository returns the agent repository based on database driver.
func (c *Container) AgentRepository() (agentUseCase.AgentRepository, error) {
	var err error
	c.agentRepositoryInit.Do(func() {
		c.agentRepository, err = c.initAgentRepository()
		if err != nil {
			c.initErrors["agentRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["agentRepository"]; exists {
		return nil, storedErr
	}
	return c.agentRepository, nil
}

// AgentUseCase returns the agent use case.
func (c *Container) AgentUseCase() (agentUseCase.AgentUseCase, error) {
	var err error
	c.agentUseCaseInit.Do(func() {
		c.agentUseCase, err = c.initAgentUseCase()
		if err != nil {
			c.initErrors["agentUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["agentUseCase"]; exists {
		return nil, storedErr
	}
	return c.agentUseCase, nil
}

// AgentHandler returns the agent HTTP handler.
func (c *Container) AgentHandler() (*agentHTTP.AgentHandler, error) {
	var err error
	c.agentHandlerInit.Do(func() {
		c.agentHandler, err = c.initAgentHandler()
		if err != nil {
			c.initErrors["agentHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["agentHandler"]; exists {
		return nil, storedErr
	}
	return c.agentHandler, nil
}

func (c *Container) initAgentRepository() (agentUseCase.AgentRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for agent repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return agentRepository.NewPostgreSQLAgentRepository(db), nil
	case database.DriverMySQL:
		return agentRepository.NewMySQLAgentRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initAgentUseCase() (agentUseCase.AgentUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for agent use case: %w", err)
	}

	agentRepo, err := c.AgentRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get agent repository for agent use case: %w", err)
	}

	protection, err := c.ProtectionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get protection use case for agent use case: %w", err)
	}

	baseUseCase := agentUseCase.NewAgentUseCase(txManager, agentRepo, protection)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for agent use case: %w", err)
		}
		return agentUseCase.NewAgentUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initAgentHandler() (*agentHTTP.AgentHandler, error) {
	useCase, err := c.AgentUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get agent use case for agent handler: %w", err)
	}
	return agentHTTP.NewAgentHandler(useCase, c.Logger()), nil
}
