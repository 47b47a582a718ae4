package services

import (
	portsrepo "github.com/fintrackhq/fintrack/internal/core/ports/repositories"
	portssvc "github.com/fintrackhq/fintrack/internal/core/ports/services"
	"github.com/fintrackhq/fintrack/pkg/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Account = NewAccountService(repos.AccountRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.AccountRepo, repos.CategoryRepo)
	container.Budget = NewBudgetService(repos.BudgetRepo, repos.CategoryRepo)

	// User registration seeds the default category taxonomy.
	container.User = NewUserService(repos.UserRepo, WithCategorySeeder(container.Category))

	container.Analyzer = NewSpendingAnalyzerService(
		repos.TransactionRepo,
		repos.CategoryRepo,
		repos.BudgetRepo,
		repos.AccountRepo,
	)
	container.Recommendation = NewRecommendationService(
		container.Analyzer,
		repos.TransactionRepo,
		repos.CategoryRepo,
		repos.AccountRepo,
	)

	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	return container
}
