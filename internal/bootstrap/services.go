package bootstrap

import (
	"context"
	"database/sql"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/peopledesk/peopledesk/config"
	"github.com/peopledesk/peopledesk/internal/data"
	"github.com/peopledesk/peopledesk/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Employees *service.EmployeeService
	Leaves    *service.LeaveService
	Auth      *service.AuthService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires repositories and services from shared infrastructure.
func NewServices(deps *ServiceDeps) ServiceContainer {
	employeeRepo := data.NewEmployeeRepo(deps.DB)
	leaveRepo := data.NewLeaveRepo(deps.DB)

	return ServiceContainer{
		Employees: service.NewEmployeeService(service.EmployeeServiceOptions{Employees: employeeRepo}),
		Leaves: service.NewLeaveService(service.LeaveServiceOptions{
			Leaves:    leaveRepo,
			Employees: employeeRepo,
		}),
		Auth: BuildAuthService(AuthConfig{
			Auth:        deps.Config.Auth,
			Session:     deps.Config.Session,
			RedisClient: deps.RedisClient,
			Logger:      deps.Logger,
		}),
	}
}

// RunConfig groups dependencies for running the application until shutdown.
type RunConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// Run starts the HTTP server and blocks until SIGINT/SIGTERM, then shuts
// down gracefully. The errgroup propagates the first fatal error.
func Run(ctx context.Context, cfg RunConfig) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := StartHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Logger:   cfg.Logger,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		return ShutdownHTTPServer(ShutdownConfig{
			Context: context.Background(),
			Server:  server,
			Timeout: cfg.Config.HTTP.ShutdownTimeout,
			Logger:  cfg.Logger,
		})
	})

	return g.Wait()
}
