package app

import (
	gameAPI "cases_backend/internal/api/game"
	"cases_backend/internal/config"
	"cases_backend/internal/config/env"
	"cases_backend/internal/middleware"
	"cases_backend/internal/repository"
	"cases_backend/internal/repository/outcome_repo"
	"cases_backend/internal/repository/round_repo"
	"cases_backend/internal/repository/tx_repo"
	"cases_backend/internal/repository/user_repo"
	"cases_backend/internal/service"
	"cases_backend/internal/service/game"
	"cases_backend/internal/service/ledger"
	"cases_backend/pkg/signer"
	"context"
	"net/http"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ServiceProvider struct {
	// TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Repositories
	roundRepo   repository.RoundRepository
	userRepo    repository.UserRepository
	txRepo      repository.LedgerTxRepository
	outcomeRepo repository.OutcomeRepository

	// Game bits
	gameCfg    config.GameConfig
	signerCfg  config.SignerConfig
	outcomeSig *signer.Signer
	ledgerServ service.LedgerService
	gameServ   service.GameService
	gameHand   *gameAPI.Handler

	// Auth bits
	jwtCfg config.JWTConfig

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}
		sp.txManager = m
	}
	return sp.txManager
}

func (sp *ServiceProvider) RoundRepository(ctx context.Context) repository.RoundRepository {
	if sp.roundRepo == nil {
		sp.roundRepo = round_repo.NewRoundRepository(sp.DBClient(ctx))
	}
	return sp.roundRepo
}

func (sp *ServiceProvider) UserRepository(ctx context.Context) repository.UserRepository {
	if sp.userRepo == nil {
		sp.userRepo = user_repo.NewUserRepository(sp.DBClient(ctx))
	}
	return sp.userRepo
}

func (sp *ServiceProvider) LedgerTxRepository(ctx context.Context) repository.LedgerTxRepository {
	if sp.txRepo == nil {
		sp.txRepo = tx_repo.NewLedgerTxRepository(sp.DBClient(ctx))
	}
	return sp.txRepo
}

func (sp *ServiceProvider) OutcomeRepository(ctx context.Context) repository.OutcomeRepository {
	if sp.outcomeRepo == nil {
		sp.outcomeRepo = outcome_repo.NewOutcomeRepository(sp.DBClient(ctx))
	}
	return sp.outcomeRepo
}

func (sp *ServiceProvider) GameCfg() config.GameConfig {
	if sp.gameCfg == nil {
		cfg, err := env.NewGameConfigFromYAML("config.yaml")
		if err != nil {
			panic("failed to get game config: " + err.Error())
		}
		sp.gameCfg = cfg
	}
	return sp.gameCfg
}

func (sp *ServiceProvider) SignerCfg() config.SignerConfig {
	if sp.signerCfg == nil {
		cfg, err := env.NewSignerConfig()
		if err != nil {
			panic("failed to get signer config: " + err.Error())
		}
		sp.signerCfg = cfg
	}
	return sp.signerCfg
}

func (sp *ServiceProvider) OutcomeSigner() *signer.Signer {
	if sp.outcomeSig == nil {
		sig, err := signer.New(sp.SignerCfg().SigningKey())
		if err != nil {
			panic("failed to create outcome signer: " + err.Error())
		}
		sp.outcomeSig = sig
	}
	return sp.outcomeSig
}

func (sp *ServiceProvider) LedgerService(ctx context.Context) service.LedgerService {
	if sp.ledgerServ == nil {
		sp.ledgerServ = ledger.NewLedgerService(
			sp.UserRepository(ctx),
			sp.LedgerTxRepository(ctx),
			sp.TXManager(ctx),
		)
	}
	return sp.ledgerServ
}

func (sp *ServiceProvider) GameService(ctx context.Context) service.GameService {
	if sp.gameServ == nil {
		sp.gameServ = game.NewGameService(
			sp.RoundRepository(ctx),
			sp.OutcomeRepository(ctx),
			sp.LedgerService(ctx),
			sp.TXManager(ctx),
			sp.GameCfg(),
			sp.OutcomeSigner(),
		)
	}
	return sp.gameServ
}

func (sp *ServiceProvider) GameHandler(ctx context.Context) *gameAPI.Handler {
	if sp.gameHand == nil {
		sp.gameHand = gameAPI.NewHandler(gameAPI.HandlerDeps{
			Serv: sp.GameService(ctx),
		})
	}
	return sp.gameHand
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}
	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		r.Use(middleware.RequestLogger)

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})

		// Case game endpoints
		gameHandler := sp.GameHandler(ctx)
		r.Route("/cases", func(rr chi.Router) {
			rr.Use(middleware.Auth(sp.JWTCfg()))
			rr.Post("/start", gameHandler.Start)
			rr.Get("/active", gameHandler.Active)
			rr.Get("/{roundID}", gameHandler.GetState)
			rr.Post("/{roundID}/open", gameHandler.OpenCase)
			rr.Post("/{roundID}/offer", gameHandler.RequestOffer)
			rr.Post("/{roundID}/decide", gameHandler.Decide)
		})

		sp.router = r
	}

	return sp.router
}
