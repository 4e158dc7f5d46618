// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	audit "github.com/dalemusser/lordsadmin/internal/app/store/audit"
	loginstore "github.com/dalemusser/lordsadmin/internal/app/store/logins"
	"github.com/dalemusser/lordsadmin/internal/app/system/apiclient"
	"github.com/dalemusser/lordsadmin/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"github.com/felixgeelhaar/fortify/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB builds the backend client, the sign-in limiter and, when
// configured, the MongoDB connection.
//
// An unreachable restaurant backend is logged, not fatal: the circuit
// breaker and the login page report it per request. An unreachable
// MongoDB is fatal because it was asked for explicitly.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	var deps DBDeps

	api, err := apiclient.New(apiclient.Config{
		BaseURL:         appCfg.APIBaseURL,
		Timeout:         appCfg.APITimeout,
		BreakerFailures: appCfg.BreakerFailures,
		BreakerCooldown: appCfg.BreakerCooldown,
	}, logger)
	if err != nil {
		return DBDeps{}, fmt.Errorf("backend client: %w", err)
	}
	deps.API = api

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	if err := api.Ping(pingCtx); err != nil {
		logger.Warn("restaurant backend not reachable at startup",
			zap.String("api_base_url", api.BaseURL()), zap.Error(err))
	}
	cancel()

	if appCfg.LoginRatePerMinute > 0 {
		deps.LoginLimiter = ratelimit.New(&ratelimit.Config{
			Rate:     appCfg.LoginRatePerMinute,
			Burst:    appCfg.LoginRatePerMinute,
			Interval: time.Minute,
		})
	}

	if !appCfg.MongoEnabled() {
		logger.Info("no MongoDB configured; audit events go to the log only")
		return deps, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(appCfg.MongoURI))
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))
	deps.MongoClient = client
	deps.MongoDatabase = client.Database(appCfg.MongoDatabase)
	return deps, nil
}

// EnsureSchema creates the audit and login history indexes when MongoDB is
// configured.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.MongoDatabase == nil {
		return nil
	}
	if err := audit.New(deps.MongoDatabase).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("audit_events indexes: %w", err)
	}
	if err := loginstore.New(deps.MongoDatabase).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("login_records indexes: %w", err)
	}
	logger.Info("indexes ensured", zap.Strings("collections", []string{"audit_events", "login_records"}))
	return nil
}
