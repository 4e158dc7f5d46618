// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/lordsadmin/internal/app/system/apiclient"
	"github.com/felixgeelhaar/fortify/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds the back-end dependencies shared by every request.
type DBDeps struct {
	API *apiclient.Client

	// Both nil when no MongoDB is configured.
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// nil when sign-in throttling is disabled.
	LoginLimiter ratelimit.RateLimiter
}
