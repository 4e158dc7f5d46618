// internal/app/store/logins/loginstore.go
package loginstore

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/dalemusser/lordsadmin/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("login_records")}
}

// EnsureIndexes creates the recent-activity index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "username", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return err
}

// Create inserts a LoginRecord. If CreatedAt is zero, it's set to time.Now().UTC().
func (s *Store) Create(ctx context.Context, rec models.LoginRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, rec)
	return err
}

// CreateFrom builds a LoginRecord from the HTTP request and inserts it.
// It records the client IP (see ClientIP) and user agent.
func (s *Store) CreateFrom(ctx context.Context, r *http.Request, username string, success bool, reason string) error {
	return s.Create(ctx, models.LoginRecord{
		Username:  username,
		CreatedAt: time.Now().UTC(),
		IP:        ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   success,
		Reason:    reason,
	})
}

// Recent returns the newest records for username, or for everyone when
// username is empty.
func (s *Store) Recent(ctx context.Context, username string, limit int64) ([]models.LoginRecord, error) {
	filter := bson.M{}
	if username != "" {
		filter["username"] = username
	}
	if limit <= 0 {
		limit = 20
	}
	cur, err := s.c.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.LoginRecord
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ClientIP returns the host part of r.RemoteAddr. Forwarding headers are
// not read here; behind a trusted proxy the router rewrites RemoteAddr
// first (see trust_proxy_headers).
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
