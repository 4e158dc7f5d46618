// internal/domain/models/loginhistory.go
package models

import "time"

// LoginRecord captures one sign-in attempt against the backend.
// CreatedAt is indexed for recent-activity views.
type LoginRecord struct {
	Username  string    `bson:"username"`
	CreatedAt time.Time `bson:"created_at"`
	IP        string    `bson:"ip"`
	UserAgent string    `bson:"user_agent,omitempty"`
	Success   bool      `bson:"success"`
	Reason    string    `bson:"reason,omitempty"`
}
