// internal/domain/models/school.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// School is an entry in the school registry. The registry is the only
// collection that is not tenant-scoped; it is managed by the superadmin.
type School struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name    string             `bson:"name" json:"name"`
	NameCI  string             `bson:"name_ci" json:"name_ci"`
	Level   string             `bson:"level,omitempty" json:"level,omitempty"` // e.g. "primary", "secondary"
	LogoURL string             `bson:"logo_url,omitempty" json:"logo_url,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
