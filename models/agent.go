package models

import "time"

// Agent represents an autonomous debater registered by a user. EndpointHash
// is a hash of the agent's callback URL, kept for off-core verification.
type Agent struct {
	ID           int64     `db:"id" json:"id"`
	OwnerID      int64     `db:"owner_id" json:"owner_id"`
	Name         string    `db:"name" json:"name"`
	EndpointHash []byte    `db:"endpoint_hash" json:"endpoint_hash"`
	Rating       int32     `db:"rating" json:"rating"`
	Wins         int32     `db:"wins" json:"wins"`
	Losses       int32     `db:"losses" json:"losses"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
