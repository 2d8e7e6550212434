package models

import "time"

// MaxFeeBps caps the platform fee at 10%
const MaxFeeBps int64 = 1000

// Platform is the singleton configuration and aggregate-counter record.
// The counters are advisory bookkeeping and take no part in any payout
// computation.
type Platform struct {
	ID           int64     `db:"id" json:"id"`
	AuthorityID  int64     `db:"authority_id" json:"authority_id"`
	TreasuryID   int64     `db:"treasury_id" json:"treasury_id"`
	FeeBps       int64     `db:"fee_bps" json:"fee_bps"`
	TotalDebates int64     `db:"total_debates" json:"total_debates"`
	TotalUsers   int64     `db:"total_users" json:"total_users"`
	TotalVolume  int64     `db:"total_volume" json:"total_volume"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// IsAuthority checks if the given user is the designated settlement authority
func (p *Platform) IsAuthority(userID int64) bool {
	return p.AuthorityID == userID
}
