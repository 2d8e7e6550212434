package models

import "time"

// Topic is a community-proposed debate subject
type Topic struct {
	ID         int64     `db:"id" json:"id"`
	ProposerID int64     `db:"proposer_id" json:"proposer_id"`
	Text       string    `db:"text" json:"text"`
	Category   string    `db:"category" json:"category"`
	Upvotes    int32     `db:"upvotes" json:"upvotes"`
	Downvotes  int32     `db:"downvotes" json:"downvotes"`
	TimesUsed  int32     `db:"times_used" json:"times_used"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// TopicVote records one voter's up/down vote on a topic, unique per
// (topic, voter)
type TopicVote struct {
	ID        int64     `db:"id" json:"id"`
	TopicID   int64     `db:"topic_id" json:"topic_id"`
	VoterID   int64     `db:"voter_id" json:"voter_id"`
	Upvote    bool      `db:"upvote" json:"upvote"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
