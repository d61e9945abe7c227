package models

import "time"

// Cooldown is one row of the abuse-prevention ledger, keyed by the resolved
// identity of a sender. Only accepted submissions are recorded; denials are
// evaluated, never persisted.
type Cooldown struct {
	IdentityKey   string    `gorm:"column:identity_key;primaryKey"`
	LastAttempt   time.Time `gorm:"column:last_attempt;not null"`
	AttemptCount  int       `gorm:"column:attempt_count;not null;default:1"`
	ObservedIP    string    `gorm:"column:observed_ip;not null;default:''"`
	ObservedAgent string    `gorm:"column:observed_agent;not null;default:''"`
}

func (Cooldown) TableName() string {
	return "cooldowns"
}
