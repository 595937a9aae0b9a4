package models

import (
	"time"

	"github.com/google/uuid"
)

// InviteCodeStatus is the administrative state of an invite code.
type InviteCodeStatus string

const (
	InviteCodeActive   InviteCodeStatus = "active"
	InviteCodeInactive InviteCodeStatus = "inactive"
)

// UnlimitedUses marks an invite code that can be consumed any number of times.
const UnlimitedUses = -1

// InviteCode gates registration.
type InviteCode struct {
	ID         int64            `db:"id" json:"id"`
	Code       string           `db:"code" json:"code"`
	MaxUses    int              `db:"max_uses" json:"maxUses"`
	Used       int              `db:"used" json:"used"`
	Status     InviteCodeStatus `db:"status" json:"status"`
	ExpireDate *time.Time       `db:"expire_date" json:"expireDate"` // nil: never expires
	CreatedAt  time.Time        `db:"created_at" json:"createdAt"`
	CreatedBy  *uuid.UUID       `db:"created_by" json:"createdBy"`
}

// CheckConsumable returns nil when the code may be consumed at now, otherwise
// the reason: ErrInviteCodeInactive, ErrInviteCodeExhausted or ErrInviteCodeExpired.
// The expiry date is inclusive and compared by calendar day in UTC.
func (c *InviteCode) CheckConsumable(now time.Time) error {
	if c.Status != InviteCodeActive {
		return ErrInviteCodeInactive
	}
	if c.MaxUses != UnlimitedUses && c.Used >= c.MaxUses {
		return ErrInviteCodeExhausted
	}
	if c.ExpireDate != nil && truncateDay(*c.ExpireDate).Before(truncateDay(now)) {
		return ErrInviteCodeExpired
	}
	return nil
}

// IsConsumable reports whether CheckConsumable passes.
func (c *InviteCode) IsConsumable(now time.Time) bool {
	return c.CheckConsumable(now) == nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
