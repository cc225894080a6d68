package models

import (
	"time"

	"gorm.io/datatypes"
)

// Payment is the authoritative payment record, one per admission. OrderID is
// the gateway-assigned (or locally generated) identifier used as the
// reconciliation lookup key; PaymentID, ReferenceID and Signature are
// gateway-returned proof artifacts stored verbatim for audit.
type Payment struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	AdmissionID     uint           `gorm:"uniqueIndex;not null" json:"admission_id"`
	Amount          int            `gorm:"not null;default:0" json:"amount"`
	Gateway         PaymentGateway `gorm:"type:varchar(20)" json:"gateway,omitempty"`
	Status          PaymentStatus  `gorm:"type:varchar(10);not null;default:'Pending'" json:"status"`
	Method          PaymentMethod  `gorm:"type:varchar(20)" json:"method,omitempty"`
	OrderID         string         `gorm:"type:varchar(100);index" json:"order_id,omitempty"`
	PaymentID       string         `gorm:"type:varchar(100)" json:"payment_id,omitempty"`
	ReferenceID     string         `gorm:"type:varchar(100)" json:"reference_id,omitempty"`
	Signature       string         `gorm:"type:varchar(200)" json:"-"`
	GatewayResponse datatypes.JSON `gorm:"type:jsonb" json:"-"`
	NotifiedAt      *time.Time     `json:"notified_at,omitempty"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	PaidAt          *time.Time     `json:"paid_at,omitempty"`
}
