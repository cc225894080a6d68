package models

import "time"

// Admission is one applicant's enrollment request. FeePaid and FeeStatus are
// derived from the associated Payment and are mutated only by the payment
// reconciler when a payment is confirmed.
type Admission struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	StudentID    uint       `gorm:"index;not null" json:"student_id"`
	Student      Student    `json:"student,omitempty"`
	StudentClass ClassLevel `gorm:"type:varchar(2);not null;default:'12'" json:"student_class"`
	Board        Board      `gorm:"type:varchar(10);not null;default:'CBSE'" json:"board"`
	Medium       Medium     `gorm:"type:varchar(20);not null;default:'Hindi'" json:"medium"`
	BatchID      *uint      `gorm:"index" json:"batch_id,omitempty"`
	Batch        *Batch     `json:"batch,omitempty"`
	FeeAmount    int        `gorm:"not null;default:0" json:"fee_amount"`
	FeePaid      int        `gorm:"not null;default:0" json:"fee_paid"`
	FeeStatus    FeeStatus  `gorm:"type:varchar(10);not null;default:'Pending'" json:"fee_status"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (a *Admission) FeeDue() int {
	due := a.FeeAmount - a.FeePaid
	if due < 0 {
		return 0
	}
	return due
}
