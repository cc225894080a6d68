package models

import "time"

type FeePlan struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	StudentClass ClassLevel `gorm:"type:varchar(2);not null;default:'12';uniqueIndex:idx_fee_plan_class_medium" json:"student_class"`
	Medium       Medium     `gorm:"type:varchar(20);not null;uniqueIndex:idx_fee_plan_class_medium" json:"medium"`
	OriginalFee  int        `gorm:"not null" json:"original_fee"`
	OfferFee     int        `gorm:"not null" json:"offer_fee"`
	OfferEndDate time.Time  `gorm:"type:date;not null" json:"offer_end_date"`
}

// OfferActive reports whether the discounted fee still applies on the given day.
func (p *FeePlan) OfferActive(today time.Time) bool {
	return !today.After(p.OfferEndDate)
}

// CurrentFee returns the fee owed today and whether the offer was applied.
func (p *FeePlan) CurrentFee(today time.Time) (int, bool) {
	if p.OfferActive(today) && p.OfferFee < p.OriginalFee {
		return p.OfferFee, true
	}
	return p.OriginalFee, false
}
