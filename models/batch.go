package models

type Batch struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"type:varchar(50);not null" json:"name"`
	Medium       Medium     `gorm:"type:varchar(20);not null" json:"medium"`
	StudentClass ClassLevel `gorm:"type:varchar(2);not null;default:'12'" json:"student_class"`
	Timing       string     `gorm:"type:varchar(50)" json:"timing"`
	TotalSeats   uint       `gorm:"not null" json:"total_seats"`
	FilledSeats  uint       `gorm:"not null;default:0" json:"filled_seats"`
}

func (b *Batch) IsFull() bool {
	return b.FilledSeats >= b.TotalSeats
}

func (b *Batch) RemainingSeats() uint {
	if b.FilledSeats >= b.TotalSeats {
		return 0
	}
	return b.TotalSeats - b.FilledSeats
}
