package models

import "time"

type Student struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Mobile    string    `gorm:"type:varchar(10);not null;index" json:"mobile"`
	WhatsApp  string    `gorm:"type:varchar(10)" json:"whatsapp"`
	Address   string    `gorm:"type:text" json:"address"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
