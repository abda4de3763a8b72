package models

type Category struct {
	ID   string `gorm:"primaryKey;size:36" json:"id"`
	Name string `gorm:"unique;not null;size:300" json:"name"`
}
