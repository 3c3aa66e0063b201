package model

type Genre struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"genre_id"`
	Name        string `gorm:"size:50;uniqueIndex;not null" json:"genre_name"`
	Explanation string `gorm:"type:text;not null;default:Explanation Coming Soon." json:"genre_explanation"`
}
