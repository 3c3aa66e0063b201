package model

type Episode struct {
	ID            string `gorm:"size:36;primaryKey" json:"episode_id"`
	EpisodeNumber int    `gorm:"not null" json:"episode_number"`
	EpisodeURI1   string `gorm:"size:100;not null" json:"episode_uri_1"`
	EpisodeURI2   string `gorm:"size:100" json:"episode_uri_2"`
	EpisodeURI3   string `gorm:"size:100" json:"episode_uri_3"`
	EpisodeURI4   string `gorm:"size:100" json:"episode_uri_4"`
	AnimeID       string `gorm:"size:36;index;not null" json:"anime_id"`
}
