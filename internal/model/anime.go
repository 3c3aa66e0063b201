package model

type Anime struct {
	ID               string  `gorm:"size:36;primaryKey" json:"anime_id"`
	Title            string  `gorm:"size:80;uniqueIndex;not null" json:"title"`
	Rating           float64 `gorm:"not null" json:"rating"`
	Release          string  `gorm:"size:40;not null" json:"release"`
	Status           string  `gorm:"size:15" json:"status"`
	Synopsis         string  `gorm:"type:text;not null" json:"synopsis"`
	NumberOfEpisodes int     `gorm:"not null" json:"number_of_episodes"`
	PosterURI        string  `gorm:"size:100;not null" json:"poster_uri"`

	Episodes []Episode `gorm:"foreignKey:AnimeID" json:"episodes,omitempty"`
	Genres   []Genre   `gorm:"many2many:anime_genres" json:"genres,omitempty"`
}
