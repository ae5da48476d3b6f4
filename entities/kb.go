package entities

import "time"

// AdvisoryDoc is one ingested agronomy advisory (extension leaflet, blog
// post, pest alert) used to ground chatbot answers.
type AdvisoryDoc struct {
	DocID     uint   `gorm:"primaryKey" json:"doc_id"`
	Title     string `json:"title"`
	SourceURL string `json:"source_url"`
	Tags      string `json:"tags"`
	CreatedAt time.Time
}

type AdvisoryChunk struct {
	ChunkID   uint   `gorm:"primaryKey" json:"chunk_id"`
	DocID     uint   `gorm:"index" json:"doc_id"`
	Ord       int    `json:"ord"`
	Text      string `json:"text"`
	CreatedAt time.Time
}
