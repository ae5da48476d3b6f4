package repository

import "agricopilot/entities"

type KBRepository interface {
	CreateDoc(d *entities.AdvisoryDoc) error
	BulkInsertChunks(cs []entities.AdvisoryChunk) error
	ListDocs() ([]entities.AdvisoryDoc, error)
	AllChunks() ([]entities.AdvisoryChunk, error)
	DocsByIDs(ids []uint) (map[uint]entities.AdvisoryDoc, error)
}
