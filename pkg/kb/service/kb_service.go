package service

import "agricopilot/entities"

type KBService interface {
	UpsertDocument(title, tags, text, sourceURL string) (*entities.AdvisoryDoc, int, error)
	Search(query string, k int) ([]entities.AdvisoryChunk, error)
	DocsMeta(ids []uint) (map[uint]entities.AdvisoryDoc, error)
	// Context joins the best-matching chunks into one capped prompt context.
	Context(query string, maxLen int) string
}
