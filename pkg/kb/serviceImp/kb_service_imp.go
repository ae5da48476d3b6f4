package serviceImp

import (
	"sort"
	"strings"

	"agricopilot/entities"
	"agricopilot/pkg/kb/repository"
)

type Svc struct{ r repository.KBRepository }

func New(r repository.KBRepository) *Svc { return &Svc{r: r} }

func chunkText(text string, maxRunes int) []string {
	if maxRunes <= 0 {
		maxRunes = 1000
	}
	parts := []string{}
	cur := strings.Builder{}
	count := 0
	for _, r := range text {
		cur.WriteRune(r)
		count++
		if count >= maxRunes && r == '\n' {
			parts = append(parts, cur.String())
			cur.Reset()
			count = 0
		}
	}
	if cur.Len() > 0 {
		parts = append(parts, cur.String())
	}
	return parts
}

func (s *Svc) UpsertDocument(title, tags, text, sourceURL string) (*entities.AdvisoryDoc, int, error) {
	d := &entities.AdvisoryDoc{Title: title, Tags: tags, SourceURL: sourceURL}
	if err := s.r.CreateDoc(d); err != nil {
		return nil, 0, err
	}

	chs := chunkText(text, 1000)
	if len(chs) == 0 {
		return d, 0, nil
	}

	rows := make([]entities.AdvisoryChunk, len(chs))
	for i := range chs {
		rows[i] = entities.AdvisoryChunk{DocID: d.DocID, Ord: i, Text: chs[i]}
	}
	if err := s.r.BulkInsertChunks(rows); err != nil {
		return nil, 0, err
	}
	return d, len(rows), nil
}

// Search ranks chunks by case-folded keyword overlap with the query and
// returns the top k. Ties keep document/ord order for stable results.
func (s *Svc) Search(query string, k int) ([]entities.AdvisoryChunk, error) {
	q := strings.TrimSpace(query)
	if q == "" || k <= 0 {
		return nil, nil
	}
	terms := tokenize(q)
	if len(terms) == 0 {
		return nil, nil
	}

	chunks, err := s.r.AllChunks()
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	type scored struct {
		ch    entities.AdvisoryChunk
		score int
	}
	ranked := make([]scored, 0, len(chunks))
	for _, ch := range chunks {
		text := strings.ToLower(ch.Text)
		score := 0
		for _, t := range terms {
			score += strings.Count(text, t)
		}
		if score > 0 {
			ranked = append(ranked, scored{ch: ch, score: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	out := make([]entities.AdvisoryChunk, len(ranked))
	for i := range ranked {
		out[i] = ranked[i].ch
	}
	return out, nil
}

func (s *Svc) DocsMeta(ids []uint) (map[uint]entities.AdvisoryDoc, error) {
	return s.r.DocsByIDs(ids)
}

func (s *Svc) Context(query string, maxLen int) string {
	snips, err := s.Search(query, 6)
	if err != nil || len(snips) == 0 {
		return ""
	}
	var ctx strings.Builder
	for _, ch := range snips {
		if ctx.Len() > maxLen {
			break
		}
		ctx.WriteString("\n---\n")
		ctx.WriteString(ch.Text)
	}
	return ctx.String()
}

func tokenize(q string) []string {
	fields := strings.Fields(strings.ToLower(q))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,!?\"'()")
		if len(f) >= 3 { // skip stopword-sized tokens
			out = append(out, f)
		}
	}
	return out
}
