package design

import "math"

// BM25 Okapi parameters, matching the defaults of the index this replaces.
const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

// bm25Index scores tokenized documents against a query.
type bm25Index struct {
	termFreqs []map[string]int // per-document term counts
	docLens   []int
	avgDocLen float64
	docFreq   map[string]int // documents containing each term
}

func newBM25Index(corpus [][]string) *bm25Index {
	idx := &bm25Index{
		termFreqs: make([]map[string]int, len(corpus)),
		docLens:   make([]int, len(corpus)),
		docFreq:   make(map[string]int),
	}

	total := 0
	for i, tokens := range corpus {
		freqs := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			freqs[tok]++
		}
		idx.termFreqs[i] = freqs
		idx.docLens[i] = len(tokens)
		total += len(tokens)
		for tok := range freqs {
			idx.docFreq[tok]++
		}
	}
	if len(corpus) > 0 {
		idx.avgDocLen = float64(total) / float64(len(corpus))
	}
	return idx
}

// score computes the BM25 score of a document for the query tokens.
func (idx *bm25Index) score(queryTokens []string, docID int) float64 {
	if docID < 0 || docID >= len(idx.termFreqs) {
		return 0
	}

	n := float64(len(idx.termFreqs))
	docLen := float64(idx.docLens[docID])
	var score float64
	for _, tok := range queryTokens {
		tf := float64(idx.termFreqs[docID][tok])
		if tf == 0 {
			continue
		}
		df := float64(idx.docFreq[tok])
		idf := math.Log((n-df+0.5)/(df+0.5) + 1)
		score += idf * (tf * (bm25K1 + 1)) /
			(tf + bm25K1*(1-bm25B+bm25B*docLen/idx.avgDocLen))
	}
	return score
}
