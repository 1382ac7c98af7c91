package domain

// Quote is one corpus row. Index is assigned from the row position at load
// time and stays aligned with the corresponding rows of the hybrid feature
// matrix and the semantic encoding matrix.
type Quote struct {
	Index   int
	Text    string
	Book    string
	Topic   string
	Purpose string
}

// Match is a single ranked result handed to the caller.
type Match struct {
	Index         int     `json:"index"`
	Compatibility float64 `json:"compatibility"`
	Similarity    float64 `json:"similarity"`
	Quote         string  `json:"quote"`
	Book          string  `json:"book"`
	Topic         string  `json:"topic,omitempty"`
	Purpose       string  `json:"purpose,omitempty"`
}

// CorpusStats summarizes the loaded corpus for the info command.
type CorpusStats struct {
	Quotes       int
	Books        int
	HybridDim    int
	EncodingDim  int
	TopicTerms   int
	PurposeTerms int
}
