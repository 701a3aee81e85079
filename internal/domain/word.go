package domain

// Word is a catalog entry
type Word struct {
	ID            int    `json:"id"`
	English       string `json:"english"`
	Translation   string `json:"translation"`
	Pronunciation string `json:"pronunciation"`
}

// Phrase is a speaking practice sentence
type Phrase struct {
	ID         int    `json:"id"`
	Text       string `json:"text"`
	Difficulty string `json:"difficulty"`
}
