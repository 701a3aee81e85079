// Package catalog holds the read-only word, phrase and grammar reference data.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"wordtrainer/internal/domain"
)

var defaultWords = []domain.Word{
	{ID: 1, English: "beautiful", Translation: "chiroyli", Pronunciation: "/ˈbjuːtɪfəl/"},
	{ID: 2, English: "important", Translation: "muhim", Pronunciation: "/ɪmˈpɔːrtənt/"},
	{ID: 3, English: "knowledge", Translation: "bilim", Pronunciation: "/ˈnɒlɪdʒ/"},
	{ID: 4, English: "friend", Translation: "do'st", Pronunciation: "/frend/"},
	{ID: 5, English: "happy", Translation: "baxtli", Pronunciation: "/ˈhæpi/"},
	{ID: 6, English: "water", Translation: "suv", Pronunciation: "/ˈwɔːtər/"},
	{ID: 7, English: "book", Translation: "kitob", Pronunciation: "/bʊk/"},
	{ID: 8, English: "family", Translation: "oila", Pronunciation: "/ˈfæməli/"},
	{ID: 9, English: "work", Translation: "ish", Pronunciation: "/wɜːrk/"},
	{ID: 10, English: "city", Translation: "shahar", Pronunciation: "/ˈsɪti/"},
	{ID: 11, English: "future", Translation: "kelajak", Pronunciation: "/ˈfjuːtʃər/"},
	{ID: 12, English: "language", Translation: "til", Pronunciation: "/ˈlæŋɡwɪdʒ/"},
	{ID: 13, English: "teacher", Translation: "o'qituvchi", Pronunciation: "/ˈtiːtʃər/"},
	{ID: 14, English: "time", Translation: "vaqt", Pronunciation: "/taɪm/"},
	{ID: 15, English: "world", Translation: "dunyo", Pronunciation: "/wɜːrld/"},
	{ID: 16, English: "house", Translation: "uy", Pronunciation: "/haʊs/"},
	{ID: 17, English: "strong", Translation: "kuchli", Pronunciation: "/strɔːŋ/"},
	{ID: 18, English: "morning", Translation: "ertalab", Pronunciation: "/ˈmɔːrnɪŋ/"},
	{ID: 19, English: "question", Translation: "savol", Pronunciation: "/ˈkwestʃən/"},
	{ID: 20, English: "answer", Translation: "javob", Pronunciation: "/ˈænsər/"},
	{ID: 21, English: "success", Translation: "muvaffaqiyat", Pronunciation: "/səkˈses/"},
	{ID: 22, English: "travel", Translation: "sayohat", Pronunciation: "/ˈtrævəl/"},
	{ID: 23, English: "health", Translation: "salomatlik", Pronunciation: "/helθ/"},
	{ID: 24, English: "dream", Translation: "orzu", Pronunciation: "/driːm/"},
}

var defaultPhrases = []domain.Phrase{
	{ID: 1, Text: "How are you?", Difficulty: "easy"},
	{ID: 2, Text: "Good morning, everyone!", Difficulty: "easy"},
	{ID: 3, Text: "Thank you very much.", Difficulty: "easy"},
	{ID: 4, Text: "I am learning English.", Difficulty: "easy"},
	{ID: 5, Text: "Nice to meet you.", Difficulty: "easy"},
	{ID: 6, Text: "The weather is beautiful today.", Difficulty: "medium"},
	{ID: 7, Text: "I would like to improve my pronunciation.", Difficulty: "medium"},
	{ID: 8, Text: "Education is the key to success.", Difficulty: "medium"},
	{ID: 9, Text: "Learning a new language requires dedication and practice.", Difficulty: "medium"},
	{ID: 10, Text: "Technology has changed the way we communicate with each other.", Difficulty: "hard"},
}

var defaultGrammar = map[domain.GrammarLevel][]domain.GrammarQuestion{
	domain.GrammarBeginner: {
		{
			ID:          1,
			Text:        "She ___ to school every day.",
			Options:     []string{"go", "goes", "going", "went"},
			Correct:     "goes",
			Explanation: "Use 'goes' with third person singular (he/she/it) in present simple.",
		},
		{
			ID:          2,
			Text:        "I ___ a student.",
			Options:     []string{"am", "is", "are", "be"},
			Correct:     "am",
			Explanation: "Use 'am' with 'I' in present tense.",
		},
		{
			ID:          3,
			Text:        "They ___ playing football now.",
			Options:     []string{"is", "am", "are", "be"},
			Correct:     "are",
			Explanation: "Use 'are' with 'they' in present continuous.",
		},
		{
			ID:          4,
			Text:        "He ___ his homework yesterday.",
			Options:     []string{"do", "does", "did", "doing"},
			Correct:     "did",
			Explanation: "Use 'did' for past simple tense.",
		},
		{
			ID:          5,
			Text:        "We ___ English every Monday.",
			Options:     []string{"study", "studies", "studying", "studied"},
			Correct:     "study",
			Explanation: "Use base form with 'we' in present simple.",
		},
	},
	domain.GrammarIntermediate: {
		{
			ID:          6,
			Text:        "If I ___ rich, I would travel the world.",
			Options:     []string{"am", "was", "were", "be"},
			Correct:     "were",
			Explanation: "Use 'were' in second conditional for all subjects.",
		},
		{
			ID:          7,
			Text:        "She has ___ finished her work.",
			Options:     []string{"yet", "already", "still", "just"},
			Correct:     "already",
			Explanation: "'Already' is used in affirmative sentences with present perfect.",
		},
		{
			ID:          8,
			Text:        "The book ___ by millions of people.",
			Options:     []string{"read", "reads", "was read", "is reading"},
			Correct:     "was read",
			Explanation: "Use passive voice (was + past participle) for completed actions.",
		},
		{
			ID:          9,
			Text:        "I wish I ___ speak Chinese fluently.",
			Options:     []string{"can", "could", "will", "would"},
			Correct:     "could",
			Explanation: "Use 'could' after 'wish' to express unreal present situations.",
		},
		{
			ID:          10,
			Text:        "By next year, I ___ here for five years.",
			Options:     []string{"work", "worked", "will work", "will have worked"},
			Correct:     "will have worked",
			Explanation: "Use future perfect for actions completed before a future time.",
		},
	},
	domain.GrammarAdvanced: {
		{
			ID:          11,
			Text:        "Had I known about the meeting, I ___ attended.",
			Options:     []string{"would", "would have", "will", "will have"},
			Correct:     "would have",
			Explanation: "Use 'would have' in third conditional with inverted structure.",
		},
		{
			ID:          12,
			Text:        "The proposal ___ by the committee next week.",
			Options:     []string{"will review", "will be reviewed", "reviews", "is reviewing"},
			Correct:     "will be reviewed",
			Explanation: "Use future passive voice for actions to be done in the future.",
		},
		{
			ID:          13,
			Text:        "Scarcely ___ the door when the phone rang.",
			Options:     []string{"I opened", "had I opened", "I had opened", "did I open"},
			Correct:     "had I opened",
			Explanation: "After 'scarcely', use inverted word order with past perfect.",
		},
		{
			ID:          14,
			Text:        "The research ___ for three years before results emerged.",
			Options:     []string{"conducted", "was conducting", "had been conducted", "has conducted"},
			Correct:     "had been conducted",
			Explanation: "Use past perfect passive for actions completed before another past action.",
		},
		{
			ID:          15,
			Text:        "Not only ___ the exam, but he also got the highest score.",
			Options:     []string{"he passed", "did he pass", "he did pass", "passed he"},
			Correct:     "did he pass",
			Explanation: "After 'not only', use inverted word order with auxiliary verb.",
		},
	},
}

// Catalog is the static word, phrase and grammar question list
type Catalog struct {
	Words   []domain.Word
	Phrases []domain.Phrase
	grammar map[domain.GrammarLevel][]domain.GrammarQuestion
}

// Default returns the built-in catalog
func Default() *Catalog {
	c := &Catalog{
		Words:   make([]domain.Word, len(defaultWords)),
		Phrases: make([]domain.Phrase, len(defaultPhrases)),
		grammar: make(map[domain.GrammarLevel][]domain.GrammarQuestion, len(defaultGrammar)),
	}
	copy(c.Words, defaultWords)
	copy(c.Phrases, defaultPhrases)
	for level, questions := range defaultGrammar {
		c.grammar[level] = questions
	}
	return c
}

// Grammar returns a copy of the question bank of level
func (c *Catalog) Grammar(level domain.GrammarLevel) []domain.GrammarQuestion {
	questions := c.grammar[level]
	out := make([]domain.GrammarQuestion, len(questions))
	for i, q := range questions {
		out[i] = q
		out[i].Options = append([]string(nil), q.Options...)
	}
	return out
}

// Load replaces the default words with the JSON array of words at path.
// An empty path returns the default catalog.
func Load(path string) (*Catalog, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read words file: %w", err)
	}

	var words []domain.Word
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("failed to parse words file: %w", err)
	}

	seen := make(map[int]bool, len(words))
	for _, w := range words {
		if w.English == "" || w.Translation == "" {
			return nil, fmt.Errorf("word %d: english and translation are required", w.ID)
		}
		if seen[w.ID] {
			return nil, fmt.Errorf("word %d: duplicate id", w.ID)
		}
		seen[w.ID] = true
	}

	c.Words = words
	return c, nil
}
