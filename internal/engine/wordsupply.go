package engine

import "context"

// WordSupply hands out batches of target words. Implementations may fail;
// the session falls back to the local generic pool rather than stalling.
type WordSupply interface {
	RequestWords(ctx context.Context, count int, difficulty string) ([]string, error)
}

// fallbackPool keeps sessions typing when the word supply is unreachable or
// returns garbage.
var fallbackPool = []string{
	"the", "and", "for", "are", "but", "not", "you", "all", "can", "had",
	"her", "was", "one", "our", "out", "day", "get", "has", "him", "his",
	"how", "man", "new", "now", "old", "see", "two", "way", "who", "boy",
	"did", "its", "let", "put", "say", "she", "too", "use", "that", "with",
	"have", "this", "will", "your", "from", "they", "know", "want", "been",
	"good", "much", "some", "time", "very", "when", "come", "here", "just",
	"like", "long", "make", "many", "more", "only", "over", "such", "take",
	"than", "them", "well", "were", "what", "work", "year", "about", "after",
	"again", "could", "every", "first", "found", "great", "house", "large",
	"learn", "never", "other", "place", "plant", "point", "right", "small",
	"sound", "spell", "still", "study", "their", "there", "these", "thing",
	"think", "three", "water", "where", "which", "world", "would", "write",
}

// FallbackWords returns count words cycled from the local generic pool.
func FallbackWords(count int) []string {
	words := make([]string, count)
	for i := range words {
		words[i] = fallbackPool[i%len(fallbackPool)]
	}
	return words
}

// requestRefill asks the supply for more words without blocking keystroke
// handling. The result lands on refillCh and is appended by drainRefill on
// the next input or timer callback. At most one refill is in flight.
func (s *Session) requestRefill() {
	if s.refilling || s.supply == nil {
		if s.supply == nil {
			s.words = append(s.words, FallbackWords(refillCount)...)
		}
		return
	}
	s.refilling = true

	difficulty := s.difficulty
	supply := s.supply
	go func() {
		words, err := supply.RequestWords(context.Background(), refillCount, difficulty)
		if err != nil || len(words) == 0 {
			words = FallbackWords(refillCount)
		}
		select {
		case s.refillCh <- words:
		default:
		}
	}()
}

func (s *Session) drainRefill() {
	select {
	case words := <-s.refillCh:
		s.words = append(s.words, words...)
		s.refilling = false
	default:
	}
}
