package intake

import "github.com/matheusot/enquete/database"

// lcg is a 64-bit linear congruential generator (Knuth's MMIX constants).
// The same seed always yields the same stream, which keeps the question
// order stable when a respondent reloads the page with the same seed.
type lcg struct {
	state uint64
}

func (l *lcg) next() uint64 {
	l.state = l.state*6364136223846793005 + 1442695040888963407
	return l.state
}

// shuffleQuestions returns a seeded Fisher-Yates permutation of questions.
// The input slice is left untouched.
func shuffleQuestions(questions []database.Question, seed int64) []database.Question {
	shuffled := make([]database.Question, len(questions))
	copy(shuffled, questions)

	rng := lcg{state: uint64(seed)}
	for i := len(shuffled) - 1; i > 0; i-- {
		j := int(rng.next() % uint64(i+1))
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return shuffled
}
