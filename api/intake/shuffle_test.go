package intake

import (
	"testing"

	"github.com/google/uuid"
	"github.com/matheusot/enquete/database"
)

func makeQuestions(n int) []database.Question {
	questions := make([]database.Question, n)
	for i := range questions {
		questions[i] = database.Question{ID: uuid.New()}
	}
	return questions
}

func TestShuffleQuestions(t *testing.T) {
	t.Run("same seed yields the same order", func(t *testing.T) {
		questions := makeQuestions(20)

		first := shuffleQuestions(questions, 42)
		second := shuffleQuestions(questions, 42)

		for i := range first {
			if first[i].ID != second[i].ID {
				t.Fatalf("order diverged at index %d", i)
			}
		}
	})

	t.Run("different seeds yield different orders", func(t *testing.T) {
		questions := makeQuestions(20)

		first := shuffleQuestions(questions, 1)
		second := shuffleQuestions(questions, 2)

		same := true
		for i := range first {
			if first[i].ID != second[i].ID {
				same = false
				break
			}
		}
		if same {
			t.Error("expected different seeds to permute differently")
		}
	})

	t.Run("result is a permutation of the input", func(t *testing.T) {
		questions := makeQuestions(10)

		shuffled := shuffleQuestions(questions, 7)

		if len(shuffled) != len(questions) {
			t.Fatalf("got %d questions, want %d", len(shuffled), len(questions))
		}
		seen := make(map[uuid.UUID]bool)
		for _, question := range shuffled {
			seen[question.ID] = true
		}
		for _, question := range questions {
			if !seen[question.ID] {
				t.Errorf("question %s missing from shuffle", question.ID)
			}
		}
	})

	t.Run("input slice is left untouched", func(t *testing.T) {
		questions := makeQuestions(10)
		original := make([]uuid.UUID, len(questions))
		for i, question := range questions {
			original[i] = question.ID
		}

		shuffleQuestions(questions, 99)

		for i, question := range questions {
			if question.ID != original[i] {
				t.Fatalf("input mutated at index %d", i)
			}
		}
	})
}
