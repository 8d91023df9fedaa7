package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hibiken/asynq"
	mail "github.com/matheusot/enquete/api/email"
)

const TypeCompletionNotice = "questionnaire:completed"

// CompletionNoticePayload carries everything the notice email needs, so the
// worker never has to reach back into the database.
type CompletionNoticePayload struct {
	RespondentName    string
	RespondentEmail   string
	QuestionnaireName string
	CompletedAt       time.Time
}

func (p *CompletionNoticePayload) Process() (*asynq.Task, error) {
	payload, err := json.Marshal(p)

	if err != nil {
		return nil, fmt.Errorf("marshal completion notice payload: %w", err)
	}

	return asynq.NewTask(TypeCompletionNotice, payload), nil
}

func (p *CompletionNoticePayload) ProcessorName() string {
	return "completion notice"
}

func HandleCompletionNoticeTask(ctx context.Context, t *asynq.Task) error {
	var payload CompletionNoticePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("error decoding completion notice payload: %w", err)
	}

	notifyEmail := os.Getenv("NOTIFY_EMAIL")
	if notifyEmail == "" {
		notifyEmail = os.Getenv("ADMIN_EMAIL")
	}
	if notifyEmail == "" {
		log.Printf("no notify email configured, skipping completion notice for %s", payload.RespondentName)
		return nil
	}

	log.Printf("sending completion notice for respondent: %s", payload.RespondentName)

	emailData := mail.Email{
		Subject:  fmt.Sprintf("%s completed %s", payload.RespondentName, payload.QuestionnaireName),
		ToAddr:   notifyEmail,
		Template: "completion_notice",
		Vars:     payload,
	}

	if err := emailData.SendTemplateEmail(); err != nil {
		err = fmt.Errorf("error sending completion notice: %w", err)
		log.Println(err)
		return err
	}

	log.Printf("completion notice sent for respondent: %s", payload.RespondentName)

	return nil
}
