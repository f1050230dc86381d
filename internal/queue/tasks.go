package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gradientlab/darkroom/internal/domain"
	"github.com/gradientlab/darkroom/internal/pipeline"
	"github.com/hibiken/asynq"
)

const TypeEditImage = "image:edit"

type EditImagePayload struct {
	JobID       string          `json:"job_id"`
	SourceType  string          `json:"source_type"`
	WebhookURL  string          `json:"webhook_url,omitempty"`
	ObjectKey   string          `json:"object_key"`
	Edit        domain.EditSpec `json:"edit"`
	RequestedAt time.Time       `json:"requested_at"`
}

func NewEditImageTask(payload EditImagePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal edit payload: %w", err)
	}
	return asynq.NewTask(TypeEditImage, body), nil
}

func ParseEditImagePayload(task *asynq.Task) (EditImagePayload, error) {
	payload := EditImagePayload{
		Edit: domain.EditSpec{Adjustments: pipeline.DefaultAdjustments()},
	}
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return EditImagePayload{}, fmt.Errorf("unmarshal edit payload: %w", err)
	}
	return payload, nil
}
