package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gradientlab/darkroom/internal/pipeline"
)

const (
	JobStatusCreated    = "created"
	JobStatusQueued     = "queued"
	JobStatusProcessing = "processing"
	JobStatusSucceeded  = "succeeded"
	JobStatusFailed     = "failed"

	SourceTypeLocalFile   = "local_file"
	SourceTypeS3Presigned = "s3_presigned"
)

// EditSpec is the full parameter snapshot for one edit: the photometric
// adjustments, the geometric orientation, and the export format. One job
// carries exactly one spec; re-editing means a new job from the pristine
// source, never a second pass over a previous output.
type EditSpec struct {
	Adjustments pipeline.Adjustments `json:"adjustments"`
	Orientation pipeline.Orientation `json:"orientation"`
	Format      string               `json:"format,omitempty"`
	Quality     int                  `json:"quality,omitempty"`
}

// UnmarshalJSON seeds identity adjustments before decoding so omitted fields
// mean "leave the image alone" rather than brightness/contrast/saturation 0.
func (e *EditSpec) UnmarshalJSON(data []byte) error {
	type editSpec EditSpec
	tmp := editSpec{Adjustments: pipeline.DefaultAdjustments()}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*e = EditSpec(tmp)
	return nil
}

func (e EditSpec) Validate() error {
	if err := e.Adjustments.Validate(); err != nil {
		return err
	}
	if err := e.Orientation.Validate(); err != nil {
		return err
	}
	if e.Quality < 0 || e.Quality > 100 {
		return fmt.Errorf("quality must be in [0,100], got %d", e.Quality)
	}
	return nil
}

type CreateJobRequest struct {
	SourceType string   `json:"source_type"`
	UserID     string   `json:"user_id,omitempty"`
	WebhookURL string   `json:"webhook_url,omitempty"`
	ObjectKey  string   `json:"object_key,omitempty"`
	Edit       EditSpec `json:"edit"`
}

// UnmarshalJSON seeds an identity edit before decoding. Without it a request
// that omits the edit object entirely would never reach EditSpec's own
// defaulting and come back with all-zero adjustments.
func (r *CreateJobRequest) UnmarshalJSON(data []byte) error {
	type createJobRequest CreateJobRequest
	tmp := createJobRequest{Edit: EditSpec{Adjustments: pipeline.DefaultAdjustments()}}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*r = CreateJobRequest(tmp)
	return nil
}

type Job struct {
	ID         string
	UserID     string
	Status     string
	SourceType string
	WebhookURL string
	ObjectKey  string
	OutputKey  string
	Edit       EditSpec
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (r CreateJobRequest) Validate() error {
	sourceType := strings.ToLower(strings.TrimSpace(r.SourceType))
	if sourceType == "" {
		return errors.New("source_type is required")
	}
	if sourceType != SourceTypeLocalFile && sourceType != SourceTypeS3Presigned {
		return fmt.Errorf("unsupported source_type: %s", r.SourceType)
	}
	if sourceType == SourceTypeLocalFile && strings.TrimSpace(r.ObjectKey) == "" {
		return errors.New("object_key is required for source_type=local_file")
	}
	if err := r.Edit.Validate(); err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	return nil
}
