package queue

import (
	"testing"
	"time"

	"github.com/gradientlab/darkroom/internal/domain"
	"github.com/gradientlab/darkroom/internal/pipeline"
	"github.com/hibiken/asynq"
)

func TestEditImageTaskRoundTrip(t *testing.T) {
	payload := EditImagePayload{
		JobID:      "job-123",
		SourceType: domain.SourceTypeS3Presigned,
		ObjectKey:  "uploads/job-123/source",
		Edit: domain.EditSpec{
			Adjustments: pipeline.Adjustments{Brightness: 130, Contrast: 90, Saturation: 110, Blur: 3},
			Orientation: pipeline.Orientation{RotationDegrees: 180, FlipVertical: true},
			Format:      "jpeg",
			Quality:     85,
		},
		RequestedAt: time.Now().UTC(),
	}

	task, err := NewEditImageTask(payload)
	if err != nil {
		t.Fatalf("NewEditImageTask returned error: %v", err)
	}

	parsed, err := ParseEditImagePayload(task)
	if err != nil {
		t.Fatalf("ParseEditImagePayload returned error: %v", err)
	}

	if parsed.JobID != payload.JobID {
		t.Fatalf("expected job_id %q, got %q", payload.JobID, parsed.JobID)
	}
	if parsed.Edit.Adjustments != payload.Edit.Adjustments {
		t.Fatalf("adjustments differ: %+v vs %+v", parsed.Edit.Adjustments, payload.Edit.Adjustments)
	}
	if parsed.Edit.Orientation != payload.Edit.Orientation {
		t.Fatalf("orientation differs: %+v vs %+v", parsed.Edit.Orientation, payload.Edit.Orientation)
	}
}

func TestParseEditImagePayloadOmittedEditDefaultsToIdentity(t *testing.T) {
	task := asynq.NewTask(TypeEditImage, []byte(`{"job_id":"job-1","source_type":"local_file","object_key":"/tmp/source.png"}`))

	parsed, err := ParseEditImagePayload(task)
	if err != nil {
		t.Fatalf("ParseEditImagePayload returned error: %v", err)
	}
	if !parsed.Edit.Adjustments.IsIdentity() {
		t.Fatalf("omitted edit should default to identity adjustments, got %+v", parsed.Edit.Adjustments)
	}
}
