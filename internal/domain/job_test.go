package domain

import (
	"encoding/json"
	"testing"

	"github.com/gradientlab/darkroom/internal/pipeline"
)

func TestCreateJobRequestValidate(t *testing.T) {
	valid := CreateJobRequest{
		SourceType: SourceTypeS3Presigned,
		Edit: EditSpec{
			Adjustments: pipeline.DefaultAdjustments(),
		},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid request, got error: %v", err)
	}

	invalid := CreateJobRequest{}
	if err := invalid.Validate(); err == nil {
		t.Fatal("expected validation error for empty request")
	}

	missingObjectKey := CreateJobRequest{
		SourceType: SourceTypeLocalFile,
		Edit:       EditSpec{Adjustments: pipeline.DefaultAdjustments()},
	}
	if err := missingObjectKey.Validate(); err == nil {
		t.Fatal("expected validation error for local_file object_key")
	}

	unsupportedSourceType := CreateJobRequest{
		SourceType: "http_url",
		Edit:       EditSpec{Adjustments: pipeline.DefaultAdjustments()},
	}
	if err := unsupportedSourceType.Validate(); err == nil {
		t.Fatal("expected validation error for unsupported source_type")
	}

	badRotation := CreateJobRequest{
		SourceType: SourceTypeS3Presigned,
		Edit: EditSpec{
			Adjustments: pipeline.DefaultAdjustments(),
			Orientation: pipeline.Orientation{RotationDegrees: 45},
		},
	}
	if err := badRotation.Validate(); err == nil {
		t.Fatal("expected validation error for arbitrary rotation angle")
	}

	badBrightness := CreateJobRequest{
		SourceType: SourceTypeS3Presigned,
		Edit: EditSpec{
			Adjustments: pipeline.Adjustments{Brightness: 500, Contrast: 100, Saturation: 100},
		},
	}
	if err := badBrightness.Validate(); err == nil {
		t.Fatal("expected validation error for out-of-range brightness")
	}
}

func TestEditSpecDefaultsOmittedAdjustments(t *testing.T) {
	var spec EditSpec
	if err := json.Unmarshal([]byte(`{"orientation":{"rotation_degrees":90}}`), &spec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !spec.Adjustments.IsIdentity() {
		t.Fatalf("omitted adjustments should default to identity, got %+v", spec.Adjustments)
	}
	if spec.Orientation.RotationDegrees != 90 {
		t.Fatalf("expected rotation 90, got %d", spec.Orientation.RotationDegrees)
	}
}

func TestCreateJobRequestOmittedEditDefaultsToIdentity(t *testing.T) {
	var req CreateJobRequest
	body := `{"source_type":"local_file","object_key":"/tmp/source.png"}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if err := req.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !req.Edit.Adjustments.IsIdentity() {
		t.Fatalf("omitted edit should default to identity adjustments, got %+v", req.Edit.Adjustments)
	}
}

func TestEditSpecPartialAdjustmentsKeepDefaults(t *testing.T) {
	var spec EditSpec
	if err := json.Unmarshal([]byte(`{"adjustments":{"brightness":150}}`), &spec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if spec.Adjustments.Brightness != 150 {
		t.Fatalf("expected brightness 150, got %d", spec.Adjustments.Brightness)
	}
	if spec.Adjustments.Contrast != 100 || spec.Adjustments.Saturation != 100 {
		t.Fatalf("expected identity contrast/saturation, got %+v", spec.Adjustments)
	}
}
