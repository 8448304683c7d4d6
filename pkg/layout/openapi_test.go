package layout_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formguard/pkg/layout"
	"github.com/goliatone/go-formguard/pkg/model"
	"github.com/goliatone/go-formguard/pkg/validation"
)

const leaveRequestOpenAPI = `
openapi: 3.0.3
info:
  title: Leave Requests
  version: 1.0.0
paths: {}
components:
  schemas:
    LeaveRequest:
      type: object
      title: Leave Request
      required: [LeaveType, StartDate, EndDate]
      properties:
        RequestId:
          type: string
          x-formguard:
            hidden: true
            order: 0
        LeaveType:
          type: string
          enum: [VAC, SICK]
          x-formguard:
            label: Leave Type
            order: 1
        StartDate:
          type: string
          format: date
          x-formguard:
            semantic: start
            order: 2
        EndDate:
          type: string
          format: date
          x-formguard:
            semantic: end
            order: 3
        Reason:
          type: string
          maxLength: 255
          x-formguard:
            kind: textarea
            order: 4
        Days:
          type: integer
          x-formguard:
            order: 5
        Status:
          type: array
          items:
            type: string
            enum: ["01", "02", "03"]
          x-formguard:
            order: 6
        Approved:
          type: boolean
          default: false
          x-formguard:
            order: 7
`

func TestFromOpenAPI(t *testing.T) {
	def, err := layout.FromOpenAPI(context.Background(), []byte(leaveRequestOpenAPI), "LeaveRequest", layout.OpenAPIOptions{ScopeID: "leave"})
	if err != nil {
		t.Fatalf("from openapi: %v", err)
	}
	if def.ID != "leave" || def.Title != "Leave Request" {
		t.Fatalf("unexpected scope header %+v", def)
	}

	sc, err := def.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	var kinds []string
	for _, field := range sc.Fields() {
		kinds = append(kinds, field.ID+":"+string(field.Kind))
	}
	want := []string{
		"RequestId:text",
		"LeaveType:singlechoice",
		"StartDate:date",
		"EndDate:date",
		"Reason:textarea",
		"Days:text",
		"Status:multichoice",
		"Approved:boolean",
	}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("field kinds mismatch (-want +got):\n%s", diff)
	}

	requestID, _ := sc.Field("RequestId")
	if requestID.Visible {
		t.Fatalf("RequestId should be hidden")
	}
	leaveType, _ := sc.Field("LeaveType")
	if !leaveType.Required || leaveType.Label != "Leave Type" || !leaveType.HasOption("SICK") {
		t.Fatalf("unexpected LeaveType %+v", leaveType)
	}
	reason, _ := sc.Field("Reason")
	if diff := cmp.Diff(validation.StringType{MaxLength: 255}, reason.Converter); diff != "" {
		t.Fatalf("reason converter mismatch (-want +got):\n%s", diff)
	}
	days, _ := sc.Field("Days")
	days.SetScalar("3x")
	if days.Converter == nil || days.Converter.Validate(days.Value()) == nil {
		t.Fatalf("integer property should reject non-numeric text")
	}
	status, _ := sc.Field("Status")
	if len(status.Options) != 3 {
		t.Fatalf("expected enum options on multichoice, got %+v", status.Options)
	}
	approved, _ := sc.Field("Approved")
	if !approved.Value().Equal(model.Scalar("false")) {
		t.Fatalf("default not applied, got %v", approved.Value())
	}

	start, _ := sc.Field("StartDate")
	if _, ok := sc.FindCounterpart(start, start.SemanticName); !ok {
		t.Fatalf("expected date pair from semantic extension")
	}
}

func TestFromOpenAPI_Errors(t *testing.T) {
	ctx := context.Background()
	if _, err := layout.FromOpenAPI(ctx, nil, "LeaveRequest", layout.OpenAPIOptions{}); err == nil {
		t.Fatalf("expected error for empty document")
	}
	if _, err := layout.FromOpenAPI(ctx, []byte(leaveRequestOpenAPI), "Missing", layout.OpenAPIOptions{}); err == nil {
		t.Fatalf("expected error for unknown schema")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := layout.FromOpenAPI(cancelled, []byte(leaveRequestOpenAPI), "LeaveRequest", layout.OpenAPIOptions{}); err == nil {
		t.Fatalf("expected context error")
	}
}
