package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestUpdateJobRequest_RejectsExplicitNull(t *testing.T) {
	tests := []struct {
		body  string
		field string
	}{
		{`{"title": null}`, "title"},
		{`{"company": null, "title": "Staff Engineer"}`, "company"},
		{`{"applicationLink": null}`, "applicationLink"},
		{`{"status": null}`, "status"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			var req UpdateJobRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, verr.Field)
			}
		})
	}
}

func TestUpdateJobRequest_DecodesPresentFields(t *testing.T) {
	var req UpdateJobRequest
	if err := json.Unmarshal([]byte(`{"title":"Staff Engineer","status":"Offer"}`), &req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Title == nil || *req.Title != "Staff Engineer" {
		t.Errorf("expected title, got %v", req.Title)
	}
	if req.Status == nil || *req.Status != StatusOffer {
		t.Errorf("expected status Offer, got %v", req.Status)
	}
	if req.Company != nil || req.ApplicationLink != nil {
		t.Errorf("absent fields must stay nil: %+v", req)
	}
}

func TestUpdateJobRequest_UnknownStatus(t *testing.T) {
	var req UpdateJobRequest
	err := json.Unmarshal([]byte(`{"status":"Ghosted"}`), &req)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "status" {
		t.Errorf("expected status ValidationError, got %v", err)
	}
}

func TestUpdateJobRequest_EmptyObject(t *testing.T) {
	var req UpdateJobRequest
	if err := json.Unmarshal([]byte(`{}`), &req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p := req.Patch(); p.Title != nil || p.Company != nil || p.ApplicationLink != nil || p.Status != nil {
		t.Errorf("expected empty patch, got %+v", p)
	}
}
