package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondWithErrorWritesStatusAndBody(t *testing.T) {
	recorder := httptest.NewRecorder()

	respondWithError(recorder, 418, "Teapot", "", nil)

	if recorder.Code != 418 {
		t.Fatalf("expected status 418, got %d", recorder.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body["error"] != "Teapot" {
		t.Fatalf("expected error 'Teapot', got %q", body["error"])
	}
	if ct := recorder.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected JSON content type, got %q", ct)
	}
}

func TestRespondWithErrorLogsMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := log.Default()
	originalOutput := logger.Writer()
	logger.SetOutput(&buf)
	defer logger.SetOutput(originalOutput)

	recorder := httptest.NewRecorder()
	err := errors.New("boom")

	respondWithError(recorder, 500, "Internal server error", "", err)

	logOutput := buf.String()
	if !strings.Contains(logOutput, "Internal server error") {
		t.Fatalf("expected log to include user message, got %q", logOutput)
	}
	if !strings.Contains(logOutput, "boom") {
		t.Fatalf("expected log to include error, got %q", logOutput)
	}
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.c","bogus":1}`))

	var dst loginRequest
	if err := decodeJSON(req, &dst); err == nil {
		t.Fatal("expected an error for an unknown field")
	}
}

func TestDecodeJSONRejectsTrailingData(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.c"}{"email":"x@y.z"}`))

	var dst loginRequest
	if err := decodeJSON(req, &dst); err == nil {
		t.Fatal("expected an error for trailing data")
	}
}
