package apierr

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := Wrap(CodeTransferFailed, "upload failed", errors.New("connection reset")).
		WithContext("file", "img_0001.jpg")

	msg := err.Error()
	if !strings.Contains(msg, "[TransferFailed]") {
		t.Errorf("missing code in %q", msg)
	}
	if !strings.Contains(msg, "upload failed") {
		t.Errorf("missing message in %q", msg)
	}
	if !strings.Contains(msg, "file=img_0001.jpg") {
		t.Errorf("missing context in %q", msg)
	}
	if !strings.Contains(msg, "connection reset") {
		t.Errorf("missing cause in %q", msg)
	}
}

func TestErrorIsMatchesByCode(t *testing.T) {
	err := New(CodeInvalidState, "job already terminal")
	if !errors.Is(err, New(CodeInvalidState, "")) {
		t.Error("errors with the same code should match")
	}
	if errors.Is(err, New(CodeTransport, "")) {
		t.Error("errors with different codes should not match")
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(New(CodeSchema, "bad body")); got != CodeSchema {
		t.Errorf("CodeOf = %s, want %s", got, CodeSchema)
	}
	if got := CodeOf(errors.New("plain")); got != CodeUnknown {
		t.Errorf("CodeOf(plain) = %s, want %s", got, CodeUnknown)
	}
}

func TestFromService(t *testing.T) {
	body := []byte(`{"error":{"code":"InvalidRealityDataRequest","message":"Invalid request","details":[{"code":"MissingRequiredProperty","message":"iTwinId is required"}]}}`)

	err := FromService(422, body)
	if err.Code != CodeTransport {
		t.Errorf("Code = %s, want %s", err.Code, CodeTransport)
	}
	if err.Status != 422 {
		t.Errorf("Status = %d, want 422", err.Status)
	}
	if err.ServiceCode() != "InvalidRealityDataRequest" {
		t.Errorf("ServiceCode = %q", err.ServiceCode())
	}
	if len(err.Details) != 1 || err.Details[0].Code != "MissingRequiredProperty" {
		t.Errorf("Details = %+v", err.Details)
	}
}

func TestFromServiceUnparsableBody(t *testing.T) {
	err := FromService(502, []byte("<html>bad gateway</html>"))
	if err.Code != CodeUnknown {
		t.Errorf("Code = %s, want %s", err.Code, CodeUnknown)
	}
	if body, _ := err.Context["body"].(string); !strings.Contains(body, "bad gateway") {
		t.Errorf("raw body not captured: %v", err.Context)
	}
}

func TestResponseEnvelope(t *testing.T) {
	ok := Success(200, "value")
	if !ok.Ok() || ok.Value != "value" || ok.StatusCode != 200 {
		t.Errorf("unexpected success envelope: %+v", ok)
	}

	bad := Failure[string](404, New(CodeTransport, "not found"))
	if bad.Ok() || bad.Err == nil {
		t.Errorf("unexpected failure envelope: %+v", bad)
	}
}
