package validation

import (
	"testing"

	apperrors "go-resistor-inspector/internal/errors"
)

func TestValidateImageURL_ValidURLs(t *testing.T) {
	validator := NewURLValidator()

	validURLs := []string{
		"http://example.com/resistor.jpg",
		"https://example.com/photos/r1.png",
		"https://cdn.example.com/a/b/c.gif",
		"http://192.168.1.1/capture.jpg",
	}

	for _, url := range validURLs {
		if err := validator.ValidateImageURL(url); err != nil {
			t.Errorf("Expected %s to pass validation, got: %v", url, err)
		}
	}
}

func TestValidateImageURL_EmptyURL(t *testing.T) {
	validator := NewURLValidator()

	for _, url := range []string{"", "   ", "\t\n"} {
		err := validator.ValidateImageURL(url)
		if err == nil {
			t.Errorf("Expected empty URL %q to fail validation", url)
			continue
		}
		if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
			t.Errorf("Expected validation error, got %T", err)
		}
	}
}

func TestValidateImageURL_InvalidURLs(t *testing.T) {
	validator := NewURLValidator()

	invalidURLs := []string{
		"not-a-url",
		"ftp://example.com/file.jpg",
		"file:///etc/passwd",
	}

	for _, url := range invalidURLs {
		if err := validator.ValidateImageURL(url); err == nil {
			t.Errorf("Expected %s to fail validation", url)
		}
	}
}

func TestValidateImageURL_HostAllowList(t *testing.T) {
	validator := NewURLValidatorWithOptions(
		[]string{"https"},
		[]string{"trusted.example.com"},
	)

	if err := validator.ValidateImageURL("https://trusted.example.com/r.jpg"); err != nil {
		t.Errorf("Expected allow-listed host to pass, got: %v", err)
	}
	if err := validator.ValidateImageURL("https://other.example.com/r.jpg"); err == nil {
		t.Error("Expected non-listed host to fail")
	}
	if err := validator.ValidateImageURL("http://trusted.example.com/r.jpg"); err == nil {
		t.Error("Expected disallowed scheme to fail")
	}
}

func TestValidateBlobURL(t *testing.T) {
	validator := NewURLValidator()

	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid", "https://acct.blob.core.windows.net/photos?blob=r1.jpg", false},
		{"missing blob param", "https://acct.blob.core.windows.net/photos", true},
		{"missing container", "https://acct.blob.core.windows.net/?blob=r1.jpg", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateBlobURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBlobURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}
