package validation

import (
	"net/url"
	"strings"

	apperrors "go-resistor-inspector/internal/errors"
)

// URLValidator checks that image URLs are acceptable before any fetch is
// attempted.
type URLValidator struct {
	allowedSchemes []string
	allowedHosts   []string
}

// NewURLValidator creates a URL validator allowing http/https on any host.
func NewURLValidator() *URLValidator {
	return &URLValidator{
		allowedSchemes: []string{"http", "https"},
		allowedHosts:   []string{},
	}
}

// NewURLValidatorWithOptions creates a URL validator with custom scheme
// and host allow-lists. An empty host list allows all hosts.
func NewURLValidatorWithOptions(schemes []string, hosts []string) *URLValidator {
	return &URLValidator{
		allowedSchemes: schemes,
		allowedHosts:   hosts,
	}
}

// ValidateImageURL validates that a URL can be used to fetch an image.
func (v *URLValidator) ValidateImageURL(imageURL string) error {
	parsed, err := v.parse(imageURL)
	if err != nil {
		return err
	}
	if !v.isSchemeAllowed(parsed.Scheme) {
		return apperrors.NewValidationError("URL scheme not allowed", nil)
	}
	if len(v.allowedHosts) > 0 && !v.isHostAllowed(parsed.Host) {
		return apperrors.NewValidationError("URL host not allowed", nil)
	}
	return nil
}

// ValidateBlobURL validates a URL for the Azure blob backend, which
// additionally needs the blob name in the "blob" query parameter.
func (v *URLValidator) ValidateBlobURL(blobURL string) error {
	parsed, err := v.parse(blobURL)
	if err != nil {
		return err
	}
	if strings.Trim(parsed.Path, "/") == "" {
		return apperrors.NewValidationError("blob URL must name a container", nil)
	}
	if parsed.Query().Get("blob") == "" {
		return apperrors.NewValidationError("blob URL must carry a blob query parameter", nil)
	}
	return nil
}

func (v *URLValidator) parse(raw string) (*url.URL, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, apperrors.NewValidationError("URL cannot be empty", nil)
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid URL format", err)
	}
	if parsed.Host == "" {
		return nil, apperrors.NewValidationError("URL must have a valid host", nil)
	}
	return parsed, nil
}

func (v *URLValidator) isSchemeAllowed(scheme string) bool {
	for _, allowed := range v.allowedSchemes {
		if scheme == allowed {
			return true
		}
	}
	return false
}

// isHostAllowed reports whether the host is in the allow-list. An empty
// list allows every host.
func (v *URLValidator) isHostAllowed(host string) bool {
	if len(v.allowedHosts) == 0 {
		return true
	}
	for _, allowed := range v.allowedHosts {
		if host == allowed {
			return true
		}
	}
	return false
}
