package repository

import (
	"testing"

	"go-resistor-inspector/internal/config"
)

func TestValidateLocation_ByBackend(t *testing.T) {
	tests := []struct {
		name     string
		backend  config.StorageBackend
		location string
		wantErr  bool
	}{
		{"http valid", config.StorageHTTP, "http://example.com/r.jpg", false},
		{"http scheme rejected", config.StorageHTTP, "ftp://example.com/r.jpg", true},
		{"azure valid", config.StorageAzure, "https://acct.blob.core.windows.net/photos?blob=r1.jpg", false},
		{"azure missing blob", config.StorageAzure, "https://acct.blob.core.windows.net/photos", true},
		{"local path accepted", config.StorageLocal, "photos/r1.jpg", false},
		{"empty rejected", config.StorageHTTP, "", true},
		{"empty rejected for local", config.StorageLocal, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFetcherImageRepository(nil, tt.backend)
			err := repo.ValidateLocation(tt.location)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLocation(%q) error = %v, wantErr %v", tt.location, err, tt.wantErr)
			}
		})
	}
}
