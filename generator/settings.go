// go-qrcode
// Copyright 2014 Tom Harwood

package generator

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	qrcode "github.com/weilsonwonder/go-qrstyle"
	"github.com/weilsonwonder/go-qrstyle/style"
)

// Settings is a complete generator state: what to encode and how to draw
// it. As a document it is a single flat JSON or YAML object, for example:
//
//	text: https://example.com
//	ecc: Q
//	pixelStyle: dot
//	markerShape: circle
//	margin: {top: 2, left: 4, right: 4, bottom: 2}
//	effect: crystalize
type Settings struct {
	qrcode.EncodingRequest
	style.Config
}

// DefaultSettings returns the default settings for text.
func DefaultSettings(text string) Settings {
	return Settings{
		EncodingRequest: qrcode.DefaultEncodingRequest(text),
		Config:          style.DefaultConfig(),
	}
}

// Validate checks the encoding request and the style.
func (s Settings) Validate() error {
	if err := s.EncodingRequest.Validate(); err != nil {
		return err
	}

	return s.Config.Validate()
}

// ParseSettings reads a JSON or YAML settings document. Keys that are
// absent keep their default value.
func ParseSettings(data []byte) (Settings, error) {
	s := DefaultSettings("")

	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}

	return s, nil
}

// LoadSettings reads a settings document from a file.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}

	s, err := ParseSettings(data)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// YAML returns the settings as a YAML document.
func (s Settings) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}
