package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/magnetlabs/watchtower/internal/domain"
)

// TargetSpec is one entry in the targets file.
type TargetSpec struct {
	Name           string `yaml:"name"`
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type targetsFile struct {
	Domains []TargetSpec `yaml:"domains"`
}

// LoadTargets reads and validates the target list. Any problem here is
// fatal for the run: a monitor with an unreadable target list has
// nothing to do.
func LoadTargets(path string) ([]domain.Target, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read targets %q: %w", path, err)
	}

	var tf targetsFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parse targets %q: %w", path, err)
	}
	if len(tf.Domains) == 0 {
		return nil, fmt.Errorf("targets %q: no domains defined", path)
	}

	targets := make([]domain.Target, 0, len(tf.Domains))
	for i, spec := range tf.Domains {
		if spec.Name == "" {
			return nil, fmt.Errorf("targets %q: entry %d has no name", path, i)
		}
		if !isValidHTTPURL(spec.URL) {
			return nil, fmt.Errorf("targets %q: entry %q has invalid url %q", path, spec.Name, spec.URL)
		}
		timeout := domain.DefaultTimeout
		if spec.TimeoutSeconds > 0 {
			timeout = time.Duration(spec.TimeoutSeconds) * time.Second
		}
		targets = append(targets, domain.Target{
			Name:    spec.Name,
			URL:     spec.URL,
			Timeout: timeout,
		})
	}
	return targets, nil
}

// isValidHTTPURL accepts absolute http/https URLs with a host.
func isValidHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}
