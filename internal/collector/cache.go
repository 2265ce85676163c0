package collector

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/rgitaccount/NurSun-Energy-Reporter/internal/model"
)

// SurveyCache persists the last successful site survey to a JSON file
// so a later failed lookup can fall back to the previously displayed
// values instead of zeroing them.
type SurveyCache struct {
	mu   sync.Mutex
	path string
}

// NewSurveyCache creates a cache backed by the given file.
func NewSurveyCache(path string) *SurveyCache {
	return &SurveyCache{path: path}
}

// Load reads the cached survey. A missing, unreadable, or corrupt file
// yields nil; the cache never fails a survey.
func (s *SurveyCache) Load() *model.SiteSurvey {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[WARN] read survey cache: %v", err)
		}
		return nil
	}
	var survey model.SiteSurvey
	if err := json.Unmarshal(data, &survey); err != nil {
		log.Printf("[WARN] decode survey cache: %v", err)
		return nil
	}
	return &survey
}

// Save writes the survey to disk, creating the parent directory on
// first use.
func (s *SurveyCache) Save(survey *model.SiteSurvey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(survey, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, data, 0644)
}
