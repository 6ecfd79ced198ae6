// internal/directory/directory.go

// Package directory loads the personnel directory (project managers and
// department contacts) and answers lookups against it, with a Redis
// read-through cache in front of the name search.
package directory

import (
	"context"
	"encoding/json"
	"os"
	"sort"
	"time"

	"minutes-service/internal/common/database"
	"minutes-service/internal/common/errors"
	"minutes-service/internal/common/logger"
	"minutes-service/internal/common/metrics"
	"minutes-service/internal/models"
)

const cacheKeyPrefix = "pmdir:"

// Data is the parsed directory file.
type Data struct {
	ProjectManagers []models.ProjectManager
	Contacts        models.ContactDirectory
}

// rawData matches the on-disk layout, where contacts are [name, email] pairs.
type rawData struct {
	PMData    []models.ProjectManager `json:"pm_data"`
	EmailData map[string]struct {
		Leader  []string `json:"leader"`
		Manager []string `json:"manager"`
	} `json:"email_data"`
}

// Load reads and parses the directory file.
func Load(path string) (*Data, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewDirectoryLoadFailedError(path, err)
	}

	var raw rawData
	if err := json.Unmarshal(buf, &raw); err != nil {
		return nil, errors.NewDirectoryLoadFailedError(path, err)
	}

	data := &Data{
		ProjectManagers: raw.PMData,
		Contacts:        make(models.ContactDirectory, len(raw.EmailData)),
	}
	for dept, c := range raw.EmailData {
		data.Contacts[dept] = models.DeptContacts{
			Leader:  pairToContact(c.Leader),
			Manager: pairToContact(c.Manager),
		}
	}
	return data, nil
}

func pairToContact(pair []string) models.Contact {
	var c models.Contact
	if len(pair) > 0 {
		c.Name = pair[0]
	}
	if len(pair) > 1 {
		c.Email = pair[1]
	}
	return c
}

// Service answers directory queries.
type Service struct {
	data   *Data
	cache  *database.RedisClient
	ttl    time.Duration
	logger logger.Logger
}

// NewService builds a directory service. cache may be nil, in which case
// every lookup scans the in-memory table.
func NewService(data *Data, cache *database.RedisClient, ttl time.Duration, log logger.Logger) *Service {
	return &Service{data: data, cache: cache, ttl: ttl, logger: log}
}

// Contacts returns the department contact table.
func (s *Service) Contacts() models.ContactDirectory {
	return s.data.Contacts
}

// Departments lists every department appearing in the project-manager table,
// sorted.
func (s *Service) Departments() []string {
	seen := make(map[string]bool)
	var out []string
	for _, pm := range s.data.ProjectManagers {
		if pm.Department != "" && !seen[pm.Department] {
			seen[pm.Department] = true
			out = append(out, pm.Department)
		}
	}
	sort.Strings(out)
	return out
}

// LookupManager finds every directory entry with the given name. When a
// department hint is supplied, entries from that department sort first. A
// cache failure degrades to the in-memory scan, never to an error.
func (s *Service) LookupManager(ctx context.Context, name, deptHint string) []models.ProjectManager {
	matches := s.cachedMatches(ctx, name)

	if deptHint != "" {
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].Department == deptHint && matches[j].Department != deptHint
		})
	}
	return matches
}

func (s *Service) cachedMatches(ctx context.Context, name string) []models.ProjectManager {
	if s.cache == nil {
		return s.scan(name)
	}

	key := cacheKeyPrefix + name
	if cached, err := s.cache.Get(ctx, key); err == nil {
		var matches []models.ProjectManager
		if err := json.Unmarshal([]byte(cached), &matches); err == nil {
			metrics.DirectoryCacheHits.WithLabelValues("hit").Inc()
			return matches
		}
	}
	metrics.DirectoryCacheHits.WithLabelValues("miss").Inc()

	matches := s.scan(name)
	if buf, err := json.Marshal(matches); err == nil {
		if err := s.cache.Set(ctx, key, buf, s.ttl); err != nil {
			s.logger.Warn("directory cache write failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}
	return matches
}

func (s *Service) scan(name string) []models.ProjectManager {
	var matches []models.ProjectManager
	for _, pm := range s.data.ProjectManagers {
		if pm.Name == name {
			matches = append(matches, pm)
		}
	}
	return matches
}
