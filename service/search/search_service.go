package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"

	entity "starter.GO/model/entity"
)

// SearchService mirrors users into Elasticsearch and answers text queries.
// A nil client means search is not configured; every method fails fast with
// ErrNotConfigured so callers can map it to a service-unavailable response.
type SearchService struct {
	client *elasticsearch.Client
	index  string
}

var ErrNotConfigured = fmt.Errorf("elasticsearch not configured")

// NewSearchService builds the service. addr empty disables search (nil client).
func NewSearchService(addr string) *SearchService {
	s := &SearchService{index: "starter_users"}
	if addr == "" {
		return s
	}
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{addr},
	})
	if err != nil {
		return s
	}
	s.client = client
	return s
}

// Enabled reports whether a client is attached.
func (s *SearchService) Enabled() bool {
	return s.client != nil
}

// IndexUser upserts a user document.
func (s *SearchService) IndexUser(ctx context.Context, u *entity.User) error {
	if s.client == nil {
		return ErrNotConfigured
	}
	doc := map[string]interface{}{
		"id":        u.UserID,
		"name":      u.Name,
		"email":     u.Email,
		"is_active": u.IsActive,
	}
	body, _ := json.Marshal(doc)
	res, err := s.client.Index(
		s.index,
		bytes.NewReader(body),
		s.client.Index.WithDocumentID(strconv.FormatUint(uint64(u.UserID), 10)),
		s.client.Index.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch index error: %s", res.String())
	}
	return nil
}

// RemoveUser deletes a user document. Missing documents are not an error.
func (s *SearchService) RemoveUser(ctx context.Context, id uint) error {
	if s.client == nil {
		return ErrNotConfigured
	}
	res, err := s.client.Delete(
		s.index,
		strconv.FormatUint(uint64(id), 10),
		s.client.Delete.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("elasticsearch delete error: %s", res.String())
	}
	return nil
}

// Hit is one search result row.
type Hit struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Search runs a multi_match query over name and email.
func (s *SearchService) Search(ctx context.Context, query string, size int) ([]Hit, int, error) {
	if s.client == nil {
		return nil, 0, ErrNotConfigured
	}
	if size <= 0 {
		size = 20
	}

	body := map[string]interface{}{
		"size": size,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name^2", "email"},
			},
		},
	}
	bodyBytes, _ := json.Marshal(body)

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(bodyBytes)),
	)
	if err != nil {
		return nil, 0, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, 0, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	var esResp struct {
		Hits struct {
			Total struct {
				Value int `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source Hit `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		return nil, 0, err
	}

	hits := make([]Hit, 0, len(esResp.Hits.Hits))
	for _, h := range esResp.Hits.Hits {
		hits = append(hits, h.Source)
	}
	return hits, esResp.Hits.Total.Value, nil
}
