// Package search keeps an Elasticsearch index of application users for the
// admin lookup box.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/tpremraj1312/ledger-admin/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// UserDoc is the indexed representation of a user.
type UserDoc struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func docOf(u entity.User) UserDoc {
	return UserDoc{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt}
}

type UserIndex struct {
	ES     *elasticsearch.Client
	Index  string
	Logger logrus.FieldLogger
}

func NewUserIndex(es *elasticsearch.Client, index string, logger logrus.FieldLogger) *UserIndex {
	return &UserIndex{ES: es, Index: index, Logger: logger}
}

func responseError(res *esapi.Response) error {
	if !res.IsError() {
		return nil
	}
	return fmt.Errorf("elasticsearch: %s", res.Status())
}

// Put indexes or replaces one user document.
func (x *UserIndex) Put(ctx context.Context, u entity.User) error {
	b, err := json.Marshal(docOf(u))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.Index, DocumentID: u.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	return responseError(res)
}

// Remove deletes a user document. A missing document is not an error.
func (x *UserIndex) Remove(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: x.Index, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode == 404 {
		return nil
	}
	return responseError(res)
}

// Reindex writes every user through one bulk request and returns how many
// documents were accepted.
func (x *UserIndex) Reindex(ctx context.Context, users []entity.User) (int, error) {
	if len(users) == 0 {
		return 0, nil
	}
	var body bytes.Buffer
	enc := json.NewEncoder(&body)
	for _, u := range users {
		meta := map[string]any{"index": map[string]any{"_index": x.Index, "_id": u.ID}}
		if err := enc.Encode(meta); err != nil {
			return 0, err
		}
		if err := enc.Encode(docOf(u)); err != nil {
			return 0, err
		}
	}

	c, cancel := context.WithTimeout(ctx, 10*requestTimeout)
	defer cancel()
	res, err := x.ES.Bulk(bytes.NewReader(body.Bytes()), x.ES.Bulk.WithContext(c), x.ES.Bulk.WithRefresh("true"))
	if err != nil {
		return 0, err
	}
	defer func() { _ = res.Body.Close() }()
	if err := responseError(res); err != nil {
		return 0, err
	}

	var parsed struct {
		Errors bool `json:"errors"`
		Items  []map[string]struct {
			Status int `json:"status"`
		} `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return 0, err
	}
	ok := 0
	for _, item := range parsed.Items {
		for _, r := range item {
			if r.Status < 300 {
				ok++
			}
		}
	}
	if parsed.Errors && x.Logger != nil {
		x.Logger.WithField("failed", len(users)-ok).Warn("es bulk reindex had item errors")
	}
	return ok, nil
}

// Search runs a multi_match over email and name.
func (x *UserIndex) Search(ctx context.Context, q string, size int) ([]UserDoc, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"email^2", "name"},
				"fuzziness": "AUTO",
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := x.ES.Search(x.ES.Search.WithContext(c), x.ES.Search.WithIndex(x.Index), x.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if err := responseError(res); err != nil {
		return nil, err
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source UserDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]UserDoc, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
