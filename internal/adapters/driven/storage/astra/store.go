package astra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/custodia-labs/tramites/internal/core/domain"
	"github.com/custodia-labs/tramites/internal/core/ports/driven"
	"github.com/custodia-labs/tramites/internal/logger"
)

const (
	// DefaultKeyspace is the keyspace new Astra databases start with.
	DefaultKeyspace = "default_keyspace"

	// DefaultTimeout bounds every Data API request.
	DefaultTimeout = 30 * time.Second

	apiPath = "/api/json/v1"
)

var log = logger.Scope("astra")

// Config holds the connection settings of an Astra database.
type Config struct {
	// Endpoint is the database API endpoint,
	// e.g. https://<db-id>-<region>.apps.astra.datastax.com.
	Endpoint string

	// Token is the application token (AstraCS:...).
	Token string

	Keyspace string
	Timeout  time.Duration
}

// Store is a driven.DocumentStore backed by the Astra Data API.
type Store struct {
	http     *resty.Client
	keyspace string
}

// Ensure Store implements the interface.
var _ driven.DocumentStore = (*Store)(nil)

// NewStore creates an Astra store. Endpoint and Token are required.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("astra endpoint: %w", domain.ErrNotConfigured)
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("astra token: %w", domain.ErrNotConfigured)
	}
	if cfg.Keyspace == "" {
		cfg.Keyspace = DefaultKeyspace
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimRight(cfg.Endpoint, "/") + apiPath)
	client.SetTimeout(cfg.Timeout)
	client.SetHeader("Token", cfg.Token)
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("Accept", "application/json")

	return &Store{http: client, keyspace: cfg.Keyspace}, nil
}

// response is the Data API envelope shared by every command.
type response struct {
	Status struct {
		Collections []string `json:"collections"`
		InsertedIDs []any    `json:"insertedIds"`
	} `json:"status"`
	Data struct {
		Documents     []domain.Document `json:"documents"`
		NextPageState *string           `json:"nextPageState"`
	} `json:"data"`
	Errors []ErrorDetail `json:"errors"`
}

// command POSTs {name: payload} to path and decodes the envelope.
func (s *Store) command(ctx context.Context, path, name string, payload any) (*response, error) {
	body, err := json.Marshal(map[string]any{name: payload})
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", name, err)
	}

	resp, err := s.http.R().
		SetContext(ctx).
		SetBody(body).
		Post(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	log.Debug("%s %s -> %d", name, path, resp.StatusCode())

	var out response
	if len(resp.Body()) > 0 {
		dec := json.NewDecoder(bytes.NewReader(resp.Body()))
		dec.UseNumber()
		if err := dec.Decode(&out); err != nil && resp.IsSuccess() {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
	}

	if !resp.IsSuccess() || len(out.Errors) > 0 {
		return nil, &APIError{StatusCode: resp.StatusCode(), Command: name, Errors: out.Errors}
	}
	return &out, nil
}

func (s *Store) keyspacePath() string {
	return "/" + url.PathEscape(s.keyspace)
}

func (s *Store) collectionPath(collection string) string {
	return s.keyspacePath() + "/" + url.PathEscape(collection)
}

// ListCollections returns the collection names of the keyspace.
func (s *Store) ListCollections(ctx context.Context) ([]string, error) {
	out, err := s.command(ctx, s.keyspacePath(), "findCollections", map[string]any{})
	if err != nil {
		return nil, err
	}
	return out.Status.Collections, nil
}

// CreateCollection creates a collection. The Data API treats creating an
// existing collection with the same options as a no-op.
func (s *Store) CreateCollection(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("collection name: %w", domain.ErrInvalidInput)
	}
	if _, err := s.command(ctx, s.keyspacePath(), "createCollection", map[string]any{"name": name}); err != nil {
		return err
	}
	log.Info("Collection %s ready in keyspace %s", name, s.keyspace)
	return nil
}

// InsertOne inserts doc and returns the id the API assigned or kept.
func (s *Store) InsertOne(ctx context.Context, collection string, doc domain.Document) (string, error) {
	out, err := s.command(ctx, s.collectionPath(collection), "insertOne", map[string]any{"document": doc})
	if err != nil {
		return "", err
	}
	if len(out.Status.InsertedIDs) == 0 {
		return doc.ID(), nil
	}
	return domain.Stringify(out.Status.InsertedIDs[0]), nil
}

// Find returns every document in collection, following nextPageState.
func (s *Store) Find(ctx context.Context, collection string) ([]domain.Document, error) {
	docs := []domain.Document{}
	var pageState *string

	for {
		payload := map[string]any{"filter": map[string]any{}}
		if pageState != nil {
			payload["options"] = map[string]any{"pageState": *pageState}
		}

		out, err := s.command(ctx, s.collectionPath(collection), "find", payload)
		if err != nil {
			return nil, err
		}
		docs = append(docs, out.Data.Documents...)

		if out.Data.NextPageState == nil || *out.Data.NextPageState == "" {
			return docs, nil
		}
		pageState = out.Data.NextPageState
	}
}

// Close releases idle connections.
func (s *Store) Close() error {
	s.http.GetClient().CloseIdleConnections()
	return nil
}
