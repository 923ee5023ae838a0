package services

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"log"
	"net/http"

	"goginie/models"
)

// Provider is one remote source for a search domain. Chains try providers in
// priority order; the first non-empty success wins.
type Provider[P, T any] struct {
	Name   string
	Search func(ctx context.Context, params P) ([]T, error)
}

// searchChain runs providers in order and falls back to mock data when every
// provider errors or comes back empty.
func searchChain[P, T any](ctx context.Context, domain string, providers []Provider[P, T], params P, mock func(P) []T) models.SearchResponse[T] {
	for _, p := range providers {
		if ctx.Err() != nil {
			break
		}
		results, err := p.Search(ctx, params)
		if err != nil {
			log.Printf("⚠️  %s search via %s failed: %v — trying next source", domain, p.Name, err)
			continue
		}
		if len(results) == 0 {
			log.Printf("⚠️  %s returned 0 %s results — trying next source", p.Name, domain)
			continue
		}
		log.Printf("✅ %s: %d live %s results", p.Name, len(results), domain)
		return models.SearchOK(results, p.Name)
	}

	log.Printf("⚠️  All %s sources exhausted — using estimated data", domain)
	return models.SearchOK(mock(params), SourceMock)
}

const SourceMock = "mock"

// getJSON performs a request and decodes a 2xx JSON body into out.
func getJSON(ctx context.Context, client *http.Client, req *http.Request, out any) error {
	req = req.WithContext(ctx)
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("API error (%d): %s", resp.StatusCode, truncate(string(body), 200))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// stableHash gives mock data a deterministic shape per input.
func stableHash(parts ...string) uint32 {
	h := fnv.New32a()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return h.Sum32()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
