package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type query struct{ q string }

func staticProvider(name string, out []string, err error) Provider[query, string] {
	return Provider[query, string]{
		Name: name,
		Search: func(ctx context.Context, _ query) ([]string, error) {
			return out, err
		},
	}
}

func mockStrings(query) []string { return []string{"mock-a", "mock-b"} }

func TestSearchChain_FirstNonEmptySuccessWins(t *testing.T) {
	chain := []Provider[query, string]{
		staticProvider("broken", nil, errors.New("boom")),
		staticProvider("empty", []string{}, nil),
		staticProvider("live", []string{"x"}, nil),
		staticProvider("never", []string{"y"}, nil),
	}

	resp := searchChain(context.Background(), "thing", chain, query{}, mockStrings)

	assert.True(t, resp.Success)
	assert.Equal(t, "live", resp.Source)
	assert.Equal(t, []string{"x"}, resp.Data)
	assert.Equal(t, 1, resp.Total)
}

func TestSearchChain_ExhaustedFallsBackToMock(t *testing.T) {
	chain := []Provider[query, string]{
		staticProvider("broken", nil, errors.New("boom")),
	}

	resp := searchChain(context.Background(), "thing", chain, query{}, mockStrings)

	require.True(t, resp.Success)
	assert.Equal(t, SourceMock, resp.Source)
	assert.Equal(t, len(resp.Data), resp.Total)
	assert.Len(t, resp.Data, 2)
}

func TestSearchChain_NoProvidersUsesMock(t *testing.T) {
	resp := searchChain[query, string](context.Background(), "thing", nil, query{}, mockStrings)
	assert.Equal(t, SourceMock, resp.Source)
	assert.Equal(t, 2, resp.Total)
}

func TestSearchChain_CancelledContextSkipsProviders(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	chain := []Provider[query, string]{{
		Name: "live",
		Search: func(context.Context, query) ([]string, error) {
			called = true
			return []string{"x"}, nil
		},
	}}

	resp := searchChain(ctx, "thing", chain, query{}, mockStrings)
	assert.False(t, called)
	assert.Equal(t, SourceMock, resp.Source)
}

func TestStableHash_IsDeterministic(t *testing.T) {
	assert.Equal(t, stableHash("DEL", "BOM"), stableHash("DEL", "BOM"))
	assert.NotEqual(t, stableHash("DEL", "BOM"), stableHash("BOM", "DEL"))
	assert.NotEqual(t, stableHash("ab", "c"), stableHash("a", "bc"))
}
