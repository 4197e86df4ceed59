package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/taskflow/internal/domain"
)

func TestDealsAPI_GetAll_NormalizesStages(t *testing.T) {
	doer := &mockDoer{body: `[
		{"id": "d1", "name": "Acme expansion", "value": 50000, "currency": "EUR", "stage": "Negotiation", "probability": 60},
		{"id": "d2", "name": "Initech intro", "amount": "12000", "stage": "Lead", "organizationId": "c7"},
		{"id": "d3", "name": "Mystery", "stage": "Bogus Stage Nobody Knows"}
	]`}
	a := newTestAPI(doer)

	deals, err := a.Deals.GetAll(context.Background())

	require.NoError(t, err)
	require.Len(t, deals, 3)

	assert.Equal(t, domain.StageNegotiation, deals[0].Stage)
	assert.Equal(t, "EUR", deals[0].Currency)

	// synonym + camelCase + string amount all normalize
	assert.Equal(t, domain.StageNew, deals[1].Stage)
	assert.InDelta(t, 12000, deals[1].Value, 0.001)
	assert.Equal(t, "c7", deals[1].OrganizationID)
	assert.Equal(t, "USD", deals[1].Currency)

	// unknown stage degrades to the default bucket instead of failing
	assert.Equal(t, domain.StageNew, deals[2].Stage)
}

func TestDealsAPI_Update(t *testing.T) {
	doer := &mockDoer{body: `{}`}
	a := newTestAPI(doer)

	err := a.Deals.Update(context.Background(), "d1", map[string]any{"probability": 80})

	require.NoError(t, err)
	assert.Equal(t, "/deals/d1", doer.lastReq.URL.Path)
}

func TestDealsAPI_GetAll_Error(t *testing.T) {
	doer := &mockDoer{status: 503, body: `{"error": "upstream timeout"}`}
	a := newTestAPI(doer)

	_, err := a.Deals.GetAll(context.Background())

	require.Error(t, err)
	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "deal", apiErr.Entity)
	assert.Contains(t, err.Error(), "upstream timeout")
}
