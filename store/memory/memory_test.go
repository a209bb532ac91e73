package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/housing-engine/store"
	"github.com/warp/housing-engine/store/memory"
)

func TestMemory_SaveReplaceBumpsVersion(t *testing.T) {
	// GIVEN: A stored rule set
	m := memory.New()
	ctx := context.Background()
	require.NoError(t, m.SaveRuleSet(ctx, store.RuleSetRecord{ID: "au-2025", Name: "v1", Year: 2025, ConfigJSON: "{}"}))
	first, err := m.GetRuleSet(ctx, "au-2025")
	require.NoError(t, err)

	// WHEN: Saving the same ID again
	require.NoError(t, m.SaveRuleSet(ctx, store.RuleSetRecord{ID: "au-2025", Name: "v2", Year: 2025, ConfigJSON: `{"x":1}`}))

	// THEN: Content replaced, version bumped, creation time kept
	got, err := m.GetRuleSet(ctx, "au-2025")
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Name)
	assert.Equal(t, 2, got.Version)
	assert.Equal(t, first.CreatedAt, got.CreatedAt)
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	m := memory.New()
	ctx := context.Background()
	require.NoError(t, m.SaveRuleSet(ctx, store.RuleSetRecord{ID: "a", Name: "a", Year: 2025}))

	got, _ := m.GetRuleSet(ctx, "a")
	got.Name = "changed"

	again, _ := m.GetRuleSet(ctx, "a")
	assert.Equal(t, "a", again.Name)

	missing, err := m.GetRuleSet(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemory_ListOrder(t *testing.T) {
	m := memory.New()
	ctx := context.Background()
	for _, rec := range []store.RuleSetRecord{
		{ID: "b-2025", Year: 2025},
		{ID: "x-2026", Year: 2026},
		{ID: "a-2025", Year: 2025},
	} {
		require.NoError(t, m.SaveRuleSet(ctx, rec))
	}

	list, err := m.ListRuleSets(ctx)

	require.NoError(t, err)
	ids := []string{list[0].ID, list[1].ID, list[2].ID}
	assert.Equal(t, []string{"x-2026", "a-2025", "b-2025"}, ids)
}

func TestMemory_DeleteAndActive(t *testing.T) {
	m := memory.New()
	ctx := context.Background()
	require.NoError(t, m.SaveRuleSet(ctx, store.RuleSetRecord{ID: "a", Year: 2025}))

	require.NoError(t, m.DeleteRuleSet(ctx, "a"))
	require.NoError(t, m.DeleteRuleSet(ctx, "a"))
	list, _ := m.ListRuleSets(ctx)
	assert.Empty(t, list)

	active, _ := m.ActiveRuleSet(ctx)
	assert.Empty(t, active)
	require.NoError(t, m.SetActiveRuleSet(ctx, "b"))
	active, _ = m.ActiveRuleSet(ctx)
	assert.Equal(t, "b", active)
	assert.NoError(t, m.Ping(ctx))
}
