package ruledb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveTrackingType(t *testing.T) {
	assert.Equal(t, NoTracking, DeriveTrackingType(0, ""))
	assert.Equal(t, OnlyOCS, DeriveTrackingType(5, ""))
	assert.Equal(t, OnlyPCRF, DeriveTrackingType(0, "mk1"))
	assert.Equal(t, OCSAndPCRF, DeriveTrackingType(5, "mk1"))
}

func TestRuleStore_InsertAndGet(t *testing.T) {
	store := NewRuleStore()
	rule := NewRule("rule-1", 10, "", time.Time{})
	store.InsertRule(rule)

	got, ok := store.GetRule("rule-1")
	assert.True(t, ok)
	assert.Equal(t, OnlyOCS, got.TrackingType)

	_, ok = store.GetRule("missing")
	assert.False(t, ok)
}

func TestRuleStore_InsertReplacesById(t *testing.T) {
	store := NewRuleStore()
	store.InsertRule(NewRule("rule-1", 10, "", time.Time{}))
	store.InsertRule(NewRule("rule-1", 0, "mk1", time.Time{}))

	got, ok := store.GetRule("rule-1")
	assert.True(t, ok)
	assert.Equal(t, OnlyPCRF, got.TrackingType)
}

func TestRuleStore_GetRulesPartial(t *testing.T) {
	store := NewRuleStore()
	store.InsertRule(NewRule("rule-1", 10, "", time.Time{}))

	found, missing := store.GetRules([]string{"rule-1", "rule-2"})
	assert.Len(t, found, 1)
	assert.Equal(t, []string{"rule-2"}, missing)
}

func TestRule_ScheduledForFuture(t *testing.T) {
	now := time.Unix(1000, 0)
	future := NewRule("r", 1, "", now.Add(time.Minute))
	immediate := NewRule("r", 1, "", time.Time{})
	past := NewRule("r", 1, "", now.Add(-time.Minute))

	assert.True(t, future.ScheduledForFuture(now))
	assert.False(t, immediate.ScheduledForFuture(now))
	assert.False(t, past.ScheduledForFuture(now))
}
