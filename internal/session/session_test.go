package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashigaru9/pgw-sessiond/internal/apperr"
	"github.com/ashigaru9/pgw-sessiond/internal/monitor"
	"github.com/ashigaru9/pgw-sessiond/internal/ruledb"
	"github.com/ashigaru9/pgw-sessiond/internal/usage"
)

func TestSession_InitAndSingleRecord(t *testing.T) {
	store := ruledb.NewRuleStore()
	store.InsertRule(ruledb.NewRule("rule1", 1, "", time.Time{}))

	s := New("IMSI1", "sess-1", Config{}, store)
	s.Init(time.Now(), InitRequest{
		Credits:     []CreditGrant{{ChargingKey: 1, Total: 1024}},
		StaticRules: []StaticRuleInstall{{RuleID: "rule1"}},
	})

	require.NoError(t, s.AbsorbRecord("rule1", 16, 32))

	tr, ok := s.CreditTracker(1)
	require.True(t, ok)
	assert.Equal(t, uint64(16), tr.Bucket(usage.UsedRX))
	assert.Equal(t, uint64(32), tr.Bucket(usage.UsedTX))
	assert.Equal(t, uint64(1024), tr.Bucket(usage.AllowedTotal))
}

func TestSession_AggregationOverMultipleRules(t *testing.T) {
	store := ruledb.NewRuleStore()
	store.InsertRule(ruledb.NewRule("rule1", 1, "", time.Time{}))
	store.InsertRule(ruledb.NewRule("rule2", 1, "", time.Time{}))
	store.InsertRule(ruledb.NewRule("rule3", 2, "", time.Time{}))

	s := New("IMSI1", "sess-1", Config{}, store)
	s.Init(time.Now(), InitRequest{
		Credits: []CreditGrant{{ChargingKey: 1, Total: 10000}, {ChargingKey: 2, Total: 10000}},
		StaticRules: []StaticRuleInstall{
			{RuleID: "rule1"}, {RuleID: "rule2"}, {RuleID: "rule3"},
		},
	})

	require.NoError(t, s.AbsorbRecord("rule1", 10, 20))
	require.NoError(t, s.AbsorbRecord("rule2", 5, 15))
	require.NoError(t, s.AbsorbRecord("rule3", 100, 150))

	group1, _ := s.CreditTracker(1)
	group2, _ := s.CreditTracker(2)
	assert.Equal(t, uint64(15), group1.Bucket(usage.UsedRX))
	assert.Equal(t, uint64(35), group1.Bucket(usage.UsedTX))
	assert.Equal(t, uint64(100), group2.Bucket(usage.UsedRX))
	assert.Equal(t, uint64(150), group2.Bucket(usage.UsedTX))
}

func TestSession_UnknownRuleDropped(t *testing.T) {
	store := ruledb.NewRuleStore()
	s := New("IMSI1", "sess-1", Config{}, store)
	s.Init(time.Now(), InitRequest{})

	err := s.AbsorbRecord("ghost", 1, 1)
	assert.ErrorIs(t, err, apperr.ErrUnknownRule)
}

func TestSession_ScheduledActivation(t *testing.T) {
	store := ruledb.NewRuleStore()
	store.InsertRule(ruledb.NewRule("future-rule", 1, "", time.Time{}))
	store.InsertRule(ruledb.NewRule("past-rule", 1, "", time.Time{}))

	now := time.Unix(1_700_000_000, 0)
	s := New("IMSI1", "sess-1", Config{}, store)
	actions := s.Init(now, InitRequest{
		StaticRules: []StaticRuleInstall{
			{RuleID: "future-rule", ActivationTime: now.Add(86400 * time.Second)},
			{RuleID: "past-rule", ActivationTime: now.Add(-86400 * time.Second)},
		},
	})

	require.Len(t, actions, 2)
	var immediate, scheduled *Action
	for i := range actions {
		switch actions[i].Kind {
		case ActivateRules:
			immediate = &actions[i]
		case ScheduleActivation:
			scheduled = &actions[i]
		}
	}
	require.NotNil(t, immediate)
	require.NotNil(t, scheduled)
	assert.Equal(t, []string{"past-rule"}, immediate.StaticRuleIDs)
	assert.Equal(t, []string{"future-rule"}, scheduled.StaticRuleIDs)
	assert.Equal(t, now.Add(86400*time.Second), scheduled.At)
}

func TestSession_MixedLevelMonitors(t *testing.T) {
	store := ruledb.NewRuleStore()
	store.InsertRule(ruledb.NewRule("both_rule", 1, "1", time.Time{}))
	store.InsertRule(ruledb.NewRule("ocs_rule", 2, "", time.Time{}))
	store.InsertRule(ruledb.NewRule("pcrf_only", 0, "3", time.Time{}))
	store.InsertRule(ruledb.NewRule("pcrf_split", 0, "1", time.Time{}))

	s := New("IMSI1", "sess-1", Config{}, store)
	s.Init(time.Now(), InitRequest{
		Credits: []CreditGrant{{ChargingKey: 1, Total: 10000}, {ChargingKey: 2, Total: 10000}},
		Monitors: []MonitorGrant{
			{MonitoringKey: "1", Level: monitor.PCCRuleLevel, Total: 10000},
			{MonitoringKey: "3", Level: monitor.PCCRuleLevel, Total: 2048},
			{MonitoringKey: "4", Level: monitor.SessionLevel, Total: 1000},
		},
		StaticRules: []StaticRuleInstall{
			{RuleID: "both_rule"}, {RuleID: "ocs_rule"}, {RuleID: "pcrf_only"}, {RuleID: "pcrf_split"},
		},
	})

	require.NoError(t, s.AbsorbRecord("both_rule", 10, 20))
	require.NoError(t, s.AbsorbRecord("ocs_rule", 5, 15))
	require.NoError(t, s.AbsorbRecord("pcrf_only", 1024, 1024))
	require.NoError(t, s.AbsorbRecord("pcrf_split", 10, 20))

	mon1 := s.monitorTrackers["1"]
	assert.Equal(t, uint64(20), mon1.Bucket(usage.UsedRX))
	assert.Equal(t, uint64(40), mon1.Bucket(usage.UsedTX))

	mon3 := s.monitorTrackers["3"]
	assert.Equal(t, uint64(1024), mon3.Bucket(usage.UsedRX))
	assert.Equal(t, uint64(1024), mon3.Bucket(usage.UsedTX))

	mon4 := s.monitorTrackers["4"]
	assert.Equal(t, uint64(1049), mon4.Bucket(usage.UsedRX))
	assert.Equal(t, uint64(1079), mon4.Bucket(usage.UsedTX))

	_, monitorReports, _ := s.CollectReports()
	reportedKeys := map[string]bool{}
	for _, r := range monitorReports {
		reportedKeys[r.MonitoringKey] = true
	}
	assert.True(t, reportedKeys["3"])
	assert.True(t, reportedKeys["4"])
	assert.False(t, reportedKeys["1"])
}

func TestSession_FinalUnitDeactivation(t *testing.T) {
	store := ruledb.NewRuleStore()
	store.InsertRule(ruledb.NewRule("rule1", 1, "", time.Time{}))
	store.InsertRule(ruledb.NewRule("rule2", 1, "", time.Time{}))

	s := New("IMSI1", "sess-1", Config{}, store)
	s.Init(time.Now(), InitRequest{
		Credits:     []CreditGrant{{ChargingKey: 1, Total: 1024, IsFinal: true}},
		StaticRules: []StaticRuleInstall{{RuleID: "rule1"}, {RuleID: "rule2"}},
	})

	require.NoError(t, s.AbsorbRecord("rule1", 1024, 0))

	_, _, actions := s.CollectReports()
	require.Len(t, actions, 1)
	assert.Equal(t, DeactivateRules, actions[0].Kind)
	assert.ElementsMatch(t, []string{"rule1", "rule2"}, actions[0].StaticRuleIDs)

	_, _, actionsAgain := s.CollectReports()
	assert.Empty(t, actionsAgain)
}

func TestSession_TerminateMarksPending(t *testing.T) {
	store := ruledb.NewRuleStore()
	s := New("IMSI1", "sess-1", Config{}, store)
	s.Init(time.Now(), InitRequest{Credits: []CreditGrant{{ChargingKey: 1, Total: 100}}})

	report := s.Terminate()
	assert.Len(t, report.CreditReports, 1)
	assert.True(t, s.PendingTermination())
}

func TestSession_GrantUnblocksActivation(t *testing.T) {
	store := ruledb.NewRuleStore()
	store.InsertRule(ruledb.NewRule("rule1", 1, "", time.Time{}))

	s := New("IMSI1", "sess-1", Config{}, store)
	s.Init(time.Now(), InitRequest{
		Credits:     []CreditGrant{{ChargingKey: 1, Total: 0}},
		StaticRules: []StaticRuleInstall{{RuleID: "rule1"}},
	})

	actions := s.ApplyUpdates([]CreditGrant{
		{ChargingKey: 1, Total: 4096, Success: true},
	}, nil)

	require.Len(t, actions, 1)
	assert.Equal(t, ActivateRules, actions[0].Kind)
	assert.Equal(t, []string{"rule1"}, actions[0].StaticRuleIDs)
}

func TestSession_FailedGrantExhaustsTracker(t *testing.T) {
	store := ruledb.NewRuleStore()
	store.InsertRule(ruledb.NewRule("rule1", 1, "", time.Time{}))

	s := New("IMSI1", "sess-1", Config{}, store)
	s.Init(time.Now(), InitRequest{
		Credits:     []CreditGrant{{ChargingKey: 1, Total: 1024}},
		StaticRules: []StaticRuleInstall{{RuleID: "rule1"}},
	})
	require.NoError(t, s.AbsorbRecord("rule1", 2048, 0))

	actions := s.ApplyUpdates([]CreditGrant{{ChargingKey: 1, Success: false}}, nil)
	assert.Empty(t, actions)

	creditReports, _, _ := s.CollectReports()
	assert.Empty(t, creditReports, "an exhausted tracker must stop reporting")
}

func TestSession_GrantForMissingTrackerCreatesIt(t *testing.T) {
	store := ruledb.NewRuleStore()
	s := New("IMSI1", "sess-1", Config{}, store)
	s.Init(time.Now(), InitRequest{})

	s.ApplyUpdates([]CreditGrant{{ChargingKey: 7, Total: 2048, Success: true}}, nil)

	tr, ok := s.CreditTracker(7)
	require.True(t, ok)
	assert.Equal(t, uint64(2048), tr.Bucket(usage.AllowedTotal))
}
