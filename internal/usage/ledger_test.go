package usage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedger_AddUsageBecomesEligible(t *testing.T) {
	var l Ledger
	l.AddAllowance(0, 0, 1024)
	l.AddUsage(1024, 2048)

	report, ok := l.GetUpdate()
	assert.True(t, ok)
	assert.Equal(t, ReasonQuotaExhausted, report.Reason)
	assert.Equal(t, uint64(1024), report.RX)
	assert.Equal(t, uint64(2048), report.TX)
	assert.Equal(t, Reporting, l.Phase())
}

func TestLedger_GetUpdateNotEligibleBelowQuota(t *testing.T) {
	var l Ledger
	l.AddAllowance(0, 0, 1024)
	l.AddUsage(10, 10)

	_, ok := l.GetUpdate()
	assert.False(t, ok)
}

func TestLedger_ApplyUpdatesClearsReporting(t *testing.T) {
	var l Ledger
	l.AddAllowance(0, 0, 1024)
	l.AddUsage(1024, 2048)
	_, _ = l.GetUpdate()

	l.AddAllowance(0, 0, 4096)

	assert.Equal(t, uint64(0), l.Bucket(ReportingRX))
	assert.Equal(t, uint64(0), l.Bucket(ReportingTX))
	assert.Equal(t, uint64(1024), l.Bucket(ReportedRX))
	assert.Equal(t, uint64(2048), l.Bucket(ReportedTX))
	assert.Equal(t, uint64(1024+4096), l.Bucket(AllowedTotal))
}

func TestLedger_ReauthSupersedesReporting(t *testing.T) {
	var l Ledger
	l.AddAllowance(0, 0, 1024)
	l.AddUsage(1024, 0)
	_, _ = l.GetUpdate()
	assert.Equal(t, Reporting, l.Phase())

	l.MarkReauthRequired()
	l.AddAllowance(0, 0, 4096)

	report, ok := l.GetUpdate()
	assert.True(t, ok)
	assert.Equal(t, ReasonReauthRequired, report.Reason)
}

func TestLedger_Terminate(t *testing.T) {
	var l Ledger
	l.AddAllowance(0, 0, 1024)
	l.AddUsage(100, 200)

	report := l.Terminate()
	assert.Equal(t, ReasonTerminated, report.Reason)
	assert.Equal(t, uint64(100), report.RX)
	assert.Equal(t, uint64(200), report.TX)
	assert.Equal(t, uint64(0), l.Bucket(ReportingRX))
}

func TestLedger_Exhausted(t *testing.T) {
	var l Ledger
	l.AddAllowance(0, 0, 1024)
	l.MarkExhausted()
	l.AddUsage(2000, 0)

	_, ok := l.GetUpdate()
	assert.False(t, ok)
	assert.True(t, l.Exhausted())
}

func TestLedger_AllowedTotalMonotonic(t *testing.T) {
	var l Ledger
	l.AddAllowance(0, 0, 100)
	l.AddAllowance(0, 0, 50)
	assert.Equal(t, uint64(150), l.Bucket(AllowedTotal))
}
