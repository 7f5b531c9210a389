package enforcer

import "context"

// AggregateRecords folds a batch of data-plane usage records into
// their owning sessions. Records naming an unknown sid or unknown
// rule are dropped with a warning and counted;
// the batch is applied as a single step on the enforcer loop, so it is
// atomic with respect to any concurrent observer.
func (e *Enforcer) AggregateRecords(ctx context.Context, table RuleRecordTable) (int, error) {
	return exec(ctx, e, func() int {
		dropped := 0
		for _, rec := range table.Records {
			sess, ok := e.sessions[rec.SID]
			if !ok {
				e.logger.Warn("record for unknown subscriber dropped",
					"event_id", "UNKNOWN_SID_RECORD", "sid", e.masker.SID(rec.SID), "rule_id", rec.RuleID)
				dropped++
				continue
			}
			if err := sess.AbsorbRecord(rec.RuleID, rec.BytesRX, rec.BytesTX); err != nil {
				e.logger.Warn("record for unknown rule dropped",
					"event_id", "UNKNOWN_RULE_RECORD", "sid", e.masker.SID(rec.SID), "rule_id", rec.RuleID, "error", err.Error())
				dropped++
			}
		}
		if dropped > 0 {
			e.droppedRecords.Add(uint64(dropped))
			e.metrics.AddDroppedRecords(dropped)
		}
		return dropped
	})
}
