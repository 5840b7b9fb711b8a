package game

import "time"

// bankTimer commits any unbanked time on the entry and clears the
// start stamp. Safe to call on entries without a running timer.
func (e *LineupEntry) bankTimer(nowMs int64) {
	if e.TimerStartedAt == nil {
		return
	}
	e.PlaytimeSeconds += roundSeconds(*e.TimerStartedAt, nowMs)
	e.TimerStartedAt = nil
}

// startTimer stamps the entry as accruing from nowMs, unless a stamp
// is already set.
func (e *LineupEntry) startTimer(nowMs int64) {
	if e.TimerStartedAt != nil {
		return
	}
	start := nowMs
	e.TimerStartedAt = &start
}

// DisplaySeconds is the live playtime projection for one player:
// banked seconds plus the unbanked interval since the last timer
// start. Pure, never mutates the entry.
func (e *LineupEntry) DisplaySeconds(now time.Time) int64 {
	if e.TimerStartedAt != nil {
		return e.PlaytimeSeconds + roundSeconds(*e.TimerStartedAt, now.UnixMilli())
	}
	return e.PlaytimeSeconds
}
