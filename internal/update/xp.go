package update

import (
	"fmt"

	"github.com/sandeepkv93/studyd/internal/xp"
)

// applyAward routes one XP award through the ledger and the history
// log. Level-ups surface as a single batched notification regardless of
// how many levels one award spans.
func (m *Model) applyAward(source string, amount float64) {
	if amount <= 0 {
		return
	}
	next, gained := xp.Apply(m.XP, amount)
	m.XP = next
	m.History.Record(source, amount)
	if gained == 0 {
		return
	}
	body := fmt.Sprintf("Reached level %d", m.XP.Level)
	if gained > 1 {
		body = fmt.Sprintf("Gained %d levels, now level %d", gained, m.XP.Level)
	}
	m.Status = StatusBar{Text: body, IsError: false}
	m.notify("Level Up", body, "info")
}

// awardTestXP backs the palette `xp` command; the exact source string
// drives the history log's test classification.
func (m *Model) awardTestXP(amount float64) {
	m.applyAward("Test XP", amount)
	m.persistSnapshot()
}
