package valuation

// DynastyValue is the externally computed long-horizon worth of a player.
// The diagnosis engine only reads OverallScore and YearsOfEliteProduction;
// the remaining fields ride along for report rendering.
type DynastyValue struct {
	OverallScore           float64
	YearsOfEliteProduction float64
	Tier                   string
	Trend                  string
}

// Urgency is the externally computed trade-timing signal.
type Urgency string

const (
	UrgencySellNow  Urgency = "SELL NOW"
	UrgencySellSoon Urgency = "SELL SOON"
	UrgencyHold     Urgency = "HOLD"
	UrgencyBuy      Urgency = "BUY"
)

// SellWindow pairs an urgency signal with its provider-supplied reasoning.
type SellWindow struct {
	Urgency Urgency
	Reason  string
}

// IsAging reports whether the sell signal marks a closing value window.
func (s SellWindow) IsAging() bool {
	return s.Urgency == UrgencySellNow || s.Urgency == UrgencySellSoon
}
