package entity

// Profile - a participant's stored identity and tally across games.
type Profile struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
	Ties   int    `json:"ties"`
	GameID string `json:"game_id,omitempty"`
}

// Played - total number of finished games.
func (that *Profile) Played() int {
	return that.Wins + that.Losses + that.Ties
}

// Tally - records a finished game's outcome from this profile's point of view.
func (that *Profile) Tally(outcome Outcome) {
	switch {
	case outcome.IsTied():
		that.Ties++
	case outcome.IsWon() && outcome.Winner == that.ID:
		that.Wins++
	case outcome.IsWon():
		that.Losses++
	}
}
