package holdem

import "errors"

// MaxPlayers is the maximum number of seats at a table
const MaxPlayers = 10

// Options configures a table
type Options struct {
	SmallBlind    int `json:"smallBlind"`
	BigBlind      int `json:"bigBlind"`
	Ante          int `json:"ante"`
	StartingChips int `json:"startingChips"`
}

// DefaultOptions returns the default table options
func DefaultOptions() Options {
	return Options{
		SmallBlind:    10,
		BigBlind:      20,
		Ante:          0,
		StartingChips: 1000,
	}
}

func (o Options) validate() error {
	if o.SmallBlind <= 0 {
		return errors.New("small blind must be > 0")
	}

	if o.BigBlind < o.SmallBlind {
		return errors.New("big blind must be >= small blind")
	}

	if o.Ante < 0 {
		return errors.New("ante must be >= 0")
	}

	if o.StartingChips < 0 {
		return errors.New("starting chips must be >= 0")
	}

	return nil
}
