package player

import (
	"github.com/udisondev/frontdesk/internal/config"
)

// Player bundles the side-effect collaborators visitors act on.
type Player struct {
	Hands      *Hands
	Wallet     *Wallet
	Reputation *Reputation
	Experience *Experience
}

// New creates player from config.
func New(cfg config.Player) *Player {
	return &Player{
		Hands:      NewHands(),
		Wallet:     NewWallet(cfg.StartingBalance),
		Reputation: NewReputation(cfg.ReputationStart, cfg.ReputationMin, cfg.ReputationMax),
		Experience: NewExperience(Curve{
			BaseToLevel2: cfg.BaseExpToLevel2,
			Increment:    cfg.ExpIncrement,
			MaxLevel:     cfg.MaxLevel,
		}),
	}
}

// Progress is the persistent part of the player.
type Progress struct {
	Level      int
	Exp        int
	Balance    int64
	Reputation int
}

// Progress returns current progress.
func (p *Player) Progress() Progress {
	return Progress{
		Level:      p.Experience.Level(),
		Exp:        p.Experience.Current(),
		Balance:    p.Wallet.Balance(),
		Reputation: p.Reputation.Value(),
	}
}

// Restore applies saved progress.
func (p *Player) Restore(pr Progress) {
	p.Experience.Restore(pr.Level, pr.Exp)
	p.Wallet.Adjust(pr.Balance - p.Wallet.Balance())
	p.Reputation.Adjust(pr.Reputation - p.Reputation.Value())
}
