// Package audit is the generic submission-audit collaborator: nonce replay
// checks, per-identity rate limiting, and plausibility bounds on finished
// game results. All state lives in Redis keys with explicit TTLs owned by
// this service; nothing here leaks into the engine, and the engine never
// depends on the outcome of these checks.
package audit

import (
	"errors"
	"fmt"

	"github.com/gomodule/redigo/redis"
	"github.com/playhall/marble-backend/app/models"
	"github.com/playhall/marble-backend/platform/cache"
)

var (
	ErrReplayedNonce = errors.New("audit: nonce already seen")
	ErrRateLimited   = errors.New("audit: submission rate exceeded")
	ErrImplausible   = errors.New("audit: result fails plausibility bounds")
)

type Service struct {
	pool *redis.Pool

	NonceTTLMillis    int
	RateWindowSeconds int
	RateLimit         int
	// MaxNetWorth caps any single seat's reported score.
	MaxNetWorth int
}

func New(pool *redis.Pool) *Service {
	return &Service{
		pool:              pool,
		NonceTTLMillis:    5 * 60 * 1000,
		RateWindowSeconds: 60,
		RateLimit:         30,
		MaxNetWorth:       10_000_000,
	}
}

// CheckNonce rejects a nonce that was already submitted inside the replay
// window.
func (s *Service) CheckNonce(nonce string) error {
	conn := s.pool.Get()
	defer conn.Close()
	ok, err := cache.SetNXPX("audit.nonce."+nonce, 1, s.NonceTTLMillis, &conn)
	if err != nil {
		return err
	}
	if !ok {
		return ErrReplayedNonce
	}
	return nil
}

// Allow counts one submission for identity and reports whether it stays
// inside the rate window.
func (s *Service) Allow(identity string) error {
	conn := s.pool.Get()
	defer conn.Close()
	n, err := cache.IncrExpire("audit.rate."+identity, s.RateWindowSeconds, &conn)
	if err != nil {
		return err
	}
	if n > s.RateLimit {
		return ErrRateLimited
	}
	return nil
}

// ValidateResult applies pure plausibility bounds to a final result before
// it is persisted. It never consults the engine.
func (s *Service) ValidateResult(res models.FinalResult) error {
	if res.GameID == "" || res.Rounds < 1 {
		return fmt.Errorf("%w: missing game id or rounds", ErrImplausible)
	}
	winnerListed := res.WinnerSlot == 0
	for _, sc := range res.Scores {
		if sc.Cash < 0 || sc.NetWorth < 0 || sc.NetWorth < sc.Cash {
			return fmt.Errorf("%w: seat %d scores %d/%d", ErrImplausible, sc.Slot, sc.NetWorth, sc.Cash)
		}
		if sc.NetWorth > s.MaxNetWorth {
			return fmt.Errorf("%w: seat %d net worth %d over cap", ErrImplausible, sc.Slot, sc.NetWorth)
		}
		if sc.Slot == res.WinnerSlot {
			if sc.Bankrupt {
				return fmt.Errorf("%w: winner seat %d is bankrupt", ErrImplausible, sc.Slot)
			}
			winnerListed = true
		}
	}
	if !winnerListed {
		return fmt.Errorf("%w: winner seat %d not in scores", ErrImplausible, res.WinnerSlot)
	}
	return nil
}
