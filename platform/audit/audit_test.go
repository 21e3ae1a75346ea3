package audit

import (
	"errors"
	"testing"

	"github.com/playhall/marble-backend/app/models"
)

func validResult() models.FinalResult {
	return models.FinalResult{
		GameID:     "g1",
		Mode:       models.ModeClassic,
		WinnerSlot: 2,
		Rounds:     9,
		Scores: []models.SeatScore{
			{Slot: 1, NetWorth: 0, Cash: 0, Bankrupt: true},
			{Slot: 2, NetWorth: 43000, Cash: 18000},
		},
	}
}

func TestValidateResult(t *testing.T) {
	svc := New(nil)

	cases := []struct {
		name   string
		mutate func(*models.FinalResult)
		wantOK bool
	}{
		{"well-formed result", func(r *models.FinalResult) {}, true},
		{"no winner on double bankruptcy", func(r *models.FinalResult) {
			r.WinnerSlot = 0
			r.Scores[1].Bankrupt = true
		}, true},
		{"missing game id", func(r *models.FinalResult) { r.GameID = "" }, false},
		{"zero rounds", func(r *models.FinalResult) { r.Rounds = 0 }, false},
		{"negative cash", func(r *models.FinalResult) { r.Scores[1].Cash = -5 }, false},
		{"net worth below cash", func(r *models.FinalResult) { r.Scores[1].NetWorth = 100 }, false},
		{"net worth over cap", func(r *models.FinalResult) { r.Scores[1].NetWorth = 99_000_000 }, false},
		{"winner not in scores", func(r *models.FinalResult) { r.WinnerSlot = 7 }, false},
		{"bankrupt winner", func(r *models.FinalResult) { r.Scores[1].Bankrupt = true }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := validResult()
			tc.mutate(&res)
			err := svc.ValidateResult(res)
			if tc.wantOK && err != nil {
				t.Errorf("ValidateResult = %v, want nil", err)
			}
			if !tc.wantOK && !errors.Is(err, ErrImplausible) {
				t.Errorf("ValidateResult = %v, want ErrImplausible", err)
			}
		})
	}
}
