package board

import "github.com/playhall/marble-backend/app/models"

// Six characters, unique per room. Passive rent modifiers feed the last
// rent step; active abilities resolve through the same effect resolver the
// card decks use.
var characterCatalog = []models.Character{
	{
		ID: "mogul", Name: "The Mogul",
		RentPctBonus: 10,
		Ability: models.Ability{
			Effect: models.EffectGrantDoubleRent, Target: models.TargetSelf,
			Value: 2, Cooldown: 4,
			AllowedPhases: []models.TurnPhase{models.PhaseRollDice},
		},
	},
	{
		ID: "saboteur", Name: "The Saboteur",
		Ability: models.Ability{
			Effect: models.EffectDowngradeProperty, Target: models.TargetOpponentProperty,
			Cooldown:      5,
			AllowedPhases: []models.TurnPhase{models.PhaseRollDice},
		},
	},
	{
		ID: "guardian", Name: "The Guardian",
		Ability: models.Ability{
			Effect: models.EffectGrantShield, Target: models.TargetSelf,
			Value: 2, Cooldown: 4,
			AllowedPhases: []models.TurnPhase{models.PhaseRollDice, models.PhaseIslandTurn},
		},
	},
	{
		ID: "voyager", Name: "The Voyager",
		Ability: models.Ability{
			Effect: models.EffectMoveToCell, Target: models.TargetCell,
			Cooldown:      5,
			AllowedPhases: []models.TurnPhase{models.PhaseRollDice},
		},
	},
	{
		ID: "banker", Name: "The Banker",
		RentFlatBonus: 100,
		Ability: models.Ability{
			Effect: models.EffectGrantCash, Target: models.TargetSelf,
			Value: 1500, Cooldown: 6,
			AllowedPhases: []models.TurnPhase{models.PhaseRollDice},
		},
	},
	{
		ID: "trickster", Name: "The Trickster",
		Ability: models.Ability{
			Effect: models.EffectSkipOpponentTurn, Target: models.TargetOpponent,
			Cooldown:      6,
			AllowedPhases: []models.TurnPhase{models.PhaseRollDice},
		},
	},
}

// CharacterByID looks up a catalog entry; ok is false for unknown ids.
func CharacterByID(id string) (models.Character, bool) {
	for _, c := range characterCatalog {
		if c.ID == id {
			return c, true
		}
	}
	return models.Character{}, false
}

// CharacterIDs returns every catalog id in order.
func CharacterIDs() []string {
	out := make([]string, len(characterCatalog))
	for i, c := range characterCatalog {
		out[i] = c.ID
	}
	return out
}
