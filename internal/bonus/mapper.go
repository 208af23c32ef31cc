package bonus

func ToResponse(b *PlayerBonus) BonusResponse {
	return BonusResponse{
		ID:          b.ID,
		PlayerID:    b.PlayerID,
		PlayerName:  b.Player.Name,
		PlayerEmail: b.Player.Email,
		BonusType:   b.BonusType,
		Amount:      b.Amount,
		IsActive:    b.IsActive,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func ToResponses(bonuses []PlayerBonus) []BonusResponse {
	out := make([]BonusResponse, 0, len(bonuses))
	for i := range bonuses {
		out = append(out, ToResponse(&bonuses[i]))
	}
	return out
}
