package bonus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBonusTypeValid(t *testing.T) {
	assert.True(t, BonusTypeWelcome.Valid())
	assert.True(t, BonusTypeCashback.Valid())
	assert.True(t, BonusTypeFreeSpins.Valid())
	assert.False(t, BonusType("welcome").Valid())
	assert.False(t, BonusType("").Valid())
}

func TestNewPagedResult(t *testing.T) {
	tests := []struct {
		name         string
		page, size   int
		total        int64
		wantPages    int
		wantNext     bool
		wantPrevious bool
	}{
		{"empty", 1, 20, 0, 0, false, false},
		{"single page", 1, 20, 2, 1, false, false},
		{"exact fit", 1, 10, 20, 2, true, false},
		{"remainder", 2, 10, 21, 3, true, true},
		{"last page", 3, 10, 21, 3, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewPagedResult[int](nil, tt.page, tt.size, tt.total)
			assert.NotNil(t, r.Items)
			assert.Equal(t, tt.wantPages, r.TotalPages)
			assert.Equal(t, tt.wantNext, r.HasNext)
			assert.Equal(t, tt.wantPrevious, r.HasPrevious)
		})
	}
}

func TestToResponse(t *testing.T) {
	b := sampleBonus(3, 15, true)
	resp := ToResponse(b)
	assert.Equal(t, b.ID, resp.ID)
	assert.Equal(t, "alice.johnson@example.com", resp.PlayerEmail)
	assert.True(t, resp.Amount.Equal(b.Amount))
	assert.Equal(t, b.CreatedAt, resp.CreatedAt)
}
