package dnd5e_test

import (
	"testing"

	"github.com/KirkDiggler/mythweaver/internal/clients/dnd5e"
	mockdnd5e "github.com/KirkDiggler/mythweaver/internal/clients/dnd5e/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestClient_ImplementsInterface(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mock := mockdnd5e.NewMockClient(ctrl)
	var _ dnd5e.Client = mock

	expected := []*dnd5e.MonsterTemplate{
		{Key: "goblin", Name: "Goblin", ChallengeRating: 0.25},
		{Key: "orc", Name: "Orc", ChallengeRating: 0.5},
	}
	mock.EXPECT().ListMonstersByCR(float32(0), float32(1)).Return(expected, nil)

	monsters, err := mock.ListMonstersByCR(0, 1)
	require.NoError(t, err)
	assert.Equal(t, expected, monsters)
}

func TestParseDamageDice(t *testing.T) {
	tests := []struct {
		expr string
		want dnd5e.Damage
	}{
		{"1d6+2", dnd5e.Damage{DiceCount: 1, DiceSize: 6, Bonus: 2}},
		{"2d8", dnd5e.Damage{DiceCount: 2, DiceSize: 8}},
		{"1d4-1", dnd5e.Damage{DiceCount: 1, DiceSize: 4, Bonus: -1}},
		{" 1d10 + 3 ", dnd5e.Damage{DiceCount: 1, DiceSize: 10, Bonus: 3}},
		{"", dnd5e.Damage{}},
		{"7", dnd5e.Damage{}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.Equal(t, tt.want, *dnd5e.ParseDamageDice(tt.expr))
		})
	}
}

func TestCRValuesInRange(t *testing.T) {
	assert.Equal(t, []float32{0.25, 0.5, 1}, dnd5e.CRValuesInRange(0.25, 1))
	assert.Empty(t, dnd5e.CRValuesInRange(31, 40))
}

func TestPrimaryAttack(t *testing.T) {
	bite := &dnd5e.MonsterAction{
		Name:        "Bite",
		AttackBonus: 4,
		Damage:      []*dnd5e.Damage{{DiceCount: 2, DiceSize: 4, Bonus: 2}},
	}
	m := &dnd5e.MonsterTemplate{
		Name: "Wolf",
		Actions: []*dnd5e.MonsterAction{
			{Name: "Pack Tactics"},
			bite,
		},
	}

	assert.Same(t, bite, m.PrimaryAttack())
	assert.Nil(t, (&dnd5e.MonsterTemplate{}).PrimaryAttack())
	assert.Nil(t, (*dnd5e.MonsterTemplate)(nil).PrimaryAttack())
}
