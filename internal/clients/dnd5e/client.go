package dnd5e

import (
	"net/http"
	"strconv"
	"strings"

	dnderr "github.com/KirkDiggler/mythweaver/internal/errors"
	"github.com/KirkDiggler/mythweaver/internal/logger"
	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	apiEntities "github.com/fadedpez/dnd5e-api/entities"
	"go.uber.org/zap"
)

// TODO: add context to functions once the upstream client accepts one
type client struct {
	client dnd5e.Interface
	log    *zap.Logger
}

// Config holds the dependencies of the API client
type Config struct {
	HttpClient *http.Client
	Logger     *zap.Logger
}

// New creates a client for the public D&D 5e API
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, dnderr.InvalidArgument("dnd5e client config is required")
	}

	dndClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client: cfg.HttpClient,
	})
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to create dnd5e api client")
	}

	return &client{
		client: dndClient,
		log:    logger.OrNop(cfg.Logger).Named("dnd5e"),
	}, nil
}

func (c *client) GetMonster(key string) (*MonsterTemplate, error) {
	monster, err := c.client.GetMonster(key)
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to get monster").
			WithMeta("key", key)
	}
	if monster == nil {
		return nil, dnderr.NotFoundf("monster %s not found", key)
	}

	return apiToMonsterTemplate(monster), nil
}

// ListMonstersByCR returns monsters within a challenge rating range
func (c *client) ListMonstersByCR(minCR, maxCR float32) ([]*MonsterTemplate, error) {
	// The API only supports filtering by exact CR, not range
	crValues := CRValuesInRange(minCR, maxCR)

	monsters := make([]*MonsterTemplate, 0)
	processedKeys := make(map[string]bool)

	for _, cr := range crValues {
		crFloat64 := float64(cr)
		refs, err := c.client.ListMonstersWithFilter(&dnd5e.ListMonstersInput{
			ChallengeRating: &crFloat64,
		})
		if err != nil {
			c.log.Warn("failed to list monsters", zap.Float32("cr", cr), zap.Error(err))
			continue
		}

		for _, ref := range refs {
			if ref == nil || ref.Key == "" || processedKeys[ref.Key] {
				continue
			}
			monster, err := c.client.GetMonster(ref.Key)
			if err != nil {
				c.log.Warn("failed to get monster", zap.String("key", ref.Key), zap.Error(err))
				continue
			}
			if template := apiToMonsterTemplate(monster); template != nil {
				monsters = append(monsters, template)
				processedKeys[ref.Key] = true
			}
		}
	}

	return monsters, nil
}

// CRValuesInRange returns the standard CR values within [minCR, maxCR]
func CRValuesInRange(minCR, maxCR float32) []float32 {
	allCRs := []float32{0, 0.125, 0.25, 0.5, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10,
		11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30}

	var result []float32
	for _, cr := range allCRs {
		if cr >= minCR && cr <= maxCR {
			result = append(result, cr)
		}
	}
	return result
}

func apiToMonsterTemplate(input *apiEntities.Monster) *MonsterTemplate {
	if input == nil {
		return nil
	}

	return &MonsterTemplate{
		Key:             input.Key,
		Name:            input.Name,
		ArmorClass:      int(input.ArmorClass),
		HitPoints:       int(input.HitPoints),
		ChallengeRating: float32(input.ChallengeRating),
		Actions:         apisToMonsterActions(input.MonsterActions),
	}
}

func apisToMonsterActions(input []*apiEntities.MonsterAction) []*MonsterAction {
	var actions []*MonsterAction
	for _, ma := range input {
		if ma == nil {
			continue
		}
		action := &MonsterAction{
			Name:        ma.Name,
			AttackBonus: int(ma.AttackBonus),
		}
		for _, d := range ma.Damage {
			if d == nil {
				continue
			}
			action.Damage = append(action.Damage, ParseDamageDice(d.DamageDice))
		}
		actions = append(actions, action)
	}

	return actions
}

// ParseDamageDice parses expressions like "1d6+2". Unparseable parts are zero.
func ParseDamageDice(expr string) *Damage {
	expr = strings.ReplaceAll(strings.TrimSpace(expr), " ", "")
	dice := expr
	var bonus, diceCount, diceSize int

	if i := strings.IndexAny(expr, "+-"); i > 0 {
		bonus, _ = strconv.Atoi(expr[i:])
		dice = expr[:i]
	}

	if parts := strings.Split(dice, "d"); len(parts) == 2 {
		diceCount, _ = strconv.Atoi(parts[0])
		diceSize, _ = strconv.Atoi(parts[1])
	}

	return &Damage{
		DiceCount: diceCount,
		DiceSize:  diceSize,
		Bonus:     bonus,
	}
}
