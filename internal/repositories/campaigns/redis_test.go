package campaigns

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KirkDiggler/mythweaver/internal/domain/campaign"
	dnderr "github.com/KirkDiggler/mythweaver/internal/errors"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisStoreTestSuite struct {
	suite.Suite
	client *redis.Client
	mock   redismock.ClientMock
	store  *RedisStore
}

func (s *RedisStoreTestSuite) SetupTest() {
	s.client, s.mock = redismock.NewClientMock()
	s.store = NewRedisStore(&RedisStoreConfig{Client: s.client})
}

func (s *RedisStoreTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisStoreTestSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreTestSuite))
}

func (s *RedisStoreTestSuite) testList() []*campaign.Campaign {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []*campaign.Campaign{
		campaign.New("adv-1", "A Bleak Road", "grimdark", campaign.Universe{Name: "Ashfall"}, now),
	}
}

func (s *RedisStoreTestSuite) TestListKey() {
	s.Equal("mythweaver:user-1:campaigns", ListKey("user-1"))
}

func (s *RedisStoreTestSuite) TestLoad_Missing() {
	s.mock.ExpectGet(ListKey("user-1")).RedisNil()

	list, err := s.store.Load(context.Background(), "user-1")
	s.NoError(err)
	s.NotNil(list)
	s.Empty(list)
}

func (s *RedisStoreTestSuite) TestLoad_HappyPath() {
	list := s.testList()
	data, err := campaign.MarshalList(list)
	s.Require().NoError(err)

	s.mock.ExpectGet(ListKey("user-1")).SetVal(string(data))

	out, err := s.store.Load(context.Background(), "user-1")
	s.NoError(err)
	s.Equal(list, out)
}

func (s *RedisStoreTestSuite) TestLoad_Malformed() {
	s.mock.ExpectGet(ListKey("user-1")).SetVal("{broken")

	_, err := s.store.Load(context.Background(), "user-1")
	s.Error(err)
	s.True(dnderr.IsMalformedState(err))
}

func (s *RedisStoreTestSuite) TestLoad_RedisError() {
	s.mock.ExpectGet(ListKey("user-1")).SetErr(errors.New("connection refused"))

	_, err := s.store.Load(context.Background(), "user-1")
	s.Error(err)
	s.Equal(dnderr.CodeUnavailable, dnderr.GetCode(err))
}

func (s *RedisStoreTestSuite) TestSave() {
	ctx := context.Background()
	list := s.testList()
	data, err := campaign.MarshalList(list)
	s.Require().NoError(err)

	s.mock.ExpectTxPipeline()
	s.mock.ExpectSet(ListKey("user-1"), data, 0).SetVal("OK")
	s.mock.ExpectSAdd(ownersKey, "user-1").SetVal(1)
	s.mock.ExpectTxPipelineExec()

	s.NoError(s.store.Save(ctx, "user-1", list))
}

func (s *RedisStoreTestSuite) TestOwners() {
	s.mock.ExpectSMembers(ownersKey).SetVal([]string{"zed", "amy"})

	owners, err := s.store.Owners(context.Background())
	s.NoError(err)
	s.Equal([]string{"amy", "zed"}, owners)
}

func (s *RedisStoreTestSuite) TestNewRedisStore_PanicsWithoutClient() {
	s.Panics(func() { NewRedisStore(&RedisStoreConfig{}) })
	s.Panics(func() { NewRedisStore(nil) })
}
