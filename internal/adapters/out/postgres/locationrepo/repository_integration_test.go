package locationrepo_test

import (
	"context"
	"testing"

	"bakery/internal/adapters/out/postgres/locationrepo"
	"bakery/internal/core/domain/model/pickup"
	"bakery/internal/pkg/errs"
	"bakery/internal/testutil"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// LocationRepositoryIntegrationTestSuite verifies pickup location persistence
// against a real PostgreSQL instance.
type LocationRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *locationrepo.GormLocationRepository
}

func (suite *LocationRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, db, err := testutil.StartPostgres(ctx)
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db
}

func (suite *LocationRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE pickup_locations RESTART IDENTITY CASCADE").Error
	suite.Require().NoError(err)
	suite.repository = locationrepo.NewGormLocationRepository(suite.db)
}

func (suite *LocationRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *LocationRepositoryIntegrationTestSuite) save(name string) *pickup.Location {
	l := pickup.New()
	l.SetName(name)
	saved, err := suite.repository.Save(context.Background(), l)
	suite.Require().NoError(err)
	return saved
}

func (suite *LocationRepositoryIntegrationTestSuite) TestSave_NewLocation_AssignsIDAndVersion() {
	saved := suite.save("Store")

	suite.False(saved.IsNew())
	suite.Equal(int64(0), saved.Version())
	suite.Equal("Store", saved.Name())
}

func (suite *LocationRepositoryIntegrationTestSuite) TestSave_DuplicateName_ReturnsConflict() {
	suite.save("Store")

	l := pickup.New()
	l.SetName("Store")
	_, err := suite.repository.Save(context.Background(), l)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrConflict)
}

func (suite *LocationRepositoryIntegrationTestSuite) TestSave_UpdateToTakenName_ReturnsConflict() {
	suite.save("Store")
	bakery := suite.save("Bakery")

	bakery.SetName("Store")
	_, err := suite.repository.Save(context.Background(), bakery)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrConflict)
}

func (suite *LocationRepositoryIntegrationTestSuite) TestSave_Update_GuardedByVersion() {
	ctx := context.Background()
	saved := suite.save("Store")

	saved.SetName("Renamed Store")
	updated, err := suite.repository.Save(ctx, saved)
	suite.Require().NoError(err)
	suite.Equal(int64(1), updated.Version())

	// the first copy still carries version 0
	saved.SetName("Renamed Again")
	_, err = suite.repository.Save(ctx, saved)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrConcurrentModification)
}

func TestLocationRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(LocationRepositoryIntegrationTestSuite))
}
