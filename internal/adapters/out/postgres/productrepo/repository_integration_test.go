package productrepo_test

import (
	"context"
	"testing"

	"bakery/internal/adapters/out/postgres/productrepo"
	"bakery/internal/core/domain/model/product"
	"bakery/internal/core/ports"
	"bakery/internal/pkg/errs"
	"bakery/internal/testutil"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// ProductRepositoryIntegrationTestSuite verifies product persistence against
// a real PostgreSQL instance.
type ProductRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *productrepo.GormProductRepository
}

func (suite *ProductRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, db, err := testutil.StartPostgres(ctx)
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db
}

func (suite *ProductRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE products RESTART IDENTITY CASCADE").Error
	suite.Require().NoError(err)
	suite.repository = productrepo.NewGormProductRepository(suite.db)
}

func (suite *ProductRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ProductRepositoryIntegrationTestSuite) save(name string, price int) *product.Product {
	p := product.New()
	p.SetName(name)
	p.SetPrice(price)
	saved, err := suite.repository.Save(context.Background(), p)
	suite.Require().NoError(err)
	return saved
}

func (suite *ProductRepositoryIntegrationTestSuite) TestSave_NewProduct_AssignsIDAndVersion() {
	saved := suite.save("Croissant", 350)

	suite.False(saved.IsNew())
	suite.Equal(int64(0), saved.Version())
	suite.Equal("Croissant", saved.Name())
	suite.Equal(350, saved.Price())
}

func (suite *ProductRepositoryIntegrationTestSuite) TestSave_DuplicateName_ReturnsConflict() {
	suite.save("Croissant", 350)

	p := product.New()
	p.SetName("Croissant")
	p.SetPrice(400)
	_, err := suite.repository.Save(context.Background(), p)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrConflict)
}

func (suite *ProductRepositoryIntegrationTestSuite) TestSave_DuplicateNameDifferentCase_ReturnsConflict() {
	suite.save("Bread", 250)

	p := product.New()
	p.SetName("bread")
	p.SetPrice(300)
	_, err := suite.repository.Save(context.Background(), p)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrConflict)
}

func (suite *ProductRepositoryIntegrationTestSuite) TestSave_Update_GuardedByVersion() {
	ctx := context.Background()
	saved := suite.save("Croissant", 350)

	saved.SetPrice(400)
	updated, err := suite.repository.Save(ctx, saved)
	suite.Require().NoError(err)
	suite.Equal(int64(1), updated.Version())
	suite.Equal(400, updated.Price())

	// the first copy still carries version 0
	saved.SetPrice(500)
	_, err = suite.repository.Save(ctx, saved)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrConcurrentModification)
}

func (suite *ProductRepositoryIntegrationTestSuite) TestDelete() {
	ctx := context.Background()
	saved := suite.save("Croissant", 350)

	suite.Require().NoError(suite.repository.Delete(ctx, saved.ID()))

	err := suite.repository.Delete(ctx, saved.ID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ProductRepositoryIntegrationTestSuite) TestFindAnyMatching_FiltersAndPages() {
	ctx := context.Background()
	suite.save("Blueberry Muffin", 250)
	suite.save("Chocolate Muffin", 260)
	suite.save("Croissant", 350)

	matches, err := suite.repository.FindAnyMatching(ctx, "muffin", ports.PageOf(0, 10))
	suite.Require().NoError(err)
	suite.Require().Len(matches, 2)
	suite.Equal("Blueberry Muffin", matches[0].Name())

	count, err := suite.repository.CountAnyMatching(ctx, "MUFFIN")
	suite.Require().NoError(err)
	suite.Equal(int64(2), count)

	page, err := suite.repository.FindPage(ctx, ports.PageOf(1, 2))
	suite.Require().NoError(err)
	suite.Require().Len(page, 1)
	suite.Equal("Croissant", page[0].Name())
}

func TestProductRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ProductRepositoryIntegrationTestSuite))
}
