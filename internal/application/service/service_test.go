package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sangkips/cafebill-api/internal/domain/entity"
	infraRepo "github.com/sangkips/cafebill-api/internal/infrastructure/repository"
	"github.com/sangkips/cafebill-api/pkg/utils"
)

// openTestDB opens an isolated in-memory database migrated with the
// full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Role{},
		&entity.OTPCode{},
		&entity.Category{},
		&entity.Item{},
		&entity.Bill{},
		&entity.BillItem{},
		&entity.IdempotencyKey{},
	))

	for _, name := range []string{"admin", "staff", "customer"} {
		require.NoError(t, db.Create(&entity.Role{Name: name}).Error)
	}

	return db
}

// testFixtures carries the services and seed records shared by the
// service tests.
type testFixtures struct {
	db       *gorm.DB
	bills    *BillService
	items    *ItemService
	category *CategoryService
	users    *UserService

	coffees    entity.Category
	cappuccino entity.Item
	latte      entity.Item
	mocha      entity.Item
}

func newTestFixtures(t *testing.T) *testFixtures {
	t.Helper()

	db := openTestDB(t)
	userRepo := infraRepo.NewUserRepository(db)
	itemRepo := infraRepo.NewItemRepository(db)
	categoryRepo := infraRepo.NewCategoryRepository(db)
	billRepo := infraRepo.NewBillRepository(db)

	f := &testFixtures{
		db:       db,
		bills:    NewBillService(billRepo, itemRepo, userRepo),
		items:    NewItemService(itemRepo, categoryRepo),
		category: NewCategoryService(categoryRepo),
		users:    NewUserService(userRepo),
	}

	f.coffees = entity.Category{Name: "Signature Coffees", Slug: "signature-coffees", IsActive: true}
	require.NoError(t, db.Create(&f.coffees).Error)

	f.cappuccino = entity.Item{CategoryID: f.coffees.ID, Name: "Cappuccino", Slug: "cappuccino", PricePaise: 7000, IsActive: true}
	f.latte = entity.Item{CategoryID: f.coffees.ID, Name: "Cafe Latte", Slug: "cafe-latte", PricePaise: 8000, IsActive: true}
	f.mocha = entity.Item{CategoryID: f.coffees.ID, Name: "Cafe Mocha", Slug: "cafe-mocha", PricePaise: 10000, IsActive: true}
	require.NoError(t, db.Create(&f.cappuccino).Error)
	require.NoError(t, db.Create(&f.latte).Error)
	require.NoError(t, db.Create(&f.mocha).Error)

	return f
}

func (f *testFixtures) createUser(t *testing.T, phone string) entity.User {
	t.Helper()
	user := entity.User{Phone: utils.NormalizePhone(phone)}
	require.NoError(t, f.db.Create(&user).Error)
	return user
}

func ctxBg() context.Context {
	return context.Background()
}
