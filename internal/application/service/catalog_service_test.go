package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/cafebill-api/internal/domain/repository"
	"github.com/sangkips/cafebill-api/pkg/apperror"
	"github.com/sangkips/cafebill-api/pkg/pagination"
)

func TestCreateCategory(t *testing.T) {
	f := newTestFixtures(t)

	category, err := f.category.CreateCategory(ctxBg(), &CreateCategoryInput{Name: "Garlic Bread"})
	require.NoError(t, err)
	assert.Equal(t, "garlic-bread", category.Slug)
	assert.True(t, category.IsActive)

	// Duplicate names collide on the slug
	_, err = f.category.CreateCategory(ctxBg(), &CreateCategoryInput{Name: "Garlic Bread"})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)

	_, err = f.category.CreateCategory(ctxBg(), &CreateCategoryInput{
		Name:             "Cheese Garlic Bread",
		ParentCategoryID: &category.ID,
	})
	require.NoError(t, err)

	missing := uuid.New()
	_, err = f.category.CreateCategory(ctxBg(), &CreateCategoryInput{
		Name:             "Orphan",
		ParentCategoryID: &missing,
	})
	require.Error(t, err)
}

func TestUpdateCategoryRename(t *testing.T) {
	f := newTestFixtures(t)

	name := "Hot Beverages"
	updated, err := f.category.UpdateCategory(ctxBg(), f.coffees.ID, &UpdateCategoryInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "hot-beverages", updated.Slug)

	inactive := false
	updated, err = f.category.UpdateCategory(ctxBg(), f.coffees.ID, &UpdateCategoryInput{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}

func TestMenuShowsOnlyActive(t *testing.T) {
	f := newTestFixtures(t)

	f.mocha.IsActive = false
	require.NoError(t, f.db.Save(&f.mocha).Error)

	_, err := f.category.CreateCategory(ctxBg(), &CreateCategoryInput{Name: "Empty Shelf"})
	require.NoError(t, err)

	menu, err := f.category.Menu(ctxBg())
	require.NoError(t, err)
	require.Len(t, menu, 2)

	for _, category := range menu {
		if category.Name != "Signature Coffees" {
			continue
		}
		assert.Len(t, category.Items, 2, "inactive items stay off the menu")
		for _, item := range category.Items {
			assert.NotEqual(t, "Cafe Mocha", item.Name)
		}
	}
}

func TestCreateItem(t *testing.T) {
	f := newTestFixtures(t)

	item, err := f.items.CreateItem(ctxBg(), &CreateItemInput{
		CategoryID: f.coffees.ID,
		Name:       "Hazelnut Latte",
		Price:      decimal.RequireFromString("120.00"),
		Tags:       []string{"coffee", "nutty"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12000), item.PricePaise)
	assert.Equal(t, "hazelnut-latte", item.Slug)
	require.NotNil(t, item.Category)
	assert.Equal(t, "Signature Coffees", item.Category.Name)

	_, err = f.items.CreateItem(ctxBg(), &CreateItemInput{
		CategoryID: f.coffees.ID,
		Name:       "Hazelnut Latte",
		Price:      decimal.NewFromInt(99),
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)

	_, err = f.items.CreateItem(ctxBg(), &CreateItemInput{
		CategoryID: uuid.New(),
		Name:       "Lost Item",
		Price:      decimal.NewFromInt(10),
	})
	require.Error(t, err)

	_, err = f.items.CreateItem(ctxBg(), &CreateItemInput{
		CategoryID: f.coffees.ID,
		Name:       "Negative",
		Price:      decimal.NewFromInt(-5),
	})
	require.Error(t, err)
}

func TestUpdateItemPriceDoesNotRewriteBills(t *testing.T) {
	f := newTestFixtures(t)

	bill, err := f.bills.CreateBill(ctxBg(), &CreateBillInput{
		Phone:         "9876543210",
		Items:         []BillLineInput{{ItemID: f.cappuccino.ID, Quantity: 1}},
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	price := decimal.RequireFromString("90.00")
	updated, err := f.items.UpdateItem(ctxBg(), f.cappuccino.ID, &UpdateItemInput{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, int64(9000), updated.PricePaise)

	// The existing bill keeps the captured price
	reloaded, err := f.bills.GetBill(ctxBg(), bill.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7000), reloaded.Items[0].UnitPaise)
}

func TestListItemsFilters(t *testing.T) {
	f := newTestFixtures(t)

	params := &repository.ItemFilterParams{
		Pagination: pagination.DefaultPagination(),
		Search:     "latte",
	}
	items, total, err := f.items.ListItems(ctxBg(), params)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Cafe Latte", items[0].Name)

	f.mocha.IsActive = false
	require.NoError(t, f.db.Save(&f.mocha).Error)

	params = &repository.ItemFilterParams{
		Pagination: pagination.DefaultPagination(),
		ActiveOnly: true,
	}
	_, total, err = f.items.ListItems(ctxBg(), params)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	params = &repository.ItemFilterParams{
		Pagination: pagination.DefaultPagination(),
		CategoryID: &f.coffees.ID,
	}
	_, total, err = f.items.ListItems(ctxBg(), params)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestSearchUsersByPhonePrefix(t *testing.T) {
	f := newTestFixtures(t)

	f.createUser(t, "9876543210")
	f.createUser(t, "9876549999")
	f.createUser(t, "9123456789")

	users, err := f.users.SearchByPhone(ctxBg(), "98765", 10)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	// Short prefixes return nothing rather than the whole table
	users, err = f.users.SearchByPhone(ctxBg(), "98", 10)
	require.NoError(t, err)
	assert.Empty(t, users)

	// Formatting noise in the prefix is stripped
	users, err = f.users.SearchByPhone(ctxBg(), "98765 49", 10)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "9876549999", users[0].Phone)
}
