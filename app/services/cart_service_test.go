package services

import (
	"context"
	"testing"

	"github.com/gamectrl/storefront/app/configs"
	"github.com/gamectrl/storefront/app/models"
	"github.com/gamectrl/storefront/app/models/migrations"
	"github.com/gamectrl/storefront/app/repositories"
	"github.com/gamectrl/storefront/app/validators"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, migrations.AutoMigrate(db))
	return db
}

func newTestService(t *testing.T, db *gorm.DB, limits configs.CartLimits) *CartService {
	t.Helper()
	return NewCartService(
		db,
		repositories.NewCartRepository(db),
		repositories.NewCartItemRepository(db),
		repositories.NewControllerRepository(db),
		validators.NewCartValidator(limits, []string{"localhost"}),
	)
}

func seedCatalog(t *testing.T, db *gorm.DB, prices ...string) []models.Controller {
	t.Helper()

	category := models.Category{Name: "Arcade Controllers", Slug: "arcade-controllers"}
	require.NoError(t, db.Create(&category).Error)

	controllers := make([]models.Controller, 0, len(prices))
	for i, raw := range prices {
		price, err := decimal.NewFromString(raw)
		require.NoError(t, err)
		controller := models.Controller{
			CategoryID: category.ID,
			Name:       "Controller",
			Slug:       "controller-" + string(rune('a'+i)),
			Price:      price,
			Available:  true,
		}
		require.NoError(t, db.Create(&controller).Error)
		controllers = append(controllers, controller)
	}
	return controllers
}

func seedUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{Username: username, Email: username + "@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func cartItems(t *testing.T, db *gorm.DB, userID uint) []models.CartItem {
	t.Helper()
	var items []models.CartItem
	err := db.Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("carts.user_id = ?", userID).
		Find(&items).Error
	require.NoError(t, err)
	return items
}

func TestGetUserCartCreatesLazily(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, configs.DefaultCartLimits())
	user := seedUser(t, db, "alice")

	cart, err := svc.GetUserCart(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.Equal(t, user.ID, cart.UserID)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.TotalPrice().Equal(decimal.Zero))

	// A second call reuses the same cart.
	again, err := svc.GetUserCart(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&models.Cart{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAddItemToEmptyCart(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, configs.DefaultCartLimits())
	user := seedUser(t, db, "alice")
	controllers := seedCatalog(t, db, "199.99")

	require.NoError(t, svc.AddItem(context.Background(), user.ID, controllers[0].ID, 3))

	items := cartItems(t, db, user.ID)
	require.Len(t, items, 1)
	assert.Equal(t, controllers[0].ID, items[0].ControllerID)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAddItemMergesExistingLine(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, configs.DefaultCartLimits())
	user := seedUser(t, db, "alice")
	controllers := seedCatalog(t, db, "199.99")

	require.NoError(t, svc.AddItem(context.Background(), user.ID, controllers[0].ID, 4))
	require.NoError(t, svc.AddItem(context.Background(), user.ID, controllers[0].ID, 5))

	items := cartItems(t, db, user.ID)
	require.Len(t, items, 1)
	assert.Equal(t, 9, items[0].Quantity)
}

func TestAddItemRejectsCombinedQuantityOverCap(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, configs.DefaultCartLimits())
	user := seedUser(t, db, "alice")
	controllers := seedCatalog(t, db, "199.99")

	require.NoError(t, svc.AddItem(context.Background(), user.ID, controllers[0].ID, 8))

	err := svc.AddItem(context.Background(), user.ID, controllers[0].ID, 5)
	assert.ErrorIs(t, err, validators.ErrQuantityOutOfRange)

	items := cartItems(t, db, user.ID)
	require.Len(t, items, 1)
	assert.Equal(t, 8, items[0].Quantity, "rejected add must not change the cart")
}

func TestAddItemRejectsCartItemLimit(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, configs.DefaultCartLimits())
	user := seedUser(t, db, "alice")
	controllers := seedCatalog(t, db, "10.00", "10.00", "10.00")

	require.NoError(t, svc.AddItem(context.Background(), user.ID, controllers[0].ID, 10))
	require.NoError(t, svc.AddItem(context.Background(), user.ID, controllers[1].ID, 10))

	// Cart holds 20; one more would make 21.
	err := svc.AddItem(context.Background(), user.ID, controllers[2].ID, 1)
	assert.ErrorIs(t, err, validators.ErrTooManyItems)

	items := cartItems(t, db, user.ID)
	assert.Len(t, items, 2)
}

func TestAddItemTotalPriceCapUsesPersistedTotalOnly(t *testing.T) {
	db := newTestDB(t)
	limits := configs.DefaultCartLimits()
	limits.MaxTotalPrice = decimal.NewFromInt(500)
	svc := newTestService(t, db, limits)
	user := seedUser(t, db, "alice")
	controllers := seedCatalog(t, db, "400.00", "300.00")

	// Persisted total 400 is within the cap, so the add goes through even
	// though it lands the cart at 700.
	require.NoError(t, svc.AddItem(context.Background(), user.ID, controllers[0].ID, 1))
	require.NoError(t, svc.AddItem(context.Background(), user.ID, controllers[1].ID, 1))

	// Now the persisted total (700) is over the cap and further adds fail.
	err := svc.AddItem(context.Background(), user.ID, controllers[1].ID, 1)
	assert.ErrorIs(t, err, validators.ErrTotalPriceExceeded)

	items := cartItems(t, db, user.ID)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, 1, item.Quantity)
	}
}

func TestAddItemControllerChecks(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, configs.DefaultCartLimits())
	user := seedUser(t, db, "alice")
	controllers := seedCatalog(t, db, "199.99", "10000.01", "59.99")

	require.NoError(t, db.Model(&controllers[0]).Update("available", false).Error)
	err := svc.AddItem(context.Background(), user.ID, controllers[0].ID, 1)
	assert.ErrorIs(t, err, validators.ErrControllerUnavailable)

	err = svc.AddItem(context.Background(), user.ID, controllers[1].ID, 1)
	assert.ErrorIs(t, err, validators.ErrPriceExceedsLimit)

	require.NoError(t, db.Model(&controllers[2]).Update("stock", 0).Error)
	err = svc.AddItem(context.Background(), user.ID, controllers[2].ID, 1)
	assert.ErrorIs(t, err, validators.ErrOutOfStock)

	assert.Empty(t, cartItems(t, db, user.ID))
}

func TestAddItemZeroQuantityIsNoOp(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, configs.DefaultCartLimits())
	user := seedUser(t, db, "alice")
	controllers := seedCatalog(t, db, "199.99")

	require.NoError(t, svc.AddItem(context.Background(), user.ID, controllers[0].ID, 0))
	assert.Empty(t, cartItems(t, db, user.ID))
}

func TestAddItemUnknownController(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, configs.DefaultCartLimits())
	user := seedUser(t, db, "alice")

	err := svc.AddItem(context.Background(), user.ID, 9999, 1)
	assert.ErrorIs(t, err, validators.ErrControllerNotFound)
}

func TestUpdateItemSetsExactQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, configs.DefaultCartLimits())
	user := seedUser(t, db, "alice")
	controllers := seedCatalog(t, db, "199.99")

	require.NoError(t, svc.AddItem(context.Background(), user.ID, controllers[0].ID, 2))
	items := cartItems(t, db, user.ID)
	require.Len(t, items, 1)

	// Update is absolute, not additive.
	require.NoError(t, svc.UpdateItem(context.Background(), user.ID, items[0].ID, 7))

	items = cartItems(t, db, user.ID)
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestUpdateItemZeroDeletes(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, configs.DefaultCartLimits())
	user := seedUser(t, db, "alice")
	controllers := seedCatalog(t, db, "199.99")

	require.NoError(t, svc.AddItem(context.Background(), user.ID, controllers[0].ID, 2))
	items := cartItems(t, db, user.ID)
	require.Len(t, items, 1)

	require.NoError(t, svc.UpdateItem(context.Background(), user.ID, items[0].ID, 0))

	assert.Empty(t, cartItems(t, db, user.ID))
}

func TestUpdateItemForeignOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, configs.DefaultCartLimits())
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	controllers := seedCatalog(t, db, "199.99")

	require.NoError(t, svc.AddItem(context.Background(), alice.ID, controllers[0].ID, 2))
	items := cartItems(t, db, alice.ID)
	require.Len(t, items, 1)

	// Bob touching Alice's item behaves exactly like a nonexistent id.
	err := svc.UpdateItem(context.Background(), bob.ID, items[0].ID, 5)
	assert.ErrorIs(t, err, validators.ErrItemNotFound)

	items = cartItems(t, db, alice.ID)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestUpdateItemUnknownID(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, configs.DefaultCartLimits())
	user := seedUser(t, db, "alice")

	err := svc.UpdateItem(context.Background(), user.ID, 424242, 1)
	assert.ErrorIs(t, err, validators.ErrItemNotFound)
}
