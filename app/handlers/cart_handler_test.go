package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/gamectrl/storefront/app/configs"
	"github.com/gamectrl/storefront/app/helpers"
	"github.com/gamectrl/storefront/app/models"
	"github.com/gamectrl/storefront/app/models/migrations"
	"github.com/gamectrl/storefront/app/repositories"
	"github.com/gamectrl/storefront/app/services"
	"github.com/gamectrl/storefront/app/utils/renderer"
	"github.com/gamectrl/storefront/app/validators"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type cartHandlerFixture struct {
	db      *gorm.DB
	handler *CartHandler
}

func newCartHandlerFixture(t *testing.T) *cartHandlerFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, migrations.AutoMigrate(db))

	cartValidator := validators.NewCartValidator(configs.DefaultCartLimits(), []string{"localhost"})
	cartSvc := services.NewCartService(
		db,
		repositories.NewCartRepository(db),
		repositories.NewCartItemRepository(db),
		repositories.NewControllerRepository(db),
		cartValidator,
	)

	return &cartHandlerFixture{
		db:      db,
		handler: NewCartHandler(cartSvc, cartValidator, renderer.NewWithDir("../../templates")),
	}
}

func (f *cartHandlerFixture) seedUser(t *testing.T, username string) models.User {
	t.Helper()
	user := models.User{Username: username, Email: username + "@example.com", Password: "x"}
	require.NoError(t, f.db.Create(&user).Error)
	return user
}

func (f *cartHandlerFixture) seedController(t *testing.T, slug, price string) models.Controller {
	t.Helper()

	category := models.Category{Name: "Arcade Controllers", Slug: "arcade-" + slug}
	require.NoError(t, f.db.Create(&category).Error)

	p, err := decimal.NewFromString(price)
	require.NoError(t, err)
	controller := models.Controller{
		CategoryID: category.ID,
		Name:       "Controller " + slug,
		Slug:       slug,
		Price:      p,
		Available:  true,
	}
	require.NoError(t, f.db.Create(&controller).Error)
	return controller
}

func (f *cartHandlerFixture) items(t *testing.T, userID uint) []models.CartItem {
	t.Helper()
	var items []models.CartItem
	err := f.db.Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("carts.user_id = ?", userID).
		Find(&items).Error
	require.NoError(t, err)
	return items
}

func postForm(userID uint, target string, form url.Values, referer string) *http.Request {
	r := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if referer != "" {
		r.Header.Set("Referer", referer)
	}
	ctx := context.WithValue(r.Context(), helpers.ContextKeyUserID, userID)
	return r.WithContext(ctx)
}

const trustedReferer = "http://localhost:8000/controller/pro-fighter-x"

func TestAddItemRedirectsToCartOnSuccess(t *testing.T) {
	f := newCartHandlerFixture(t)
	user := f.seedUser(t, "alice")
	controller := f.seedController(t, "pro-fighter-x", "199.99")

	form := url.Values{
		"controller_id": {strconv.FormatUint(uint64(controller.ID), 10)},
		"quantity":      {"2"},
	}
	w := httptest.NewRecorder()
	f.handler.AddItem(w, postForm(user.ID, "/cart/add", form, trustedReferer))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/cart", w.Header().Get("Location"))

	items := f.items(t, user.ID)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAddItemMalformedQuantitySwallowedIntoRedirect(t *testing.T) {
	f := newCartHandlerFixture(t)
	user := f.seedUser(t, "alice")
	controller := f.seedController(t, "pro-fighter-x", "199.99")

	form := url.Values{
		"controller_id": {strconv.FormatUint(uint64(controller.ID), 10)},
		"quantity":      {"abc"},
	}
	w := httptest.NewRecorder()
	f.handler.AddItem(w, postForm(user.ID, "/cart/add", form, trustedReferer))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/cart", w.Header().Get("Location"))
	assert.Empty(t, f.items(t, user.ID))
}

func TestAddItemMissingRefererRejected(t *testing.T) {
	f := newCartHandlerFixture(t)
	user := f.seedUser(t, "alice")
	controller := f.seedController(t, "pro-fighter-x", "199.99")

	form := url.Values{
		"controller_id": {strconv.FormatUint(uint64(controller.ID), 10)},
		"quantity":      {"1"},
	}
	w := httptest.NewRecorder()
	f.handler.AddItem(w, postForm(user.ID, "/cart/add", form, ""))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Empty(t, f.items(t, user.ID), "untrusted origin must not mutate the cart")
}

func TestAddItemUnknownControllerIs404(t *testing.T) {
	f := newCartHandlerFixture(t)
	user := f.seedUser(t, "alice")

	form := url.Values{
		"controller_id": {"9999"},
		"quantity":      {"1"},
	}
	w := httptest.NewRecorder()
	f.handler.AddItem(w, postForm(user.ID, "/cart/add", form, trustedReferer))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddItemDefaultsQuantityToOne(t *testing.T) {
	f := newCartHandlerFixture(t)
	user := f.seedUser(t, "alice")
	controller := f.seedController(t, "pro-fighter-x", "199.99")

	form := url.Values{
		"controller_id": {strconv.FormatUint(uint64(controller.ID), 10)},
	}
	w := httptest.NewRecorder()
	f.handler.AddItem(w, postForm(user.ID, "/cart/add", form, trustedReferer))

	assert.Equal(t, http.StatusFound, w.Code)
	items := f.items(t, user.ID)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestUpdateItemRemovesAtZero(t *testing.T) {
	f := newCartHandlerFixture(t)
	user := f.seedUser(t, "alice")
	controller := f.seedController(t, "pro-fighter-x", "199.99")

	addForm := url.Values{
		"controller_id": {strconv.FormatUint(uint64(controller.ID), 10)},
		"quantity":      {"2"},
	}
	f.handler.AddItem(httptest.NewRecorder(), postForm(user.ID, "/cart/add", addForm, trustedReferer))
	items := f.items(t, user.ID)
	require.Len(t, items, 1)

	updateForm := url.Values{
		"item_id":  {strconv.FormatUint(uint64(items[0].ID), 10)},
		"quantity": {"0"},
	}
	w := httptest.NewRecorder()
	f.handler.UpdateItem(w, postForm(user.ID, "/cart/update", updateForm, trustedReferer))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Empty(t, f.items(t, user.ID))
}

func TestUpdateItemMissingQuantityDefaultsToRemoval(t *testing.T) {
	f := newCartHandlerFixture(t)
	user := f.seedUser(t, "alice")
	controller := f.seedController(t, "pro-fighter-x", "199.99")

	addForm := url.Values{
		"controller_id": {strconv.FormatUint(uint64(controller.ID), 10)},
		"quantity":      {"2"},
	}
	f.handler.AddItem(httptest.NewRecorder(), postForm(user.ID, "/cart/add", addForm, trustedReferer))
	items := f.items(t, user.ID)
	require.Len(t, items, 1)

	updateForm := url.Values{
		"item_id": {strconv.FormatUint(uint64(items[0].ID), 10)},
	}
	w := httptest.NewRecorder()
	f.handler.UpdateItem(w, postForm(user.ID, "/cart/update", updateForm, trustedReferer))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Empty(t, f.items(t, user.ID))
}

func TestUpdateForeignItemIs404(t *testing.T) {
	f := newCartHandlerFixture(t)
	alice := f.seedUser(t, "alice")
	bob := f.seedUser(t, "bob")
	controller := f.seedController(t, "pro-fighter-x", "199.99")

	addForm := url.Values{
		"controller_id": {strconv.FormatUint(uint64(controller.ID), 10)},
		"quantity":      {"2"},
	}
	f.handler.AddItem(httptest.NewRecorder(), postForm(alice.ID, "/cart/add", addForm, trustedReferer))
	items := f.items(t, alice.ID)
	require.Len(t, items, 1)

	updateForm := url.Values{
		"item_id":  {strconv.FormatUint(uint64(items[0].ID), 10)},
		"quantity": {"5"},
	}
	w := httptest.NewRecorder()
	f.handler.UpdateItem(w, postForm(bob.ID, "/cart/update", updateForm, trustedReferer))

	assert.Equal(t, http.StatusNotFound, w.Code)

	items = f.items(t, alice.ID)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity, "foreign update must leave the item untouched")
}

func TestUpdateItemInvalidIDSwallowedIntoRedirect(t *testing.T) {
	f := newCartHandlerFixture(t)
	user := f.seedUser(t, "alice")

	updateForm := url.Values{
		"item_id":  {"not-a-number"},
		"quantity": {"1"},
	}
	w := httptest.NewRecorder()
	f.handler.UpdateItem(w, postForm(user.ID, "/cart/update", updateForm, trustedReferer))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/cart", w.Header().Get("Location"))
}

func TestGetCartRendersEmptyState(t *testing.T) {
	f := newCartHandlerFixture(t)
	user := f.seedUser(t, "alice")

	r := httptest.NewRequest("GET", "/cart", nil)
	ctx := context.WithValue(r.Context(), helpers.ContextKeyUserID, user.ID)
	w := httptest.NewRecorder()
	f.handler.GetCart(w, r.WithContext(ctx))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Your cart is empty")
}

func TestGetCartRendersItemsAndTotals(t *testing.T) {
	f := newCartHandlerFixture(t)
	user := f.seedUser(t, "alice")
	controller := f.seedController(t, "pro-fighter-x", "199.99")

	addForm := url.Values{
		"controller_id": {strconv.FormatUint(uint64(controller.ID), 10)},
		"quantity":      {"2"},
	}
	f.handler.AddItem(httptest.NewRecorder(), postForm(user.ID, "/cart/add", addForm, trustedReferer))

	r := httptest.NewRequest("GET", "/cart", nil)
	ctx := context.WithValue(r.Context(), helpers.ContextKeyUserID, user.ID)
	w := httptest.NewRecorder()
	f.handler.GetCart(w, r.WithContext(ctx))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Controller pro-fighter-x")
	assert.Contains(t, body, "$399.98")
}

func TestGetCartCount(t *testing.T) {
	f := newCartHandlerFixture(t)
	user := f.seedUser(t, "alice")
	controller := f.seedController(t, "pro-fighter-x", "199.99")

	addForm := url.Values{
		"controller_id": {strconv.FormatUint(uint64(controller.ID), 10)},
		"quantity":      {"3"},
	}
	f.handler.AddItem(httptest.NewRecorder(), postForm(user.ID, "/cart/add", addForm, trustedReferer))

	r := httptest.NewRequest("GET", "/cart/count", nil)
	ctx := context.WithValue(r.Context(), helpers.ContextKeyUserID, user.ID)
	w := httptest.NewRecorder()
	f.handler.GetCartCount(w, r.WithContext(ctx))

	assert.Equal(t, "3", w.Body.String())

	// Anonymous requests see zero.
	w = httptest.NewRecorder()
	f.handler.GetCartCount(w, httptest.NewRequest("GET", "/cart/count", nil))
	assert.Equal(t, "0", w.Body.String())
}
