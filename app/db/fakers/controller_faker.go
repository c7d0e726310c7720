package fakers

import (
	"math"
	"math/rand"

	"github.com/gamectrl/storefront/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

// ControllerFaker builds a random controller in the given category, used to
// pad the catalog during development.
func ControllerFaker(category *models.Category) *models.Controller {
	name := faker.Word() + " " + faker.Word() + " Controller"

	return &models.Controller{
		CategoryID:  category.ID,
		Name:        name,
		Slug:        slug.Make(name + "-" + uuid.NewString()[:6]),
		Description: faker.Paragraph(),
		Price:       decimal.NewFromFloat(fakePrice()),
		Available:   rand.Intn(10) > 0,
		IsFeatured:  rand.Intn(4) == 0,
	}
}

func fakePrice() float64 {
	return precision(29.99+rand.Float64()*470, 2)
}

func precision(val float64, pre int) float64 {
	a := math.Pow10(pre)
	return float64(int(val*a)) / a
}
