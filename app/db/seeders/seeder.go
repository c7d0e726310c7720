package seeders

import (
	"log"

	"github.com/gamectrl/storefront/app/db/fakers"
	"github.com/gamectrl/storefront/app/models"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type sampleController struct {
	Name        string
	Description string
	Price       string
	Featured    bool
	Image       string
}

var sampleControllers = []sampleController{
	{
		Name:        "Pro Fighter X",
		Description: "Tournament-grade arcade controller featuring Sanwa buttons and joystick. Perfect for fighting games with its precise 8-way microswitch joystick and rapid-response buttons.",
		Price:       "199.99",
		Featured:    true,
		Image:       "controllers/controller1.jpg",
	},
	{
		Name:        "Custom LED Master",
		Description: "Customizable arcade controller with RGB LED buttons. Features programmable light patterns and premium Japanese arcade parts.",
		Price:       "249.99",
		Featured:    true,
	},
	{
		Name:        "Retro Classic",
		Description: "Classic-styled arcade controller with authentic feel. Perfect for retro gaming and modern classics.",
		Price:       "159.99",
		Featured:    true,
	},
}

// DBSeed loads the sample catalog: the arcade category with its three stock
// controllers, plus extra faker-generated ones when asked for.
func DBSeed(db *gorm.DB, extra int) error {
	category := models.Category{
		Name:        "Arcade Controllers",
		Slug:        "arcade-controllers",
		Description: "Professional arcade-style gaming controllers",
	}
	if err := db.Where(models.Category{Slug: category.Slug}).FirstOrCreate(&category).Error; err != nil {
		return err
	}

	for _, sample := range sampleControllers {
		price, err := decimal.NewFromString(sample.Price)
		if err != nil {
			return err
		}

		controller := models.Controller{
			CategoryID:  category.ID,
			Name:        sample.Name,
			Slug:        slug.Make(sample.Name),
			Description: sample.Description,
			Price:       price,
			Available:   true,
			IsFeatured:  sample.Featured,
			Image:       sample.Image,
		}

		result := db.Where(models.Controller{Slug: controller.Slug}).FirstOrCreate(&controller)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			log.Printf("Created: %s", controller.Name)
		} else {
			log.Printf("Already exists: %s", controller.Name)
		}
	}

	for i := 0; i < extra; i++ {
		controller := fakers.ControllerFaker(&category)
		if err := db.Create(controller).Error; err != nil {
			return err
		}
	}

	return nil
}
