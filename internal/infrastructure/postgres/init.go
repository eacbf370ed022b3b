package postgres

import (
	"log"

	"github.com/cashupay/cashu-gateway-service/internal/config"
	"github.com/cashupay/cashu-gateway-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.GatewayConfig) *gorm.DB {
	dsn := cfg.GatewayDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.StoreModel{},
		&models.InvoiceModel{},
		&models.WebhookModel{},
		&models.WebhookDeliveryModel{},
		&models.RateCacheModel{},
	)

	return db
}
