package db

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/StellaShiina/inventory-ui/config"
	"github.com/StellaShiina/inventory-ui/inventory"
)

var DB *gorm.DB

type User struct {
	ID        uint   `gorm:"primaryKey"`
	FullName  string `gorm:"size:120;not null"`
	Email     string `gorm:"size:120;uniqueIndex;not null"`
	Phone     string `gorm:"size:20"`
	Username  string `gorm:"size:80;uniqueIndex;not null"`
	Password  string `gorm:"size:200;not null"`
	CreatedAt time.Time
	Items     []Item `gorm:"constraint:OnDelete:CASCADE"`
}

type Item struct {
	ID        uint    `gorm:"primaryKey"`
	UserID    uint    `gorm:"index;not null"`
	Name      string  `gorm:"size:120;not null"`
	ItemType  string  `gorm:"size:80;not null"`
	Quantity  int     `gorm:"not null"`
	Value     float64 `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string { return "users" }
func (Item) TableName() string { return "items" }

// Record is the API representation of an item, with its computed total.
func (i Item) Record() inventory.Item {
	return inventory.Item{
		ID:        int64(i.ID),
		Name:      i.Name,
		ItemType:  i.ItemType,
		Quantity:  i.Quantity,
		Value:     i.Value,
		Total:     inventory.LineTotal(i.Quantity, i.Value),
		CreatedAt: i.CreatedAt.Format("02/01/2006"),
		UpdatedAt: i.UpdatedAt.Format("02/01/2006 15:04"),
	}
}

func Records(items []Item) []inventory.Item {
	out := make([]inventory.Item, 0, len(items))
	for _, it := range items {
		out = append(out, it.Record())
	}
	return out
}

// Dialector picks the gorm driver for cfg.DBDriver.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s", cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(cfg.DBPath), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want postgres or sqlite)", cfg.DBDriver)
	}
}

// Init opens the database and migrates the schema.
func Init(cfg *config.Config) error {
	dialector, err := Dialector(cfg)
	if err != nil {
		return err
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(&User{}, &Item{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	DB = db
	return nil
}
