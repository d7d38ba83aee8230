package main

import (
	"time"

	"github.com/achrafbchir/ecommerce-shopping-cart/internal/config"
	"github.com/achrafbchir/ecommerce-shopping-cart/internal/domain/model"
	"github.com/achrafbchir/ecommerce-shopping-cart/internal/infra/db"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedProduct struct {
	name  string
	price string
	stock int64
}

var catalog = []seedProduct{
	{"Laptop Computer", "999.99", 15},
	{"Wireless Mouse", "29.99", 50},
	{"Mechanical Keyboard", "149.99", 25},
	{`Monitor 27"`, "299.99", 8},
	{"USB-C Cable", "19.99", 100},
	{"Webcam HD", "79.99", 12},
	{"Headphones", "89.99", 5},
	{"Desk Lamp", "39.99", 30},
}

func main() {
	// .envは無くてもよい
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	conn, err := db.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	if err := conn.AutoMigrate(&model.User{}, &model.Product{}, &model.CartItem{}, &model.Sale{}); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}

	if err := seedUsers(conn, cfg); err != nil {
		log.Fatal().Err(err).Msg("seed users failed")
	}
	products, err := seedProducts(conn)
	if err != nil {
		log.Fatal().Err(err).Msg("seed products failed")
	}
	if err := seedSales(conn, products); err != nil {
		log.Fatal().Err(err).Msg("seed sales failed")
	}

	log.Info().Msg("seed completed")
}

func seedUsers(conn *gorm.DB, cfg config.Config) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now()

	admin := model.User{
		Name:            "Admin User",
		Email:           cfg.AdminEmail,
		PasswordHash:    string(hash),
		IsAdmin:         true,
		EmailVerifiedAt: &now,
	}
	if err := firstOrCreateUser(conn, &admin); err != nil {
		return err
	}
	// 既存adminのフラグは立て直す
	if !admin.IsAdmin {
		if err := conn.Model(&admin).Update("is_admin", true).Error; err != nil {
			return err
		}
	}

	shopper := model.User{
		Name:            "Test User",
		Email:           "test@example.com",
		PasswordHash:    string(hash),
		EmailVerifiedAt: &now,
	}
	if err := firstOrCreateUser(conn, &shopper); err != nil {
		return err
	}

	// ダッシュボード確認用のダミー会員
	for i := 0; i < 5; i++ {
		u := model.User{
			Name:         "Sample Shopper",
			Email:        "shopper-" + uuid.NewString() + "@example.com",
			PasswordHash: string(hash),
		}
		if err := conn.Create(&u).Error; err != nil {
			return err
		}
	}
	return nil
}

func firstOrCreateUser(conn *gorm.DB, u *model.User) error {
	return conn.Where("email = ?", u.Email).FirstOrCreate(u).Error
}

func seedProducts(conn *gorm.DB) ([]model.Product, error) {
	out := make([]model.Product, 0, len(catalog))
	for _, s := range catalog {
		price, err := decimal.NewFromString(s.price)
		if err != nil {
			return nil, err
		}
		p := model.Product{
			Name:          s.name,
			Price:         price,
			StockQuantity: s.stock,
		}
		if err := conn.Where("name = ?", p.Name).FirstOrCreate(&p).Error; err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func seedSales(conn *gorm.DB, products []model.Product) error {
	var count int64
	if err := conn.Model(&model.Sale{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	// 直近7日に散らしてグラフに出るようにする
	now := time.Now()
	for i, p := range products {
		sale := model.Sale{
			ProductID: p.ID,
			Quantity:  int64(i%3 + 1),
			Price:     p.Price,
			SoldAt:    now.AddDate(0, 0, -(i % 7)),
		}
		if err := conn.Create(&sale).Error; err != nil {
			return err
		}
	}
	return nil
}
