package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront-service/models"
)

// cartRecord is the carts table row. Items are stored as one JSON column so
// a cart is still read and replaced as a single record.
type cartRecord struct {
	Email string            `gorm:"primaryKey"`
	Items []models.CartItem `gorm:"serializer:json;not null"`
}

func (cartRecord) TableName() string { return "carts" }

// GormStore keeps accounts and carts in two SQL tables.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates the accounts and carts tables.
func (r *GormStore) Migrate() error {
	return r.db.AutoMigrate(&models.Account{}, &cartRecord{})
}

func (r *GormStore) CreateAccount(ctx context.Context, account models.Account) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Account
		err := tx.Where("email = ?", account.Email).First(&existing).Error
		if err == nil {
			return ErrDuplicate
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(&account).Error; err != nil {
			return err
		}

		empty := cartRecord{Email: account.Email, Items: []models.CartItem{}}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&empty).Error
	})
}

func (r *GormStore) FindAccount(ctx context.Context, email string) (*models.Account, error) {
	var acct models.Account
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&acct).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &acct, nil
}

func (r *GormStore) GetCart(ctx context.Context, email string) (models.Cart, error) {
	var rec cartRecord
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.EmptyCart(), nil
	}
	if err != nil {
		return models.Cart{}, err
	}
	return models.Cart{Items: rec.Items}.Normalize(), nil
}

// ReplaceCart upserts the whole row.
func (r *GormStore) ReplaceCart(ctx context.Context, email string, cart models.Cart) error {
	rec := cartRecord{Email: email, Items: cart.Normalize().Items}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"items"}),
		}).
		Create(&rec).Error
}

func (r *GormStore) Snapshot(ctx context.Context) (models.Document, error) {
	doc := models.NewDocument()

	if err := r.db.WithContext(ctx).Order("email").Find(&doc.Users).Error; err != nil {
		return models.Document{}, err
	}

	var recs []cartRecord
	if err := r.db.WithContext(ctx).Find(&recs).Error; err != nil {
		return models.Document{}, err
	}
	for _, rec := range recs {
		doc.Carts[rec.Email] = models.Cart{Items: rec.Items}.Normalize()
	}
	return doc, nil
}

func (r *GormStore) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
