package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/codedevify/Urbansolz/models"
)

// SettingsStore holds the single-document configuration collections: provider
// keys and the mail transport credentials.
type SettingsStore interface {
	PaymentConfig(ctx context.Context) (*models.PaymentConfig, error)
	SavePaymentConfig(ctx context.Context, cfg *models.PaymentConfig) error
	EmailConfig(ctx context.Context) (*models.EmailConfig, error)
	SaveEmailConfig(ctx context.Context, cfg *models.EmailConfig) error
}

type AdminStore interface {
	FindByCredentials(ctx context.Context, username, password string) (*models.Admin, error)
	Seed(ctx context.Context, admin models.Admin) error
}

type mongoSettings struct {
	payment *mongo.Collection
	email   *mongo.Collection
}

func NewSettings(db *mongo.Database) SettingsStore {
	return &mongoSettings{
		payment: db.Collection("payment_config"),
		email:   db.Collection("email_config"),
	}
}

func (m *mongoSettings) PaymentConfig(ctx context.Context) (*models.PaymentConfig, error) {
	var cfg models.PaymentConfig
	err := m.payment.FindOne(ctx, bson.M{}).Decode(&cfg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment config: %w", err)
	}
	return &cfg, nil
}

func (m *mongoSettings) SavePaymentConfig(ctx context.Context, cfg *models.PaymentConfig) error {
	update := bson.M{"$set": bson.M{
		"stripe_publishable_key": cfg.StripePublishableKey,
		"stripe_secret_key":      cfg.StripeSecretKey,
		"stripe_webhook_secret":  cfg.StripeWebhookSecret,
	}}
	opts := options.Update().SetUpsert(true)
	if _, err := m.payment.UpdateOne(ctx, bson.M{}, update, opts); err != nil {
		return fmt.Errorf("%w: save payment config: %v", ErrPersistence, err)
	}
	return nil
}

func (m *mongoSettings) EmailConfig(ctx context.Context) (*models.EmailConfig, error) {
	var cfg models.EmailConfig
	err := m.email.FindOne(ctx, bson.M{}).Decode(&cfg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get email config: %w", err)
	}
	return &cfg, nil
}

func (m *mongoSettings) SaveEmailConfig(ctx context.Context, cfg *models.EmailConfig) error {
	update := bson.M{"$set": bson.M{
		"email_user":   cfg.EmailUser,
		"email_pass":   cfg.EmailPass,
		"seller_email": cfg.SellerEmail,
		"smtp_host":    cfg.SMTPHost,
		"smtp_port":    cfg.SMTPPort,
	}}
	opts := options.Update().SetUpsert(true)
	if _, err := m.email.UpdateOne(ctx, bson.M{}, update, opts); err != nil {
		return fmt.Errorf("%w: save email config: %v", ErrPersistence, err)
	}
	return nil
}

type mongoAdmins struct {
	col *mongo.Collection
}

func NewAdmins(db *mongo.Database) AdminStore {
	return &mongoAdmins{col: db.Collection("admins")}
}

func (m *mongoAdmins) FindByCredentials(ctx context.Context, username, password string) (*models.Admin, error) {
	var admin models.Admin
	err := m.col.FindOne(ctx, bson.M{"username": username, "password": password}).Decode(&admin)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return &admin, nil
}

func (m *mongoAdmins) Seed(ctx context.Context, admin models.Admin) error {
	count, err := m.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if count > 0 {
		return nil
	}
	if _, err := m.col.InsertOne(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	return nil
}
