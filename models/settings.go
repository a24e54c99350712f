package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// PaymentConfig holds the hosted-checkout provider keys. A single document
// lives in the payment_config collection and is updated from the admin API.
type PaymentConfig struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	StripePublishableKey string             `bson:"stripe_publishable_key" json:"stripe_publishable_key"`
	StripeSecretKey      string             `bson:"stripe_secret_key" json:"stripe_secret_key"`
	StripeWebhookSecret  string             `bson:"stripe_webhook_secret" json:"stripe_webhook_secret"`
}

// EmailConfig is the mail transport configuration. It is resolved through a
// cached accessor and invalidated when the admin updates it.
type EmailConfig struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	EmailUser   string             `bson:"email_user" json:"email_user"`
	EmailPass   string             `bson:"email_pass" json:"email_pass"`
	SellerEmail string             `bson:"seller_email" json:"seller_email"`
	SMTPHost    string             `bson:"smtp_host" json:"smtp_host"`
	SMTPPort    int                `bson:"smtp_port" json:"smtp_port"`
}

type Admin struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username string             `bson:"username" json:"username"`
	Password string             `bson:"password" json:"-"` // plaintext for demo, matches the seeded admin
}
