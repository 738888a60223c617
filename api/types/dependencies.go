package types

import (
	"github.com/subcast/subcast/internal/database"
	"github.com/subcast/subcast/internal/services/subscriptions"
)

// Dependencies holds everything the HTTP handlers need
type Dependencies struct {
	DB            *database.DB
	Subscriptions subscriptions.SubscriptionService
}
