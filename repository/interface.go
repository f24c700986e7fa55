package repository

import (
	"context"

	"oakfield-backend/models"
)

// DevelopmentRepositoryInterface defines the contract for development repository operations
type DevelopmentRepositoryInterface interface {
	List(ctx context.Context, region, character *string, skip, limit int) ([]models.Development, error)
	GetByCode(ctx context.Context, devCode string) (*models.Development, error)
	Insert(ctx context.Context, dev *models.Development) error
	Update(ctx context.Context, devCode string, req *models.DevelopmentUpdateRequest) (*models.Development, error)
	Delete(ctx context.Context, devCode string) error
}

// HouseTypeRepositoryInterface defines the contract for house type repository operations
type HouseTypeRepositoryInterface interface {
	List(ctx context.Context, beds *int, skip, limit int) ([]models.HouseType, error)
	GetByID(ctx context.Context, id int) (*models.HouseType, error)
	Insert(ctx context.Context, ht *models.HouseType) (*models.HouseType, error)
	Update(ctx context.Context, id int, req *models.HouseTypeUpdateRequest) (*models.HouseType, error)
}

// OptionRepositoryInterface defines the contract for option repository operations
type OptionRepositoryInterface interface {
	List(ctx context.Context, category *string, skip, limit int) ([]models.Option, error)
	GetByCode(ctx context.Context, optionCode string) (*models.Option, error)
	Insert(ctx context.Context, opt *models.Option) error
	Update(ctx context.Context, optionCode string, req *models.OptionUpdateRequest) (*models.Option, error)
}

// BundleRepositoryInterface defines the contract for bundle repository operations
type BundleRepositoryInterface interface {
	List(ctx context.Context, skip, limit int) ([]models.Bundle, error)
	GetByCode(ctx context.Context, bundleCode string) (*models.Bundle, error)
	GetAllByCode(ctx context.Context) (map[string]models.Bundle, error)
	Insert(ctx context.Context, bundle *models.Bundle) error
	Update(ctx context.Context, bundleCode string, req *models.BundleUpdateRequest) (*models.Bundle, error)
}

// BundleRuleRepositoryInterface defines the contract for bundle rule repository operations
type BundleRuleRepositoryInterface interface {
	List(ctx context.Context, bundleCode *string, skip, limit int) ([]models.BundleRule, error)
	ListByBundle(ctx context.Context, bundleCode string) ([]models.BundleRule, error)
	GetByID(ctx context.Context, id int) (*models.BundleRule, error)
	Insert(ctx context.Context, rule *models.BundleRule) (*models.BundleRule, error)
	Update(ctx context.Context, id int, req *models.BundleRuleUpdateRequest) (*models.BundleRule, error)
	Delete(ctx context.Context, id int) error
}

// BasketRepositoryInterface defines the contract for option basket repository operations
type BasketRepositoryInterface interface {
	Filter(ctx context.Context, filters models.BasketFilterParams, skip, limit int) ([]models.OptionBasket, error)
	GetByID(ctx context.Context, id int) (*models.OptionBasket, error)
	GetByPlotReference(ctx context.Context, plotReference string) (*models.OptionBasket, error)
	Insert(ctx context.Context, basket *models.OptionBasket) (*models.OptionBasket, error)
	Update(ctx context.Context, id int, req *models.BasketUpdateRequest) (*models.OptionBasket, error)
	Delete(ctx context.Context, id int) error
	RecordBundleTriggered(ctx context.Context, id int, bundleCode string) error
	RecordBundleOffered(ctx context.Context, id int, bundleCode string) error
}

// ChatRepositoryInterface defines the contract for chat session storage
type ChatRepositoryInterface interface {
	ListSessions(ctx context.Context) ([]models.ChatSession, error)
	CreateSession(ctx context.Context, title, userID string) (*models.ChatSession, error)
	GetSession(ctx context.Context, sessionID string) (*models.ChatSession, error)
	RenameSession(ctx context.Context, sessionID, title string) error
	DeleteSession(ctx context.Context, sessionID string) error
	ListMessages(ctx context.Context, sessionID string) ([]models.ChatMessage, error)
	AppendMessage(ctx context.Context, sessionID, role, content string) (*models.ChatMessage, error)
}
