package service

import (
	"context"
	"fmt"

	"github.com/chinazagideon/alx-travel-app/internal/model"
	"github.com/chinazagideon/alx-travel-app/internal/repository"
	"go.uber.org/zap"
)

type PropertyService struct {
	propertyRepo *repository.PropertyRepository
	logger       *zap.Logger
}

func NewPropertyService(propertyRepo *repository.PropertyRepository, logger *zap.Logger) *PropertyService {
	return &PropertyService{
		propertyRepo: propertyRepo,
		logger:       logger,
	}
}

type CreatePropertyInput struct {
	HostID             int64
	Name               string
	Description        string
	Location           string
	PricePerNightCents int64
	PropertyType       string
	MaxGuests          int
	Bedrooms           int
	Bathrooms          int
}

// CreateProperty создаёт объект размещения
func (s *PropertyService) CreateProperty(ctx context.Context, in CreatePropertyInput) (*model.Property, error) {
	if in.PricePerNightCents <= 0 {
		return nil, model.ErrInvalidAmount
	}

	property := &model.Property{
		HostID:             in.HostID,
		Name:               in.Name,
		Description:        in.Description,
		Location:           in.Location,
		PricePerNightCents: in.PricePerNightCents,
		PropertyType:       in.PropertyType,
		MaxGuests:          in.MaxGuests,
		Bedrooms:           in.Bedrooms,
		Bathrooms:          in.Bathrooms,
	}
	if property.PropertyType == "" {
		property.PropertyType = "apartment"
	}

	if err := s.propertyRepo.Create(ctx, property); err != nil {
		return nil, err
	}

	s.logger.Info("Property created",
		zap.Int64("property_id", property.ID),
		zap.Int64("host_id", property.HostID),
		zap.String("name", property.Name),
	)

	return property, nil
}

// GetProperty получает объект по ID
func (s *PropertyService) GetProperty(ctx context.Context, id int64) (*model.Property, error) {
	property, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, model.ErrPropertyNotFound
	}
	return property, nil
}

// ListProperties получает все объекты
func (s *PropertyService) ListProperties(ctx context.Context) ([]*model.Property, error) {
	return s.propertyRepo.List(ctx)
}

// UpdatePrice изменяет цену за ночь. Доступно только хосту объекта.
// Существующие бронирования сохраняют зафиксированную при создании цену.
func (s *PropertyService) UpdatePrice(ctx context.Context, propertyID, actorID, priceCents int64) error {
	if priceCents <= 0 {
		return model.ErrInvalidAmount
	}

	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return fmt.Errorf("get property: %w", err)
	}
	if property == nil {
		return model.ErrPropertyNotFound
	}
	if property.HostID != actorID {
		return model.ErrNotHost
	}

	if err := s.propertyRepo.UpdatePrice(ctx, propertyID, priceCents); err != nil {
		return err
	}

	s.logger.Info("Property price updated",
		zap.Int64("property_id", propertyID),
		zap.Int64("price_per_night_cents", priceCents),
	)

	return nil
}
