package usecase

import (
	"context"
	"strings"

	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/entity"
	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/repository"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/logger"
)

// OpinionInput is a review form
type OpinionInput struct {
	Type        entity.ProductType `json:"type" validate:"required,oneof=hotel flight bus"`
	ReferenceID string             `json:"referenceId" validate:"required"`
	Rating      int                `json:"rating" validate:"gte=1,lte=5"`
	Comment     string             `json:"comment" validate:"required"`
}

// OpinionUsecase publishes reviews
type OpinionUsecase struct {
	opinions repository.OpinionRepository
	sessions SessionProvider
	logger   logger.Logger
}

// NewOpinionUsecase creates a new opinion usecase
func NewOpinionUsecase(opinions repository.OpinionRepository, sessions SessionProvider, logger logger.Logger) *OpinionUsecase {
	return &OpinionUsecase{
		opinions: opinions,
		sessions: sessions,
		logger:   logger,
	}
}

// Submit validates and publishes a review by the logged in user
func (o *OpinionUsecase) Submit(ctx context.Context, clientID string, input OpinionInput) (*entity.Opinion, error) {
	input.Comment = strings.TrimSpace(input.Comment)
	input.ReferenceID = strings.TrimSpace(input.ReferenceID)
	if err := validateInput("opinions.submit", input); err != nil {
		return nil, err
	}
	state, err := o.sessions.RequireSession(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return o.opinions.CreateOpinion(ctx, state.Token, entity.Opinion{
		UserID:      state.UserID,
		Type:        input.Type,
		ReferenceID: input.ReferenceID,
		Rating:      input.Rating,
		Comment:     input.Comment,
	})
}
