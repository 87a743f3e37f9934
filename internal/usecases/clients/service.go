package clients

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vfg2006/property-leads-api/infrastructure/repository"
	"github.com/vfg2006/property-leads-api/internal/domain"
	"github.com/vfg2006/property-leads-api/pkg/apiErrors"
	"github.com/vfg2006/property-leads-api/pkg/log"
)

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks
type ClientService interface {
	List(ctx context.Context, filters domain.ClientFilters) (*domain.Page[*domain.Client], error)
	Get(ctx context.Context, id int64) (*domain.Client, error)
	Update(ctx context.Context, req *domain.UpdateClientRequest) (*domain.Client, error)
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	clientRepo repository.ClientRepository
}

func NewService(clientRepo repository.ClientRepository) ClientService {
	return &Service{
		clientRepo: clientRepo,
	}
}

func (s *Service) List(ctx context.Context, filters domain.ClientFilters) (*domain.Page[*domain.Client], error) {
	filters.Pagination = filters.Pagination.Normalize()
	filters.Search = strings.TrimSpace(filters.Search)

	if filters.Status != nil && !filters.Status.Valid() {
		return nil, NewClientError(ErrInvalidStatus, apiErrors.ErrInvalidFormat, *filters.Status)
	}

	items, total, err := s.clientRepo.List(ctx, filters)
	if err != nil {
		return nil, databaseError(err)
	}

	return domain.NewPage(items, total, filters.Pagination), nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewClientError(ErrClientNotFound, apiErrors.ErrNotFound, id)
	}
	if err != nil {
		return nil, databaseError(err)
	}

	return client, nil
}

// Update patches a lead. Status changes must follow the pipeline rules of
// domain.LeadStatus.CanTransitionTo.
func (s *Service) Update(ctx context.Context, req *domain.UpdateClientRequest) (*domain.Client, error) {
	client, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, NewClientError(ErrInvalidStatus, apiErrors.ErrInvalidFormat, *req.Status)
		}
		if !client.Status.CanTransitionTo(*req.Status) {
			return nil, NewClientError(ErrInvalidTransition, apiErrors.ErrInvalidTransition,
				string(client.Status)+" -> "+string(*req.Status))
		}
		client.Status = *req.Status
	}

	if req.FirstName != nil {
		client.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		client.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Phone != nil {
		client.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Company != nil {
		client.Company = req.Company
	}
	if req.Nationality != nil {
		client.Nationality = req.Nationality
	}
	if req.BudgetMin != nil {
		client.BudgetMin = req.BudgetMin
	}
	if req.BudgetMax != nil {
		client.BudgetMax = req.BudgetMax
	}
	if req.PreferredAreas != nil {
		client.PreferredAreas = req.PreferredAreas
	}
	if req.PropertyType != nil {
		client.PropertyType = req.PropertyType
	}
	if req.Notes != nil {
		client.Notes = req.Notes
	}

	if client.BudgetMin != nil && client.BudgetMax != nil && *client.BudgetMin > *client.BudgetMax {
		return nil, NewClientError(ErrInvalidBudget, apiErrors.ErrInvalidFormat, nil)
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewClientError(ErrClientNotFound, apiErrors.ErrNotFound, req.ID)
		}
		return nil, databaseError(err)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"client_id":     client.ID,
		"client_status": client.Status,
	}).Info("client updated")

	return client, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.clientRepo.Delete(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return NewClientError(ErrClientNotFound, apiErrors.ErrNotFound, id)
	case errors.Is(err, repository.ErrConflict):
		return NewClientError(ErrClientHasBookings, apiErrors.ErrConflict, id)
	case err != nil:
		return databaseError(err)
	}

	return nil
}

func databaseError(err error) error {
	return NewClientError(fmt.Errorf("%w: %v", ErrDatabaseOperation, err), apiErrors.ErrDatabaseOperation, nil)
}
