package atm

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/tmendes/go-smartcity-services/internal/api"
	"github.com/tmendes/go-smartcity-services/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	ListATMs(ctx context.Context) ([]types.ATM, error)
	GetATM(ctx context.Context, id uuid.UUID) (*types.ATM, error)
	ListATMsByBank(ctx context.Context, bank string) ([]types.ATM, error)
	CreateATM(ctx context.Context, req UpsertATMRequest) (*types.ATM, error)
	UpdateATM(ctx context.Context, id uuid.UUID, req UpsertATMRequest) (*types.ATM, error)
	DeleteATM(ctx context.Context, id uuid.UUID) error
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
}

func NewServiceImpl(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{logger: logger, repo: repo}
}

func validateATM(req UpsertATMRequest) error {
	fields := make(map[string]string)
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(req.BankName) == "" {
		fields["bank_name"] = "bank_name is required"
	}
	if strings.TrimSpace(req.Address) == "" {
		fields["address"] = "address is required"
	}
	if len(fields) > 0 {
		return &api.ValidationError{Fields: fields}
	}
	return nil
}

func applyATM(a *types.ATM, req UpsertATMRequest) {
	a.Name = strings.TrimSpace(req.Name)
	a.BankName = strings.TrimSpace(req.BankName)
	a.Address = strings.TrimSpace(req.Address)
	a.Description = req.Description
	if req.Active != nil {
		a.Active = *req.Active
	}
}

func (s *ServiceImpl) ListATMs(ctx context.Context) ([]types.ATM, error) {
	return s.repo.ListATMs(ctx)
}

func (s *ServiceImpl) GetATM(ctx context.Context, id uuid.UUID) (*types.ATM, error) {
	return s.repo.GetATM(ctx, id)
}

func (s *ServiceImpl) ListATMsByBank(ctx context.Context, bank string) ([]types.ATM, error) {
	return s.repo.ListATMsByBank(ctx, strings.TrimSpace(bank))
}

func (s *ServiceImpl) CreateATM(ctx context.Context, req UpsertATMRequest) (*types.ATM, error) {
	if err := validateATM(req); err != nil {
		return nil, err
	}
	a := &types.ATM{ID: uuid.New(), Active: true}
	applyATM(a, req)
	if err := s.repo.CreateATM(ctx, a); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "ATM created", slog.String("atm_id", a.ID.String()))
	return a, nil
}

func (s *ServiceImpl) UpdateATM(ctx context.Context, id uuid.UUID, req UpsertATMRequest) (*types.ATM, error) {
	if err := validateATM(req); err != nil {
		return nil, err
	}
	a, err := s.repo.GetATM(ctx, id)
	if err != nil {
		return nil, err
	}
	applyATM(a, req)
	if err := s.repo.UpdateATM(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *ServiceImpl) DeleteATM(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteATM(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "ATM deleted", slog.String("atm_id", id.String()))
	return nil
}
