// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package brand

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/perfumery/internal/platform/validate"
	"github.com/taibuivan/perfumery/pkg/uuid"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

func validateInput(input *Input) error {
	input.Name = strings.TrimSpace(input.Name)

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, maxNameLength)
	return validator.Err()
}

func (service *Service) List(context context.Context, filter Filter) ([]*Brand, error) {
	validator := &validate.Validator{}
	if filter.Sort != "" {
		validator.OneOf(FieldSort, string(filter.Sort), string(SortName), string(SortRecent))
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}
	return service.repo.List(context, filter)
}

func (service *Service) Get(context context.Context, id string) (*Brand, error) {
	return service.repo.Get(context, id)
}

func (service *Service) Create(context context.Context, input Input) (*Brand, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	now := service.now().UTC()
	brand := &Brand{ID: uuid.New(), Name: input.Name, CreatedAt: now, UpdatedAt: now}
	if err := service.repo.Create(context, brand); err != nil {
		return nil, err
	}

	service.logger.Info("brand_created", slog.String("brand_id", brand.ID), slog.String("name", brand.Name))
	return brand, nil
}

func (service *Service) Update(context context.Context, id string, input Input) (*Brand, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	brand := &Brand{ID: id, Name: input.Name, UpdatedAt: service.now().UTC()}
	if err := service.repo.Update(context, brand); err != nil {
		return nil, err
	}

	service.logger.Info("brand_updated", slog.String("brand_id", brand.ID))
	return brand, nil
}

func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("brand_deleted", slog.String("brand_id", id))
	return nil
}
