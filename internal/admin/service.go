// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package admin serves the administrator dashboard: catalog and membership
// totals plus the most recent additions.
package admin

import (
	"context"
	"log/slog"

	"github.com/taibuivan/perfumery/internal/catalog/brand"
	"github.com/taibuivan/perfumery/internal/catalog/perfume"
	"github.com/taibuivan/perfumery/internal/member"
	"github.com/taibuivan/perfumery/pkg/pagination"
)

// RecentLimit is how many recent perfumes and members the dashboard shows.
const RecentLimit = 5

// # Dependencies

type PerfumeCatalog interface {
	List(context context.Context, filter perfume.Filter, page pagination.Params) ([]*perfume.Perfume, int, error)
}

type BrandCatalog interface {
	List(context context.Context, filter brand.Filter) ([]*brand.Brand, error)
}

type MemberDirectory interface {
	List(context context.Context, filter member.Filter, limit, offset int) ([]*member.Member, int, error)
}

// Stats is the dashboard payload.
type Stats struct {
	Perfumes       int                `json:"perfumes_count"`
	Brands         int                `json:"brands_count"`
	Members        int                `json:"members_count"`
	Admins         int                `json:"admins_count"`
	RecentPerfumes []*perfume.Perfume `json:"recent_perfumes"`
	RecentMembers  []*member.Member   `json:"recent_members"`
}

type Service struct {
	perfumes PerfumeCatalog
	brands   BrandCatalog
	members  MemberDirectory
	logger   *slog.Logger
}

func NewService(perfumes PerfumeCatalog, brands BrandCatalog, members MemberDirectory, logger *slog.Logger) *Service {
	return &Service{perfumes: perfumes, brands: brands, members: members, logger: logger}
}

/*
Stats gathers the dashboard totals.

Recent lists are ordered newest first and capped at [RecentLimit].
*/
func (service *Service) Stats(context context.Context) (*Stats, error) {
	recent := pagination.Params{Page: 1, Limit: RecentLimit}

	perfumes, perfumeTotal, err := service.perfumes.List(context, perfume.Filter{Sort: perfume.SortRecent}, recent)
	if err != nil {
		return nil, err
	}

	brands, err := service.brands.List(context, brand.Filter{})
	if err != nil {
		return nil, err
	}

	members, memberTotal, err := service.members.List(context, member.Filter{}, RecentLimit, 0)
	if err != nil {
		return nil, err
	}

	// Only the total matters here.
	_, adminTotal, err := service.members.List(context, member.Filter{AdminsOnly: true}, 1, 0)
	if err != nil {
		return nil, err
	}

	service.logger.DebugContext(context, "admin_stats_computed",
		slog.Int("perfumes", perfumeTotal),
		slog.Int("members", memberTotal),
	)

	return &Stats{
		Perfumes:       perfumeTotal,
		Brands:         len(brands),
		Members:        memberTotal,
		Admins:         adminTotal,
		RecentPerfumes: perfumes,
		RecentMembers:  members,
	}, nil
}
