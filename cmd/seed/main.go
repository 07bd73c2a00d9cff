// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command seed resets the catalog database to a known demo state.
//
// It truncates every catalog table, then creates one administrator, two
// members, five brands and nine perfumes through the regular services so
// that every row passes the same validation the API applies.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/perfumery/internal/catalog/brand"
	"github.com/taibuivan/perfumery/internal/catalog/perfume"
	"github.com/taibuivan/perfumery/internal/member"
	"github.com/taibuivan/perfumery/internal/platform/config"
	"github.com/taibuivan/perfumery/internal/platform/constants"
	"github.com/taibuivan/perfumery/internal/platform/database/schema"
	"github.com/taibuivan/perfumery/internal/platform/migration"
	pgstore "github.com/taibuivan/perfumery/internal/platform/postgres"
)

type account struct {
	member.Registration
	isAdmin bool
}

var accounts = []account{
	{Registration: member.Registration{Email: "admin@myteam.com", Password: "admin123", Name: "Do Nam Trung", YOB: 1990, Gender: true}, isAdmin: true},
	{Registration: member.Registration{Email: "member1@test.com", Password: "member123", Name: "Nguyen Van A", YOB: 1995, Gender: true}},
	{Registration: member.Registration{Email: "member2@test.com", Password: "member123", Name: "Tran Thi B", YOB: 1998, Gender: false}},
}

var brandNames = []string{"Dior", "Chanel", "Tom Ford", "Creed", "Versace"}

// catalog maps brand name to the perfumes it ships. BrandID is filled in at run time.
var catalog = map[string][]perfume.Input{
	"Dior": {
		{
			Name: "Sauvage", URI: "https://www.dior.com/beauty/packshot/sauvage-edt.jpg", Price: 120,
			Concentration: perfume.ConcentrationEDT, Volume: 100, TargetAudience: perfume.AudienceMale,
			Description: "A fresh and woody fragrance inspired by wide-open spaces",
			Ingredients: "Bergamot, Pepper, Ambroxan, Cedar",
		},
		{
			Name: "J'adore", URI: "https://www.dior.com/beauty/packshot/jadore.jpg", Price: 150,
			Concentration: perfume.ConcentrationExtrait, Volume: 75, TargetAudience: perfume.AudienceFemale,
			Description: "The feminine, floral and sensual scent",
			Ingredients: "Ylang-Ylang, Rose, Jasmine",
		},
	},
	"Chanel": {
		{
			Name: "Chanel No. 5", URI: "https://www.chanel.com/images/chanel-no-5-eau-de-parfum.jpg", Price: 180,
			Concentration: perfume.ConcentrationEDP, Volume: 100, TargetAudience: perfume.AudienceFemale,
			Description: "The legendary fragrance, timeless and classic",
			Ingredients: "Aldehydes, Jasmine, Rose, Vanilla, Sandalwood",
		},
		{
			Name: "Bleu de Chanel", URI: "https://www.chanel.com/images/bleu-de-chanel-eau-de-parfum.jpg", Price: 165,
			Concentration: perfume.ConcentrationEDP, Volume: 100, TargetAudience: perfume.AudienceMale,
			Description: "A woody aromatic fragrance for the man who defies convention",
			Ingredients: "Citrus, Incense, Cedar, Sandalwood",
		},
	},
	"Tom Ford": {
		{
			Name: "Black Orchid", URI: "https://www.tomford.com/images/large/black-orchid.jpg", Price: 200,
			Concentration: perfume.ConcentrationEDP, Volume: 50, TargetAudience: perfume.AudienceUnisex,
			Description: "A luxurious and sensual fragrance with dark accords",
			Ingredients: "Black Truffle, Ylang-Ylang, Black Orchid, Patchouli",
		},
		{
			Name: "Oud Wood", URI: "https://www.tomford.com/images/large/oud-wood.jpg", Price: 250,
			Concentration: perfume.ConcentrationEDP, Volume: 50, TargetAudience: perfume.AudienceUnisex,
			Description: "Rare oud wood is surrounded by exotic spices",
			Ingredients: "Oud Wood, Sandalwood, Rosewood, Cardamom, Amber",
		},
	},
	"Creed": {
		{
			Name: "Aventus", URI: "https://creedfragrances.com/cdn/shop/products/aventus-edp-100ml.jpg", Price: 450,
			Concentration: perfume.ConcentrationEDP, Volume: 100, TargetAudience: perfume.AudienceMale,
			Description: "Strength, vision and success",
			Ingredients: "Pineapple, Bergamot, Apple, Birch, Musk, Oak Moss",
		},
	},
	"Versace": {
		{
			Name: "Eros", URI: "https://www.versace.com/images/original/eros-edt-100ml.jpg", Price: 95,
			Concentration: perfume.ConcentrationEDT, Volume: 100, TargetAudience: perfume.AudienceMale,
			Description: "A fragrance for a strong, passionate man",
			Ingredients: "Mint, Green Apple, Tonka Bean, Vanilla, Cedar",
		},
		{
			Name: "Bright Crystal", URI: "https://www.versace.com/images/original/bright-crystal-edt-90ml.jpg", Price: 85,
			Concentration: perfume.ConcentrationEDT, Volume: 90, TargetAudience: perfume.AudienceFemale,
			Description: "A fresh, luminous fragrance",
			Ingredients: "Pomegranate, Peony, Magnolia, Musk, Mahogany",
		},
	},
}

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("app", constants.AppName+"-seed"))

	cfg, err := config.Load()
	must(log, err, "load configuration")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer pool.Close()

	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")
	must(log, seed(ctx, pool, log), "seed catalog")

	log.Info("seed_completed",
		slog.Int("members", len(accounts)),
		slog.Int("brands", len(brandNames)),
	)
	for _, account := range accounts {
		log.Info("seed_account",
			slog.String("email", account.Email),
			slog.String("password", account.Password),
			slog.Bool("is_admin", account.isAdmin),
		)
	}
}

func seed(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	truncate := fmt.Sprintf(`TRUNCATE %s, %s, %s`,
		schema.Perfume.Table, schema.Brand.Table, schema.Member.Table)
	if _, err := pool.Exec(ctx, truncate); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}
	log.Info("seed_cleared")

	members := member.NewService(member.NewPostgresRepository(pool), log)
	brands := brand.NewService(brand.NewPostgresRepository(pool), log)
	perfumes := perfume.NewService(perfume.NewPostgresRepository(pool), brands, members, log)

	promote := fmt.Sprintf(`UPDATE %s SET %s = TRUE WHERE %s = $1`,
		schema.Member.Table, schema.Member.IsAdmin, schema.Member.ID)

	for _, account := range accounts {
		created, err := members.Register(ctx, account.Registration)
		if err != nil {
			return fmt.Errorf("register %s: %w", account.Email, err)
		}
		if !account.isAdmin {
			continue
		}
		// The admin flag never changes through the API.
		if _, err := pool.Exec(ctx, promote, created.ID); err != nil {
			return fmt.Errorf("promote %s: %w", account.Email, err)
		}
	}

	for _, name := range brandNames {
		created, err := brands.Create(ctx, brand.Input{Name: name})
		if err != nil {
			return fmt.Errorf("brand %s: %w", name, err)
		}
		for _, input := range catalog[name] {
			input.BrandID = created.ID
			if _, err := perfumes.Create(ctx, input); err != nil {
				return fmt.Errorf("perfume %s: %w", input.Name, err)
			}
		}
	}
	return nil
}

func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("seed failure", slog.String("context", context), slog.Any("error", err))
		os.Exit(1)
	}
}
