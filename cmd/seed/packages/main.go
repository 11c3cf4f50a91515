package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/orzutravel/api/internal/config"
	"github.com/orzutravel/api/internal/domain"
	"github.com/orzutravel/api/internal/repository"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Seeds a couple of demo packages so a fresh deployment has something to
// show. Safe to run repeatedly: fixed application ids make re-runs no-ops.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoDB.URI))
	if err != nil {
		log.Fatalf("Failed to connect to Mongo: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB.Database)
	repo := repository.NewMongoPackageRepository(db)

	packages := []*domain.TravelPackage{
		{
			ID: "seed_samarkand_weekend",
			Name: domain.LocalizedText{
				Uz: "Samarqand bo'ylab sayohat",
				Ru: "Тур по Самарканду",
			},
			Price: 1200000,
			Text: domain.LocalizedText{
				Uz: "Registon, Gur-Amir va Shohizinda bo'ylab 2 kunlik sayohat.\n*Mehmonxona va nonushta narxga kiritilgan.*",
				Ru: "Двухдневный тур по Регистану, Гур-Эмиру и Шахи-Зинде.\n*Отель и завтрак включены в стоимость.*",
			},
			Media: []domain.MediaItem{},
		},
		{
			ID: "seed_bukhara_classic",
			Name: domain.LocalizedText{
				Uz: "Buxoro klassik turi",
				Ru: "Классический тур в Бухару",
			},
			Price: 950000,
			Text: domain.LocalizedText{
				Uz: "Ark qal'asi, Poi Kalon va Labi Hovuz bo'ylab bir kunlik ekskursiya.",
				Ru: "Однодневная экскурсия по крепости Арк, Пои Калян и Ляби-Хауз.",
			},
			Media: []domain.MediaItem{},
		},
	}

	for _, pkg := range packages {
		if err := repo.Create(ctx, pkg); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				log.Printf("[Seed] Package %s already exists, skipping", pkg.ID)
				continue
			}
			log.Fatalf("Failed to seed package %s: %v", pkg.ID, err)
		}
		log.Printf("[Seed] Created package: %s (%s)", pkg.ID, pkg.Name.Uz)
	}

	log.Println("✓ Seeding complete")
}
