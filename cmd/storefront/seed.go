package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	productApp "github.com/davicafu/storefront/internal/product/application"
	productDomain "github.com/davicafu/storefront/internal/product/domain"
	productRepo "github.com/davicafu/storefront/internal/product/infra/outbound/db/mongodb"
	sharedMongo "github.com/davicafu/storefront/internal/shared/infra/db/mongodb"
	"github.com/davicafu/storefront/pkg/logger"
)

// productSeed es el formato de data/products.json. Los _id del fichero se ignoran.
type productSeed struct {
	Name     string                `json:"name"`
	Price    float64               `json:"price"`
	NewPrice float64               `json:"new_price"`
	Ratings  float64               `json:"ratings"`
	Images   []productDomain.Image `json:"images"`
	Category string                `json:"category"`
	Stock    int                   `json:"stock"`
	Enable   string                `json:"enable"`
}

func (s productSeed) toProduct(owner uuid.UUID) *productDomain.Product {
	p := productDomain.NewProduct(owner, s.Name, s.Category)
	p.Price, p.NewPrice, p.Ratings, p.Stock = s.Price, s.NewPrice, s.Ratings, s.Stock
	if s.Images != nil {
		p.Images = s.Images
	}
	if s.Enable != "" {
		p.Enable = s.Enable
	}
	return p
}

func readSeedFile(path string, owner uuid.UUID) ([]*productDomain.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var seeds []productSeed
	if err := json.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	products := make([]*productDomain.Product, 0, len(seeds))
	for _, s := range seeds {
		products = append(products, s.toProduct(owner))
	}
	return products, nil
}

func newSeedCmd() *cobra.Command {
	var (
		file  string
		owner string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Delete every product and insert the ones in --file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ownerID, err := uuid.Parse(owner)
			if err != nil {
				return fmt.Errorf("invalid --user: %w", err)
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := logger.Logger()

			products, err := readSeedFile(file, ownerID)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			client, err := sharedMongo.Connect(ctx, cfg.MongoURI, connectTimeout)
			if err != nil {
				return err
			}
			defer func() { _ = client.Disconnect(ctx) }()

			svc := productApp.NewProductService(productRepo.NewProductRepoMongoDB(client.Database(cfg.MongoDB)), nil, cfg.CacheTTL, log)
			deleted, err := svc.Seed(ctx, ownerID, products)
			if err != nil {
				return err
			}
			log.Info("Seed finished", zap.Int64("deleted", deleted), zap.Int("inserted", len(products)))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "data/products.json", "JSON array of products")
	cmd.Flags().StringVar(&owner, "user", "", "id of the admin that owns the seeded products")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
