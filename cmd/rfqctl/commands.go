package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/urfave/cli/v2"

	"rfq-match/internal/compliance"
	"rfq-match/internal/fetcher"
	"rfq-match/internal/match"
	"rfq-match/internal/storage"
)

var seedCmd = &cli.Command{
	Name:  "seed",
	Usage: "Populate the catalog with demo suppliers and products",
	Action: func(ctx *cli.Context) error {
		store, err := storage.NewStore(ctx.String("db"))
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Seed(ctx.Context); err != nil {
			return err
		}
		suppliers, err := store.ListSuppliers(ctx.Context)
		if err != nil {
			return err
		}
		fmt.Printf("catalog ready: %d suppliers\n", len(suppliers))
		return nil
	},
}

var importCmd = &cli.Command{
	Name:  "import",
	Usage: "Import products from a supplier price list page",
	Flags: []cli.Flag{
		&cli.UintFlag{
			Name:     "supplier",
			Required: true,
			Usage:    "supplier id the products belong to",
		},
		&cli.StringFlag{
			Name:     "category",
			Required: true,
			Usage:    "catalog category of the imported products",
		},
		&cli.StringFlag{
			Name:     "url",
			Required: true,
			Usage:    "price list page to import",
		},
	},
	Action: func(ctx *cli.Context) error {
		store, err := storage.NewStore(ctx.String("db"))
		if err != nil {
			return err
		}
		defer store.Close()

		return doImport(ctx.Context, store, fetcher.Source{
			SupplierID: uint(ctx.Uint("supplier")),
			Category:   ctx.String("category"),
			URL:        ctx.String("url"),
		})
	},
}

var matchCmd = &cli.Command{
	Name:  "match",
	Usage: "Run supplier matching for a stored RFQ",
	Flags: []cli.Flag{
		&cli.UintFlag{
			Name:     "rfq",
			Required: true,
			Usage:    "rfq id to match",
		},
		&cli.StringFlag{
			Name:  "sort",
			Value: "score",
			Usage: "sort order: score, price_asc, price_desc, delivery_asc",
		},
		&cli.IntFlag{
			Name:  "page",
			Value: 1,
			Usage: "result page (1-based)",
		},
	},
	Action: func(ctx *cli.Context) error {
		store, err := storage.NewStore(ctx.String("db"))
		if err != nil {
			return err
		}
		defer store.Close()

		return doMatch(ctx.Context, store, uint(ctx.Uint("rfq")), match.SortKey(ctx.String("sort")), ctx.Int("page"))
	},
}

func doImport(ctx context.Context, store *storage.Store, src fetcher.Source) error {
	client := &http.Client{Timeout: 15 * time.Second}
	catalog := fetcher.NewHTMLCatalogFetcher(fetcher.Config{Sources: []fetcher.Source{src}}, client)

	products, err := catalog.Fetch(ctx)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return fmt.Errorf("no products parsed from %s", src.URL)
	}

	res, err := store.UpsertProducts(ctx, products)
	if err != nil {
		return err
	}
	fmt.Printf("imported %d products: created=%d updated=%d\n", len(products), res.Created, res.Updated)
	return nil
}

func doMatch(ctx context.Context, store *storage.Store, rfqID uint, sort match.SortKey, page int) error {
	rfq, err := store.GetRFQ(ctx, rfqID)
	if err != nil {
		return err
	}

	categories := make([]string, 0, len(rfq.Requirement.Categories))
	for _, block := range rfq.Requirement.Categories {
		categories = append(categories, block.Category)
	}
	candidates, err := store.CatalogSnapshot(ctx, categories)
	if err != nil {
		return err
	}

	engine := match.NewEngine(match.Config{}, compliance.NewAdvisor(compliance.Config{}))
	matches, err := engine.Match(ctx, rfq.Requirement, candidates)
	if err != nil {
		return err
	}

	result := match.Rank(matches, match.RankOptions{Sort: sort, Page: page, PageSize: engine.Config().PageSize})
	fmt.Printf("rfq %d %q: %d matches (page %d/%d)\n", rfq.ID, rfq.Title, result.Total, result.Page, result.TotalPages)
	for _, m := range result.Matches {
		fmt.Printf("  %6.2f  %-28s %-34s $%s", m.TotalScore, m.Supplier.Name, m.Product.Name, m.TotalPrice.StringFixed(2))
		if !m.Verdict.Allowed {
			fmt.Printf("  [blocked: %s]", m.Verdict.Risk)
		}
		fmt.Println()
	}
	return nil
}
