package fetcher

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/net/html"
	"gorm.io/datatypes"

	"rfq-match/internal/model"
)

// Source 描述一个供应商价目页。
type Source struct {
	SupplierID uint   `yaml:"supplier_id" json:"supplier_id"`
	Category   string `yaml:"category" json:"category"`
	URL        string `yaml:"url" json:"url"`
}

// Config 定义目录抓取配置。
type Config struct {
	Interval string   `yaml:"interval" json:"interval"`
	Sources  []Source `yaml:"sources" json:"sources"`
}

// CatalogFetcher 目录抓取统一接口。
type CatalogFetcher interface {
	Fetch(ctx context.Context) ([]model.Product, error)
}

// HTMLCatalogFetcher 抓取供应商价目页中的产品表格。
// 页面约定：第一个 <table> 的首行为表头，name 与 price 列必填，
// warranty、stock、availability 列映射到对应字段，其余列写入规格。
type HTMLCatalogFetcher struct {
	cfg    Config
	client *http.Client
	logger *log.Logger
}

// NewHTMLCatalogFetcher 创建抓取器。
func NewHTMLCatalogFetcher(cfg Config, client *http.Client) *HTMLCatalogFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTMLCatalogFetcher{
		cfg:    cfg,
		client: client,
		logger: log.New(os.Stdout, "[fetcher] ", log.LstdFlags),
	}
}

// Fetch 抓取全部配置源并返回解析出的产品。
// 单个源解析失败不会中断整体抓取。
func (f *HTMLCatalogFetcher) Fetch(ctx context.Context) ([]model.Product, error) {
	products := make([]model.Product, 0)

	f.logf("start fetch: sources=%d", len(f.cfg.Sources))
	for _, src := range f.cfg.Sources {
		parsed, err := f.fetchSource(ctx, src)
		if err != nil {
			f.logf("source url=%s error=%v", src.URL, err)
			continue
		}
		f.logf("source url=%s category=%s parsed=%d", src.URL, src.Category, len(parsed))
		products = append(products, parsed...)
	}
	f.logf("fetch done total_products=%d", len(products))

	return products, nil
}

func (f *HTMLCatalogFetcher) fetchSource(ctx context.Context, src Source) ([]model.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	rows, err := parsePriceTable(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse price table: %w", err)
	}

	products := make([]model.Product, 0, len(rows))
	for _, row := range rows {
		product, err := buildProduct(src, row)
		if err != nil {
			f.logf("source url=%s skip row: %v", src.URL, err)
			continue
		}
		products = append(products, product)
	}
	return products, nil
}

// buildProduct 将一行表格数据转换为产品。
func buildProduct(src Source, row map[string]string) (model.Product, error) {
	name := strings.TrimSpace(row["name"])
	if name == "" {
		return model.Product{}, fmt.Errorf("missing name column")
	}

	priceText := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(row["price"]), "$"))
	priceText = strings.ReplaceAll(priceText, ",", "")
	price, err := decimal.NewFromString(priceText)
	if err != nil {
		return model.Product{}, fmt.Errorf("parse price %q: %w", row["price"], err)
	}

	product := model.Product{
		SupplierID:   src.SupplierID,
		Name:         name,
		Category:     src.Category,
		Price:        price,
		Availability: model.AvailabilityInStock,
		Specs:        datatypes.JSONMap{},
	}

	for key, value := range row {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		switch key {
		case "name", "price":
		case "description":
			product.Description = value
		case "warranty":
			product.Warranty = value
		case "stock":
			n, err := strconv.Atoi(value)
			if err != nil {
				return model.Product{}, fmt.Errorf("parse stock %q: %w", value, err)
			}
			product.Stock = n
		case "availability":
			product.Availability = strings.ToLower(value)
		default:
			product.Specs[key] = value
		}
	}
	return product, nil
}

// parsePriceTable 解析页面首个表格，返回按表头命名的行数据。
func parsePriceTable(htmlText string) ([]map[string]string, error) {
	node, err := html.Parse(strings.NewReader(htmlText))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	table := findFirst(node, "table")
	if table == nil {
		return nil, fmt.Errorf("no table found")
	}

	var headers []string
	rows := make([]map[string]string, 0)
	for _, tr := range findAll(table, "tr") {
		cells := cellTexts(tr)
		if len(cells) == 0 {
			continue
		}
		if headers == nil {
			headers = make([]string, len(cells))
			for i, c := range cells {
				headers[i] = strings.ToLower(strings.TrimSpace(c))
			}
			continue
		}
		row := make(map[string]string, len(headers))
		for i, c := range cells {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			row[headers[i]] = c
		}
		rows = append(rows, row)
	}

	if headers == nil {
		return nil, fmt.Errorf("table has no header row")
	}
	if !contains(headers, "name") || !contains(headers, "price") {
		return nil, fmt.Errorf("table missing name/price columns")
	}
	return rows, nil
}

func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func findAll(n *html.Node, tag string) []*html.Node {
	var nodes []*html.Node
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if cur.Type == html.ElementNode && cur.Data == tag {
			nodes = append(nodes, cur)
			return
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return nodes
}

func cellTexts(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			cells = append(cells, strings.TrimSpace(nodeText(c)))
		}
	}
	return cells
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}

func contains(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}

func (f *HTMLCatalogFetcher) logf(format string, args ...any) {
	if f.logger == nil {
		f.logger = log.New(os.Stdout, "[fetcher] ", log.LstdFlags)
	}
	f.logger.Printf(format, args...)
}
