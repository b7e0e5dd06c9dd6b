package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"github.com/arogya-mitra/arogyabot/internal/config"
	"github.com/arogya-mitra/arogyabot/internal/domain"
)

// CatalogService looks up generic medicines on the Jan Aushadhi product
// list. The page is plain server-rendered HTML, so results come from
// scraping its product table.
type CatalogService struct {
	httpClient *http.Client
	baseURL    string
}

func NewCatalogService(baseURL string) *CatalogService {
	return &CatalogService{
		httpClient: &http.Client{Timeout: config.CatalogTimeout},
		baseURL:    baseURL,
	}
}

// Search fetches the product list and returns entries whose name
// contains the query, capped at config.MaxMedicineResults.
func (s *CatalogService) Search(ctx context.Context, query string) ([]domain.Medicine, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", s.baseURL+config.ProductListPath, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch product list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch product list: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse product list: %w", err)
	}

	query = strings.ToLower(strings.TrimSpace(query))
	var medicines []domain.Medicine

	doc.Find("table tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() < 4 {
			return true // header or layout row
		}

		med := domain.Medicine{
			Code:     strings.TrimSpace(cells.Eq(0).Text()),
			Name:     strings.TrimSpace(cells.Eq(1).Text()),
			UnitSize: strings.TrimSpace(cells.Eq(2).Text()),
		}
		if med.Name == "" {
			return true
		}
		if query != "" && !strings.Contains(strings.ToLower(med.Name), query) {
			return true
		}

		mrp, err := decimal.NewFromString(normalizePrice(cells.Eq(3).Text()))
		if err != nil {
			return true // unparsable price row, skip it
		}
		med.MRP = mrp

		medicines = append(medicines, med)
		return len(medicines) < config.MaxMedicineResults
	})

	return medicines, nil
}

func normalizePrice(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "Rs.")
	raw = strings.TrimPrefix(raw, "₹")
	raw = strings.ReplaceAll(raw, ",", "")
	return strings.TrimSpace(raw)
}
