package database

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"rooftopgarden/internal/apperrors"
	"rooftopgarden/internal/logger"
	"rooftopgarden/internal/models"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// catalogData, katalog dosyasındaki tüm verileri temsil eder.
type catalogData struct {
	Products         []models.Product        `yaml:"products"`
	PromptCategories []models.PromptCategory `yaml:"prompt_categories"`
}

// CatalogStore, ürün kataloğunu ve hazır soru kategorilerini bellekte tutar.
// Veriler salt okunurdur; Reload ile dosyadan yeniden yüklenebilir.
type CatalogStore struct {
	mu       sync.RWMutex
	data     catalogData
	filePath string
}

// NewCatalogStore, yeni bir CatalogStore oluşturur ve verileri yükler.
// filePath boşsa gömülü katalog kullanılır.
func NewCatalogStore(filePath string) (*CatalogStore, error) {
	s := &CatalogStore{filePath: filePath}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload, katalog verilerini kaynağından yeniden okur
func (s *CatalogStore) Reload() error {
	raw := defaultCatalog
	source := "embedded"
	if s.filePath != "" {
		fileData, err := os.ReadFile(s.filePath)
		if err != nil {
			return fmt.Errorf("read catalog %s: %w", s.filePath, err)
		}
		raw = fileData
		source = s.filePath
	}

	data, err := parseCatalog(raw)
	if err != nil {
		return fmt.Errorf("parse catalog %s: %w", source, err)
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()

	logger.Log.Info("CatalogStore.Reload - catalog loaded",
		zap.String("source", source),
		zap.Int("products", len(data.Products)),
		zap.Int("prompt_categories", len(data.PromptCategories)))
	return nil
}

func parseCatalog(raw []byte) (catalogData, error) {
	var data catalogData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return catalogData{}, err
	}
	seen := make(map[int]bool, len(data.Products))
	for _, p := range data.Products {
		if p.ID <= 0 {
			return catalogData{}, fmt.Errorf("product %q has invalid id %d", p.Name, p.ID)
		}
		if seen[p.ID] {
			return catalogData{}, fmt.Errorf("duplicate product id %d", p.ID)
		}
		seen[p.ID] = true
		if strings.TrimSpace(p.Name) == "" {
			return catalogData{}, fmt.Errorf("product %d has no name", p.ID)
		}
		if p.Price.IsNegative() {
			return catalogData{}, fmt.Errorf("product %d has negative price", p.ID)
		}
	}
	if data.Products == nil {
		data.Products = []models.Product{}
	}
	if data.PromptCategories == nil {
		data.PromptCategories = []models.PromptCategory{}
	}
	return data, nil
}

// GetAllProducts, tüm ürünleri döndürür.
func (s *CatalogStore) GetAllProducts() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	products := make([]models.Product, len(s.data.Products))
	copy(products, s.data.Products)
	return products
}

// GetProductByID, belirli bir ID'ye sahip ürünü döndürür.
func (s *CatalogStore) GetProductByID(id int) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.data.Products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, apperrors.Wrap(apperrors.ErrNotFound, errors.New("product not found"))
}

// Categories, ürün kategorilerini katalogdaki ilk görülme sırasıyla döndürür.
func (s *CatalogStore) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var categories []string
	seen := map[string]bool{}
	for _, p := range s.data.Products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}
	return categories
}

// ProductsByCategory, kategoriye göre filtrelenmiş ürünleri döndürür. Boş kategori tümünü döndürür.
func (s *CatalogStore) ProductsByCategory(category string) []models.Product {
	if category == "" {
		return s.GetAllProducts()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var filtered []models.Product
	for _, p := range s.data.Products {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// PromptCategories, hazır soru kategorilerini döndürür.
func (s *CatalogStore) PromptCategories() []models.PromptCategory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.PromptCategory, len(s.data.PromptCategories))
	copy(out, s.data.PromptCategories)
	return out
}
