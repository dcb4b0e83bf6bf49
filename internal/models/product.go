package models

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int             `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
	Price       decimal.Decimal `json:"price" yaml:"price"`
	Image       string          `json:"image" yaml:"image"`
	Category    string          `json:"category" yaml:"category"`
	Stock       int             `json:"stock" yaml:"stock"`
}

// PromptCategory, chatbot için hazır soru kategorisini temsil eder
type PromptCategory struct {
	Title   string   `json:"title" yaml:"title"`
	Icon    string   `json:"icon" yaml:"icon"`
	Prompts []string `json:"prompts" yaml:"prompts"`
}
