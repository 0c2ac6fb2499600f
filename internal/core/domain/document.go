package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntityTypeTransactionSet is the DocumentLink entity type for TransactionSets.
const EntityTypeTransactionSet = "transaction_set"

// Document is an uploaded evidentiary artifact. Unique per tenant and content hash; never deleted.
type Document struct {
	DocumentID  string    `json:"documentID" db:"document_id"`
	TenantID    string    `json:"tenantID" db:"tenant_id"`
	ContentHash string    `json:"contentHash" db:"content_hash"`
	StorageKey  string    `json:"storageKey" db:"storage_key"`
	MimeType    string    `json:"mimeType" db:"mime_type"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	CreatedBy   string    `json:"createdBy" db:"created_by"`
}

// DocumentExtraction is an optional machine-extraction result for a Document.
type DocumentExtraction struct {
	ExtractionID string          `json:"extractionID" db:"extraction_id"`
	DocumentID   string          `json:"documentID" db:"document_id"`
	TenantID     string          `json:"tenantID" db:"tenant_id"`
	ModelID      string          `json:"modelID" db:"model_id"`
	Confidence   decimal.Decimal `json:"confidence" db:"confidence"`
	Fields       map[string]any  `json:"fields" db:"fields"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
}

// DocumentLink associates a Document with an entity. Links are additive.
type DocumentLink struct {
	LinkID     string    `json:"linkID" db:"link_id"`
	DocumentID string    `json:"documentID" db:"document_id"`
	TenantID   string    `json:"tenantID" db:"tenant_id"`
	EntityType string    `json:"entityType" db:"entity_type"`
	EntityID   string    `json:"entityID" db:"entity_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	CreatedBy  string    `json:"createdBy" db:"created_by"`
}
