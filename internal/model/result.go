package model

import (
	"strconv"
	"time"

	"github.com/plugfox/foxy-fib/internal/fib"
	"github.com/plugfox/foxy-fib/internal/utility"
	"gorm.io/gorm"
)

type (
	ResultID int64
	Source   string
)

const (
	SourceCLI      Source = "cli"
	SourceHTTP     Source = "http"
	SourceTelegram Source = "telegram"
)

// Result - one evaluated Fibonacci number
type Result struct {
	ID ResultID `gorm:"PrimaryKey;autoIncrement" json:"id"` // Unique identifier of the record.

	N         int64         `gorm:"index" hash:"x" json:"n"`   // Index into the sequence.
	Value     int64         `hash:"x" json:"value"`            // fib(N).
	Algorithm fib.Algorithm `hash:"x" json:"algorithm"`        // Algorithm used to evaluate.
	Source    Source        `gorm:"index" json:"source"`       // Surface that requested the value.
	Duration  time.Duration `json:"duration"`                  // Time spent evaluating.
	Cached    bool          `gorm:"-" json:"cached"`           // Served from the cache, never persisted.
	Digest    string        `gorm:"size:64;index" json:"hash"` // Content hash, filled in on insert.

	// Meta fields
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"` // Time when the result was recorded.
}

// TableName - set the table name.
func (Result) TableName() string {
	return "results"
}

// GetID - get the result ID.
func (obj *Result) GetID() int64 {
	return int64(obj.ID)
}

// ToString - get the result ID.
func (id ResultID) ToString() string {
	return strconv.FormatInt(int64(id), 10)
}

// Hash - calculate the hash of the object.
func (obj *Result) Hash() (string, error) {
	return utility.Hash(obj)
}

// BeforeCreate - fill in the content hash before the row is inserted.
func (obj *Result) BeforeCreate(_ *gorm.DB) error {
	digest, err := obj.Hash()
	if err != nil {
		return err
	}
	obj.Digest = digest
	return nil
}

// Ensure Result implements Entity
var _ Entity = (*Result)(nil)
