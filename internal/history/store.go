// Package history persists completed translation and comparison results.
// The orchestration core never touches it; the API layer saves results after
// the core returns.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"verba.fyi/verba/internal/translation"
)

var ErrNotFound = errors.New("history record not found")

// TranslationRecord is one stored single-engine translation.
type TranslationRecord struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	SourceText     string    `gorm:"type:text" json:"source_text"`
	TranslatedText string    `gorm:"type:text" json:"translated_text"`
	SourceLang     string    `gorm:"size:16;index" json:"resolved_source_language"`
	TargetLang     string    `gorm:"size:16;index" json:"target_language"`
	EngineID       string    `gorm:"size:32;index" json:"engine_id"`
	Model          string    `gorm:"size:64" json:"model,omitempty"`
	QualityScore   *float64  `json:"quality_score,omitempty"`
	Confidence     *float64  `json:"confidence_score,omitempty"`
	ProcessingTime float64   `json:"processing_time_seconds"`
	WordCount      int       `json:"word_count"`
	CharacterCount int       `json:"character_count"`
}

// ComparisonRecord is one stored compare call. The full result set is kept
// as a JSON document; the scalar columns exist for listing and filtering.
type ComparisonRecord struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	SourceText  string    `gorm:"type:text" json:"source_text"`
	SourceLang  string    `gorm:"size:16" json:"resolved_source_language"`
	TargetLang  string    `gorm:"size:16" json:"target_language"`
	BestEngine  string    `gorm:"size:32" json:"best_engine,omitempty"`
	ResultCount int       `json:"result_count"`
	ErrorCount  int       `json:"error_count"`
	Payload     string    `gorm:"type:jsonb" json:"payload"`
}

// Store wraps the history database.
type Store struct {
	db *gorm.DB
}

// Open connects to Postgres and prepares the two history tables.
func Open(databaseURL string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if err := db.AutoMigrate(&TranslationRecord{}, &ComparisonRecord{}); err != nil {
		return nil, fmt.Errorf("prepare history tables: %w", err)
	}
	return &Store{db: db}, nil
}

// SaveTranslation stores one result and returns the persisted record.
func (s *Store) SaveTranslation(ctx context.Context, result *translation.Result) (*TranslationRecord, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("history store is not initialized")
	}
	record := &TranslationRecord{
		SourceText:     result.SourceText,
		TranslatedText: result.TranslatedText,
		SourceLang:     result.SourceLang,
		TargetLang:     result.TargetLang,
		EngineID:       result.EngineID,
		Model:          result.Model,
		QualityScore:   result.QualityScore,
		Confidence:     result.Confidence,
		ProcessingTime: result.ProcessingTime,
		WordCount:      result.WordCount,
		CharacterCount: result.CharacterCount,
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, fmt.Errorf("save translation record: %w", err)
	}
	return record, nil
}

// SaveComparison stores one compare result and returns the persisted record.
func (s *Store) SaveComparison(ctx context.Context, result *translation.CompareResult) (*ComparisonRecord, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("history store is not initialized")
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode comparison payload: %w", err)
	}

	record := &ComparisonRecord{
		SourceText:  result.SourceText,
		SourceLang:  result.SourceLang,
		TargetLang:  result.TargetLang,
		ResultCount: len(result.Results),
		ErrorCount:  len(result.Errors),
		Payload:     string(payload),
	}
	if result.Best != nil {
		record.BestEngine = result.Best.EngineID
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, fmt.Errorf("save comparison record: %w", err)
	}
	return record, nil
}

// ListTranslations returns one page of records, newest first, with the total
// row count for pagination.
func (s *Store) ListTranslations(ctx context.Context, page, pageSize int) ([]TranslationRecord, int64, error) {
	if s == nil || s.db == nil {
		return nil, 0, fmt.Errorf("history store is not initialized")
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 25
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&TranslationRecord{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count translation records: %w", err)
	}

	var records []TranslationRecord
	err := s.db.WithContext(ctx).
		Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list translation records: %w", err)
	}
	return records, total, nil
}

// ListComparisons returns one page of comparison records, newest first, with
// the total row count for pagination.
func (s *Store) ListComparisons(ctx context.Context, page, pageSize int) ([]ComparisonRecord, int64, error) {
	if s == nil || s.db == nil {
		return nil, 0, fmt.Errorf("history store is not initialized")
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 25
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&ComparisonRecord{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count comparison records: %w", err)
	}

	var records []ComparisonRecord
	err := s.db.WithContext(ctx).
		Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list comparison records: %w", err)
	}
	return records, total, nil
}

// GetComparison returns one comparison record by id.
func (s *Store) GetComparison(ctx context.Context, id uint) (*ComparisonRecord, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("history store is not initialized")
	}
	var record ComparisonRecord
	err := s.db.WithContext(ctx).First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load comparison record: %w", err)
	}
	return &record, nil
}

// GetTranslation returns one record by id.
func (s *Store) GetTranslation(ctx context.Context, id uint) (*TranslationRecord, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("history store is not initialized")
	}
	var record TranslationRecord
	err := s.db.WithContext(ctx).First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load translation record: %w", err)
	}
	return &record, nil
}
