package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Table is the cell matrix of one document table: rows of string cells.
type Table [][]string

// DocumentContent is the pre-extracted form of an imported document: plain
// text plus the cell matrix of every discovered table, in document order.
// Byte-level Word extraction happens upstream of this service.
type DocumentContent struct {
	Text   string  `json:"text"`
	Tables []Table `json:"tables"`
}

// ExtraField is one unrecognized label/value pair carried through an import
// verbatim. A slice preserves the label order of the source table.
type ExtraField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// RequirementRecord is one requirement extracted from a document. Immutable
// once produced by a parser.
type RequirementRecord struct {
	ID          string       `json:"id"`
	GlobalID    string       `json:"global_id,omitempty"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	ExtraFields []ExtraField `json:"extra_fields,omitempty"`
}

// Extra returns the value of an unrecognized field by label.
func (r *RequirementRecord) Extra(name string) (string, bool) {
	for _, f := range r.ExtraFields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// DetectionResult is the document classifier's verdict, consumed immediately
// by the import orchestrator.
type DetectionResult struct {
	Format             DocumentFormat `json:"format"`
	Confidence         float64        `json:"confidence"`
	Reasons            []string       `json:"reasons"`
	MatchedFieldLabels []string       `json:"matched_field_labels"`
	MatchedIDs         []string       `json:"matched_ids"`
}

// ImportResult is what the import orchestrator hands back to the caller:
// the extracted records plus enough signal to explain an empty result.
type ImportResult struct {
	Records     []RequirementRecord `json:"records"`
	MethodUsed  ImportMethod        `json:"method_used"`
	Detection   DetectionResult     `json:"detection"`
	DurationMs  int64               `json:"duration_ms"`
	UserMessage string              `json:"user_message"`
}

// Issue is one quality problem reported for a requirement.
type Issue struct {
	Category    string `json:"category,omitempty"`
	Severity    string `json:"severity,omitempty"`
	Description string `json:"description"`
	Fix         string `json:"fix,omitempty"`
}

// Recommendation is one suggested improvement for a requirement.
type Recommendation struct {
	Category        string `json:"category,omitempty"`
	Description     string `json:"description"`
	RationaleOrEdit string `json:"rationale_or_edit,omitempty"`
}

// AnalysisRecord is the structured form of an LLM quality-analysis reply.
// Optional integers use pointers so "absent" survives serialization.
// Never mutated after extraction.
type AnalysisRecord struct {
	OriginalQualityScore    *int              `json:"original_quality_score,omitempty"`
	ImprovedQualityScore    *int              `json:"improved_quality_score,omitempty"`
	Issues                  []Issue           `json:"issues,omitempty"`
	Strengths               []string          `json:"strengths,omitempty"`
	ImprovedRequirementText string            `json:"improved_requirement_text,omitempty"`
	Recommendations         []Recommendation  `json:"recommendations,omitempty"`
	Hallucination           HallucinationFlag `json:"hallucination"`
	OverallAssessment       string            `json:"overall_assessment,omitempty"`
	MissingFields           []string          `json:"missing_fields,omitempty"`
}

// User is an authenticated API user.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ImportBatch groups the requirements produced by one import call.
type ImportBatch struct {
	ID          uuid.UUID      `db:"id" json:"id"`
	SourceName  string         `db:"source_name" json:"source_name"`
	Format      DocumentFormat `db:"format" json:"format"`
	Method      ImportMethod   `db:"method" json:"method"`
	RecordCount int            `db:"record_count" json:"record_count"`
	DurationMs  int64          `db:"duration_ms" json:"duration_ms"`
	CreatedBy   uuid.UUID      `db:"created_by" json:"created_by"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

// Requirement is a persisted RequirementRecord.
type Requirement struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	BatchID     uuid.UUID       `db:"batch_id" json:"batch_id"`
	ItemID      string          `db:"item_id" json:"item_id"`
	GlobalID    string          `db:"global_id" json:"global_id,omitempty"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	ExtraFields json.RawMessage `db:"extra_fields" json:"extra_fields,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// Record converts a persisted requirement back to its wire form.
func (r *Requirement) Record() (RequirementRecord, error) {
	rec := RequirementRecord{
		ID:          r.ItemID,
		GlobalID:    r.GlobalID,
		Name:        r.Name,
		Description: r.Description,
	}
	if len(r.ExtraFields) > 0 {
		if err := json.Unmarshal(r.ExtraFields, &rec.ExtraFields); err != nil {
			return rec, err
		}
	}
	return rec, nil
}

// Analysis is a persisted analysis run for one requirement.
type Analysis struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	RequirementID uuid.UUID       `db:"requirement_id" json:"requirement_id"`
	Provider      string          `db:"provider" json:"provider"`
	ModelUsed     string          `db:"model_used" json:"model_used"`
	Status        AnalysisStatus  `db:"status" json:"status"`
	Format        ResponseFormat  `db:"format" json:"format"`
	Record        json.RawMessage `db:"record" json:"record"`
	RawReply      string          `db:"raw_reply" json:"-"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}
