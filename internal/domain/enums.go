package domain

// DocumentFormat classifies an imported document.
type DocumentFormat string

const (
	FormatStructuredExport DocumentFormat = "structured_export"
	FormatGenericDocument  DocumentFormat = "generic_document"
	FormatUnknown          DocumentFormat = "unknown"
)

// ImportMethod records which parser produced the returned records.
type ImportMethod string

const (
	MethodStructuredParser ImportMethod = "structured_parser"
	MethodGenericParser    ImportMethod = "generic_parser"
	MethodNone             ImportMethod = "none"
)

// ResponseFormat classifies the shape of an LLM analysis reply.
type ResponseFormat string

const (
	ResponseJSON         ResponseFormat = "json"
	ResponseLabeledProse ResponseFormat = "labeled_prose"
	ResponseUnrecognized ResponseFormat = "unrecognized"
)

// HallucinationFlag is the model's self-reported fabrication signal.
type HallucinationFlag string

const (
	NoFabrication      HallucinationFlag = "no_fabrication"
	FabricatedDetails  HallucinationFlag = "fabricated_details"
	FabricationUnknown HallucinationFlag = "unknown"
)

// UserRole defines the role hierarchy.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// AnalysisStatus tracks whether an analysis run produced the rewritten
// requirement text, the primary deliverable.
type AnalysisStatus string

const (
	AnalysisStatusComplete   AnalysisStatus = "complete"
	AnalysisStatusIncomplete AnalysisStatus = "incomplete"
)
