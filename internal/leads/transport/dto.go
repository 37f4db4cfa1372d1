package transport

// Line kinds accepted in requests.
const (
	LineKindProduct = "product"
	LineKindPackage = "package"
)

// Request modes.
const (
	ModeSingle = "single"
	ModeMulti  = "multi"
)

// Request DTOs

// LineRequest is the flat wire form of one configured line. It is converted
// into exactly one composer line; fields that do not belong to the chosen
// kind are rejected.
type LineRequest struct {
	Kind              string `json:"kind,omitempty" validate:"omitempty,oneof=product package"`
	Category          string `json:"category,omitempty" validate:"omitempty,max=32"`
	WritingType       string `json:"writingType,omitempty" validate:"omitempty,max=32"`
	CustomDescription string `json:"customDescription,omitempty" validate:"omitempty,max=500"`
	PackageKind       string `json:"packageKind,omitempty" validate:"omitempty,max=32"`
	Accessories       bool   `json:"accessories,omitempty"`
	MariageCount      string `json:"mariageCount,omitempty" validate:"omitempty,max=4"`
	MaisonCount       string `json:"maisonCount,omitempty" validate:"omitempty,max=4"`
	Quantity          string `json:"qty,omitempty" validate:"omitempty,max=20"`
}

type ContactRequest struct {
	Name    string `json:"name" validate:"max=100"`
	Phone   string `json:"phone" validate:"max=40"`
	City    string `json:"city" validate:"max=100"`
	Urgency string `json:"urgency" validate:"max=200"`
	Details string `json:"details" validate:"max=2000"`
}

type ComposeRequest struct {
	Locale  string         `json:"locale" validate:"omitempty,max=16"`
	Mode    string         `json:"mode" validate:"omitempty,oneof=single multi"`
	Line    *LineRequest   `json:"line" validate:"omitempty"`
	Items   []LineRequest  `json:"items" validate:"max=20,dive"`
	Contact ContactRequest `json:"contact"`
}

type SubmitRequest struct {
	ComposeRequest
	Source string `json:"source" validate:"omitempty,max=64"`
}

// Response DTOs

type ComposeResponse struct {
	Message   string `json:"message"`
	Link      string `json:"link"`
	Direction string `json:"direction"`
	Locale    string `json:"locale"`
}

type SubmitResponse struct {
	OK bool `json:"ok"`
	ComposeResponse
}

// LeadResponse is the reply of the public lead endpoint.
type LeadResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}
