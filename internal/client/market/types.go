package market

import "encoding/json"

// DraftInitRequest is the step 1 payload.
type DraftInitRequest struct {
	CategoryID    int64       `json:"category_id"`
	DeviceModelID int64       `json:"device_model_id"`
	YearsUsed     float64     `json:"years_used"`
	OriginalPrice json.Number `json:"original_price"`
}

type DraftInitResponse struct {
	DraftKey string `json:"draft_key"`
	// Meta echoes the validated step 1 fields.
	Meta map[string]any `json:"meta,omitempty"`
}

type UploadImageResponse struct {
	ID        int64  `json:"id"`
	ImageName string `json:"image_name"`
	IsMain    bool   `json:"is_main"`
	SortOrder int    `json:"sort_order"`
}

type AnalyzeResponse struct {
	MainImage  string   `json:"main_image"`
	GradeLabel string   `json:"grade_label"`
	GradeScore float64  `json:"grade_score"`
	Defects    []string `json:"defects"`
}

type EstimateRequest struct {
	CategoryID    int64       `json:"category_id"`
	YearsUsed     float64     `json:"years_used"`
	OriginalPrice json.Number `json:"original_price"`
	GradeLabel    string      `json:"grade_label"`
	Defects       []string    `json:"defects"`
}

type CategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type Grade struct {
	Label  string `json:"label"`
	Factor string `json:"factor"`
}

// EstimateResponse carries the price band. Money values are decimal strings.
type EstimateResponse struct {
	Category      CategoryRef `json:"category"`
	Grade         Grade       `json:"grade"`
	EstimatedMin  string      `json:"estimated_min"`
	EstimatedMax  string      `json:"estimated_max"`
	EstimatedMid  string      `json:"estimated_mid"`
	Volatility    float64     `json:"volatility"`
	DefectPenalty float64     `json:"defect_penalty"`
}

// PublishRequest repeats the step 1 and analysis fields and adds the seller's
// text and price.
type PublishRequest struct {
	CategoryID    int64       `json:"category_id"`
	DeviceModelID int64       `json:"device_model_id"`
	YearsUsed     float64     `json:"years_used"`
	OriginalPrice json.Number `json:"original_price"`

	GradeLabel string   `json:"grade_label"`
	Defects    []string `json:"defects"`

	Title        string      `json:"title"`
	Description  string      `json:"description"`
	SellingPrice json.Number `json:"selling_price"`
}

type PublishResponse struct {
	ProductID    int64   `json:"product_id"`
	EstimatedMin string  `json:"estimated_min"`
	EstimatedMax string  `json:"estimated_max"`
	EstimatedMid string  `json:"estimated_mid"`
	MarketTag    string  `json:"market_tag"`
	DiffPct      float64 `json:"diff_pct"`
	ValueScore   float64 `json:"value_score"`
}

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

type DeviceModel struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Brand         any    `json:"brand,omitempty"`
	BasePrice     string `json:"base_price,omitempty"`
	ReleaseDate   string `json:"release_date,omitempty"`
	StorageSpec   string `json:"storage_spec,omitempty"`
	Color         string `json:"color,omitempty"`
	IsDiscontinue bool   `json:"is_discontinued,omitempty"`
}

type Product struct {
	ID             int64          `json:"id"`
	Seller         any            `json:"seller,omitempty"`
	DeviceModel    any            `json:"device_model,omitempty"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	EstimatedPrice string         `json:"estimated_price"`
	SellingPrice   string         `json:"selling_price"`
	Status         string         `json:"status"`
	QualityGrade   string         `json:"quality_grade,omitempty"`
	Location       string         `json:"location,omitempty"`
	ConditionData  map[string]any `json:"condition_data,omitempty"`
	CreatedAt      string         `json:"created_at,omitempty"`
}

type Order struct {
	ID            int64  `json:"id"`
	OrderNo       string `json:"order_no"`
	Buyer         int64  `json:"buyer"`
	Product       int64  `json:"product"`
	Amount        string `json:"amount"`
	Status        string `json:"status"`
	PaymentMethod string `json:"payment_method,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
}

type TradeResponse struct {
	OrderNo string `json:"order_no"`
	Status  string `json:"status"`
}

type ConfirmResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ValuationRequest struct {
	DeviceModelID int64   `json:"device_model_id"`
	ChoiceIDs     []int64 `json:"choice_ids"`
}

type ValuationResponse struct {
	EstimatedPrice string `json:"estimated_price"`
	Currency       string `json:"currency"`
	Message        string `json:"message"`
}
