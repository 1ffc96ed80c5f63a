package takeoff

import (
	"strings"
	"time"
)

// Trade identifies the construction discipline a takeoff is scoped to. It
// selects the prompt instructions and the category tables used downstream.
type Trade string

const (
	TradeElectrical Trade = "electrical"
	TradePlumbing   Trade = "plumbing"
	TradeCarpentry  Trade = "carpentry"
	TradeHVAC       Trade = "hvac"
	TradeDrywall    Trade = "drywall"
	TradeFlooring   Trade = "flooring"
	TradeRoofing    Trade = "roofing"
	TradeSheathing  Trade = "sheathing"
	TradeAcoustics  Trade = "acoustics"
	TradeOther      Trade = "other"
)

// NormalizeTrade maps arbitrary input to a known trade, defaulting to other.
func NormalizeTrade(raw string) Trade {
	trade := Trade(strings.ToLower(strings.TrimSpace(raw)))
	switch trade {
	case TradeElectrical, TradePlumbing, TradeCarpentry, TradeHVAC, TradeDrywall,
		TradeFlooring, TradeRoofing, TradeSheathing, TradeAcoustics:
		return trade
	default:
		return TradeOther
	}
}

// AnalysisLevel is the requested depth of output.
type AnalysisLevel string

const (
	LevelTakeoff      AnalysisLevel = "takeoff"
	LevelCostEstimate AnalysisLevel = "costEstimate"
	LevelFullEstimate AnalysisLevel = "fullEstimate"
)

// NormalizeLevel maps arbitrary input to a known analysis level, defaulting to takeoff.
func NormalizeLevel(raw string) AnalysisLevel {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "costestimate", "cost_estimate", "cost":
		return LevelCostEstimate
	case "fullestimate", "full_estimate", "full":
		return LevelFullEstimate
	default:
		return LevelTakeoff
	}
}

// ImageInput is one uploaded blueprint page.
type ImageInput struct {
	Name        string
	ContentType string
	Data        []byte
}

// AnalysisRequest captures everything needed to run one blueprint analysis.
// Immutable once constructed.
type AnalysisRequest struct {
	Images      []ImageInput
	Trade       Trade
	Level       AnalysisLevel
	ProjectType string
}

// MaterialItem is one line of a takeoff.
// Invariant: when UnitPrice is set, TotalPrice == Quantity * UnitPrice. The
// estimation engine enforces this; upstream text is never trusted for it.
type MaterialItem struct {
	Category   string   `json:"category"`
	Name       string   `json:"name"`
	Quantity   float64  `json:"quantity"`
	Unit       string   `json:"unit"`
	UnitPrice  *float64 `json:"unitPrice,omitempty"`
	TotalPrice *float64 `json:"totalPrice,omitempty"`
}

// LaborItem is one labor line of a full estimate.
type LaborItem struct {
	Task  string   `json:"task"`
	Hours float64  `json:"hours"`
	Rate  *float64 `json:"rate,omitempty"`
	Cost  *float64 `json:"cost,omitempty"`
}

// NotePriority ranks installation notes.
type NotePriority string

const (
	NotePriorityHigh   NotePriority = "high"
	NotePriorityMedium NotePriority = "medium"
	NotePriorityLow    NotePriority = "low"
)

// InstallationNote is a free-text instruction attached to a takeoff.
type InstallationNote struct {
	Text     string       `json:"text"`
	Priority NotePriority `json:"priority"`
}

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// AnalysisResult is the structured takeoff produced by the pipeline.
// Created by the prompt contract, populated by the normalizer, enriched by
// the estimation engine. Terminal once Status is completed or failed.
type AnalysisResult struct {
	ID                string             `json:"id"`
	Trade             Trade              `json:"trade"`
	Level             AnalysisLevel      `json:"level"`
	Materials         []MaterialItem     `json:"materials"`
	Labor             []LaborItem        `json:"labor,omitempty"`
	Notes             []InstallationNote `json:"notes"`
	TotalMaterialCost *float64           `json:"totalMaterialCost,omitempty"`
	TotalLaborCost    *float64           `json:"totalLaborCost,omitempty"`
	TotalCost         *float64           `json:"totalCost,omitempty"`
	Circuits          []CircuitLoadGroup `json:"circuits,omitempty"`
	Findings          []Finding          `json:"findings,omitempty"`
	RawResponse       string             `json:"rawResponse,omitempty"`
	Status            string             `json:"status"`
	ErrorCode         string             `json:"errorCode,omitempty"`
	ErrorMessage      string             `json:"errorMessage,omitempty"`
	CreatedAt         time.Time          `json:"createdAt"`
	CompletedAt       *time.Time         `json:"completedAt,omitempty"`
}

// CircuitLoadGroup aggregates electrical components assigned to one branch circuit.
type CircuitLoadGroup struct {
	CircuitID      string         `json:"circuitId"`
	Members        []MaterialItem `json:"members"`
	TotalLoadWatts float64        `json:"totalLoadWatts"`
	IsOverloaded   bool           `json:"isOverloaded"`
}

// MaterialChange records a quantity change between two takeoffs.
type MaterialChange struct {
	Item             MaterialItem `json:"item"`
	PreviousQuantity float64      `json:"previousQuantity"`
	Delta            float64      `json:"delta"`
}

// TakeoffDiff is the delta between a baseline and an updated takeoff.
// Always derived fresh from two results, never persisted.
type TakeoffDiff struct {
	Added               []MaterialItem   `json:"added"`
	Removed             []MaterialItem   `json:"removed"`
	Modified            []MaterialChange `json:"modified"`
	CostDelta           float64          `json:"costDelta"`
	PercentageCostDelta float64          `json:"percentageCostDelta"`
}

func floatPtr(v float64) *float64 {
	return &v
}
