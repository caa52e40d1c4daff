package models

// Requests for market HTTP endpoints. Defined in domain for consistency and reuse.

type MarketAnalysisRequest struct {
	Exchange  string `query:"exchange" json:"exchange" default:"ALL" validate:"oneof=ALL BIST NASDAQ CRYPTO"`
	Sort      string `query:"sort" json:"sort" default:"riskScore" validate:"oneof=symbol price riskScore trend"`
	Direction string `query:"dir" json:"dir" default:"desc" validate:"oneof=asc desc"`
}

type StockAnalysisRequest struct {
	Symbol string `param:"symbol" json:"symbol" validate:"required"`
}

type VigilRequest struct {
	Fresh bool `query:"fresh" json:"fresh"`
}

type DetectiveScanRequest struct {
	Limit int `query:"limit" json:"limit" default:"12" validate:"gte=1,lte=50"`
}
