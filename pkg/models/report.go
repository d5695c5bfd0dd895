package models

// ReportType identifies one of the report tiers the journal produces.
type ReportType string

const (
	ReportDaily        ReportType = "dailyReport"
	ReportTenDay       ReportType = "tenDayReview"
	ReportThirtyDay    ReportType = "thirtyDayReview"
	ReportHundredFifty ReportType = "hundredFiftyDayReview"
)

// ReportDefinition describes where one report tier lives and how it is shown.
type ReportDefinition struct {
	Folder string `yaml:"folder" json:"folder"`
	Name   string `yaml:"name" json:"name"`
	// WindowDays is the look-back window review tiers aggregate over.
	// Zero for the daily report.
	WindowDays int `yaml:"window_days,omitempty" json:"windowDays,omitempty"`
}

// ReportDefinitions lists every report tier in generation order.
var ReportDefinitions = map[ReportType]ReportDefinition{
	ReportDaily:        {Folder: "l1daily", Name: "Daily Report"},
	ReportTenDay:       {Folder: "l2tenDayReview", Name: "10 Days Review", WindowDays: 10},
	ReportThirtyDay:    {Folder: "l3thirtyDayReview", Name: "30 Days Review", WindowDays: 30},
	ReportHundredFifty: {Folder: "l4hundredFiftyDayReview", Name: "150 Days Review", WindowDays: 150},
}
