package domain

// Lottery defaults
const (
	DefaultMaxPhotosForWeighting = 5
	DefaultWinnersPerDraw        = 1
	MaxWinnersPerDraw            = 50
	MaxPhotosForWeightingLimit   = 1000
	DefaultHistoryLimit          = 50
	MaxHistoryLimit              = 500
)

// Machine-mode defaults, in design-space pixels
const (
	DefaultTokenDiameter = 56
	DefaultChamberWidth  = 640
	DefaultChamberHeight = 420
)
