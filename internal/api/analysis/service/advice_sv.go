package analysisService

import (
	"strings"

	"FaceDiagnosisGolang/internal/api/analysis"
	"FaceDiagnosisGolang/pkg/faceshape"
)

var shapeTitles = map[faceshape.Shape]string{
	faceshape.ShapeRound:            "Soft Round",
	faceshape.ShapeOval:             "Balanced Oval",
	faceshape.ShapeOblong:           "Graceful Oblong",
	faceshape.ShapeDiamond:          "Radiant Diamond",
	faceshape.ShapeSquare:           "Defined Square",
	faceshape.ShapeInvertedTriangle: "Fresh Inverted Triangle",
}

var shapeDescriptions = map[faceshape.Shape]string{
	faceshape.ShapeRound:            "Soft cheek lines give a friendly, approachable impression. Adding vertical emphasis sharpens the whole look.",
	faceshape.ShapeOval:             "Length and width sit in balance, so most styles land well. Bangs are the easiest way to fine-tune the impression.",
	faceshape.ShapeOblong:           "A long, calm silhouette reads mature and elegant. Volume at the sides keeps the proportions comfortable.",
	faceshape.ShapeDiamond:          "High cheekbones catch the light beautifully. Softening the temple area rounds out the line.",
	faceshape.ShapeSquare:           "A firm jawline projects reliability and strength. Loose curls around the jaw soften the frame.",
	faceshape.ShapeInvertedTriangle: "A wide brow tapering to a neat chin looks sharp and modern. Volume near the jaw adds warmth.",
}

var shapeCelebrities = map[faceshape.Shape]string{
	faceshape.ShapeRound:            "Selena Gomez",
	faceshape.ShapeOval:             "Natalie Portman",
	faceshape.ShapeOblong:           "Sarah Jessica Parker",
	faceshape.ShapeDiamond:          "Rihanna",
	faceshape.ShapeSquare:           "Angelina Jolie",
	faceshape.ShapeInvertedTriangle: "Scarlett Johansson",
}

var shapePreviews = map[faceshape.Shape]string{
	faceshape.ShapeRound:            "A round outline looks sharper when you emphasize vertical lines.",
	faceshape.ShapeOval:             "An oval outline is the all-rounder; bangs let you fine-tune the impression.",
	faceshape.ShapeOblong:           "An oblong outline settles nicely with soft volume at the sides.",
	faceshape.ShapeDiamond:          "A diamond outline shines when the temples are softened.",
	faceshape.ShapeSquare:           "A square outline softens under loose curls along the jaw.",
	faceshape.ShapeInvertedTriangle: "An inverted triangle gains warmth with volume near the jawline.",
}

var stylePalettes = map[string][]string{
	"natural": {"ivory", "warm beige", "terracotta"},
	"cool":    {"charcoal", "navy", "silver gray"},
	"cute":    {"coral pink", "cream yellow", "lavender"},
}

var focusCareTips = map[string][]string{
	"eyes": {
		"Brighten the eye area with a light concealer",
		"Curl lashes upward to lift the gaze",
		"Keep brows one tone lighter than your hair",
	},
	"line": {
		"Massage along the jawline after cleansing",
		"Shade softly just under the cheekbones",
		"Keep the hairline tidy around the ears",
	},
	"balance": {
		"Check your outline monthly as styles grow out",
		"Match your parting depth to your face length",
		"Keep skincare simple and consistent",
	},
}

var diagnosisNextSteps = []string{
	"Save this result and compare after your next haircut",
	"Try the suggested palette on accessories first",
	"Re-run the analysis under bright, even lighting",
}

func advicePreview(shape faceshape.Shape) string {
	if preview, ok := shapePreviews[shape]; ok {
		return preview
	}
	return "Your outline is distinctive; a stylist can fine-tune the direction."
}

// buildDiagnosis tolerates unknown style and focus values the same way
// the descriptor tables tolerate any canonical shape: it falls back to
// the defaults instead of failing the request.
func buildDiagnosis(shape faceshape.Shape, stylePreference, focus string) analysis.DiagnoseResult {
	style := strings.ToLower(strings.TrimSpace(stylePreference))
	palette, ok := stylePalettes[style]
	if !ok {
		palette = stylePalettes["natural"]
	}

	focusKey := strings.ToLower(strings.TrimSpace(focus))
	careTips, ok := focusCareTips[focusKey]
	if !ok {
		careTips = focusCareTips["balance"]
	}

	return analysis.DiagnoseResult{
		Type:        shapeTitles[shape],
		Description: shapeDescriptions[shape],
		Palette:     palette,
		Celebrity:   shapeCelebrities[shape],
		CareTips:    careTips,
		NextSteps:   diagnosisNextSteps,
	}
}
