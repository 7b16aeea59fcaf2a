package analysisService

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"

	"FaceDiagnosisGolang/internal/entity"
	"FaceDiagnosisGolang/pkg/faceshape"
)

const (
	fingerprintFrameWidth  = 640
	fingerprintFrameHeight = 480
)

// fingerprintLandmarks synthesizes a plausible landmark set seeded by the
// image bytes. The same image always produces the same face, which keeps
// the provider useful for local development without an AI backend.
func fingerprintLandmarks(image []byte) *entity.LandmarkExtraction {
	sum := sha256.Sum256(image)
	seed := int64(binary.BigEndian.Uint64(sum[:8]))
	rng := rand.New(rand.NewSource(seed))

	centerX := 260 + rng.Float64()*120
	chinY := 360 + rng.Float64()*60
	faceHeight := 240 + rng.Float64()*80
	foreheadY := chinY - faceHeight

	jawHalf := faceHeight * (0.28 + rng.Float64()*0.16) / 2
	cheekHalf := faceHeight * (0.34 + rng.Float64()*0.14) / 2
	foreheadHalf := faceHeight * (0.30 + rng.Float64()*0.14) / 2
	templeHalf := cheekHalf * (0.90 + rng.Float64()*0.12)
	jawlineHalf := jawHalf * (0.72 + rng.Float64()*0.10)
	eyeHalf := cheekHalf * (0.78 + rng.Float64()*0.08)

	jitter := func() float64 {
		return (rng.Float64() - 0.5) * 6
	}

	landmarks := faceshape.LandmarkSet{
		faceshape.RoleChinTip:        {X: centerX + jitter(), Y: chinY},
		faceshape.RoleForeheadCenter: {X: centerX + jitter(), Y: foreheadY},

		faceshape.RoleJawCornerLeft:  {X: centerX - jawHalf + jitter(), Y: chinY - faceHeight*0.18},
		faceshape.RoleJawCornerRight: {X: centerX + jawHalf + jitter(), Y: chinY - faceHeight*0.18},

		faceshape.RoleJawlineLeft:  {X: centerX - jawlineHalf + jitter(), Y: chinY - faceHeight*0.08},
		faceshape.RoleJawlineRight: {X: centerX + jawlineHalf + jitter(), Y: chinY - faceHeight*0.08},

		faceshape.RoleCheekboneLeft:  {X: centerX - cheekHalf + jitter(), Y: chinY - faceHeight*0.45},
		faceshape.RoleCheekboneRight: {X: centerX + cheekHalf + jitter(), Y: chinY - faceHeight*0.45},

		faceshape.RoleTempleLeft:  {X: centerX - templeHalf + jitter(), Y: chinY - faceHeight*0.70},
		faceshape.RoleTempleRight: {X: centerX + templeHalf + jitter(), Y: chinY - faceHeight*0.70},

		faceshape.RoleForeheadLeft:  {X: centerX - foreheadHalf + jitter(), Y: chinY - faceHeight*0.88},
		faceshape.RoleForeheadRight: {X: centerX + foreheadHalf + jitter(), Y: chinY - faceHeight*0.88},

		faceshape.RoleEyeOuterLeft:  {X: centerX - eyeHalf + jitter(), Y: chinY - faceHeight*0.58},
		faceshape.RoleEyeOuterRight: {X: centerX + eyeHalf + jitter(), Y: chinY - faceHeight*0.58},
	}

	return &entity.LandmarkExtraction{
		FaceDetected: true,
		ImageWidth:   fingerprintFrameWidth,
		ImageHeight:  fingerprintFrameHeight,
		Landmarks:    landmarks,
	}
}
