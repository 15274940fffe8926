package facedetection

import (
	"time"

	"skinsense.io/infrastructure/env"
	"skinsense.io/infrastructure/facedetection/facepp"
	"skinsense.io/infrastructure/facedetection/types"
	"skinsense.io/infrastructure/logger"
)

// InitialiseFaceDetector builds the Face++ backed detector from the environment.
func InitialiseFaceDetector() types.FaceDetector {
	apiKey := env.GetString("FACEPP_API_KEY", "")
	apiSecret := env.GetString("FACEPP_API_SECRET", "")
	if apiKey == "" || apiSecret == "" {
		logger.Warning("face++ credentials missing, skin analysis requests will be rejected upstream")
	}
	timeout := time.Duration(env.GetInt("FACEPP_TIMEOUT_SECONDS", 30)) * time.Second
	return facepp.NewFacePlusPlus(env.GetString("FACEPP_BASE_URL", facepp.DefaultBaseURL), apiKey, apiSecret, timeout)
}
