package constants

// skin analysis responses
const (
	NO_FILE_UPLOADED             = "No file uploaded"
	UPLOAD_TOO_LARGE             = "Uploaded file is too large"
	POOR_IMAGE_QUALITY           = "Poor image quality detected"
	NO_FACE_DETECTED             = "No face detected in image. Please ensure face is clearly visible."
	ANALYSIS_TIMEOUT             = "Analysis timeout. Please try again."
	ALL_ANALYSIS_ATTEMPTS_FAILED = "All analysis attempts failed"
	SERVICE_UNAVAILABLE          = "Service temporarily unavailable"
	ANALYSIS_ERROR_PREFIX        = "Error analyzing image: "
	CACHE_CLEARED                = "Cache cleared"
	FACE_BACKEND_RUNNING         = "Enhanced Skincare Analyzer Backend is running!"
	API_RUNNING                  = "Skincare Analyzer API is running!"
	SERVICE_HEALTHY              = "healthy"
)

// history responses
const (
	HISTORY_SAVED         = "Analysis saved to history successfully"
	HISTORY_ALREADY_SAVED = "Analysis already saved in history"
	HISTORY_FETCHED       = "History fetched successfully"
	HISTORY_NOT_FOUND     = "Analysis not found"
	HISTORY_DELETED       = "Analysis deleted from history successfully"
	HISTORY_STATS_FETCHED = "History statistics fetched successfully"
	HISTORY_DISABLED      = "History storage is not configured"
	INTERNAL_SERVER_ERROR = "Internal server error"
)
