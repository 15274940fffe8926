package types

import "context"

// FaceDetector detects faces in an image and returns skin, gender and age
// attributes for each of them.
type FaceDetector interface {
	DetectSkin(ctx context.Context, image DetectionImage) (*DetectResponse, error)
}

type DetectionImage struct {
	Data     []byte
	FileName string
	MimeType string
}

type DetectResponse struct {
	RequestID string `json:"request_id"`
	ImageID   string `json:"image_id"`
	TimeUsed  int    `json:"time_used"`
	Faces     []Face `json:"faces"`
	FaceNum   int    `json:"face_num"`
}

type Face struct {
	FaceToken     string         `json:"face_token"`
	FaceRectangle FaceRectangle  `json:"face_rectangle"`
	Attributes    FaceAttributes `json:"attributes"`
}

type FaceRectangle struct {
	Top        int     `json:"top"`
	Left       int     `json:"left"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Confidence float64 `json:"confidence"`
}

type FaceAttributes struct {
	SkinStatus SkinStatus   `json:"skinstatus"`
	Gender     StringValue  `json:"gender"`
	Age        NumericValue `json:"age"`
}

type SkinStatus struct {
	Health     float64 `json:"health"`
	Stain      float64 `json:"stain"`
	DarkCircle float64 `json:"dark_circle"`
	Acne       float64 `json:"acne"`
	Blackhead  float64 `json:"blackhead"`
	Clarity    float64 `json:"clarity"`
}

type StringValue struct {
	Value string `json:"value"`
}

type NumericValue struct {
	Value float64 `json:"value"`
}
