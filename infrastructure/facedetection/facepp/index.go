package facepp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"skinsense.io/infrastructure/facedetection/types"
	"skinsense.io/infrastructure/logger"
)

const (
	DefaultBaseURL   = "https://api-us.faceplusplus.com"
	detectPath       = "/facepp/v3/detect"
	returnAttributes = "skinstatus,gender,age"
	maxResponseBytes = 4 << 20
)

// FacePlusPlus calls the Face++ detect API.
type FacePlusPlus struct {
	BaseURL   string
	APIKey    string
	APISecret string
	Client    *http.Client
}

func NewFacePlusPlus(baseURL, apiKey, apiSecret string, timeout time.Duration) *FacePlusPlus {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &FacePlusPlus{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		APIKey:    apiKey,
		APISecret: apiSecret,
		Client:    &http.Client{Timeout: timeout},
	}
}

type errorBody struct {
	ErrorMessage string `json:"error_message"`
	Error        string `json:"error"`
}

func (f *FacePlusPlus) DetectSkin(ctx context.Context, image types.DetectionImage) (*types.DetectResponse, error) {
	body, contentType, err := f.buildForm(image)
	if err != nil {
		return nil, fmt.Errorf("building face++ request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.BaseURL+detectPath, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := f.Client.Do(req)
	if err != nil {
		logger.Error("face++ request failed", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading face++ response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		msg := eb.Error
		if msg == "" {
			msg = eb.ErrorMessage
		}
		logger.Error("face++ returned an error status", logger.LoggerOptions{
			Key:  "status_code",
			Data: resp.StatusCode,
		}, logger.LoggerOptions{
			Key:  "message",
			Data: msg,
		})
		return nil, &types.APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	var result types.DetectResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decoding face++ response: %w", err)
	}
	return &result, nil
}

func (f *FacePlusPlus) buildForm(image types.DetectionImage) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := [][2]string{
		{"api_key", f.APIKey},
		{"api_secret", f.APISecret},
		{"return_attributes", returnAttributes},
	}
	for _, field := range fields {
		if err := w.WriteField(field[0], field[1]); err != nil {
			return nil, "", err
		}
	}

	mimeType := image.MimeType
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = mimetype.Detect(image.Data).String()
	}
	fileName := image.FileName
	if fileName == "" {
		fileName = "upload" + mimetype.Detect(image.Data).Extension()
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image_file"; filename="%s"`, escapeQuotes(fileName)))
	header.Set("Content-Type", mimeType)
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(image.Data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
