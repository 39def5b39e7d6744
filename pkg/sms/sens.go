// Package sms dispatches verification codes through Naver Cloud SENS.
package sms

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/ikkim/kiwimarket-backend/config"
	"github.com/ikkim/kiwimarket-backend/pkg/logger"
)

const (
	headerTimestamp = "x-ncp-apigw-timestamp"
	headerAccessKey = "x-ncp-iam-access-key"
	headerSignature = "x-ncp-apigw-signature-v2"
)

// Sender delivers a verification code to a phone number.
type Sender interface {
	SendCode(ctx context.Context, phoneNumber, code string) error
}

// SENS 메시지 요청 구조체
type MessageRequest struct {
	Type        string    `json:"type"`                  // SMS or LMS
	ContentType string    `json:"contentType,omitempty"` // COMM or AD
	CountryCode string    `json:"countryCode,omitempty"`
	From        string    `json:"from"`     // 발신번호
	Content     string    `json:"content"`  // 기본 메시지 내용
	Messages    []Message `json:"messages"` // 수신자 정보
}

type Message struct {
	To string `json:"to"`
}

// MakeSignature builds the SENS v2 request signature:
// base64(HMAC-SHA256(secret, "<METHOD> <URI>\n<timestamp>\n<accessKey>")).
func MakeSignature(method, uri, timestamp, accessKey, secretKey string) string {
	message := method + " " + uri + "\n" + timestamp + "\n" + accessKey
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(message))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Client sends messages through the SENS HTTP API.
type Client struct {
	cfg        config.SMSConfig
	httpClient *http.Client
	now        func() time.Time
}

// NewSender returns a SENS client, or a logging sender when credentials are missing.
func NewSender(cfg config.SMSConfig) Sender {
	if cfg.ServiceID == "" || cfg.AccessKey == "" || cfg.SecretKey == "" || cfg.FromNumber == "" {
		logger.Warn("SENS credentials not configured, SMS will be logged only", nil)
		return &LogSender{}
	}
	return NewClient(cfg, &http.Client{Timeout: 10 * time.Second})
}

func NewClient(cfg config.SMSConfig, httpClient *http.Client) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		now:        time.Now,
	}
}

func (c *Client) SendCode(ctx context.Context, phoneNumber, code string) error {
	body := MessageRequest{
		Type:        "SMS",
		ContentType: "COMM",
		CountryCode: "82",
		From:        c.cfg.FromNumber,
		Content:     fmt.Sprintf("키위마켓입니당>< \n인증번호 [%s]를 입력해주세요.", code),
		Messages:    []Message{{To: phoneNumber}},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode SENS request: %w", err)
	}

	timestamp := strconv.FormatInt(c.now().UnixMilli(), 10)
	uri := fmt.Sprintf("/sms/v2/services/%s/messages", c.cfg.ServiceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+uri, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build SENS request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set(headerTimestamp, timestamp)
	req.Header.Set(headerAccessKey, c.cfg.AccessKey)
	req.Header.Set(headerSignature, MakeSignature(http.MethodPost, uri, timestamp, c.cfg.AccessKey, c.cfg.SecretKey))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("SENS request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(resp.Body)
		return &GatewayError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	logger.Info("Verification SMS dispatched", map[string]interface{}{
		"phone_number": phoneNumber,
		"status_code":  resp.StatusCode,
	})
	return nil
}

// GatewayError carries the SENS HTTP status of a rejected dispatch.
type GatewayError struct {
	StatusCode int
	Body       string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("SENS dispatch failed (status %d): %s", e.StatusCode, e.Body)
}

// LogSender is the development sender; it only logs the code.
type LogSender struct{}

func (LogSender) SendCode(_ context.Context, phoneNumber, code string) error {
	logger.Info("[개발 모드] SMS 미발송", map[string]interface{}{
		"phone_number": phoneNumber,
		"auth_number":  code,
	})
	return nil
}
