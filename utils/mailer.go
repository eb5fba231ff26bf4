package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// OTP delivery goes through a transactional mail provider. The core only
// depends on SendOtp(email, code); the provider behind it is swappable via env.

// MailError represents a mail provider API error
type MailError struct {
	Code     string
	Message  string
	HTTPCode int
}

func (e *MailError) Error() string {
	return fmt.Sprintf("mail provider error [%s]: %s", e.Code, e.Message)
}

type mailSendRequest struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	TextBody string `json:"text_body"`
	Tag      string `json:"tag,omitempty"`
}

type mailSendResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SendOtp delivers a one-time code to the given email address.
func SendOtp(email, code string) error {
	apiKey := os.Getenv("MAIL_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("MAIL_API_KEY not set")
	}
	baseURL := os.Getenv("MAIL_API_URL")
	if baseURL == "" {
		baseURL = "https://api.smtp2go.com/v3/email/send"
	}

	reqBody := mailSendRequest{
		To:       email,
		Subject:  "Your verification code",
		TextBody: fmt.Sprintf("Your one-time code is %s. It expires in 10 minutes. Do not share it with anyone.", code),
		Tag:      "otp",
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", apiKey))

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		var mr mailSendResponse
		if json.Unmarshal(bodyBytes, &mr) == nil && mr.Code != "" {
			return &MailError{Code: mr.Code, Message: mr.Message, HTTPCode: resp.StatusCode}
		}
		return &MailError{Code: "unknown", Message: string(bodyBytes), HTTPCode: resp.StatusCode}
	}

	return nil
}
