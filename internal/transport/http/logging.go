package http

import (
	"encoding/json"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/zipcart/auth-api/internal/domain"
)

const (
	requestBodyLogKey  = "http.request.body.summary"
	responseBodyLogKey = "http.response.body.summary"
	maxLoggedBody      = 2048
)

// Fields whose values never reach the logs. Every endpoint here carries
// credentials or codes, so the redaction list is part of the contract.
var redactedFields = []string{"password", "otp", "token", "id_token"}

func registerLogging(e *echo.Echo) {
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			userID := "anonymous"
			if user, ok := c.Get(contextUserKey).(*domain.User); ok && user != nil {
				userID = user.ID.String()
			}

			payload := struct {
				Time      string `json:"time"`
				UserUUID  string `json:"user_uuid"`
				LatencyMS int64  `json:"latency_ms"`
				Request   struct {
					Method string      `json:"method"`
					URI    string      `json:"uri"`
					Body   interface{} `json:"body,omitempty"`
				} `json:"request"`
				Response struct {
					Status int         `json:"status"`
					Body   interface{} `json:"body,omitempty"`
					Error  string      `json:"error,omitempty"`
				} `json:"response"`
			}{
				Time:      v.StartTime.Format(time.RFC3339),
				UserUUID:  userID,
				LatencyMS: v.Latency.Milliseconds(),
			}

			payload.Request.Method = v.Method
			payload.Request.URI = v.URI
			payload.Request.Body = c.Get(requestBodyLogKey)
			payload.Response.Status = v.Status
			payload.Response.Body = c.Get(responseBodyLogKey)
			if v.Error != nil {
				payload.Response.Error = v.Error.Error()
			}

			buf, err := json.Marshal(payload)
			if err != nil {
				return err
			}
			log.Println(string(buf))
			return nil
		},
	}))

	e.Use(middleware.BodyDump(func(c echo.Context, reqBody, resBody []byte) {
		if summary := sanitizeBody(reqBody); summary != nil {
			c.Set(requestBodyLogKey, summary)
		}
		if summary := sanitizeBody(resBody); summary != nil {
			c.Set(responseBodyLogKey, summary)
		}
	}))
}

// sanitizeBody parses a JSON body and redacts credential fields. Non-JSON
// payloads are clamped to a printable preview.
func sanitizeBody(body []byte) interface{} {
	if len(body) == 0 {
		return nil
	}
	var data interface{}
	if err := json.Unmarshal(body, &data); err == nil {
		return sanitizeJSON(data, "")
	}
	text := string(body)
	lowered := strings.ToLower(text)
	for _, field := range redactedFields {
		if strings.Contains(lowered, field) {
			return "redacted"
		}
	}
	return clampString(text)
}

func sanitizeJSON(value interface{}, keyHint string) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for key, val := range v {
			lowerKey := strings.ToLower(key)
			if isRedactedField(lowerKey) {
				result[key] = "redacted"
				continue
			}
			result[key] = sanitizeJSON(val, lowerKey)
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			result[i] = sanitizeJSON(item, keyHint)
		}
		return result
	case string:
		if isRedactedField(keyHint) {
			return "redacted"
		}
		return clampString(v)
	default:
		return v
	}
}

func isRedactedField(key string) bool {
	for _, field := range redactedFields {
		if strings.Contains(key, field) {
			return true
		}
	}
	return false
}

func clampString(value string) string {
	if len(value) <= maxLoggedBody {
		return value
	}
	truncated := value[:maxLoggedBody]
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated + "...(truncated)"
}
