package huami

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/bnema/mifit-steps-cli/internal/domain"
	"github.com/bnema/mifit-steps-cli/internal/ports"
)

const (
	lastSyncDataTime = "1597306380"
	deviceType       = "0"
	lastDeviceID     = "DA932FFFFE8816E7"

	tracePayloadBytes = 200
)

var _ ports.BandDataUploader = Adapter{}

type uploadResponse struct {
	Message string `json:"message"`
}

// Upload posts an already percent-encoded data_json value. The body is sent
// verbatim so the template's encoding layers survive untouched.
func (a Adapter) Upload(ctx context.Context, userID string, appToken string, dataJSON string) (string, error) {
	endpoint := joinURL(a.Endpoints.DataBaseURL, bandDataPath)
	timestamp := strconv.FormatInt(a.now().UnixMilli(), 10)
	payload := buildBandDataBody(userID, dataJSON)

	log := a.logger()
	log.DebugContext(ctx, "submitting band data",
		"user_id", userID,
		"url", endpoint+"?t="+timestamp,
		"payload", truncate(payload, tracePayloadBytes),
	)

	resp, err := a.client().R().
		SetContext(ctx).
		SetHeader("apptoken", appToken).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetQueryParam("t", timestamp).
		SetBody(payload).
		Post(endpoint)
	if err != nil {
		return "", &domain.TransportError{Op: "upload band data", Err: err}
	}

	log.DebugContext(ctx, "band data response", "status", resp.StatusCode(), "body", resp.String())

	var result uploadResponse
	if err := decodeJSON("upload band data", resp.Body(), &result); err != nil {
		if resp.StatusCode() >= http.StatusBadRequest {
			return "", &domain.TransportError{Op: "upload band data", Err: &statusError{code: resp.StatusCode(), body: resp.String()}}
		}
		return "", err
	}

	return result.Message, nil
}

func buildBandDataBody(userID string, dataJSON string) string {
	var b strings.Builder
	b.WriteString("userid=")
	b.WriteString(userID)
	b.WriteString("&last_sync_data_time=")
	b.WriteString(lastSyncDataTime)
	b.WriteString("&device_type=")
	b.WriteString(deviceType)
	b.WriteString("&last_deviceid=")
	b.WriteString(lastDeviceID)
	b.WriteString("&data_json=")
	b.WriteString(dataJSON)
	return b.String()
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.code, strings.TrimSpace(truncate(e.body, tracePayloadBytes)))
}
