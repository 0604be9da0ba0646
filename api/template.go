package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/template"
)

// transformRequestBody は任意のJSONボディをテンプレートで
// レコード作成用のJSONに変換します（Webhook連携用）。
func (s *Server) transformRequestBody(body io.Reader, tmpl string) (string, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("failed to read request body: %w", err)
	}

	// ボディが空の場合は空のデータでテンプレートを実行
	var data any = map[string]any{}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &data); err != nil {
			return "", fmt.Errorf("invalid request body: %w", err)
		}
	}

	t, err := template.New("record").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("invalid template: %w", err)
	}

	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return sb.String(), nil
}
