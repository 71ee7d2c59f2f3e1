package api

import (
	"github.com/tidwall/gjson"

	"github.com/custodia-labs/biasctl/internal/core/domain"
)

// classifyError turns an error response into a *domain.APIError.
//
// A "detail" array becomes a validation error, a non-empty "detail" string
// becomes a detail error, anything else keeps only the status code.
func classifyError(status int, body []byte) *domain.APIError {
	if !gjson.ValidBytes(body) {
		return &domain.APIError{Kind: domain.ErrorKindStatus, StatusCode: status}
	}

	detail := gjson.GetBytes(body, "detail")
	switch {
	case detail.IsArray():
		return &domain.APIError{
			Kind:       domain.ErrorKindValidation,
			StatusCode: status,
			Violations: parseViolations(detail),
		}
	case detail.Type == gjson.String && detail.String() != "":
		return &domain.APIError{
			Kind:       domain.ErrorKindDetail,
			StatusCode: status,
			Detail:     detail.String(),
		}
	}
	return &domain.APIError{Kind: domain.ErrorKindStatus, StatusCode: status}
}

func parseViolations(detail gjson.Result) []domain.Violation {
	entries := detail.Array()
	violations := make([]domain.Violation, 0, len(entries))
	for _, entry := range entries {
		v := domain.Violation{Raw: entry.Raw}
		if entry.IsObject() {
			for _, loc := range entry.Get("loc").Array() {
				v.Location = append(v.Location, loc.String())
			}
			v.Message = firstString(entry, "msg", "message")
		}
		violations = append(violations, v)
	}
	return violations
}

// firstString returns the first non-empty string field among keys.
func firstString(obj gjson.Result, keys ...string) string {
	for _, k := range keys {
		if r := obj.Get(k); r.Type == gjson.String && r.String() != "" {
			return r.String()
		}
	}
	return ""
}
