package interpret

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/akolanti/PDFInsight/internal/domain/commonModels"
)

// ParseQA decodes the model's raw response into ordered Q&A records. The
// response is untrusted text: it is only ever run through the JSON decoder,
// never interpreted as anything else. Anything that is not a JSON array of
// {"question", "answer"} objects is a parse failure.
func ParseQA(raw string) ([]commonModels.QARecord, error) {
	payload := extractJSONArray(raw)
	if payload == "" {
		return nil, fmt.Errorf("%w: no JSON array in response", commonModels.ErrParse)
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(payload)))
	dec.DisallowUnknownFields()

	var records []commonModels.QARecord
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %v", commonModels.ErrParse, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty Q&A list", commonModels.ErrParse)
	}

	for i, r := range records {
		if r.Question == "" || r.Answer == "" {
			return nil, fmt.Errorf("%w: record %d missing question or answer", commonModels.ErrParse, i)
		}
	}
	return records, nil
}

// extractJSONArray cuts the response down to the outermost JSON array.
// Models like to wrap their output in markdown fences or add a closing
// remark; everything outside the brackets is dropped before decoding.
func extractJSONArray(raw string) string {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return ""
	}
	return raw[start : end+1]
}
