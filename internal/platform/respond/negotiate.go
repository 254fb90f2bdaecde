package respond

import (
	"strconv"
	"strings"
)

const (
	mediaJSON        = "application/json"
	mediaCBOR        = "application/cbor"
	mediaProblemJSON = "application/problem+json"
	mediaProblemCBOR = "application/problem+cbor"
	mediaAnyJSON     = "application/*+json"
	mediaAnyCBOR     = "application/*+cbor"
)

type preference struct {
	q           float64
	specificity int
}

func (p preference) better(o preference) bool {
	if p.q != o.q {
		return p.q > o.q
	}
	return p.specificity > o.specificity
}

// prefersCBOR reports whether the Accept header ranks a CBOR problem representation
// above every JSON one. The q-value ranks first and specificity breaks ties:
// problem+ types beat bare types, which beat application/*+ suffix wildcards.
// Plain wildcards and unsupported types never select CBOR, so JSON is the default.
func prefersCBOR(accept string) bool {
	if accept == "" {
		return false
	}
	none := preference{q: -1}
	bestCBOR, bestJSON := none, none
	for part := range strings.SplitSeq(accept, ",") {
		mediaType, q := parseMediaRange(part)
		if q <= 0 {
			continue
		}
		switch mediaType {
		case mediaProblemCBOR:
			bestCBOR = pick(bestCBOR, preference{q: q, specificity: 2})
		case mediaCBOR:
			bestCBOR = pick(bestCBOR, preference{q: q, specificity: 1})
		case mediaProblemJSON:
			bestJSON = pick(bestJSON, preference{q: q, specificity: 2})
		case mediaJSON:
			bestJSON = pick(bestJSON, preference{q: q, specificity: 1})
		case mediaAnyCBOR:
			bestCBOR = pick(bestCBOR, preference{q: q, specificity: 0})
		case mediaAnyJSON:
			bestJSON = pick(bestJSON, preference{q: q, specificity: 0})
		}
	}
	if bestCBOR == none {
		return false
	}
	return bestCBOR.better(bestJSON)
}

func pick(current, candidate preference) preference {
	if candidate.better(current) {
		return candidate
	}
	return current
}

// parseMediaRange splits "type/subtype;q=0.5" into a lower-cased media type and its
// quality. A missing or malformed q parameter counts as 1.
func parseMediaRange(s string) (string, float64) {
	params := strings.Split(s, ";")
	mediaType := strings.ToLower(strings.TrimSpace(params[0]))
	q := 1.0
	for _, p := range params[1:] {
		key, value, ok := strings.Cut(strings.TrimSpace(p), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "q") {
			continue
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			q = v
		}
	}
	return mediaType, q
}
