package catalog

import (
	"net/url"
	"strconv"
)

// Params collects query parameters for a catalog request.
// Empty values are dropped on insert so they are never sent as "key=".
type Params map[string]string

// Set adds value unless it is empty.
func (p Params) Set(key, value string) Params {
	if value != "" {
		p[key] = value
	}
	return p
}

// SetInt adds v unless it is zero.
func (p Params) SetInt(key string, v int) Params {
	if v != 0 {
		p[key] = strconv.Itoa(v)
	}
	return p
}

// SetFloat adds v unless it is nil.
func (p Params) SetFloat(key string, v *float64) Params {
	if v != nil {
		p[key] = strconv.FormatFloat(*v, 'f', -1, 64)
	}
	return p
}

// SetBool always adds v; false is a meaningful value for the include_* flags.
func (p Params) SetBool(key string, v bool) Params {
	p[key] = strconv.FormatBool(v)
	return p
}

// Encode renders the query string with the API key first in the value set.
func (p Params) Encode(apiKey string) string {
	q := url.Values{}
	q.Set("api_key", apiKey)
	for k, v := range p {
		q.Set(k, v)
	}
	return q.Encode()
}
