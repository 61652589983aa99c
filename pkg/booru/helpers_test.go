package booru

import (
	"errors"
	"net/url"
)

func errorsIsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// parseQuery flattens raw query into single-value map
func parseQuery(raw string) (map[string]string, error) {
	vals, err := url.ParseQuery(raw)
	if err != nil {
		return nil, err
	}
	res := make(map[string]string, len(vals))
	for k := range vals {
		res[k] = vals.Get(k)
	}
	return res, nil
}
