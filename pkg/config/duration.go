package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDuration acepta los formatos usados en las variables JWT_*:
// "3600" (segundos), "3600s", "15m", "1h" y "7d" (días).
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("duración vacía")
	}
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	if strings.HasSuffix(s, "d") {
		n, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0, fmt.Errorf("duración inválida %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("duración inválida %q", s)
	}
	return d, nil
}
