package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"
)

type HealthCheckCommand struct{}

func (c *HealthCheckCommand) Name() string {
	return "health-check"
}

func (c *HealthCheckCommand) Description() string {
	return "Check API liveness and readiness ([api-url])"
}

func (c *HealthCheckCommand) Run(args []string) error {
	apiURL := getEnv("API_URL", defaultAPIURL)
	if len(args) > 0 {
		apiURL = args[0]
	}

	PrintHeader(fmt.Sprintf("Health Check (%s)", apiURL))

	for _, path := range []string{"/healthz", "/readyz"} {
		duration, err := checkHealth(apiURL + path)
		if err != nil {
			PrintError("%s failed: %v", path, err)
			return err
		}
		if duration > 1*time.Second {
			PrintWarning("%s slow response time (%v)", path, duration)
		} else {
			PrintSuccess("%s ok (response time: %v)", path, duration)
		}
	}
	return nil
}

func checkHealth(url string) (time.Duration, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	if key := os.Getenv("API_KEY"); key != "" {
		req.Header.Set("X-API-Key", key)
	}

	start := time.Now()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status: %s", resp.Status)
	}
	return time.Since(start), nil
}
